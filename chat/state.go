package chat

// State is the position of the current interaction in the Ask cycle.
type State int

const (
	StateIdle State = iota
	StateAwaitingInput
	StateUserTurnAppended
	StateAwaitingModelResponse
	StateModelTurnAppended
	StateFailedNoAppend
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingInput:
		return "awaiting_input"
	case StateUserTurnAppended:
		return "user_turn_appended"
	case StateAwaitingModelResponse:
		return "awaiting_model_response"
	case StateModelTurnAppended:
		return "model_turn_appended"
	case StateFailedNoAppend:
		return "failed_no_append"
	default:
		return "unknown"
	}
}
