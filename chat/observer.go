package chat

import "github.com/tailored-agentic-units/apoteker/observability"

// Chat event types emitted during an Ask cycle.
const (
	EventAskStart      observability.EventType = "chat.ask.start"
	EventAskRejected   observability.EventType = "chat.ask.rejected"
	EventUserAppended  observability.EventType = "chat.user.appended"
	EventModelAppended observability.EventType = "chat.model.appended"
	EventAskFailed     observability.EventType = "chat.ask.failed"
)
