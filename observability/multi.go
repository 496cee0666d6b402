package observability

import "context"

// MultiObserver delivers each event to every sink in registration order,
// e.g. the human-readable log and the JSON event file.
type MultiObserver struct {
	sinks []Observer
}

// NewMultiObserver drops nil sinks so optional outputs can be passed
// unconditionally.
func NewMultiObserver(sinks ...Observer) *MultiObserver {
	kept := make([]Observer, 0, len(sinks))
	for _, sink := range sinks {
		if sink != nil {
			kept = append(kept, sink)
		}
	}
	return &MultiObserver{sinks: kept}
}

func (m *MultiObserver) OnEvent(ctx context.Context, event Event) {
	for _, sink := range m.sinks {
		sink.OnEvent(ctx, event)
	}
}

// Combine returns the cheapest Observer for the non-nil sinks: NoOpObserver
// for none, the sink itself for one, a MultiObserver otherwise.
func Combine(sinks ...Observer) Observer {
	m := NewMultiObserver(sinks...)
	switch len(m.sinks) {
	case 0:
		return NoOpObserver{}
	case 1:
		return m.sinks[0]
	default:
		return m
	}
}
