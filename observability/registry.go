package observability

import (
	"fmt"
	"log/slog"
	"sync"
)

// Observer names accepted by chat configuration.
const (
	NameNoOp = "noop"
	NameSlog = "slog"
)

var (
	observers = map[string]Observer{
		NameNoOp: NoOpObserver{},
	}
	mutex sync.RWMutex
)

// GetObserver returns a registered observer by name. "slog" resolves to a
// SlogObserver over slog.Default() at call time unless it has been replaced
// with RegisterObserver, so loggers installed by main are picked up.
func GetObserver(name string) (Observer, error) {
	mutex.RLock()
	defer mutex.RUnlock()

	if obs, exists := observers[name]; exists {
		return obs, nil
	}
	if name == NameSlog {
		return NewSlogObserver(slog.Default()), nil
	}
	return nil, fmt.Errorf("unknown observer: %s", name)
}

// RegisterObserver adds or replaces a named observer in the global registry.
func RegisterObserver(name string, observer Observer) {
	mutex.Lock()
	defer mutex.Unlock()

	observers[name] = observer
}
