package events

import (
	"context"
	"log/slog"
	"sync"
)

// InMemoryEventEmitter delivers task request events to handlers living
// in the same process. Collection verify triggers are the only traffic,
// so delivery is synchronous with no buffering: by the time EmitEvent
// returns, every handler has seen the event.
type InMemoryEventEmitter struct {
	mu       sync.RWMutex
	handlers []EventHandler
	logger   *slog.Logger
}

// NewInMemoryEventEmitter returns an emitter with no handlers attached.
func NewInMemoryEventEmitter(logger *slog.Logger) *InMemoryEventEmitter {
	return &InMemoryEventEmitter{
		logger: logger.With("component", "event_emitter"),
	}
}

// RegisterHandler subscribes handler to every event emitted after this call.
func (e *InMemoryEventEmitter) RegisterHandler(handler EventHandler) {
	e.mu.Lock()
	e.handlers = append(e.handlers, handler)
	count := len(e.handlers)
	e.mu.Unlock()

	e.logger.Debug("registered event handler", "handler_count", count)
}

// EmitEvent hands the event to each registered handler in registration
// order. A failing handler does not block the rest; the first failure
// is returned once all handlers have run. Emitting before any handler
// is registered drops the event with a warning.
func (e *InMemoryEventEmitter) EmitEvent(ctx context.Context, event *TaskRequestEvent) error {
	// Snapshot under the read lock so a handler may register further
	// handlers without deadlocking.
	e.mu.RLock()
	handlers := append([]EventHandler(nil), e.handlers...)
	e.mu.RUnlock()

	log := e.logger.With(
		slog.String("event_id", event.ID.String()),
		slog.String("event_type", event.Type))

	if len(handlers) == 0 {
		log.Warn("dropping event, no handlers registered")
		return nil
	}

	log.Debug("emitting event", slog.Int("handler_count", len(handlers)))

	var firstErr error
	for _, handler := range handlers {
		if err := handler.HandleEvent(ctx, event); err != nil {
			log.Error("event handler failed", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

var _ EventEmitter = (*InMemoryEventEmitter)(nil)
