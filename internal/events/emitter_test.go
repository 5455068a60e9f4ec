package events

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEmitter() *InMemoryEventEmitter {
	return NewInMemoryEventEmitter(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func verifyEvent(t *testing.T, requestedBy string) *TaskRequestEvent {
	t.Helper()
	event, err := NewTaskRequestEvent("collection_verify", map[string]string{"requested_by": requestedBy})
	require.NoError(t, err)
	return event
}

func TestInMemoryEventEmitter(t *testing.T) {
	t.Run("no handlers drops the event", func(t *testing.T) {
		emitter := newTestEmitter()

		err := emitter.EmitEvent(context.Background(), verifyEvent(t, "api"))
		assert.NoError(t, err)
	})

	t.Run("every handler sees the event", func(t *testing.T) {
		emitter := newTestEmitter()

		handler1 := &MockEventHandler{}
		handler2 := &MockEventHandler{}
		emitter.RegisterHandler(handler1)
		emitter.RegisterHandler(handler2)

		event := verifyEvent(t, "startup")
		require.NoError(t, emitter.EmitEvent(context.Background(), event))

		assert.Equal(t, 1, handler1.HandledCount)
		assert.Equal(t, 1, handler2.HandledCount)
		assert.Equal(t, event, handler1.LastEvent)
		assert.Equal(t, event, handler2.LastEvent)
	})

	t.Run("handler failure does not stop delivery", func(t *testing.T) {
		emitter := newTestEmitter()

		successHandler := &MockEventHandler{}
		failingHandler := &MockEventHandler{
			HandlerError: errors.New("handler error"),
		}
		emitter.RegisterHandler(successHandler)
		emitter.RegisterHandler(failingHandler)

		err := emitter.EmitEvent(context.Background(), verifyEvent(t, "api"))
		assert.Error(t, err)
		assert.Equal(t, "handler error", err.Error())

		// The failure came after the first handler already ran
		assert.Equal(t, 1, successHandler.HandledCount)
		assert.Equal(t, 1, failingHandler.HandledCount)
	})

	t.Run("first failure wins", func(t *testing.T) {
		emitter := newTestEmitter()

		first := &MockEventHandler{HandlerError: errors.New("first failure")}
		second := &MockEventHandler{HandlerError: errors.New("second failure")}
		emitter.RegisterHandler(first)
		emitter.RegisterHandler(second)

		err := emitter.EmitEvent(context.Background(), verifyEvent(t, "api"))
		require.Error(t, err)
		assert.Equal(t, "first failure", err.Error())
		assert.Equal(t, 1, second.HandledCount)
	})
}
