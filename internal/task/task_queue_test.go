package task

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaskQueueEnqueueAndConsume(t *testing.T) {
	queue := NewTaskQueue(2, discardLogger())

	task1 := newTestTask(nil)
	task2 := newTestTask(nil)

	require.NoError(t, queue.Enqueue(task1))
	require.NoError(t, queue.Enqueue(task2))

	// Tasks come out in submission order
	got1 := <-queue.GetChannel()
	got2 := <-queue.GetChannel()
	assert.Equal(t, task1.ID(), got1.ID())
	assert.Equal(t, task2.ID(), got2.ID())
}

func TestTaskQueueFull(t *testing.T) {
	queue := NewTaskQueue(1, discardLogger())

	require.NoError(t, queue.Enqueue(newTestTask(nil)))

	err := queue.Enqueue(newTestTask(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTaskQueueClosed(t *testing.T) {
	queue := NewTaskQueue(1, discardLogger())
	queue.Close()

	err := queue.Enqueue(newTestTask(nil))
	assert.ErrorIs(t, err, ErrQueueClosed)

	// Consuming from a closed, drained queue reports closure
	_, ok := <-queue.GetChannel()
	assert.False(t, ok)
}

func TestTaskQueueCloseIsIdempotent(t *testing.T) {
	queue := NewTaskQueue(1, discardLogger())

	queue.Close()
	assert.NotPanics(t, func() {
		queue.Close()
	})
}
