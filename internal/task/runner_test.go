package task

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testTask is a minimal Task implementation with a pluggable Execute
type testTask struct {
	id      uuid.UUID
	execute func(ctx context.Context) error
}

func newTestTask(execute func(ctx context.Context) error) *testTask {
	return &testTask{
		id:      uuid.New(),
		execute: execute,
	}
}

func (t *testTask) ID() uuid.UUID      { return t.id }
func (t *testTask) Type() string       { return "test_task" }
func (t *testTask) Payload() []byte    { return []byte(`{}`) }
func (t *testTask) Status() TaskStatus { return TaskStatusPending }

func (t *testTask) Execute(ctx context.Context) error {
	if t.execute != nil {
		return t.execute(ctx)
	}
	return nil
}

func TestTaskRunnerExecutesSubmittedTask(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 2}, discardLogger())
	require.NoError(t, runner.Start())
	defer runner.Stop()

	executed := make(chan uuid.UUID, 1)
	task := newTestTask(func(ctx context.Context) error {
		executed <- uuid.Nil
		return nil
	})

	require.NoError(t, runner.Submit(context.Background(), task))

	select {
	case <-executed:
		// Task ran
	case <-time.After(2 * time.Second):
		t.Fatal("task was not executed before timeout")
	}
}

func TestTaskRunnerInvokesErrorHandler(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 2}, discardLogger())

	handled := make(chan error, 1)
	runner.SetErrorHandler(func(task Task, err error) {
		handled <- err
	})

	require.NoError(t, runner.Start())
	defer runner.Stop()

	taskErr := errors.New("verify blew up")
	task := newTestTask(func(ctx context.Context) error {
		return taskErr
	})

	require.NoError(t, runner.Submit(context.Background(), task))

	select {
	case err := <-handled:
		assert.Equal(t, taskErr, err)
	case <-time.After(2 * time.Second):
		t.Fatal("error handler was not invoked before timeout")
	}
}

func TestTaskRunnerSubmitQueueFull(t *testing.T) {
	// No workers started, so nothing drains the queue
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())

	require.NoError(t, runner.Submit(context.Background(), newTestTask(nil)))

	err := runner.Submit(context.Background(), newTestTask(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrQueueFull)
}

func TestTaskRunnerSubmitAfterStop(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())
	require.NoError(t, runner.Start())
	runner.Stop()

	err := runner.Submit(context.Background(), newTestTask(nil))
	assert.ErrorIs(t, err, ErrQueueClosed)
}

func TestTaskRunnerSubmitCancelledContext(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := runner.Submit(ctx, newTestTask(nil))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestTaskRunnerStopCancelsInFlightTask(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 1, QueueSize: 1}, discardLogger())
	require.NoError(t, runner.Start())

	started := make(chan struct{})
	task := newTestTask(func(ctx context.Context) error {
		close(started)
		<-ctx.Done()
		return ctx.Err()
	})

	require.NoError(t, runner.Submit(context.Background(), task))

	select {
	case <-started:
	case <-time.After(2 * time.Second):
		t.Fatal("task did not start before timeout")
	}

	stopped := make(chan struct{})
	go func() {
		runner.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
		// Stop unblocked the in-flight task and returned
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return before timeout")
	}
}

func TestNewTaskRunnerAppliesDefaults(t *testing.T) {
	runner := NewTaskRunner(TaskRunnerConfig{WorkerCount: 0, QueueSize: -1}, discardLogger())

	assert.Equal(t, 1, runner.config.WorkerCount)
	assert.Equal(t, 10, runner.config.QueueSize)
}
