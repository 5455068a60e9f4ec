package task

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/deckorder-api/internal/events"
)

// TaskFactory builds a task from the fields carried in an event payload.
type TaskFactory interface {
	// CreateTask creates a task attributed to the given requester
	CreateTask(requestedBy string) (Task, error)
}

// TaskSubmitter accepts tasks for background execution.
type TaskSubmitter interface {
	// Submit adds a task to the processing queue
	Submit(ctx context.Context, task Task) error
}

// TaskRequestEventHandler implements the events.EventHandler interface
// to handle task creation events and delegate them to the task factory.
type TaskRequestEventHandler struct {
	taskFactory TaskFactory
	taskRunner  TaskSubmitter
	logger      *slog.Logger
}

// NewTaskRequestEventHandler creates a new event handler that uses the given
// task factory to create tasks, and submits them to the provided task runner.
func NewTaskRequestEventHandler(
	taskFactory TaskFactory,
	taskRunner TaskSubmitter,
	logger *slog.Logger,
) *TaskRequestEventHandler {
	return &TaskRequestEventHandler{
		taskFactory: taskFactory,
		taskRunner:  taskRunner,
		logger:      logger.With("component", "task_request_event_handler"),
	}
}

// HandleEvent processes events by creating and submitting tasks.
// It extracts the payload from the event, creates the appropriate task,
// and submits it to the runner for execution.
func (h *TaskRequestEventHandler) HandleEvent(
	ctx context.Context,
	event *events.TaskRequestEvent,
) error {
	if event.Type != TaskTypeCollectionVerify {
		h.logger.Debug("ignoring event with unsupported type",
			"event_type", event.Type,
			"event_id", event.ID)
		return nil
	}

	var payload collectionVerifyPayload
	if err := event.UnmarshalPayload(&payload); err != nil {
		h.logger.Error("failed to unmarshal payload", "error", err, "event_id", event.ID)
		return fmt.Errorf("failed to unmarshal payload: %w", err)
	}

	task, err := h.taskFactory.CreateTask(payload.RequestedBy)
	if err != nil {
		h.logger.Error("failed to create task",
			"error", err,
			"requested_by", payload.RequestedBy,
			"event_id", event.ID)
		return fmt.Errorf("failed to create task: %w", err)
	}

	if err := h.taskRunner.Submit(ctx, task); err != nil {
		h.logger.Error("failed to submit task",
			"error", err,
			"task_id", task.ID(),
			"event_id", event.ID)
		return fmt.Errorf("failed to submit task: %w", err)
	}

	h.logger.Info("task created and submitted successfully",
		"task_id", task.ID(),
		"task_type", task.Type(),
		"event_id", event.ID)
	return nil
}

// Ensure TaskRequestEventHandler implements events.EventHandler
var _ events.EventHandler = (*TaskRequestEventHandler)(nil)
