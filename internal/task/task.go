package task

import (
	"context"

	"github.com/google/uuid"
)

// TaskStatus tracks a task through its lifecycle.
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusProcessing TaskStatus = "processing"
	TaskStatusCompleted  TaskStatus = "completed"
	TaskStatusFailed     TaskStatus = "failed"
)

// TaskTypeCollectionVerify names the collection-wide pass that assigns
// positions to notes lacking one. It is the type carried by both the
// request event and the task built from it.
const TaskTypeCollectionVerify = "collection_verify"

// Task is one unit of background work. The runner only needs Execute;
// the rest identifies the task in logs and lets tests observe progress.
type Task interface {
	ID() uuid.UUID
	Type() string

	// Payload returns the task data as opaque bytes.
	Payload() []byte

	Status() TaskStatus

	// Execute runs the task. The context carries runner shutdown.
	Execute(ctx context.Context) error
}

// TaskQueueReader is the consuming side of the queue, handed to the
// runner's workers.
type TaskQueueReader interface {
	GetChannel() <-chan Task
}

// TaskQueueWriter is the producing side of the queue, handed to the
// event handler that turns verify requests into queued tasks.
type TaskQueueWriter interface {
	// Enqueue submits a task. Fails when the queue is full or closed.
	Enqueue(task Task) error

	// Close stops submissions so the runner can drain and exit.
	Close()
}
