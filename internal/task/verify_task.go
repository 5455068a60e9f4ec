package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/deckorder-api/internal/events"
	"github.com/phrazzld/deckorder-api/internal/service"
)

// Common errors
var (
	ErrNilVerifier      = errors.New("verifier cannot be nil")
	ErrNilLogger        = errors.New("logger cannot be nil")
	ErrEmptyRequestedBy = errors.New("requested by cannot be empty")
)

// CollectionVerifier runs the collection-wide pass that assigns a
// position to every note lacking one. Satisfied by the order service.
type CollectionVerifier interface {
	AssignMissing(ctx context.Context) (*service.VerifyReport, error)
}

// collectionVerifyPayload represents the serialized data stored in the task
type collectionVerifyPayload struct {
	RequestedBy string `json:"requested_by"`
}

// NewCollectionVerifyEvent builds the event that requests a verification
// pass. Emitters use it so the payload shape stays in one place.
func NewCollectionVerifyEvent(requestedBy string) (*events.TaskRequestEvent, error) {
	return events.NewTaskRequestEvent(
		TaskTypeCollectionVerify,
		collectionVerifyPayload{RequestedBy: requestedBy},
	)
}

// CollectionVerifyTask implements the Task interface for verifying that
// every note in the collection holds a position
type CollectionVerifyTask struct {
	id          uuid.UUID
	requestedBy string
	verifier    CollectionVerifier
	logger      *slog.Logger
	status      TaskStatus
}

// NewCollectionVerifyTask creates a new collection verify task
func NewCollectionVerifyTask(
	requestedBy string,
	verifier CollectionVerifier,
	logger *slog.Logger,
) (*CollectionVerifyTask, error) {
	// Validate dependencies
	if verifier == nil {
		return nil, ErrNilVerifier
	}
	if logger == nil {
		return nil, ErrNilLogger
	}
	if requestedBy == "" {
		return nil, ErrEmptyRequestedBy
	}

	return &CollectionVerifyTask{
		id:          uuid.New(),
		requestedBy: requestedBy,
		verifier:    verifier,
		logger:      logger.With("task_type", TaskTypeCollectionVerify, "requested_by", requestedBy),
		status:      TaskStatusPending,
	}, nil
}

// ID returns the task's unique identifier
func (t *CollectionVerifyTask) ID() uuid.UUID {
	return t.id
}

// Type returns the task type identifier
func (t *CollectionVerifyTask) Type() string {
	return TaskTypeCollectionVerify
}

// Payload returns the task data as a byte slice
func (t *CollectionVerifyTask) Payload() []byte {
	payload := collectionVerifyPayload{
		RequestedBy: t.requestedBy,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		// If marshal fails, return an empty payload with error logged
		t.logger.Error("failed to marshal task payload", "error", err)
		return []byte{}
	}

	return data
}

// Status returns the current task status
func (t *CollectionVerifyTask) Status() TaskStatus {
	return t.status
}

// Execute runs the verification pass. Per-note store failures are part of
// the report and do not fail the task; only a pass that cannot run at all
// (context cancelled, decks unlistable) counts as a task failure.
func (t *CollectionVerifyTask) Execute(ctx context.Context) error {
	t.status = TaskStatusProcessing
	t.logger.Info("starting collection verify task")

	// Check for context cancellation
	if err := ctx.Err(); err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("task cancelled by context", "error", err)
		return fmt.Errorf("task cancelled by context: %w", err)
	}

	report, err := t.verifier.AssignMissing(ctx)
	if err != nil {
		t.status = TaskStatusFailed
		t.logger.Error("collection verify failed", "error", err)
		return fmt.Errorf("collection verify failed: %w", err)
	}

	if len(report.Failures) > 0 {
		t.logger.Warn("collection verify completed with failures",
			"decks_checked", report.DecksChecked,
			"notes_assigned", len(report.Assigned),
			"failure_count", len(report.Failures))
	} else {
		t.logger.Info("collection verify completed",
			"decks_checked", report.DecksChecked,
			"notes_assigned", len(report.Assigned))
	}

	t.status = TaskStatusCompleted
	return nil
}

// Ensure CollectionVerifyTask implements Task
var _ Task = (*CollectionVerifyTask)(nil)
