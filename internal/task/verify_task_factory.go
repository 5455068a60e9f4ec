package task

import (
	"log/slog"
)

// CollectionVerifyTaskFactory creates CollectionVerifyTask instances
type CollectionVerifyTaskFactory struct {
	verifier CollectionVerifier
	logger   *slog.Logger
}

// NewCollectionVerifyTaskFactory creates a new factory for CollectionVerifyTasks
func NewCollectionVerifyTaskFactory(
	verifier CollectionVerifier,
	logger *slog.Logger,
) *CollectionVerifyTaskFactory {
	return &CollectionVerifyTaskFactory{
		verifier: verifier,
		logger:   logger.With("component", "collection_verify_task_factory"),
	}
}

// CreateTask creates a new CollectionVerifyTask for the specified requester
func (f *CollectionVerifyTaskFactory) CreateTask(requestedBy string) (Task, error) {
	task, err := NewCollectionVerifyTask(
		requestedBy,
		f.verifier,
		f.logger,
	)
	if err != nil {
		return nil, err
	}
	return task, nil
}
