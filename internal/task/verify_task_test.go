package task

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/deckorder-api/internal/domain/position"
	"github.com/phrazzld/deckorder-api/internal/service"
)

// fakeVerifier implements CollectionVerifier for testing
type fakeVerifier struct {
	report *service.VerifyReport
	err    error
	calls  int
}

func (f *fakeVerifier) AssignMissing(ctx context.Context) (*service.VerifyReport, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

func TestNewCollectionVerifyTask(t *testing.T) {
	verifier := &fakeVerifier{report: &service.VerifyReport{}}

	task, err := NewCollectionVerifyTask("startup", verifier, discardLogger())
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, task.ID())
	assert.Equal(t, TaskTypeCollectionVerify, task.Type())
	assert.Equal(t, TaskStatusPending, task.Status())
}

func TestNewCollectionVerifyTaskValidation(t *testing.T) {
	verifier := &fakeVerifier{}

	_, err := NewCollectionVerifyTask("startup", nil, discardLogger())
	assert.ErrorIs(t, err, ErrNilVerifier)

	_, err = NewCollectionVerifyTask("startup", verifier, nil)
	assert.ErrorIs(t, err, ErrNilLogger)

	_, err = NewCollectionVerifyTask("", verifier, discardLogger())
	assert.ErrorIs(t, err, ErrEmptyRequestedBy)
}

func TestCollectionVerifyTaskPayload(t *testing.T) {
	verifier := &fakeVerifier{}
	task, err := NewCollectionVerifyTask("api", verifier, discardLogger())
	require.NoError(t, err)

	var payload struct {
		RequestedBy string `json:"requested_by"`
	}
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, "api", payload.RequestedBy)
}

func TestCollectionVerifyTaskExecute(t *testing.T) {
	verifier := &fakeVerifier{
		report: &service.VerifyReport{
			DecksChecked: 3,
			Assigned: []position.Assignment{
				{NoteID: uuid.New(), Position: 5},
			},
		},
	}

	task, err := NewCollectionVerifyTask("startup", verifier, discardLogger())
	require.NoError(t, err)

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, 1, verifier.calls)
	assert.Equal(t, TaskStatusCompleted, task.Status())
}

func TestCollectionVerifyTaskExecuteWithPerNoteFailures(t *testing.T) {
	// A report carrying failures still counts as a completed pass
	verifier := &fakeVerifier{
		report: &service.VerifyReport{
			DecksChecked: 2,
			Failures: []position.Failure{
				{NoteID: uuid.New(), Position: 4, Err: errors.New("position taken")},
			},
		},
	}

	task, err := NewCollectionVerifyTask("api", verifier, discardLogger())
	require.NoError(t, err)

	require.NoError(t, task.Execute(context.Background()))
	assert.Equal(t, TaskStatusCompleted, task.Status())
}

func TestCollectionVerifyTaskExecuteVerifierError(t *testing.T) {
	verifierErr := errors.New("decks unlistable")
	verifier := &fakeVerifier{err: verifierErr}

	task, err := NewCollectionVerifyTask("startup", verifier, discardLogger())
	require.NoError(t, err)

	err = task.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, verifierErr)
	assert.Equal(t, TaskStatusFailed, task.Status())
}

func TestCollectionVerifyTaskExecuteCancelledContext(t *testing.T) {
	verifier := &fakeVerifier{report: &service.VerifyReport{}}

	task, err := NewCollectionVerifyTask("startup", verifier, discardLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = task.Execute(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, TaskStatusFailed, task.Status())
	assert.Equal(t, 0, verifier.calls)
}

func TestNewCollectionVerifyEvent(t *testing.T) {
	event, err := NewCollectionVerifyEvent("startup")
	require.NoError(t, err)
	assert.Equal(t, TaskTypeCollectionVerify, event.Type)

	var payload collectionVerifyPayload
	require.NoError(t, event.UnmarshalPayload(&payload))
	assert.Equal(t, "startup", payload.RequestedBy)
}
