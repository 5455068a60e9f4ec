package position

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// NoteStore is the minimal persistence surface the allocator writes
// through. Implementations must reject positions that would violate
// uniqueness within a deck rather than overwrite a neighbour.
type NoteStore interface {
	// UpdatePosition persists a single note's position
	UpdatePosition(ctx context.Context, noteID uuid.UUID, position int) error
}

// Failure records one assignment the store refused, together with the
// reason.
type Failure struct {
	NoteID   uuid.UUID `json:"note_id"`
	Position int       `json:"position"`
	Err      error     `json:"-"`
}

// Report summarises the outcome of applying a plan: which assignments
// were persisted and which failed. A partial outcome is expected when
// assignments race against concurrent writers; failed assignments can
// be replanned and retried by the caller.
type Report struct {
	Applied []Assignment `json:"applied"`
	Failed  []Failure    `json:"failed"`
}

// Err folds the report's failures into a single error, or nil when
// every assignment was applied.
func (r *Report) Err() error {
	if len(r.Failed) == 0 {
		return nil
	}
	errs := make([]error, 0, len(r.Failed))
	for _, f := range r.Failed {
		errs = append(errs, fmt.Errorf("note %s position %d: %w", f.NoteID, f.Position, f.Err))
	}
	return fmt.Errorf("%d of %d assignments failed: %w",
		len(r.Failed), len(r.Applied)+len(r.Failed), errors.Join(errs...))
}

// Allocator applies position plans through a NoteStore.
type Allocator struct {
	store  NoteStore
	logger *slog.Logger
}

// NewAllocator creates an Allocator writing through the given store.
// Returns an error if the store is nil; a nil logger falls back to the
// default logger.
func NewAllocator(store NoteStore, logger *slog.Logger) (*Allocator, error) {
	if store == nil {
		return nil, errors.New("note store cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Allocator{
		store:  store,
		logger: logger.With(slog.String("component", "position_allocator")),
	}, nil
}

// Apply persists each assignment in order. A failing assignment is
// recorded and the walk continues, so one bad note cannot block the
// rest of the plan. The returned report lists both outcomes; callers
// needing all-or-nothing semantics should run Apply inside their own
// transaction and roll back when Report.Err is non-nil.
func (a *Allocator) Apply(ctx context.Context, assignments []Assignment) *Report {
	report := &Report{}

	for _, assignment := range assignments {
		if err := a.store.UpdatePosition(ctx, assignment.NoteID, assignment.Position); err != nil {
			a.logger.WarnContext(ctx, "failed to assign position",
				slog.String("note_id", assignment.NoteID.String()),
				slog.Int("position", assignment.Position),
				slog.String("error", err.Error()))
			report.Failed = append(report.Failed, Failure{
				NoteID:   assignment.NoteID,
				Position: assignment.Position,
				Err:      err,
			})
			continue
		}
		report.Applied = append(report.Applied, assignment)
	}

	if len(assignments) > 0 {
		a.logger.InfoContext(ctx, "applied position plan",
			slog.Int("planned", len(assignments)),
			slog.Int("applied", len(report.Applied)),
			slog.Int("failed", len(report.Failed)))
	}

	return report
}
