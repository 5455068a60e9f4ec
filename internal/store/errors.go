package store

import (
	"errors"
	"fmt"
)

// Error categories every store implementation maps its failures onto.
// The entity-specific sentinels below wrap these, so errors.Is against
// a category matches both.
var (
	ErrNotFound          = errors.New("entity not found")
	ErrDuplicate         = errors.New("entity already exists")
	ErrInvalidEntity     = errors.New("invalid entity")
	ErrUpdateFailed      = errors.New("update failed")
	ErrDeleteFailed      = errors.New("delete failed")
	ErrTransactionFailed = errors.New("transaction failed")
)

// Entity-specific sentinels. The service layer matches on these to pick
// client-facing messages without inspecting error text.
var (
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)
	ErrNoteNotFound = fmt.Errorf("%w: note", ErrNotFound)

	// ErrDeckNameExists reports a second deck with an already-used name.
	ErrDeckNameExists = fmt.Errorf("%w: deck name", ErrDuplicate)

	// ErrPositionTaken reports a write of a position another note in the
	// deck already holds.
	ErrPositionTaken = fmt.Errorf("%w: position", ErrDuplicate)
)

// IsNotFoundError reports whether err is in the not-found category,
// generic or entity-specific.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError reports whether err is in the duplicate category,
// generic or entity-specific.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// StoreError carries the entity and operation a store failure came
// from, wrapping the driver error underneath.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap exposes the wrapped error to errors.Is and errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError builds a StoreError for the given entity and operation.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
