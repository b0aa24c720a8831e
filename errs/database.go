package errs

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrAlreadyExists = errors.New("already exists")
	ErrRecordMissing = errors.New("record missing")
)

// DatabaseError carries the failed operation alongside the driver error. It
// is the error type returned by the repositories in package database.
type DatabaseError struct {
	Operation string
	Entity    string
	kind      error
	cause     error
}

func (e *DatabaseError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Operation, e.Entity, e.cause)
}

func (e *DatabaseError) Unwrap() []error {
	return []error{e.kind, e.cause}
}

// NewDatabaseError classifies a storage error so services can map it onto the
// API taxonomy without inspecting driver specifics.
func NewDatabaseError(operation, entity string, cause error) error {
	if cause == nil {
		return nil
	}

	kind := ErrUnexpected
	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		kind = ErrRecordMissing
	case errors.Is(cause, gorm.ErrDuplicatedKey), isDuplicateKeyText(cause.Error()):
		kind = ErrAlreadyExists
	}

	return &DatabaseError{
		Operation: operation,
		Entity:    entity,
		kind:      kind,
		cause:     cause,
	}
}

// Drivers that do not support gorm's TranslateError still surface recognisable text.
func isDuplicateKeyText(msg string) bool {
	msg = strings.ToLower(msg)
	return strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate entry")
}

func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

func IsRecordMissing(err error) bool {
	return errors.Is(err, ErrRecordMissing)
}
