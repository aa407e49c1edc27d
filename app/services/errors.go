package services

import (
	"errors"
	"fmt"

	"github.com/shashiranjanraj/backoffice/pkg/validate"
)

// ErrNotFound matches every *NotFoundError through errors.Is.
var ErrNotFound = errors.New("not found")

// ValidationError carries one message per failing field. Nothing has been
// written when it is returned.
type ValidationError struct {
	Fields validate.Errors
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Fields.Error()
}

// NotFoundError is returned when an id does not resolve.
type NotFoundError struct {
	Resource string
	ID       uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// StorageError wraps a failed file store operation.
type StorageError struct {
	Op   string // "put" | "delete"
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func invalid(errs validate.Errors) error {
	if !validate.HasErrors(errs) {
		return nil
	}
	return &ValidationError{Fields: errs}
}

// outcome classifies err for the mutation counter.
func outcome(err error) string {
	var (
		verr *ValidationError
		serr *StorageError
	)
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &verr):
		return "invalid"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.As(err, &serr):
		return "storage"
	default:
		return "error"
	}
}
