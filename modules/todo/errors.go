package todo

import (
	"errors"
	"fmt"
)

// Sentinel errors for store operations. Match with errors.Is.
var (
	// ErrStorageUnavailable is returned when the store file cannot be created or opened.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrSchema is returned when the todos table cannot be created.
	ErrSchema = errors.New("schema error")

	// ErrConnection is returned when the store handle is closed or unreachable.
	ErrConnection = errors.New("connection error")

	// ErrQuery is returned when a statement fails for any other reason.
	ErrQuery = errors.New("query error")

	// ErrDuplicateKey is returned when an insert collides with an existing id.
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrNotFound is returned when no task has the requested id.
	ErrNotFound = errors.New("task not found")
)

// StoreError describes a failed store operation.
type StoreError struct {
	Op   string
	ID   string
	Kind error
	Err  error
}

func (e *StoreError) Error() string {
	msg := e.Op
	if e.ID != "" {
		msg += " " + e.ID
	}
	msg += ": " + e.Kind.Error()
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the underlying cause.
func (e *StoreError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func newStoreError(op, id string, kind, err error) error {
	return &StoreError{Op: op, ID: id, Kind: kind, Err: err}
}

// errorf wraps err with the given kind, formatting a short cause message.
func errorf(op string, kind error, format string, args ...any) error {
	return newStoreError(op, "", kind, fmt.Errorf(format, args...))
}
