package builder

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-foundry/pkg/model"
)

var (
	// ErrInvalidPlacement signals a structural rule violation such as nesting a
	// Section inside another Section.
	ErrInvalidPlacement = errors.New("builder: invalid placement")
	// ErrNotFound signals a stale or unknown field/container id. Callers should
	// treat it as already consistent.
	ErrNotFound = errors.New("builder: not found")
	// ErrLockedForEditing is returned for structural mutations in test mode.
	ErrLockedForEditing = errors.New("builder: locked for editing in test mode")
	// ErrValidationFailed aliases the shared validation sentinel.
	ErrValidationFailed = model.ErrValidationFailed
	// ErrPanelClosed is returned when editing without a selected field.
	ErrPanelClosed = errors.New("builder: configuration panel is closed")
	// ErrNoValue is returned when reading or writing a runtime value on a
	// field kind that holds none (Sections).
	ErrNoValue = errors.New("builder: field holds no value")
)

// OpError decorates a sentinel with the operation and field involved.
type OpError struct {
	Op      string
	FieldID string
	Err     error
}

func (e *OpError) Error() string {
	if e.FieldID == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Op, e.FieldID, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func opErr(op, fieldID string, err error) error {
	return &OpError{Op: op, FieldID: fieldID, Err: err}
}
