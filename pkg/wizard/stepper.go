// Package wizard drives the multi-step interface creation flows. A Stepper
// walks an ordered list of steps over shared data; Next and Finish gate on
// each step's validation.
package wizard

import (
	"errors"
	"fmt"
)

// ErrStepOutOfRange is returned by GoTo for an unknown step index.
var ErrStepOutOfRange = errors.New("wizard: step out of range")

// Step is one page of a wizard. Validate may be nil.
type Step[T any] struct {
	Title    string
	Validate func(*T) error
}

// Stepper tracks the current step over data.
type Stepper[T any] struct {
	data    *T
	steps   []Step[T]
	current int
}

// New builds a stepper positioned on the first step.
func New[T any](data *T, steps ...Step[T]) (*Stepper[T], error) {
	if data == nil {
		return nil, errors.New("wizard: data is required")
	}
	if len(steps) == 0 {
		return nil, errors.New("wizard: at least one step is required")
	}
	return &Stepper[T]{data: data, steps: steps}, nil
}

// Data returns the shared data the steps edit.
func (s *Stepper[T]) Data() *T {
	return s.data
}

// Current returns the zero-based index of the active step.
func (s *Stepper[T]) Current() int {
	return s.current
}

// Step returns the active step.
func (s *Stepper[T]) Step() Step[T] {
	return s.steps[s.current]
}

// Len returns the number of steps.
func (s *Stepper[T]) Len() int {
	return len(s.steps)
}

// IsFirst reports whether Back has nowhere to go.
func (s *Stepper[T]) IsFirst() bool {
	return s.current == 0
}

// IsLast reports whether the active step is the final one.
func (s *Stepper[T]) IsLast() bool {
	return s.current == len(s.steps)-1
}

// Next validates the active step and advances. On the last step it only
// validates.
func (s *Stepper[T]) Next() error {
	if err := s.validate(s.current); err != nil {
		return err
	}
	if !s.IsLast() {
		s.current++
	}
	return nil
}

// Back moves to the previous step and reports whether it moved.
func (s *Stepper[T]) Back() bool {
	if s.IsFirst() {
		return false
	}
	s.current--
	return true
}

// GoTo jumps to step idx without validating.
func (s *Stepper[T]) GoTo(idx int) error {
	if idx < 0 || idx >= len(s.steps) {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, idx)
	}
	s.current = idx
	return nil
}

// Finish validates every step in order. On failure the stepper is moved to
// the first failing step and its error is returned.
func (s *Stepper[T]) Finish() (*T, error) {
	for idx := range s.steps {
		if err := s.validate(idx); err != nil {
			s.current = idx
			return nil, err
		}
	}
	return s.data, nil
}

func (s *Stepper[T]) validate(idx int) error {
	step := s.steps[idx]
	if step.Validate == nil {
		return nil
	}
	err := step.Validate(s.data)
	var verr *ValidationError
	if errors.As(err, &verr) {
		verr.Step = idx
	}
	return err
}
