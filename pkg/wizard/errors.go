package wizard

import (
	"fmt"
	"sort"
	"strings"

	"github.com/goliatone/go-foundry/pkg/model"
)

// RequiredMessage is reported for a blank required input.
const RequiredMessage = "This is a required field"

// ValidationError collects the field-level and form-level messages raised by a
// step. It unwraps to model.ErrValidationFailed.
type ValidationError struct {
	Step   int
	Fields map[string][]string
	Form   []string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	parts := make([]string, 0, len(e.Fields)+len(e.Form))
	for _, name := range e.FieldNames() {
		parts = append(parts, name+": "+strings.Join(e.Fields[name], "; "))
	}
	parts = append(parts, e.Form...)
	return fmt.Sprintf("wizard: step %d: %s", e.Step+1, strings.Join(parts, ", "))
}

func (e *ValidationError) Unwrap() error {
	return model.ErrValidationFailed
}

// FieldNames returns the names of the failing inputs in sorted order.
func (e *ValidationError) FieldNames() []string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Checker accumulates validation messages for one step.
type Checker struct {
	fields map[string][]string
	form   []string
}

// Required flags name when value is blank.
func (c *Checker) Required(name, value string) *Checker {
	if strings.TrimSpace(value) == "" {
		c.Field(name, RequiredMessage)
	}
	return c
}

// Field records a message against an input.
func (c *Checker) Field(name, message string) *Checker {
	if c.fields == nil {
		c.fields = make(map[string][]string)
	}
	c.fields[name] = append(c.fields[name], message)
	return c
}

// Form records a message that belongs to the whole step.
func (c *Checker) Form(message string) *Checker {
	c.form = append(c.form, message)
	return c
}

// Err returns nil when nothing was recorded.
func (c *Checker) Err() error {
	fields := make(map[string][]string, len(c.fields))
	for name, messages := range c.fields {
		if normalized := normalizeMessages(messages); len(normalized) > 0 {
			fields[name] = normalized
		}
	}
	form := normalizeMessages(c.form)
	if len(fields) == 0 && len(form) == 0 {
		return nil
	}
	if len(fields) == 0 {
		fields = nil
	}
	return &ValidationError{Fields: fields, Form: form}
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}
	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))
	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
