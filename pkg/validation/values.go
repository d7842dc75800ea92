// Package validation checks test-mode values against the schema a form
// document exports. The builder itself never enforces required flags; this is
// the explicit check a user runs while testing a form.
package validation

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-foundry/pkg/export"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/wizard"
)

// Issue is a single failed check.
type Issue struct {
	Path    string `json:"path,omitempty"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result captures the outcome of Check.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues,omitempty"`
}

// FieldMessages groups issue messages by field id.
func (r Result) FieldMessages() map[string][]string {
	if len(r.Issues) == 0 {
		return nil
	}
	out := make(map[string][]string)
	for _, issue := range r.Issues {
		out[issue.Field] = append(out[issue.Field], issue.Message)
	}
	return out
}

// Check validates values, keyed by field id, against the schema of doc.
// Blank text, empty selections and empty ranges count as not entered. Values
// for unknown ids are ignored.
func Check(doc model.FormDocument, values map[string]any) (Result, error) {
	schema, err := export.Schema(doc)
	if err != nil {
		return Result{}, err
	}
	payload, err := submission(doc.Fields, values)
	if err != nil {
		return Result{}, err
	}

	result := Result{Valid: true}
	if err := schema.VisitJSON(payload, openapi3.MultiErrors()); err != nil {
		result.Valid = false
		result.Issues = collect(nil, err)
		sort.SliceStable(result.Issues, func(i, j int) bool {
			return result.Issues[i].Path < result.Issues[j].Path
		})
	}
	return result, nil
}

// submission shapes values into the nested object the schema describes.
func submission(fields []model.Field, values map[string]any) (map[string]any, error) {
	out := make(map[string]any, len(fields))
	for _, field := range fields {
		if field.Kind.IsSection() {
			nested, err := submission(field.Fields, values)
			if err != nil {
				return nil, err
			}
			out[field.ID] = nested
			continue
		}
		raw, ok := values[field.ID]
		if !ok {
			continue
		}
		value, err := normalize(field.Kind, raw)
		if err != nil {
			return nil, fmt.Errorf("validation: field %s: %w", field.ID, err)
		}
		if value != nil {
			out[field.ID] = value
		}
	}
	return out, nil
}

// normalize converts a runtime value to its JSON form. Nil means not entered.
func normalize(kind model.FieldKind, raw any) (any, error) {
	if kind == model.KindNumber {
		if s, ok := raw.(string); ok {
			s = strings.TrimSpace(s)
			if s == "" {
				return nil, nil
			}
			n, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return s, nil
			}
			return n, nil
		}
	}

	data, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, err
	}
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
	case []any:
		if len(v) == 0 {
			return nil, nil
		}
	case map[string]any:
		if len(v) == 0 {
			return nil, nil
		}
	}
	return value, nil
}

func collect(out []Issue, err error) []Issue {
	switch e := err.(type) {
	case openapi3.MultiError:
		for _, inner := range e {
			out = collect(out, inner)
		}
		return out
	case *openapi3.SchemaError:
		return append(out, issueFromSchemaError(e))
	}
	return append(out, Issue{Message: strings.TrimSpace(err.Error())})
}

func issueFromSchemaError(err *openapi3.SchemaError) Issue {
	pointer := err.JSONPointer()
	issue := Issue{
		Path:    "/" + strings.Join(pointer, "/"),
		Message: strings.TrimSpace(err.Reason),
	}
	for idx := len(pointer) - 1; idx >= 0; idx-- {
		if !isNumeric(pointer[idx]) {
			issue.Field = pointer[idx]
			break
		}
	}
	if err.SchemaField == "required" {
		issue.Message = wizard.RequiredMessage
	}
	return issue
}

func isNumeric(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
