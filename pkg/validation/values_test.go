package validation_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/testsupport"
	"github.com/goliatone/go-foundry/pkg/validation"
	"github.com/goliatone/go-foundry/pkg/wizard"
)

func TestCheck_Valid(t *testing.T) {
	doc := testsupport.MustLoadFormDocument(t, testsupport.IntakeFixture)
	values := map[string]any{
		"field-2": "ana@example.com",
		"field-3": "",
		"field-4": 10.0,
		"field-5": []string{"Option 1", "Option 3"},
		"field-6": model.Range{},
		"field-7": "Select option",
	}
	result, err := validation.Check(doc, values)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !result.Valid || len(result.Issues) != 0 {
		t.Fatalf("expected valid result, got %+v", result)
	}
}

func TestCheck_ReportsRequiredAndEnum(t *testing.T) {
	doc := testsupport.MustLoadFormDocument(t, testsupport.IntakeFixture)
	values := map[string]any{
		"field-2": "  ",
		"field-4": 5.0,
		"field-5": []string{"Option 9"},
		"field-7": "Select option",
	}
	result, err := validation.Check(doc, values)
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Valid {
		t.Fatalf("expected invalid result")
	}

	fields := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		fields = append(fields, issue.Field)
	}
	if diff := cmp.Diff([]string{"field-2", "field-5"}, fields); diff != "" {
		t.Fatalf("issue fields mismatch (-want +got):\n%s", diff)
	}
	if got := result.Issues[0]; got.Path != "/field-1/field-2" || got.Message != wizard.RequiredMessage {
		t.Fatalf("unexpected required issue %+v", got)
	}
	if msgs := result.FieldMessages(); len(msgs["field-5"]) != 1 {
		t.Fatalf("expected one enum message, got %v", msgs)
	}
}

func TestCheck_SliderBounds(t *testing.T) {
	doc := testsupport.MustLoadFormDocument(t, testsupport.IntakeFixture)
	result, err := validation.Check(doc, map[string]any{
		"field-2": "x",
		"field-4": 150.0,
		"field-7": "Select option",
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result.Valid || len(result.Issues) != 1 || result.Issues[0].Field != "field-4" {
		t.Fatalf("expected a single slider issue, got %+v", result.Issues)
	}
}

func TestCheck_MissingRootRequired(t *testing.T) {
	doc := testsupport.MustLoadFormDocument(t, testsupport.IntakeFixture)
	result, err := validation.Check(doc, map[string]any{"field-2": "x", "field-4": 1.0})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := []validation.Issue{{Path: "/field-7", Field: "field-7", Message: wizard.RequiredMessage}}
	if diff := cmp.Diff(want, result.Issues); diff != "" {
		t.Fatalf("issues mismatch (-want +got):\n%s", diff)
	}
}
