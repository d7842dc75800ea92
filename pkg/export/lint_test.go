package export_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-foundry/pkg/export"
)

func TestLint_ExportedDocumentIsClean(t *testing.T) {
	api, err := export.Document(sampleDocument())
	if err != nil {
		t.Fatalf("document: %v", err)
	}
	for _, format := range []export.Format{export.FormatJSON, export.FormatYAML} {
		data, err := export.Encode(api, format)
		if err != nil {
			t.Fatalf("encode %s: %v", format, err)
		}
		loaded, err := export.Load(context.Background(), data)
		if err != nil {
			t.Fatalf("load %s: %v", format, err)
		}
		if got := export.Lint(loaded); len(got) != 0 {
			t.Fatalf("%s: expected no violations, got %v", format, got)
		}
	}
}

func TestLint_ReportsBadHints(t *testing.T) {
	raw := `{
  "openapi": "3.0.3",
  "info": {"title": "Bad", "version": "1.0.0", "x-foundry": {"owner": "me"}},
  "paths": {},
  "components": {
    "schemas": {
      "Bad": {
        "type": "object",
        "properties": {
          "field-1": {"type": "string", "x-foundry": {"kind": "colour"}},
          "field-2": {"type": "string", "x-foundry-kind": "text"},
          "field-3": {"type": "object", "x-foundry": {"kind": "section"}, "properties": {
            "field-4": {"type": "string", "x-foundry": {"kind": "text", "placeholder": 3}}
          }}
        }
      }
    }
  }
}`
	doc, err := export.Load(context.Background(), []byte(raw))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	got := export.Lint(doc)
	want := []export.Violation{
		{Location: "components > Bad > properties.field-1", Message: `unknown field kind "colour"`},
		{Location: "components > Bad > properties.field-2", Message: `flat extension "x-foundry-kind" is not supported, nest it under x-foundry`},
		{Location: "components > Bad > properties.field-3 > properties.field-4 > placeholder", Message: `value for "placeholder" must be a string (got float64)`},
		{Location: "info > owner", Message: `unsupported extension key "owner" (supported: agent, project)`},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("violations mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_RejectsInvalidDocument(t *testing.T) {
	if _, err := export.Load(context.Background(), []byte(`{"openapi": "3.0.3"}`)); err == nil {
		t.Fatalf("expected validation error for missing info")
	}
}
