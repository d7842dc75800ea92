package documents_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-foundry/pkg/documents"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/store"
)

func sampleFields() []model.Field {
	return []model.Field{
		{ID: "field-1", Kind: model.KindSection, Config: &model.FieldConfig{Label: "Contact"}, Fields: []model.Field{
			{ID: "field-2", Kind: model.KindText, Parent: "field-1", Config: &model.FieldConfig{Label: "Email", Required: true}},
		}},
		{ID: "field-3", Kind: model.KindNumberSlider},
	}
}

func TestKey(t *testing.T) {
	cases := []struct {
		project, name string
		want          string
	}{
		{project: "Acme", name: "Intake", want: "foundry:interfaces:Acme:Intake:fields"},
		{project: "Acme Ops", name: "Intake form", want: "foundry:interfaces:Acme+Ops:Intake+form:fields"},
		{project: "a:b", name: "c", want: "foundry:interfaces:a%3Ab:c:fields"},
		{project: "a", name: "b:c", want: "foundry:interfaces:a:b%3Ac:fields"},
	}
	for _, tc := range cases {
		if got := documents.Key(tc.project, tc.name); got != tc.want {
			t.Fatalf("Key(%q, %q) = %q, want %q", tc.project, tc.name, got, tc.want)
		}
	}
}

func TestColonInNamesKeepsDocumentsApart(t *testing.T) {
	ctx := context.Background()
	repo := documents.New(store.NewMemory())

	if err := repo.Save(ctx, "a:b", "c", sampleFields()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if got, err := repo.Load(ctx, "a", "b:c"); err != nil || len(got) != 0 {
		t.Fatalf("expected no fields for a/b:c, got %d err=%v", len(got), err)
	}

	if err := repo.Save(ctx, "a", "b:c", []model.Field{{ID: "field-1", Kind: model.KindDate}}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx, "a", "b:c"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	got, err := repo.Load(ctx, "a:b", "c")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if model.Count(got) != 3 {
		t.Fatalf("expected a:b/c untouched with 3 fields, got %d", model.Count(got))
	}
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	repo := documents.New(store.NewMemory())

	if err := repo.Save(ctx, "Acme", "Intake", sampleFields()); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := repo.Load(ctx, "Acme", "Intake")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(sampleFields(), got); diff != "" {
		t.Fatalf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadMissingIsEmpty(t *testing.T) {
	got, err := documents.New(store.NewMemory()).Load(context.Background(), "Acme", "Nope")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestLoadMalformedIsEmptyAndLogged(t *testing.T) {
	cases := map[string]string{
		"not json":       `{{{`,
		"unknown kind":   `[{"id":"field-1","type":"signature"}]`,
		"duplicate ids":  `[{"id":"field-1","type":"text"},{"id":"field-1","type":"date"}]`,
		"nested section": `[{"id":"field-1","type":"section","fields":[{"id":"field-2","type":"section"}]}]`,
		"leaf children":  `[{"id":"field-1","type":"text","fields":[{"id":"field-2","type":"text"}]}]`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			mem := store.NewMemory()
			if err := mem.Set(ctx, documents.Key("Acme", "Intake"), payload); err != nil {
				t.Fatalf("seed: %v", err)
			}
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))
			got, err := documents.New(mem, documents.WithLogger(logger)).Load(ctx, "Acme", "Intake")
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if len(got) != 0 {
				t.Fatalf("expected empty list, got %#v", got)
			}
			if !strings.Contains(buf.String(), "discarding malformed field list") {
				t.Fatalf("expected warning, got %q", buf.String())
			}
		})
	}
}

func TestSaveEmptyWritesArray(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	if err := documents.New(mem).Save(ctx, "Acme", "Blank", nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, err := mem.Get(ctx, documents.Key("Acme", "Blank"))
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if raw != "[]" {
		t.Fatalf("expected empty JSON array, got %q", raw)
	}
}

func TestMoveAndDelete(t *testing.T) {
	ctx := context.Background()
	mem := store.NewMemory()
	repo := documents.New(mem)
	if err := repo.Save(ctx, "Acme", "Intake", sampleFields()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Move(ctx, "Acme", "Intake", "Acme", "Onboarding"); err != nil {
		t.Fatalf("move: %v", err)
	}
	if _, err := mem.Get(ctx, documents.Key("Acme", "Intake")); err == nil {
		t.Fatalf("expected old key removed")
	}
	got, _ := repo.Load(ctx, "Acme", "Onboarding")
	if model.Count(got) != 3 {
		t.Fatalf("expected 3 fields after move, got %d", model.Count(got))
	}
	if err := repo.Delete(ctx, "Acme", "Onboarding"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if got, _ := repo.Load(ctx, "Acme", "Onboarding"); len(got) != 0 {
		t.Fatalf("expected empty after delete, got %d", len(got))
	}
}
