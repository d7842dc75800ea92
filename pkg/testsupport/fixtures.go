// Package testsupport holds fixture helpers shared by package tests.
package testsupport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/goliatone/go-foundry/pkg/model"
)

// IntakeFixture names the sample customer intake document.
const IntakeFixture = "intake.json"

// FixturePath resolves name inside this package's testdata directory so
// callers in any package can share fixtures.
func FixturePath(name string) string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "testdata", name)
}

// LoadFormDocument reads a FormDocument fixture, returning an error for
// callers managing setup outside of *testing.T.
func LoadFormDocument(path string) (model.FormDocument, error) {
	if path == "" {
		return model.FormDocument{}, errors.New("testsupport: document path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return model.FormDocument{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	var doc model.FormDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.FormDocument{}, fmt.Errorf("testsupport: unmarshal document: %w", err)
	}
	return doc, nil
}

// MustLoadFormDocument loads a named fixture from testdata.
func MustLoadFormDocument(t *testing.T, name string) model.FormDocument {
	t.Helper()

	doc, err := LoadFormDocument(FixturePath(name))
	if err != nil {
		t.Fatalf("load form document: %v", err)
	}
	return doc
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
