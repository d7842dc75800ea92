// Package foundry is the entry point of the form foundry: a form builder
// engine for AI agent front ends. It wires the catalog, field documents,
// builder engine and wizards into page-level sessions.
package foundry

import (
	"context"

	"github.com/goliatone/go-foundry/pkg/catalog"
	"github.com/goliatone/go-foundry/pkg/export"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/preview"
	"github.com/goliatone/go-foundry/pkg/store"
)

// DefaultProject is used when a session is opened without a project name.
const DefaultProject = "Project 1"

// Field aliases model.Field for callers that only import the root package.
type Field = model.Field

// FieldConfig aliases model.FieldConfig.
type FieldConfig = model.FieldConfig

// FormDocument aliases model.FormDocument.
type FormDocument = model.FormDocument

// NewCatalog builds a catalog over s. It is the simplest way to obtain the
// collaborator sessions need.
func NewCatalog(s store.Store, opts ...catalog.Option) *catalog.Catalog {
	return catalog.New(s, opts...)
}

// RenderHTML renders the visual preview of a saved form interface.
func RenderHTML(ctx context.Context, cat *catalog.Catalog, project, name string, opts ...preview.Option) ([]byte, error) {
	doc, err := LoadDocument(ctx, cat, project, name)
	if err != nil {
		return nil, err
	}
	renderer, err := preview.New(opts...)
	if err != nil {
		return nil, err
	}
	return renderer.RenderDocument(doc)
}

// ExportOpenAPI encodes a saved form interface as an OpenAPI document.
func ExportOpenAPI(ctx context.Context, cat *catalog.Catalog, project, name string, format export.Format) ([]byte, error) {
	doc, err := LoadDocument(ctx, cat, project, name)
	if err != nil {
		return nil, err
	}
	api, err := export.Document(doc)
	if err != nil {
		return nil, err
	}
	return export.Encode(api, format)
}

// LoadDocument assembles the FormDocument of a saved interface from its
// catalog record and field document.
func LoadDocument(ctx context.Context, cat *catalog.Catalog, project, name string) (model.FormDocument, error) {
	if project == "" {
		project = DefaultProject
	}
	record, err := cat.Interface(ctx, project, name)
	if err != nil {
		return model.FormDocument{}, err
	}
	fields, err := cat.Documents().Load(ctx, project, name)
	if err != nil {
		return model.FormDocument{}, err
	}
	return model.FormDocument{
		InterfaceName:  record.Name,
		Project:        record.Project,
		SelectedAgent:  record.Agent,
		PromptTemplate: record.PromptTemplate,
		StarterMessage: record.StarterMessage,
		Fields:         fields,
	}, nil
}
