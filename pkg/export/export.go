// Package export describes a form interface as an OpenAPI 3 document. The
// form becomes an object schema keyed by field id; sections become nested
// objects. The document declares a single submission operation that accepts
// the schema as its JSON request body.
package export

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-foundry/pkg/model"
)

// ExtensionKey carries foundry metadata on every generated schema.
const ExtensionKey = "x-foundry"

// Format selects the encoding produced by Encode.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat resolves a user supplied format name.
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("export: unsupported format %q", raw)
}

// Document builds the OpenAPI document of doc.
func Document(doc model.FormDocument) (*openapi3.T, error) {
	schema, err := Schema(doc)
	if err != nil {
		return nil, err
	}

	name := ComponentName(doc.InterfaceName)
	ref := "#/components/schemas/" + name

	op := openapi3.NewOperation()
	op.OperationID = "submit" + name
	op.Summary = "Submit " + strings.TrimSpace(doc.InterfaceName)
	op.RequestBody = &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().
			WithRequired(true).
			WithJSONSchemaRef(openapi3.NewSchemaRef(ref, schema)),
	}
	op.Responses = openapi3.NewResponses(
		openapi3.WithStatus(204, &openapi3.ResponseRef{
			Value: openapi3.NewResponse().WithDescription("Submission accepted"),
		}),
	)

	info := &openapi3.Info{
		Title:       strings.TrimSpace(doc.InterfaceName),
		Version:     "1.0.0",
		Description: doc.PromptTemplate,
	}
	if info.Title == "" {
		info.Title = name
	}
	info.Extensions = map[string]any{
		ExtensionKey: compact(map[string]any{
			"project": doc.Project,
			"agent":   doc.SelectedAgent,
		}),
	}

	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info:    info,
		Paths: openapi3.NewPaths(
			openapi3.WithPath(SubmissionPath(doc.InterfaceName), &openapi3.PathItem{Post: op}),
		),
		Components: &openapi3.Components{
			Schemas: openapi3.Schemas{name: openapi3.NewSchemaRef("", schema)},
		},
	}, nil
}

// Schema builds the object schema of the form fields. Required flags are
// listed in the schema's required members.
func Schema(doc model.FormDocument) (*openapi3.Schema, error) {
	root := openapi3.NewObjectSchema()
	root.Title = strings.TrimSpace(doc.InterfaceName)
	if err := addFields(root, doc.Fields); err != nil {
		return nil, err
	}
	return root, nil
}

func addFields(parent *openapi3.Schema, fields []model.Field) error {
	for _, field := range fields {
		child, err := fieldSchema(field)
		if err != nil {
			return err
		}
		if field.Kind.IsSection() {
			if err := addFields(child, field.Fields); err != nil {
				return err
			}
		}
		parent.WithProperty(field.ID, child)
		if !field.Kind.IsSection() && field.EffectiveConfig().Required {
			parent.Required = append(parent.Required, field.ID)
		}
	}
	return nil
}

func fieldSchema(field model.Field) (*openapi3.Schema, error) {
	var schema *openapi3.Schema
	switch field.Kind {
	case model.KindSection:
		schema = openapi3.NewObjectSchema()
	case model.KindText, model.KindTextArea:
		schema = openapi3.NewStringSchema()
	case model.KindPassword:
		schema = openapi3.NewStringSchema().WithFormat("password")
	case model.KindDate:
		schema = openapi3.NewStringSchema().WithFormat("date")
	case model.KindDateTime:
		schema = openapi3.NewDateTimeSchema()
	case model.KindNumber:
		schema = openapi3.NewFloat64Schema()
	case model.KindNumberRange:
		schema = openapi3.NewObjectSchema().
			WithProperty("min", openapi3.NewFloat64Schema()).
			WithProperty("max", openapi3.NewFloat64Schema())
	case model.KindNumberSlider:
		schema = openapi3.NewFloat64Schema().WithMin(model.SliderMin).WithMax(model.SliderMax)
	case model.KindCheckbox, model.KindRadio:
		schema = openapi3.NewBoolSchema()
	case model.KindSelectDropdown, model.KindRadioSelection:
		schema = openapi3.NewStringSchema().WithEnum(options(field.Kind)...)
	case model.KindMultiSelect, model.KindCheckboxSelection:
		schema = openapi3.NewArraySchema().
			WithItems(openapi3.NewStringSchema().WithEnum(options(field.Kind)...)).
			WithUniqueItems(true)
	default:
		return nil, fmt.Errorf("export: field %s has unsupported kind %s", field.ID, field.Kind)
	}

	cfg := field.EffectiveConfig()
	schema.Title = strings.TrimSpace(cfg.Label)
	if schema.Title == "" {
		schema.Title = field.Kind.DefaultLabel()
	}
	schema.Description = strings.TrimSpace(cfg.Help)
	schema.Extensions = map[string]any{
		ExtensionKey: compact(map[string]any{
			"kind":        field.Kind.String(),
			"placeholder": strings.TrimSpace(cfg.Placeholder),
		}),
	}
	return schema, nil
}

func options(kind model.FieldKind) []any {
	opts := model.DefaultOptions(kind)
	out := make([]any, 0, len(opts))
	for _, opt := range opts {
		out = append(out, opt)
	}
	return out
}

func compact(values map[string]any) map[string]any {
	for key, value := range values {
		if s, ok := value.(string); ok && s == "" {
			delete(values, key)
		}
	}
	return values
}

// Encode serialises the document in the requested format.
func Encode(doc *openapi3.T, format Format) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("export: encode json: %w", err)
	}
	switch format {
	case FormatJSON, "":
		return data, nil
	case FormatYAML:
		var generic map[string]any
		if err := json.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("export: prepare yaml: %w", err)
		}
		out, err := yaml.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("export: encode yaml: %w", err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("export: unsupported format %q", format)
}

// ComponentName turns an interface name into a schema component key made of
// letters and digits.
func ComponentName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if (!unicode.IsLetter(r) && !unicode.IsDigit(r)) || r > unicode.MaxASCII {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	if b.Len() == 0 {
		return "Form"
	}
	return b.String()
}

// SubmissionPath is the path of the submission operation.
func SubmissionPath(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if r <= unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
			continue
		}
		dash = true
	}
	slug := b.String()
	if slug == "" {
		slug = "form"
	}
	return "/interfaces/" + slug + "/submissions"
}
