package export

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/goliatone/go-foundry/pkg/model"
)

var (
	infoHintKeys   = []string{"agent", "project"}
	schemaHintKeys = []string{"kind", "placeholder"}
)

// Violation is a single lint finding.
type Violation struct {
	Location string
	Message  string
}

func (v Violation) String() string {
	return v.Location + " -> " + v.Message
}

// Load parses and validates an exported document. JSON and YAML are both
// accepted.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("export: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("export: invalid document: %w", err)
	}
	return doc, nil
}

// Lint reports unsupported or malformed x-foundry extensions. Findings are
// sorted by location.
func Lint(doc *openapi3.T) []Violation {
	var result []Violation
	if doc.Info != nil {
		result = append(result, lintExtensions([]string{"info"}, doc.Info.Extensions, infoHintKeys)...)
	}
	if doc.Components != nil {
		names := make([]string, 0, len(doc.Components.Schemas))
		for name := range doc.Components.Schemas {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			ref := doc.Components.Schemas[name]
			if ref == nil || ref.Value == nil {
				continue
			}
			for key, prop := range ref.Value.Properties {
				result = append(result, lintSchema([]string{"components", name, "properties." + key}, prop)...)
			}
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Location == result[j].Location {
			return result[i].Message < result[j].Message
		}
		return result[i].Location < result[j].Location
	})
	return result
}

func lintSchema(path []string, ref *openapi3.SchemaRef) []Violation {
	if ref == nil || ref.Value == nil {
		return nil
	}
	schema := ref.Value
	result := lintExtensions(path, schema.Extensions, schemaHintKeys)

	if hints, ok := schema.Extensions[ExtensionKey].(map[string]any); ok {
		if raw, ok := hints["kind"].(string); ok {
			if _, err := model.ParseFieldKind(raw); err != nil {
				result = append(result, Violation{Location: formatLocation(path), Message: fmt.Sprintf("unknown field kind %q", raw)})
			}
		} else {
			result = append(result, Violation{Location: formatLocation(path), Message: "kind hint is required"})
		}
	}

	for key, prop := range schema.Properties {
		result = append(result, lintSchema(appendPath(path, "properties."+key), prop)...)
	}
	return result
}

func lintExtensions(path []string, extensions map[string]any, allowed []string) []Violation {
	var result []Violation
	for key, value := range extensions {
		switch {
		case key == ExtensionKey:
			nested, ok := value.(map[string]any)
			if !ok {
				result = append(result, Violation{
					Location: formatLocation(path),
					Message:  fmt.Sprintf("%s must be an object, found %T", ExtensionKey, value),
				})
				continue
			}
			for nestedKey, nestedValue := range nested {
				result = append(result, validateHint(appendPath(path, nestedKey), nestedKey, nestedValue, allowed)...)
			}
		case strings.HasPrefix(key, ExtensionKey+"-"):
			result = append(result, Violation{
				Location: formatLocation(path),
				Message:  fmt.Sprintf("flat extension %q is not supported, nest it under %s", key, ExtensionKey),
			})
		}
	}
	return result
}

func validateHint(path []string, key string, value any, allowed []string) []Violation {
	if !contains(allowed, key) {
		return []Violation{{
			Location: formatLocation(path),
			Message:  fmt.Sprintf("unsupported extension key %q (supported: %s)", key, strings.Join(allowed, ", ")),
		}}
	}
	if _, ok := value.(string); !ok {
		return []Violation{{
			Location: formatLocation(path),
			Message:  fmt.Sprintf("value for %q must be a string (got %T)", key, value),
		}}
	}
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	return append(next, segment)
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
