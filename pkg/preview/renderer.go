package preview

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/preview/template"
)

// Option configures the preview renderer.
type Option func(*config)

type config struct {
	templateFS fs.FS
	policy     *bluemonday.Policy
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithPolicy overrides the sanitizer applied to user-entered text.
func WithPolicy(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.policy = policy
		}
	}
}

// Renderer turns fields into preview HTML.
type Renderer struct {
	engine *template.Engine
	policy *bluemonday.Policy
}

// New constructs a preview renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS(), policy: defaultPolicy()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	engine, err := template.New(template.WithFS(cfg.templateFS))
	if err != nil {
		return nil, fmt.Errorf("preview: configure templates: %w", err)
	}
	return &Renderer{engine: engine, policy: cfg.policy}, nil
}

// Name identifies the renderer.
func (r *Renderer) Name() string {
	return "html"
}

// ContentType reports the MIME type of the rendered output.
func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// RenderField renders a single field as displayed with cfg. Sections render
// their header and an empty child surface.
func (r *Renderer) RenderField(field model.Field, cfg model.FieldConfig) (string, error) {
	return r.render(field, cfg, "")
}

// RenderFields renders a field tree using each field's effective config.
func (r *Renderer) RenderFields(fields []model.Field) (string, error) {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		children := ""
		if field.Kind.IsSection() && len(field.Fields) > 0 {
			inner, err := r.RenderFields(field.Fields)
			if err != nil {
				return "", err
			}
			children = inner
		}
		out, err := r.render(field, field.EffectiveConfig(), children)
		if err != nil {
			return "", err
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n"), nil
}

// RenderDocument renders the whole form preview.
func (r *Renderer) RenderDocument(doc model.FormDocument) ([]byte, error) {
	fields, err := r.RenderFields(doc.Fields)
	if err != nil {
		return nil, err
	}
	out, err := r.engine.RenderTemplate("templates/document", map[string]any{
		"name":   sanitizeText(r.policy, doc.InterfaceName),
		"fields": fields,
	})
	if err != nil {
		return nil, fmt.Errorf("preview: render document: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) render(field model.Field, cfg model.FieldConfig, children string) (string, error) {
	ctrl, err := controlFor(field.Kind)
	if err != nil {
		return "", err
	}

	label := sanitizeText(r.policy, cfg.Label)
	if label == "" {
		label = field.Kind.DefaultLabel()
	}
	help := sanitizeText(r.policy, cfg.Help)

	if field.Kind.IsSection() {
		out, err := r.engine.RenderTemplate("templates/section", map[string]any{
			"id":       field.ID,
			"label":    label,
			"help":     help,
			"children": children,
		})
		if err != nil {
			return "", fmt.Errorf("preview: render section %s: %w", field.ID, err)
		}
		return out, nil
	}

	controlHTML, err := r.renderControl(field, ctrl, sanitizeText(r.policy, cfg.Placeholder))
	if err != nil {
		return "", err
	}
	out, err := r.engine.RenderTemplate("templates/field", map[string]any{
		"id":       field.ID,
		"kind":     field.Kind.String(),
		"label":    label,
		"required": cfg.Required,
		"help":     help,
		"control":  strings.TrimSpace(controlHTML),
	})
	if err != nil {
		return "", fmt.Errorf("preview: render field %s: %w", field.ID, err)
	}
	return out, nil
}

func (r *Renderer) renderControl(field model.Field, ctrl control, placeholder string) (string, error) {
	data := map[string]any{
		"id":         field.ID,
		"input_type": ctrl.inputType,
		"options":    ctrl.options,
		"multiple":   ctrl.multiple,
		"group":      ctrl.inputType + "-" + field.ID,
	}
	switch ctrl.template {
	case "input", "textarea":
		if placeholder == "" {
			placeholder = ctrl.placeholder
		}
		data["placeholder"] = placeholder
	case "range":
		minPlaceholder, maxPlaceholder := minMaxDefault[0], minMaxDefault[1]
		if placeholder != "" {
			minPlaceholder, maxPlaceholder = placeholder, placeholder
		}
		data["min_placeholder"] = minPlaceholder
		data["max_placeholder"] = maxPlaceholder
	}

	out, err := r.engine.RenderTemplate("templates/"+ctrl.template, data)
	if err != nil {
		return "", fmt.Errorf("preview: render %s control for %s: %w", ctrl.template, field.ID, err)
	}
	return out, nil
}
