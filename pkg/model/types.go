package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrValidationFailed marks user input that failed a required or uniqueness
// check. Wizard, catalog and builder errors wrap it so callers can surface the
// message and keep the prior state.
var ErrValidationFailed = errors.New("validation failed")

// FieldKind enumerates the palette of field types a form can hold.
type FieldKind int

const (
	KindSection FieldKind = iota + 1
	KindText
	KindTextArea
	KindPassword
	KindDate
	KindDateTime
	KindNumber
	KindNumberRange
	KindNumberSlider
	KindCheckbox
	KindRadio
	KindSelectDropdown
	KindMultiSelect
	KindRadioSelection
	KindCheckboxSelection
)

var kindNames = map[FieldKind]string{
	KindSection:           "section",
	KindText:              "text",
	KindTextArea:          "textarea",
	KindPassword:          "password",
	KindDate:              "date",
	KindDateTime:          "datetime",
	KindNumber:            "number",
	KindNumberRange:       "number-range",
	KindNumberSlider:      "number-slider",
	KindCheckbox:          "checkbox",
	KindRadio:             "radio",
	KindSelectDropdown:    "select-dropdown",
	KindMultiSelect:       "multi-select",
	KindRadioSelection:    "radio-selection",
	KindCheckboxSelection: "checkbox-selection",
}

var kindLabels = map[FieldKind]string{
	KindSection:           "Section",
	KindText:              "Basic text",
	KindTextArea:          "Text area",
	KindPassword:          "Password",
	KindDate:              "Date",
	KindDateTime:          "Date and time",
	KindNumber:            "Number input",
	KindNumberRange:       "Number range",
	KindNumberSlider:      "Number slider",
	KindCheckbox:          "Checkbox",
	KindRadio:             "Radio button",
	KindSelectDropdown:    "Select dropdown",
	KindMultiSelect:       "Multi-select",
	KindRadioSelection:    "Radio button",
	KindCheckboxSelection: "Checkbox",
}

// Kinds returns every field kind in palette order.
func Kinds() []FieldKind {
	out := make([]FieldKind, 0, len(kindNames))
	for kind := KindSection; kind <= KindCheckboxSelection; kind++ {
		out = append(out, kind)
	}
	return out
}

// ParseFieldKind resolves a palette identifier into a FieldKind. The legacy
// `select-dropdown-bool` token maps onto KindSelectDropdown.
func ParseFieldKind(raw string) (FieldKind, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "select-dropdown-bool" {
		return KindSelectDropdown, nil
	}
	for kind, candidate := range kindNames {
		if candidate == name {
			return kind, nil
		}
	}
	return 0, fmt.Errorf("model: unknown field kind %q", raw)
}

// Valid reports whether k is one of the declared kinds.
func (k FieldKind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func (k FieldKind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// IsSection reports whether k groups other fields.
func (k FieldKind) IsSection() bool {
	return k == KindSection
}

// DefaultLabel is the label a field of kind k presents until configured.
func (k FieldKind) DefaultLabel() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "Field"
}

func (k FieldKind) MarshalJSON() ([]byte, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("model: cannot marshal invalid field kind %d", int(k))
	}
	return json.Marshal(k.String())
}

func (k *FieldKind) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("model: field kind must be a string: %w", err)
	}
	parsed, err := ParseFieldKind(raw)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// FieldConfig is the committed, user-editable configuration of a field.
type FieldConfig struct {
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
	Help        string `json:"help"`
	Required    bool   `json:"required"`
}

// DefaultConfig returns the configuration a field of kind presents before it
// is configured for the first time.
func DefaultConfig(kind FieldKind) FieldConfig {
	return FieldConfig{Label: kind.DefaultLabel()}
}

// FieldPatch describes a partial configuration edit. Nil members leave the
// corresponding value untouched.
type FieldPatch struct {
	Label       *string `json:"label,omitempty"`
	Placeholder *string `json:"placeholder,omitempty"`
	Help        *string `json:"help,omitempty"`
	Required    *bool   `json:"required,omitempty"`
}

// Apply merges p onto cfg and returns the result.
func (p FieldPatch) Apply(cfg FieldConfig) FieldConfig {
	if p.Label != nil {
		cfg.Label = *p.Label
	}
	if p.Placeholder != nil {
		cfg.Placeholder = *p.Placeholder
	}
	if p.Help != nil {
		cfg.Help = *p.Help
	}
	if p.Required != nil {
		cfg.Required = *p.Required
	}
	return cfg
}

// IsZero reports whether the patch changes nothing.
func (p FieldPatch) IsZero() bool {
	return p.Label == nil && p.Placeholder == nil && p.Help == nil && p.Required == nil
}

// Field is a single configurable input unit. Parent is the enclosing Section
// id (empty for top-level fields) and is implied by nesting when serialised.
// Fields is only populated for Sections.
type Field struct {
	ID     string       `json:"id"`
	Kind   FieldKind    `json:"type"`
	Config *FieldConfig `json:"config,omitempty"`
	Parent string       `json:"-"`
	Fields []Field      `json:"fields,omitempty"`
}

// EffectiveConfig returns the committed configuration or the kind defaults.
func (f Field) EffectiveConfig() FieldConfig {
	if f.Config != nil {
		return *f.Config
	}
	return DefaultConfig(f.Kind)
}

// Count returns the number of fields in the tree, sections included.
func Count(fields []Field) int {
	total := 0
	for _, field := range fields {
		total += 1 + Count(field.Fields)
	}
	return total
}

// Walk visits every field depth-first in document order, stopping at the first
// error returned by fn.
func Walk(fields []Field, fn func(Field) error) error {
	for _, field := range fields {
		if err := fn(field); err != nil {
			return err
		}
		if err := Walk(field.Fields, fn); err != nil {
			return err
		}
	}
	return nil
}

// InterfaceType distinguishes the interface builders.
type InterfaceType string

const (
	InterfaceForm InterfaceType = "Form"
	InterfaceChat InterfaceType = "Chat"
)

// QuickAction is a canned prompt button shown by a chat interface.
type QuickAction struct {
	Label  string `json:"label"`
	Agent  string `json:"agent"`
	Prompt string `json:"prompt"`
}

// FormDocument is a form interface: wizard metadata plus its ordered fields.
type FormDocument struct {
	InterfaceName  string  `json:"interfaceName"`
	Project        string  `json:"project,omitempty"`
	SelectedAgent  string  `json:"selectedAgent,omitempty"`
	PromptTemplate string  `json:"promptTemplate,omitempty"`
	StarterMessage string  `json:"starterMessage,omitempty"`
	Fields         []Field `json:"fields"`
}
