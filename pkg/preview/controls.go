package preview

import (
	"fmt"

	"github.com/goliatone/go-foundry/pkg/model"
)

type control struct {
	template    string
	inputType   string
	placeholder string
	options     []string
	multiple    bool
}

var minMaxDefault = [2]string{"Min", "Max"}

// controlFor maps every field kind onto its preview control. Adding a kind to
// the model without handling it here surfaces as a render error.
func controlFor(kind model.FieldKind) (control, error) {
	switch kind {
	case model.KindSection:
		return control{template: "section"}, nil
	case model.KindText:
		return control{template: "input", inputType: "text", placeholder: "Enter text"}, nil
	case model.KindTextArea:
		return control{template: "textarea", placeholder: "Enter text"}, nil
	case model.KindPassword:
		return control{template: "input", inputType: "password", placeholder: "Enter password"}, nil
	case model.KindDate:
		return control{template: "input", inputType: "date"}, nil
	case model.KindDateTime:
		return control{template: "input", inputType: "datetime-local"}, nil
	case model.KindNumber:
		return control{template: "input", inputType: "number", placeholder: "Enter number"}, nil
	case model.KindNumberRange:
		return control{template: "range"}, nil
	case model.KindNumberSlider:
		return control{template: "slider"}, nil
	case model.KindCheckbox:
		return control{template: "toggle", inputType: "checkbox"}, nil
	case model.KindRadio:
		return control{template: "toggle", inputType: "radio"}, nil
	case model.KindSelectDropdown:
		return control{template: "select", options: model.DefaultOptions(kind)}, nil
	case model.KindMultiSelect:
		return control{template: "select", options: model.DefaultOptions(kind), multiple: true}, nil
	case model.KindRadioSelection:
		return control{template: "choices", inputType: "radio", options: model.DefaultOptions(kind)}, nil
	case model.KindCheckboxSelection:
		return control{template: "choices", inputType: "checkbox", options: model.DefaultOptions(kind)}, nil
	}
	return control{}, fmt.Errorf("preview: no control for field kind %s", kind)
}
