package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Range is the runtime value of a number-range field.
type Range struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// SliderMin is the value a number slider resets to.
const SliderMin = 0

// DefaultValue returns the runtime value a field of kind holds when nothing has
// been entered. Sections hold no value and return nil.
func DefaultValue(kind FieldKind) any {
	switch kind {
	case KindSection:
		return nil
	case KindText, KindTextArea, KindPassword, KindDate, KindDateTime, KindNumber:
		return ""
	case KindNumberRange:
		return Range{}
	case KindNumberSlider:
		return float64(SliderMin)
	case KindCheckbox, KindRadio:
		return false
	case KindSelectDropdown, KindRadioSelection:
		return ""
	case KindMultiSelect, KindCheckboxSelection:
		return []string(nil)
	}
	return nil
}

// HoldsValue reports whether fields of kind accept runtime input.
func (k FieldKind) HoldsValue() bool {
	return k.Valid() && !k.IsSection()
}

// DefaultOptions returns the placeholder choices a selection kind offers until
// real options are configured. Other kinds return nil.
func DefaultOptions(kind FieldKind) []string {
	switch kind {
	case KindSelectDropdown:
		return []string{"Select option"}
	case KindMultiSelect:
		return []string{"Option 1", "Option 2", "Option 3"}
	case KindRadioSelection, KindCheckboxSelection:
		return []string{"Option 1", "Option 2"}
	}
	return nil
}

// SliderMax is the upper bound of a number slider.
const SliderMax = 100

// ParseValue converts text input into the runtime value shape of kind.
// Ranges are written "min..max" with either bound optional; multiple choices
// are comma separated.
func ParseValue(kind FieldKind, raw string) (any, error) {
	raw = strings.TrimSpace(raw)
	switch kind {
	case KindSection:
		return nil, fmt.Errorf("%w: sections hold no value", ErrValidationFailed)
	case KindCheckbox, KindRadio:
		if raw == "" {
			return false, nil
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrValidationFailed, raw)
		}
		return v, nil
	case KindNumberSlider:
		if raw == "" {
			return float64(SliderMin), nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrValidationFailed, raw)
		}
		return v, nil
	case KindNumberRange:
		var r Range
		if raw == "" {
			return r, nil
		}
		lo, hi, ok := strings.Cut(raw, "..")
		if !ok {
			return nil, fmt.Errorf("%w: range %q must be written min..max", ErrValidationFailed, raw)
		}
		for _, bound := range []struct {
			text string
			dst  **float64
		}{{lo, &r.Min}, {hi, &r.Max}} {
			text := strings.TrimSpace(bound.text)
			if text == "" {
				continue
			}
			v, err := strconv.ParseFloat(text, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: %q is not a number", ErrValidationFailed, text)
			}
			*bound.dst = &v
		}
		return r, nil
	case KindMultiSelect, KindCheckboxSelection:
		if raw == "" {
			return []string(nil), nil
		}
		parts := strings.Split(raw, ",")
		out := make([]string, 0, len(parts))
		for _, part := range parts {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out, nil
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: unknown field kind %d", ErrValidationFailed, int(kind))
	}
	return raw, nil
}
