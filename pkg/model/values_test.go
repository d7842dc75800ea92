package model_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-foundry/pkg/model"
)

func TestParseValue(t *testing.T) {
	lo, hi := 1.5, 10.0
	cases := []struct {
		name string
		kind model.FieldKind
		raw  string
		want any
	}{
		{name: "text kept", kind: model.KindText, raw: " hello ", want: "hello"},
		{name: "number stays text", kind: model.KindNumber, raw: "12", want: "12"},
		{name: "checkbox", kind: model.KindCheckbox, raw: "true", want: true},
		{name: "blank radio", kind: model.KindRadio, raw: "", want: false},
		{name: "slider", kind: model.KindNumberSlider, raw: "42", want: 42.0},
		{name: "range both", kind: model.KindNumberRange, raw: "1.5..10", want: model.Range{Min: &lo, Max: &hi}},
		{name: "range open min", kind: model.KindNumberRange, raw: "..10", want: model.Range{Max: &hi}},
		{name: "multi", kind: model.KindMultiSelect, raw: "Option 1, ,Option 2", want: []string{"Option 1", "Option 2"}},
		{name: "blank multi", kind: model.KindCheckboxSelection, raw: "", want: []string(nil)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := model.ParseValue(tc.kind, tc.raw)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Fatalf("value mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestParseValue_Rejects(t *testing.T) {
	cases := []struct {
		kind model.FieldKind
		raw  string
	}{
		{kind: model.KindSection, raw: "x"},
		{kind: model.KindCheckbox, raw: "maybe"},
		{kind: model.KindNumberSlider, raw: "lots"},
		{kind: model.KindNumberRange, raw: "5"},
		{kind: model.KindNumberRange, raw: "a..b"},
		{kind: model.FieldKind(99), raw: "x"},
	}
	for _, tc := range cases {
		if _, err := model.ParseValue(tc.kind, tc.raw); !errors.Is(err, model.ErrValidationFailed) {
			t.Fatalf("%v %q: expected ErrValidationFailed, got %v", tc.kind, tc.raw, err)
		}
	}
}
