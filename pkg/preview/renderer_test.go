package preview_test

import (
	"strings"
	"testing"

	"github.com/goliatone/go-foundry/pkg/builder"
	"github.com/goliatone/go-foundry/pkg/model"
	"github.com/goliatone/go-foundry/pkg/preview"
	"github.com/goliatone/go-foundry/pkg/testsupport"
)

var _ builder.Renderer = (*preview.Renderer)(nil)

func newRenderer(t *testing.T) *preview.Renderer {
	t.Helper()
	r, err := preview.New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func assertContains(t *testing.T, out string, fragments ...string) {
	t.Helper()
	for _, fragment := range fragments {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected output to contain %q\n%s", fragment, out)
		}
	}
}

func TestRenderField_EveryKind(t *testing.T) {
	r := newRenderer(t)
	cases := map[model.FieldKind][]string{
		model.KindText:              {`type="text"`, `placeholder="Enter text"`},
		model.KindTextArea:          {`<textarea name="field-1"`, `placeholder="Enter text"`},
		model.KindPassword:          {`type="password"`, `placeholder="Enter password"`},
		model.KindDate:              {`type="date"`},
		model.KindDateTime:          {`type="datetime-local"`},
		model.KindNumber:            {`type="number"`, `placeholder="Enter number"`},
		model.KindNumberRange:       {`name="field-1.min" placeholder="Min"`, `name="field-1.max" placeholder="Max"`},
		model.KindNumberSlider:      {`type="range"`, `min="0"`, `max="100"`},
		model.KindCheckbox:          {`type="checkbox"`},
		model.KindRadio:             {`type="radio"`},
		model.KindSelectDropdown:    {`<option>Select option</option>`},
		model.KindMultiSelect:       {` multiple`, `<option>Option 3</option>`},
		model.KindRadioSelection:    {`type="radio" name="radio-field-1"`, "Option 2"},
		model.KindCheckboxSelection: {`type="checkbox" name="checkbox-field-1"`, "Option 1"},
		model.KindSection:           {`class="form-section-item"`, `data-section-id="field-1"`},
	}
	for _, kind := range model.Kinds() {
		fragments, ok := cases[kind]
		if !ok {
			t.Fatalf("no expectation for kind %s", kind)
		}
		t.Run(kind.String(), func(t *testing.T) {
			field := model.Field{ID: "field-1", Kind: kind}
			out, err := r.RenderField(field, model.DefaultConfig(kind))
			if err != nil {
				t.Fatalf("render: %v", err)
			}
			assertContains(t, out, append(fragments, kind.DefaultLabel())...)
		})
	}
}

func TestRenderField_UnknownKind(t *testing.T) {
	r := newRenderer(t)
	if _, err := r.RenderField(model.Field{ID: "field-1", Kind: model.FieldKind(99)}, model.FieldConfig{}); err == nil {
		t.Fatalf("expected error for unknown kind")
	}
}

func TestRenderField_ConfigAndSanitizing(t *testing.T) {
	r := newRenderer(t)
	field := model.Field{ID: "field-4", Kind: model.KindText}
	out, err := r.RenderField(field, model.FieldConfig{
		Label:       `Name <script>alert(1)</script>`,
		Placeholder: "Jane Doe",
		Help:        "Your full name",
		Required:    true,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, out, `placeholder="Jane Doe"`, "Your full name", `<span class="required">*</span>`)
	if strings.Contains(out, "<script>") {
		t.Fatalf("expected markup to be stripped:\n%s", out)
	}
}

func TestRenderField_BlankLabelFallsBack(t *testing.T) {
	r := newRenderer(t)
	out, err := r.RenderField(model.Field{ID: "field-2", Kind: model.KindNumber}, model.FieldConfig{Label: "   "})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	assertContains(t, out, "Number input")
}

func TestRenderDocument_NestsSectionChildren(t *testing.T) {
	r := newRenderer(t)
	doc := model.FormDocument{
		InterfaceName: "Intake",
		Fields: []model.Field{
			{ID: "field-1", Kind: model.KindSection, Config: &model.FieldConfig{Label: "Contact"}, Fields: []model.Field{
				{ID: "field-2", Kind: model.KindText, Parent: "field-1"},
			}},
			{ID: "field-3", Kind: model.KindCheckbox},
		},
	}
	out, err := r.RenderDocument(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	assertContains(t, html, `data-interface="Intake"`, "Contact", `data-field-id="field-2"`, `data-field-id="field-3"`)

	section := strings.Index(html, `data-section-id="field-1"`)
	child := strings.Index(html, `data-field-id="field-2"`)
	sibling := strings.Index(html, `data-field-id="field-3"`)
	if section < 0 || child < section || sibling < child {
		t.Fatalf("unexpected nesting order:\n%s", html)
	}
}

func TestRendererWithBuilder(t *testing.T) {
	r := newRenderer(t)
	s := builder.New(builder.WithRenderer(r))
	field, err := s.CreateField(model.KindPassword, builder.TopLevel)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := s.Select(field.ID); err != nil {
		t.Fatalf("select: %v", err)
	}
	label := "Secret"
	if err := s.Edit(model.FieldPatch{Label: &label}); err != nil {
		t.Fatalf("edit: %v", err)
	}
	html, ok := s.PreviewHTML(field.ID)
	if !ok {
		t.Fatalf("expected preview for %s", field.ID)
	}
	assertContains(t, html, "Secret", `type="password"`)
}

func TestRenderDocument_Fixture(t *testing.T) {
	doc := testsupport.MustLoadFormDocument(t, testsupport.IntakeFixture)
	out, err := newRenderer(t).RenderDocument(doc)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := string(out)
	last := -1
	for _, id := range []string{"field-1", "field-2", "field-3", "field-4", "field-5", "field-6", "field-7"} {
		idx := strings.Index(html, `data-field-id="`+id+`"`)
		if idx < 0 {
			t.Fatalf("missing %s in\n%s", id, html)
		}
		if idx < last {
			t.Fatalf("%s rendered out of order", id)
		}
		last = idx
	}
	assertContains(t, html, "Customer intake", "you@example.com", "Select option")
}
