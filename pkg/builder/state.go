package builder

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/goliatone/go-foundry/pkg/model"
)

// TopLevel names the top-level field list. Any other list id is the id of the
// Section owning it.
const TopLevel = ""

const idPrefix = "field-"

// Mode is the presentation mode of the builder.
type Mode int

const (
	ModeBuild Mode = iota
	ModeTest
)

func (m Mode) String() string {
	if m == ModeTest {
		return "test"
	}
	return "build"
}

type record struct {
	id       string
	kind     model.FieldKind
	parent   string
	config   *model.FieldConfig
	children []string
}

// State is the form builder state owned by a single page. The zero value is
// not usable; construct it with New.
type State struct {
	nextID  int
	records map[string]*record
	top     []string

	mode  Mode
	panel panel
	drag  DragSession

	values    map[string]any
	displayed map[string]model.FieldConfig
	html      map[string]string

	confirmer Confirmer
	notifier  Notifier
	renderer  Renderer
	logger    *slog.Logger
}

// Option configures a State.
type Option func(*State)

// WithConfirmer sets the collaborator consulted before deletions.
func WithConfirmer(c Confirmer) Option {
	return func(s *State) {
		if c != nil {
			s.confirmer = c
		}
	}
}

// WithNotifier sets the collaborator receiving user-facing notices.
func WithNotifier(n Notifier) Option {
	return func(s *State) {
		if n != nil {
			s.notifier = n
		}
	}
}

// WithRenderer enables preview markup generation.
func WithRenderer(r Renderer) Option {
	return func(s *State) {
		s.renderer = r
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs an empty builder in build mode.
func New(options ...Option) *State {
	s := &State{
		nextID:    1,
		records:   make(map[string]*record),
		values:    make(map[string]any),
		displayed: make(map[string]model.FieldConfig),
		html:      make(map[string]string),
		confirmer: AlwaysConfirm,
		notifier:  NotifierFunc(func(Notice) {}),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// Len returns the total number of fields, sections and nested fields included.
func (s *State) Len() int {
	return len(s.records)
}

// Field returns a snapshot of the field, including children for Sections.
func (s *State) Field(fieldID string) (model.Field, error) {
	rec, ok := s.records[fieldID]
	if !ok {
		return model.Field{}, opErr("field", fieldID, ErrNotFound)
	}
	return s.tree(rec), nil
}

// Fields returns the ordered field tree. The result is a copy.
func (s *State) Fields() []model.Field {
	out := make([]model.Field, 0, len(s.top))
	for _, id := range s.top {
		out = append(out, s.tree(s.records[id]))
	}
	return out
}

// Position reports the list holding fieldID and its index within it.
func (s *State) Position(fieldID string) (string, int, error) {
	rec, ok := s.records[fieldID]
	if !ok {
		return "", -1, opErr("position", fieldID, ErrNotFound)
	}
	list, err := s.list(rec.parent)
	if err != nil {
		return "", -1, err
	}
	return rec.parent, indexOf(*list, fieldID), nil
}

// Restore replaces the schema with fields, typically loaded from storage. The
// id counter moves past every `field-N` id seen so ids are never reused.
// Panel, drag session, runtime values and previews are reset.
func (s *State) Restore(fields []model.Field) error {
	if err := s.rejectLocked("restore", ""); err != nil {
		return err
	}

	records := make(map[string]*record, model.Count(fields))
	top := make([]string, 0, len(fields))
	maxID := 0

	var add func(field model.Field, parent string) error
	add = func(field model.Field, parent string) error {
		id := strings.TrimSpace(field.ID)
		if id == "" {
			return opErr("restore", "", fmt.Errorf("%w: field id is required", ErrValidationFailed))
		}
		if _, dup := records[id]; dup {
			return opErr("restore", id, fmt.Errorf("%w: duplicate field id", ErrValidationFailed))
		}
		if !field.Kind.Valid() {
			return opErr("restore", id, fmt.Errorf("%w: unknown field kind", ErrValidationFailed))
		}
		if parent != TopLevel && field.Kind.IsSection() {
			return opErr("restore", id, ErrInvalidPlacement)
		}
		if !field.Kind.IsSection() && len(field.Fields) > 0 {
			return opErr("restore", id, ErrInvalidPlacement)
		}
		rec := &record{id: id, kind: field.Kind, parent: parent}
		if field.Config != nil {
			cfg := *field.Config
			rec.config = &cfg
		}
		records[id] = rec
		if n, ok := parseID(id); ok && n > maxID {
			maxID = n
		}
		for _, child := range field.Fields {
			if err := add(child, id); err != nil {
				return err
			}
			rec.children = append(rec.children, strings.TrimSpace(child.ID))
		}
		return nil
	}

	for _, field := range fields {
		if err := add(field, TopLevel); err != nil {
			return err
		}
		top = append(top, strings.TrimSpace(field.ID))
	}

	s.records = records
	s.top = top
	if maxID >= s.nextID {
		s.nextID = maxID + 1
	}
	s.panel = panel{}
	s.drag = DragSession{}
	s.values = make(map[string]any)
	s.displayed = make(map[string]model.FieldConfig, len(records))
	s.html = make(map[string]string, len(records))
	for _, rec := range records {
		s.display(rec, s.committed(rec))
	}

	s.logger.Debug("builder restored", "fields", len(records), "next_id", s.nextID)
	return nil
}

// Displayed returns the configuration the field preview currently shows. It
// reflects the draft while the panel is open for the field.
func (s *State) Displayed(fieldID string) (model.FieldConfig, bool) {
	cfg, ok := s.displayed[fieldID]
	return cfg, ok
}

// PreviewHTML returns the last markup produced by the Renderer for the field.
func (s *State) PreviewHTML(fieldID string) (string, bool) {
	out, ok := s.html[fieldID]
	return out, ok
}

func (s *State) list(listID string) (*[]string, error) {
	if listID == TopLevel {
		return &s.top, nil
	}
	rec, ok := s.records[listID]
	if !ok {
		return nil, opErr("list", listID, ErrNotFound)
	}
	if !rec.kind.IsSection() {
		return nil, opErr("list", listID, ErrInvalidPlacement)
	}
	return &rec.children, nil
}

func (s *State) committed(rec *record) model.FieldConfig {
	if rec.config != nil {
		return *rec.config
	}
	return model.DefaultConfig(rec.kind)
}

func (s *State) shallow(rec *record) model.Field {
	field := model.Field{ID: rec.id, Kind: rec.kind, Parent: rec.parent}
	if rec.config != nil {
		cfg := *rec.config
		field.Config = &cfg
	}
	return field
}

func (s *State) tree(rec *record) model.Field {
	field := s.shallow(rec)
	if len(rec.children) > 0 {
		field.Fields = make([]model.Field, 0, len(rec.children))
		for _, id := range rec.children {
			field.Fields = append(field.Fields, s.shallow(s.records[id]))
		}
	}
	return field
}

func (s *State) display(rec *record, cfg model.FieldConfig) {
	s.displayed[rec.id] = cfg
	if s.renderer == nil {
		return
	}
	out, err := s.renderer.RenderField(s.shallow(rec), cfg)
	if err != nil {
		s.logger.Warn("preview render failed", "field", rec.id, "err", err)
		return
	}
	s.html[rec.id] = out
}

func (s *State) notify(level NoticeLevel, message string, dismiss time.Duration) {
	s.notifier.Notify(Notice{Level: level, Message: message, DismissAfter: dismiss})
}

func parseID(id string) (int, bool) {
	raw, ok := strings.CutPrefix(id, idPrefix)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func indexOf(list []string, id string) int {
	for i, candidate := range list {
		if candidate == id {
			return i
		}
	}
	return -1
}
