package builder

import "github.com/goliatone/go-foundry/pkg/model"

// PanelPhase is the state of the configuration panel.
type PanelPhase int

const (
	PanelClosed PanelPhase = iota
	PanelOpen
)

// PanelView is a read-only snapshot of the configuration panel.
type PanelView struct {
	Phase     PanelPhase
	FieldID   string
	Draft     model.FieldConfig
	Committed model.FieldConfig
}

type panel struct {
	open      bool
	fieldID   string
	draft     model.FieldConfig
	committed model.FieldConfig
}

// Panel returns the current panel state.
func (s *State) Panel() PanelView {
	if !s.panel.open {
		return PanelView{Phase: PanelClosed}
	}
	return PanelView{
		Phase:     PanelOpen,
		FieldID:   s.panel.fieldID,
		Draft:     s.panel.draft,
		Committed: s.panel.committed,
	}
}

// Select opens the panel for fieldID. Unsaved edits on a previously open field
// are discarded and its preview restored. The first selection of a field
// commits the kind defaults as its configuration.
func (s *State) Select(fieldID string) error {
	if err := s.rejectLocked("select", fieldID); err != nil {
		return err
	}
	rec, ok := s.records[fieldID]
	if !ok {
		return opErr("select", fieldID, ErrNotFound)
	}
	s.cancelPanel()

	if rec.config == nil {
		cfg := model.DefaultConfig(rec.kind)
		rec.config = &cfg
	}
	s.panel = panel{
		open:      true,
		fieldID:   fieldID,
		draft:     *rec.config,
		committed: *rec.config,
	}
	s.display(rec, *rec.config)
	return nil
}

// Edit merges patch into the draft and re-renders the preview from it.
func (s *State) Edit(patch model.FieldPatch) error {
	if !s.panel.open {
		return opErr("edit", "", ErrPanelClosed)
	}
	fieldID := s.panel.fieldID
	rec, ok := s.records[fieldID]
	if !ok {
		s.panel = panel{}
		return opErr("edit", fieldID, ErrNotFound)
	}
	s.panel.draft = patch.Apply(s.panel.draft)
	s.display(rec, s.panel.draft)
	return nil
}

// Save commits the draft and closes the panel. It is a no-op when the panel is
// already closed, which makes repeated saves idempotent.
func (s *State) Save() error {
	if !s.panel.open {
		return nil
	}
	fieldID := s.panel.fieldID
	rec, ok := s.records[fieldID]
	if !ok {
		s.panel = panel{}
		return opErr("save", fieldID, ErrNotFound)
	}
	cfg := s.panel.draft
	rec.config = &cfg
	s.panel = panel{}
	s.display(rec, cfg)

	s.logger.Debug("field configuration saved", "field", fieldID)
	s.notify(NoticeSuccess, "Field configuration saved!", 0)
	return nil
}

// Cancel discards the draft, restores the committed preview and closes the
// panel.
func (s *State) Cancel() {
	s.cancelPanel()
}

// Close behaves like Cancel.
func (s *State) Close() {
	s.cancelPanel()
}

func (s *State) cancelPanel() {
	if !s.panel.open {
		return
	}
	if rec, ok := s.records[s.panel.fieldID]; ok {
		s.display(rec, s.committed(rec))
	}
	s.panel = panel{}
}
