package builder

import (
	"github.com/goliatone/go-foundry/pkg/model"
)

// Mode reports the current presentation mode.
func (s *State) Mode() Mode {
	return s.mode
}

// TestMode reports whether structural editing is locked.
func (s *State) TestMode() bool {
	return s.mode == ModeTest
}

// SetTestMode toggles between build and test mode.
func (s *State) SetTestMode(enabled bool) {
	if enabled {
		s.EnableTestMode()
		return
	}
	s.DisableTestMode()
}

// EnableTestMode cancels any open draft, commits an in-flight drag in place
// and locks structural editing.
func (s *State) EnableTestMode() {
	if s.mode == ModeTest {
		return
	}
	s.cancelPanel()
	s.drag = DragSession{}
	s.mode = ModeTest
	s.logger.Debug("test mode enabled")
}

// DisableTestMode unlocks editing and resets every runtime value to its
// default. The schema is untouched.
func (s *State) DisableTestMode() {
	if s.mode == ModeBuild {
		return
	}
	s.mode = ModeBuild
	s.values = make(map[string]any)
	s.logger.Debug("test mode disabled")
}

// SetValue records a runtime input value. Values never reach the field
// configuration.
func (s *State) SetValue(fieldID string, value any) error {
	rec, ok := s.records[fieldID]
	if !ok {
		return opErr("set value", fieldID, ErrNotFound)
	}
	if !rec.kind.HoldsValue() {
		return opErr("set value", fieldID, ErrNoValue)
	}
	s.values[fieldID] = value
	return nil
}

// Value returns the runtime value of a field, or its kind default.
func (s *State) Value(fieldID string) (any, error) {
	rec, ok := s.records[fieldID]
	if !ok {
		return nil, opErr("value", fieldID, ErrNotFound)
	}
	if !rec.kind.HoldsValue() {
		return nil, opErr("value", fieldID, ErrNoValue)
	}
	if value, ok := s.values[fieldID]; ok {
		return value, nil
	}
	return model.DefaultValue(rec.kind), nil
}

// Values returns the runtime value of every value-holding field.
func (s *State) Values() map[string]any {
	out := make(map[string]any, len(s.records))
	for id, rec := range s.records {
		if !rec.kind.HoldsValue() {
			continue
		}
		if value, ok := s.values[id]; ok {
			out[id] = value
			continue
		}
		out[id] = model.DefaultValue(rec.kind)
	}
	return out
}

func (s *State) rejectLocked(op, fieldID string) error {
	if s.mode != ModeTest {
		return nil
	}
	s.logger.Warn("edit rejected in test mode", "op", op, "field", fieldID)
	s.notify(NoticeWarning, LockedMessage, WarningDismissAfter)
	return opErr(op, fieldID, ErrLockedForEditing)
}
