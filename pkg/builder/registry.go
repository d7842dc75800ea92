package builder

import (
	"context"
	"fmt"

	"github.com/goliatone/go-foundry/pkg/model"
)

// CreateField allocates a new field of kind and appends it to the container's
// list. An empty containerID targets the top-level list; otherwise it must name
// a Section. Sections cannot be created inside another Section.
func (s *State) CreateField(kind model.FieldKind, containerID string) (model.Field, error) {
	if err := s.rejectLocked("create", containerID); err != nil {
		return model.Field{}, err
	}
	if !kind.Valid() {
		return model.Field{}, opErr("create", "", fmt.Errorf("%w: unknown field kind %d", ErrValidationFailed, int(kind)))
	}
	if kind.IsSection() && containerID != TopLevel {
		return model.Field{}, opErr("create", containerID, ErrInvalidPlacement)
	}
	list, err := s.list(containerID)
	if err != nil {
		return model.Field{}, err
	}

	id := fmt.Sprintf("%s%d", idPrefix, s.nextID)
	s.nextID++

	rec := &record{id: id, kind: kind, parent: containerID}
	s.records[id] = rec
	*list = append(*list, id)
	s.display(rec, s.committed(rec))

	s.logger.Debug("field created", "field", id, "kind", kind.String(), "container", containerID)
	return s.shallow(rec), nil
}

// Reorder moves fieldID into targetListID at targetIndex. The index addresses
// the target list after the field has been removed from its current list and
// is clamped to the list bounds. The field's configuration is untouched.
func (s *State) Reorder(fieldID, targetListID string, targetIndex int) error {
	if err := s.rejectLocked("reorder", fieldID); err != nil {
		return err
	}
	rec, ok := s.records[fieldID]
	if !ok {
		return opErr("reorder", fieldID, ErrNotFound)
	}
	if _, err := s.list(targetListID); err != nil {
		return err
	}
	if rec.kind.IsSection() && targetListID != TopLevel {
		return opErr("reorder", fieldID, ErrInvalidPlacement)
	}
	s.move(rec, targetListID, targetIndex)
	return nil
}

// DeleteField removes fieldID after the Confirmer approves it. Deleting a
// Section removes every field it contains. The returned bool is false when the
// user declined; state is unchanged in that case.
func (s *State) DeleteField(ctx context.Context, fieldID string) (bool, error) {
	if err := s.rejectLocked("delete", fieldID); err != nil {
		return false, err
	}
	rec, ok := s.records[fieldID]
	if !ok {
		return false, opErr("delete", fieldID, ErrNotFound)
	}

	label := s.committed(rec).Label
	if label == "" {
		label = rec.kind.DefaultLabel()
	}
	confirmed, err := s.confirmer.Confirm(ctx, fmt.Sprintf("Are you sure you want to delete %q?", label))
	if err != nil {
		return false, opErr("delete", fieldID, err)
	}
	if !confirmed {
		return false, nil
	}

	if list, err := s.list(rec.parent); err == nil {
		*list = removeID(*list, fieldID)
	}

	removed := append([]string{fieldID}, rec.children...)
	for _, id := range removed {
		delete(s.records, id)
		delete(s.values, id)
		delete(s.displayed, id)
		delete(s.html, id)
		if s.panel.open && s.panel.fieldID == id {
			s.panel = panel{}
		}
		if s.drag.Phase == DragDragging && s.drag.SourceID == id {
			s.drag = DragSession{}
		}
	}

	s.logger.Debug("field deleted", "field", fieldID, "removed", len(removed))
	return true, nil
}

// ListTopLevel returns the top-level fields in order. Section children are not
// populated; use ListChildren.
func (s *State) ListTopLevel() []model.Field {
	return s.snapshotList(s.top)
}

// ListChildren returns the ordered children of a Section.
func (s *State) ListChildren(sectionID string) ([]model.Field, error) {
	rec, ok := s.records[sectionID]
	if !ok {
		return nil, opErr("list", sectionID, ErrNotFound)
	}
	if !rec.kind.IsSection() {
		return nil, opErr("list", sectionID, ErrInvalidPlacement)
	}
	return s.snapshotList(rec.children), nil
}

func (s *State) snapshotList(ids []string) []model.Field {
	out := make([]model.Field, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.shallow(s.records[id]))
	}
	return out
}

// move relocates rec; callers have validated the target list and placement.
func (s *State) move(rec *record, targetListID string, targetIndex int) {
	if source, err := s.list(rec.parent); err == nil {
		*source = removeID(*source, rec.id)
	}
	target, _ := s.list(targetListID)
	if targetIndex < 0 {
		targetIndex = 0
	}
	if targetIndex > len(*target) {
		targetIndex = len(*target)
	}
	*target = insertID(*target, targetIndex, rec.id)
	rec.parent = targetListID

	s.logger.Debug("field moved", "field", rec.id, "list", targetListID, "index", targetIndex)
}

func removeID(list []string, id string) []string {
	idx := indexOf(list, id)
	if idx < 0 {
		return list
	}
	return append(list[:idx], list[idx+1:]...)
}

func insertID(list []string, idx int, id string) []string {
	list = append(list, "")
	copy(list[idx+1:], list[idx:])
	list[idx] = id
	return list
}
