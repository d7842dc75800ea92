package builder

// Rect is the vertical extent of a hovered field on the drop surface.
type Rect struct {
	Top    float64
	Height float64
}

// Midpoint returns the vertical centre of r.
func (r Rect) Midpoint() float64 {
	return r.Top + r.Height/2
}

// Placement says on which side of a hovered field a dragged field lands.
type Placement int

const (
	PlaceBefore Placement = iota
	PlaceAfter
)

// PlacementFor inserts before the hovered field when the pointer is above its
// midpoint and after it otherwise.
func PlacementFor(pointerY float64, hovered Rect) Placement {
	if pointerY < hovered.Midpoint() {
		return PlaceBefore
	}
	return PlaceAfter
}

// InsertionIndex computes the index sourceID should take in list so that it
// sits on the given side of hoveredID. The index addresses list with sourceID
// removed, matching Reorder. It returns -1 when hoveredID is not in list.
func InsertionIndex(list []string, sourceID, hoveredID string, placement Placement) int {
	remaining := make([]string, 0, len(list))
	for _, id := range list {
		if id != sourceID {
			remaining = append(remaining, id)
		}
	}
	idx := indexOf(remaining, hoveredID)
	if idx < 0 {
		return -1
	}
	if placement == PlaceAfter {
		idx++
	}
	return idx
}

// DragPhase is the state of a drag interaction.
type DragPhase int

const (
	DragIdle DragPhase = iota
	DragDragging
)

// DragSession tracks a drag-reorder interaction. While dragging, List and
// Index give the provisional position of the source field.
type DragSession struct {
	Phase    DragPhase
	SourceID string
	List     string
	Index    int

	hovered   string
	placement Placement
}

// Drag returns the current drag session.
func (s *State) Drag() DragSession {
	return s.drag
}

// BeginDrag starts dragging fieldID from its drag handle. An in-flight session
// is committed first.
func (s *State) BeginDrag(fieldID string) error {
	if err := s.rejectLocked("drag", fieldID); err != nil {
		return err
	}
	rec, ok := s.records[fieldID]
	if !ok {
		return opErr("drag", fieldID, ErrNotFound)
	}
	s.EndDrag()

	list, _ := s.list(rec.parent)
	s.drag = DragSession{
		Phase:    DragDragging,
		SourceID: fieldID,
		List:     rec.parent,
		Index:    indexOf(*list, fieldID),
		hovered:  "",
	}
	return nil
}

// DragOver applies a provisional move while the pointer hovers hoveredID. It
// reports whether the field moved. Repeated updates on the same side of the
// same hovered field do not move it again.
func (s *State) DragOver(hoveredID string, hovered Rect, pointerY float64) (bool, error) {
	if s.drag.Phase != DragDragging {
		return false, nil
	}
	if err := s.rejectLocked("drag", s.drag.SourceID); err != nil {
		return false, err
	}
	if hoveredID == s.drag.SourceID {
		return false, nil
	}
	target, ok := s.records[hoveredID]
	if !ok {
		return false, opErr("drag", hoveredID, ErrNotFound)
	}
	source := s.records[s.drag.SourceID]

	placement := PlacementFor(pointerY, hovered)
	if source.kind.IsSection() && target.parent != TopLevel {
		return false, opErr("drag", s.drag.SourceID, ErrInvalidPlacement)
	}
	if s.drag.hovered == hoveredID && s.drag.placement == placement {
		return false, nil
	}
	s.drag.hovered = hoveredID
	s.drag.placement = placement

	list, err := s.list(target.parent)
	if err != nil {
		return false, err
	}
	idx := InsertionIndex(*list, source.id, hoveredID, placement)
	if source.parent == target.parent && indexOf(*list, source.id) == idx {
		return false, nil
	}

	s.move(source, target.parent, idx)
	s.drag.List = target.parent
	s.drag.Index = idx
	return true, nil
}

// DragInto appends the dragged field to a Section's child surface, used when
// the pointer is over the section's drop area rather than over a field.
func (s *State) DragInto(sectionID string) (bool, error) {
	if s.drag.Phase != DragDragging {
		return false, nil
	}
	if err := s.rejectLocked("drag", s.drag.SourceID); err != nil {
		return false, err
	}
	list, err := s.list(sectionID)
	if err != nil {
		return false, err
	}
	source := s.records[s.drag.SourceID]
	if source.kind.IsSection() {
		return false, opErr("drag", source.id, ErrInvalidPlacement)
	}
	if source.parent == sectionID {
		return false, nil
	}

	idx := len(*list)
	s.move(source, sectionID, idx)
	s.drag.List = sectionID
	s.drag.Index = idx
	s.drag.hovered = ""
	return true, nil
}

// EndDrag commits the provisional position and returns the finished session.
func (s *State) EndDrag() DragSession {
	done := s.drag
	s.drag = DragSession{}
	return done
}

// InterruptDrag handles lost pointer capture; the field stays where it is.
func (s *State) InterruptDrag() DragSession {
	return s.EndDrag()
}
