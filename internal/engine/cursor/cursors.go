package cursor

import (
	"slices"

	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// Set manages multiple selections.
// Selections are kept sorted by head and no two share a head. One of them
// is the primary selection; it keeps that role as the set is sorted, so
// adding cursors above it does not move it.
type Set struct {
	selections []Selection
	primary    int
}

// NewSet creates a set from the given selections. With no selections the
// set holds a single cursor at the origin.
func NewSet(sels ...Selection) *Set {
	s := &Set{}
	s.SetAll(sels)
	return s
}

// Primary returns the primary selection.
func (s *Set) Primary() Selection {
	return s.selections[s.primary]
}

// PrimaryIndex returns the position of the primary selection in All.
func (s *Set) PrimaryIndex() int {
	return s.primary
}

// All returns a copy of all selections.
func (s *Set) All() []Selection {
	return slices.Clone(s.selections)
}

// Len returns the number of selections.
func (s *Set) Len() int {
	return len(s.selections)
}

// Add adds a secondary selection. A selection whose head is already
// present is dropped. Returns true if the set grew.
func (s *Set) Add(sel Selection) bool {
	n := len(s.selections)
	s.selections = append(s.selections, sel)
	s.normalize()
	return len(s.selections) > n
}

// SetAll replaces all selections. The first one becomes primary.
func (s *Set) SetAll(sels []Selection) {
	s.primary = 0
	if len(sels) == 0 {
		s.selections = []Selection{NewCursorSelection(Point{})}
		return
	}
	s.selections = slices.Clone(sels)
	s.normalize()
}

// MapInPlace applies f to each selection in place.
func (s *Set) MapInPlace(f func(sel Selection) Selection) {
	for i, sel := range s.selections {
		s.selections[i] = f(sel)
	}
	s.normalize()
}

// Clip clamps every selection to the snapshot.
func (s *Set) Clip(snap *layout.Snapshot) {
	s.MapInPlace(func(sel Selection) Selection { return sel.Clip(snap) })
}

// MoveFunc moves a display point under a goal.
type MoveFunc func(snap *layout.Snapshot, p layout.Point, goal layout.Goal) (layout.Point, layout.Goal)

// MoveCursorsWith moves every head through f in display space and
// collapses each selection onto its new head. Returns true if any
// selection changed.
func (s *Set) MoveCursorsWith(snap *layout.Snapshot, f MoveFunc) bool {
	before := slices.Clone(s.selections)
	for i, sel := range s.selections {
		p, goal := f(snap, snap.ToDisplay(sel.Head), sel.Goal)
		head := snap.ToBuffer(p)
		s.selections[i] = Selection{Anchor: head, Head: head, Goal: goal}
	}
	s.normalize()
	return !slices.Equal(before, s.selections)
}

// Clone returns a deep copy of the set.
func (s *Set) Clone() *Set {
	return &Set{selections: slices.Clone(s.selections), primary: s.primary}
}

// Equals returns true if both sets hold the same selections and the same
// primary.
func (s *Set) Equals(other *Set) bool {
	return s.primary == other.primary && slices.Equal(s.selections, other.selections)
}

// normalize sorts by head, drops later selections sharing a head, and
// points primary at the selection now holding the primary head.
func (s *Set) normalize() {
	head := s.selections[min(s.primary, len(s.selections)-1)].Head
	slices.SortStableFunc(s.selections, func(a, b Selection) int {
		switch {
		case a.Head.Less(b.Head):
			return -1
		case b.Head.Less(a.Head):
			return 1
		}
		return 0
	})
	s.selections = slices.CompactFunc(s.selections, func(a, b Selection) bool {
		return a.Head == b.Head
	})
	s.primary = slices.IndexFunc(s.selections, func(sel Selection) bool {
		return sel.Head == head
	})
}
