package cursor

import (
	"fmt"

	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// Point is an alias for layout.BufferPoint for convenience.
type Point = layout.BufferPoint

// Selection represents a range of selected text.
// Anchor is where the selection started; Head is the caret.
type Selection struct {
	Anchor Point
	Head   Point
	Goal   layout.Goal
}

// NewSelection creates a selection from anchor to head.
func NewSelection(anchor, head Point) Selection {
	return Selection{Anchor: anchor, Head: head}
}

// NewCursorSelection creates a selection representing just a cursor.
func NewCursorSelection(p Point) Selection {
	return Selection{Anchor: p, Head: p}
}

// IsEmpty returns true if the selection has no extent.
func (s Selection) IsEmpty() bool {
	return s.Anchor == s.Head
}

// Start returns the lower bound of the selection.
func (s Selection) Start() Point {
	if s.Head.Less(s.Anchor) {
		return s.Head
	}
	return s.Anchor
}

// End returns the upper bound of the selection.
func (s Selection) End() Point {
	if s.Head.Less(s.Anchor) {
		return s.Anchor
	}
	return s.Head
}

// MoveTo returns a cursor at p with the given goal.
func (s Selection) MoveTo(p Point, goal layout.Goal) Selection {
	return Selection{Anchor: p, Head: p, Goal: goal}
}

// WithGoal returns a copy of the selection with goal replaced.
func (s Selection) WithGoal(goal layout.Goal) Selection {
	s.Goal = goal
	return s
}

// Clip clamps both ends of the selection to the snapshot.
func (s Selection) Clip(snap *layout.Snapshot) Selection {
	s.Anchor = snap.ClipBufferPoint(s.Anchor)
	s.Head = snap.ClipBufferPoint(s.Head)
	return s
}

// String returns a string representation of the selection.
func (s Selection) String() string {
	if s.IsEmpty() {
		return fmt.Sprintf("Cursor(%s)", s.Head)
	}
	return fmt.Sprintf("Selection(%s->%s)", s.Anchor, s.Head)
}
