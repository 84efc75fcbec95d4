package cursor

// Edit describes a text replacement in buffer space. The text between
// Start and End was replaced and the replacement now ends at NewEnd.
type Edit struct {
	Start  Point
	End    Point
	NewEnd Point
}

// Insertion returns the edit for text inserted at p ending at newEnd.
func Insertion(p, newEnd Point) Edit {
	return Edit{Start: p, End: p, NewEnd: newEnd}
}

// Deletion returns the edit for the text between start and end removed.
func Deletion(start, end Point) Edit {
	return Edit{Start: start, End: end, NewEnd: start}
}

// TransformPoint updates a point after an edit.
//
// Transformation rules:
//   - Points before the edit are unchanged
//   - Points at or after the edit end shift with it
//   - Points inside a replaced range move to the end of the new text
//
// A point exactly at the start of an insertion shifts with it.
func TransformPoint(p Point, e Edit) Point {
	if p.Less(e.Start) {
		return p
	}
	if p.Less(e.End) {
		return e.NewEnd
	}
	if p.Line == e.End.Line {
		return Point{Line: e.NewEnd.Line, Col: e.NewEnd.Col + p.Col - e.End.Col}
	}
	return Point{Line: p.Line + e.NewEnd.Line - e.End.Line, Col: p.Col}
}

// TransformSelection updates both ends of a selection after an edit.
func TransformSelection(sel Selection, e Edit) Selection {
	sel.Anchor = TransformPoint(sel.Anchor, e)
	sel.Head = TransformPoint(sel.Head, e)
	return sel
}

// TransformSet updates every selection in s after an edit.
func TransformSet(s *Set, e Edit) {
	s.MapInPlace(func(sel Selection) Selection { return TransformSelection(sel, e) })
}
