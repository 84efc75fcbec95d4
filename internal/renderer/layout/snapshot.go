package layout

// Snapshot is an immutable wrapped layout of a whole buffer. All
// positions handed out by a Snapshot are clipped to valid locations.
type Snapshot struct {
	opts  Options
	lines []*LineLayout
	rows  []Row
	first []int // first display row of each line
}

// NewSnapshot lays out lines with opts. An empty slice is treated as a
// single empty line.
func NewSnapshot(lines []string, opts Options) *Snapshot {
	opts = opts.normalized()
	if len(lines) == 0 {
		lines = []string{""}
	}
	s := &Snapshot{
		opts:  opts,
		lines: make([]*LineLayout, len(lines)),
		first: make([]int, len(lines)),
	}
	for i, text := range lines {
		ll := Layout(text, i, opts)
		s.lines[i] = ll
		s.first[i] = len(s.rows)
		s.rows = append(s.rows, ll.Rows...)
	}
	return s
}

// Options returns the options the snapshot was built with.
func (s *Snapshot) Options() Options {
	return s.opts
}

// LineCount returns the number of buffer lines.
func (s *Snapshot) LineCount() int {
	return len(s.lines)
}

// RowCount returns the number of display rows.
func (s *Snapshot) RowCount() int {
	return len(s.rows)
}

// Line returns the layout of buffer line n, clamped to the valid range.
func (s *Snapshot) Line(n int) *LineLayout {
	return s.lines[clamp(n, 0, len(s.lines)-1)]
}

// Row returns display row n, clamped to the valid range.
func (s *Snapshot) Row(n int) Row {
	return s.rows[clamp(n, 0, len(s.rows)-1)]
}

// RowWidth returns the cell width of display row n.
func (s *Snapshot) RowWidth(n int) int {
	return s.Row(n).Width
}

// RowText returns display row n with tabs expanded.
func (s *Snapshot) RowText(n int) string {
	r := s.Row(n)
	return rowText(s.lines[r.Line], r)
}

// MaxPoint returns the last valid display point.
func (s *Snapshot) MaxPoint() Point {
	last := len(s.rows) - 1
	return Point{Row: last, Column: s.rows[last].Width}
}

// ClipColumn snaps col to a valid caret column on row. Columns inside a
// wide grapheme snap to its first cell. On a row that continues onto a
// wrapped row, the last valid column is the start of its final grapheme;
// on the final row of a line, the end of the line is valid.
func (s *Snapshot) ClipColumn(row, col int) int {
	r := s.Row(row)
	if col <= 0 {
		return 0
	}
	ll := s.lines[r.Line]
	for _, g := range ll.Graphemes[r.Start:r.End] {
		rel := g.Cell - r.StartCell
		if col < rel+g.Width {
			return rel
		}
	}
	if r.Last || r.End == r.Start {
		return r.Width
	}
	return ll.Graphemes[r.End-1].Cell - r.StartCell
}

// ClipPoint clamps p to the snapshot.
func (s *Snapshot) ClipPoint(p Point) Point {
	if p.Row < 0 {
		return Point{}
	}
	if p.Row >= len(s.rows) {
		return s.MaxPoint()
	}
	return Point{Row: p.Row, Column: s.ClipColumn(p.Row, p.Column)}
}

// ClipBufferPoint clamps p to an existing line and grapheme column.
func (s *Snapshot) ClipBufferPoint(p BufferPoint) BufferPoint {
	if p.Line < 0 {
		return BufferPoint{}
	}
	if p.Line >= len(s.lines) {
		last := len(s.lines) - 1
		return BufferPoint{Line: last, Col: s.lines[last].Len()}
	}
	return BufferPoint{Line: p.Line, Col: clamp(p.Col, 0, s.lines[p.Line].Len())}
}

// ToDisplay converts a buffer position to a display position.
func (s *Snapshot) ToDisplay(p BufferPoint) Point {
	p = s.ClipBufferPoint(p)
	ll := s.lines[p.Line]
	idx := ll.RowFor(p.Col)
	r := ll.Rows[idx]
	row := s.first[p.Line] + idx
	if p.Col >= ll.Len() {
		return Point{Row: row, Column: r.Width}
	}
	return Point{Row: row, Column: ll.Graphemes[p.Col].Cell - r.StartCell}
}

// ToBuffer converts a display position to a buffer position. The point
// is clipped first.
func (s *Snapshot) ToBuffer(p Point) BufferPoint {
	p = s.ClipPoint(p)
	r := s.rows[p.Row]
	ll := s.lines[r.Line]
	for _, g := range ll.Graphemes[r.Start:r.End] {
		rel := g.Cell - r.StartCell
		if p.Column < rel+g.Width {
			return BufferPoint{Line: r.Line, Col: g.Col}
		}
	}
	if r.Last || r.End == r.Start {
		return BufferPoint{Line: r.Line, Col: r.End}
	}
	return BufferPoint{Line: r.Line, Col: r.End - 1}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
