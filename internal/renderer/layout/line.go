// Package layout computes the wrapped display layout of a text buffer.
//
// A Snapshot is an immutable, point-in-time view of a surface's lines
// after tab expansion, grapheme width measurement and soft wrapping.
// Motions are resolved against display rows, not logical lines.
package layout

import (
	"strings"
	"unicode"

	"github.com/rivo/uniseg"
)

// Options configures line layout.
type Options struct {
	// WrapWidth is the row width in cells. 0 disables wrapping.
	WrapWidth int

	// TabWidth is the distance between tab stops. Defaults to 4.
	TabWidth int

	// WrapAtWord breaks rows after whitespace when possible.
	WrapAtWord bool
}

// DefaultOptions returns options with no wrapping and 4-column tabs.
func DefaultOptions() Options {
	return Options{TabWidth: 4}
}

func (o Options) normalized() Options {
	if o.TabWidth < 1 {
		o.TabWidth = 4
	}
	if o.WrapWidth < 0 {
		o.WrapWidth = 0
	}
	return o
}

// Grapheme is one user-perceived character of a line.
type Grapheme struct {
	Text  string // Source text of the cluster
	Col   int    // Grapheme column within the line
	Cell  int    // First cell within the line (after tab expansion)
	Width int    // Cells occupied (at least 1)
}

// IsSpace returns true if the grapheme is whitespace.
func (g Grapheme) IsSpace() bool {
	if g.Text == "" {
		return false
	}
	for _, r := range g.Text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// Row is one display row of a line.
type Row struct {
	Line      int  // Buffer line this row belongs to
	Index     int  // Wrap index within the line (0 = first row)
	Start     int  // First grapheme column (inclusive)
	End       int  // Last grapheme column (exclusive)
	StartCell int  // Line cell where the row begins
	Width     int  // Cells used by the row
	Last      bool // Final row of its line
}

// LineLayout represents the visual layout of a single buffer line.
type LineLayout struct {
	Line      int
	Graphemes []Grapheme
	Rows      []Row
	Width     int // Total cells of the line
	HasTabs   bool
	HasWide   bool
}

// Len returns the number of graphemes in the line.
func (l *LineLayout) Len() int {
	return len(l.Graphemes)
}

// RowFor returns the index of the row containing grapheme column col.
// Columns at or past the end of the line map to the last row.
func (l *LineLayout) RowFor(col int) int {
	for i, r := range l.Rows {
		if col < r.End {
			return i
		}
	}
	return len(l.Rows) - 1
}

// Layout computes the layout of a single line.
func Layout(text string, line int, opts Options) *LineLayout {
	opts = opts.normalized()
	ll := &LineLayout{Line: line}

	cell := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		str := g.Str()
		width := g.Width()
		if str == "\t" {
			ll.HasTabs = true
			width = opts.TabWidth - (cell % opts.TabWidth)
		}
		if width < 1 {
			width = 1
		}
		if width > 1 && str != "\t" {
			ll.HasWide = true
		}
		ll.Graphemes = append(ll.Graphemes, Grapheme{
			Text:  str,
			Col:   len(ll.Graphemes),
			Cell:  cell,
			Width: width,
		})
		cell += width
	}
	ll.Width = cell
	ll.Rows = wrapRows(ll, opts)
	return ll
}

// wrapRows splits a line into display rows.
func wrapRows(ll *LineLayout, opts Options) []Row {
	n := len(ll.Graphemes)
	if opts.WrapWidth == 0 || ll.Width <= opts.WrapWidth {
		return []Row{{Line: ll.Line, Start: 0, End: n, Width: ll.Width, Last: true}}
	}

	var rows []Row
	start := 0
	for start < n {
		end := start
		used := 0
		lastSpace := -1
		for end < n {
			w := ll.Graphemes[end].Width
			if used+w > opts.WrapWidth && end > start {
				break
			}
			if ll.Graphemes[end].IsSpace() {
				lastSpace = end
			}
			used += w
			end++
		}
		if end < n && opts.WrapAtWord && lastSpace >= start && lastSpace+1 < end {
			end = lastSpace + 1
		}
		rows = append(rows, Row{
			Line:      ll.Line,
			Index:     len(rows),
			Start:     start,
			End:       end,
			StartCell: ll.Graphemes[start].Cell,
			Width:     cellsBetween(ll, start, end),
		})
		start = end
	}
	rows[len(rows)-1].Last = true
	return rows
}

func cellsBetween(ll *LineLayout, start, end int) int {
	if start >= end {
		return 0
	}
	last := ll.Graphemes[end-1]
	return last.Cell + last.Width - ll.Graphemes[start].Cell
}

// rowText renders a row with tabs expanded to spaces.
func rowText(ll *LineLayout, r Row) string {
	var sb strings.Builder
	for _, g := range ll.Graphemes[r.Start:r.End] {
		if g.Text == "\t" {
			sb.WriteString(strings.Repeat(" ", g.Width))
			continue
		}
		sb.WriteString(g.Text)
	}
	return sb.String()
}
