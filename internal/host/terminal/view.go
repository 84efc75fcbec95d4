package terminal

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/j0lol/hxzed/internal/engine/cursor"
	"github.com/j0lol/hxzed/internal/host"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// Styles used by the editor view.
var (
	styleText      = tcell.StyleDefault
	styleFiller    = tcell.StyleDefault.Dim(true)
	styleSelection = tcell.StyleDefault.Reverse(true)
	styleStatus    = tcell.StyleDefault.Reverse(true)
	styleError     = tcell.StyleDefault.Reverse(true).Bold(true)
)

// view draws one editor into a rectangle of the screen, scrolling to keep
// the primary cursor visible.
type view struct {
	top int // first display row shown
}

// scrollTo adjusts top so that row is within height rows.
func (v *view) scrollTo(row, height int) {
	if height <= 0 {
		return
	}
	if row < v.top {
		v.top = row
	}
	if row >= v.top+height {
		v.top = row - height + 1
	}
}

// draw renders e into rows [0, height) and returns the screen position
// of the primary cursor.
func (v *view) draw(screen tcell.Screen, e *host.Editor, width, height int) (cx, cy int) {
	snap := e.LayoutSnapshot()
	sels := e.Selections()

	primary := snap.ToDisplay(e.Primary().Head)
	v.scrollTo(primary.Row, height)
	if last := snap.RowCount() - 1; v.top > last {
		v.top = last
	}

	heads := make(map[layout.Point]bool, len(sels))
	for i, sel := range sels {
		if i != e.PrimaryIndex() {
			heads[snap.ToDisplay(sel.Head)] = true
		}
	}

	for y := 0; y < height; y++ {
		clearRow(screen, y, width)
		r := v.top + y
		if r >= snap.RowCount() {
			screen.SetContent(0, y, '~', nil, styleFiller)
			continue
		}
		row := snap.Row(r)
		ll := snap.Line(row.Line)
		for c := row.Start; c < row.End; c++ {
			g := ll.Graphemes[c]
			x := g.Cell - row.StartCell
			if x >= width {
				break
			}
			style := styleText
			p := cursor.Point{Line: row.Line, Col: c}
			if selected(sels, p) || heads[layout.Point{Row: r, Column: x}] {
				style = styleSelection
			}
			drawGrapheme(screen, x, y, g, style)
		}
		if heads[layout.Point{Row: r, Column: row.Width}] && row.Width < width {
			screen.SetContent(row.Width, y, ' ', nil, styleSelection)
		}
	}

	return primary.Column, primary.Row - v.top
}

func drawGrapheme(screen tcell.Screen, x, y int, g layout.Grapheme, style tcell.Style) {
	if g.Text == "\t" {
		for i := 0; i < g.Width; i++ {
			screen.SetContent(x+i, y, ' ', nil, style)
		}
		return
	}
	gr := uniseg.NewGraphemes(g.Text)
	if !gr.Next() {
		return
	}
	runes := gr.Runes()
	screen.SetContent(x, y, runes[0], runes[1:], style)
}

// selected reports whether p lies inside a non-empty selection.
func selected(sels []cursor.Selection, p cursor.Point) bool {
	for _, sel := range sels {
		if sel.IsEmpty() {
			continue
		}
		start, end := sel.Start(), sel.End()
		if !p.Less(start) && p.Less(end) {
			return true
		}
	}
	return false
}

func clearRow(screen tcell.Screen, y, width int) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, styleText)
	}
}

func drawString(screen tcell.Screen, y int, s string, style tcell.Style) {
	x := 0
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += max(gr.Width(), 1)
	}
}
