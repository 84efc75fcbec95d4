package terminal

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Status is the content of the status line.
type Status struct {
	Mode    string // e.g. "NORMAL", empty when the modal layer is off
	Name    string
	Dirty   bool
	Line    int // 1-based
	Column  int // 1-based
	Cursors int
	Pending string // incomplete key sequence
	Count   int
	Message string
	Error   bool
}

func (s Status) left() string {
	var b strings.Builder
	if s.Mode != "" {
		fmt.Fprintf(&b, " %s ", s.Mode)
	}
	b.WriteString(" ")
	b.WriteString(s.Name)
	if s.Dirty {
		b.WriteString(" [+]")
	}
	if s.Message != "" {
		b.WriteString("  ")
		b.WriteString(s.Message)
	}
	return b.String()
}

func (s Status) right() string {
	var parts []string
	if s.Count > 0 {
		parts = append(parts, fmt.Sprint(s.Count))
	}
	if s.Pending != "" {
		parts = append(parts, s.Pending)
	}
	if s.Cursors > 1 {
		parts = append(parts, fmt.Sprintf("%d sel", s.Cursors))
	}
	parts = append(parts, fmt.Sprintf("%d:%d", s.Line, s.Column))
	return strings.Join(parts, "  ") + " "
}

// Render lays the status out in exactly width cells. The left part is
// truncated when both parts do not fit; the position is kept.
func (s Status) Render(width int) string {
	if width <= 0 {
		return ""
	}
	left, right := s.left(), s.right()
	rw := runewidth.StringWidth(right)
	if rw >= width {
		return runewidth.Truncate(right, width, "")
	}
	left = runewidth.Truncate(left, width-rw, "…")
	return runewidth.FillRight(left, width-rw) + right
}
