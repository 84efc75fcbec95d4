package host

import (
	"strings"

	"github.com/rivo/uniseg"

	"github.com/j0lol/hxzed/internal/engine/cursor"
)

// graphemeOffset returns the byte offset of grapheme column col in s.
// Columns past the end map to len(s).
func graphemeOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(s)
	n := 0
	for g.Next() {
		if n == col {
			start, _ := g.Positions()
			return start
		}
		n++
	}
	return len(s)
}

// splitLines splits text into lines, accepting both \n and \r\n.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// replaceRange replaces the text between start and end with text, which
// may span lines. Returns the resulting lines and the edit performed.
func replaceRange(lines []string, start, end cursor.Point, text string) ([]string, cursor.Edit) {
	first, last := lines[start.Line], lines[end.Line]
	prefix := first[:graphemeOffset(first, start.Col)]
	suffix := last[graphemeOffset(last, end.Col):]

	parts := splitLines(text)
	n := len(parts)
	replacement := make([]string, n)
	copy(replacement, parts)
	replacement[0] = prefix + replacement[0]
	replacement[n-1] += suffix

	out := make([]string, 0, len(lines)-(end.Line-start.Line)+n-1)
	out = append(out, lines[:start.Line]...)
	out = append(out, replacement...)
	out = append(out, lines[end.Line+1:]...)

	newEnd := cursor.Point{Line: start.Line + n - 1, Col: uniseg.GraphemeClusterCount(parts[n-1])}
	if n == 1 {
		newEnd.Col += start.Col
	}
	return out, cursor.Edit{Start: start, End: end, NewEnd: newEnd}
}
