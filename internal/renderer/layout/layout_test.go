package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLayoutTabs(t *testing.T) {
	ll := Layout("a\tb", 0, Options{TabWidth: 4})

	require.Len(t, ll.Graphemes, 3)
	assert.True(t, ll.HasTabs)
	assert.Equal(t, 1, ll.Graphemes[1].Cell)
	assert.Equal(t, 3, ll.Graphemes[1].Width)
	assert.Equal(t, 4, ll.Graphemes[2].Cell)
	assert.Equal(t, 5, ll.Width)
}

func TestLayoutWideGraphemes(t *testing.T) {
	ll := Layout("日本語", 0, DefaultOptions())

	assert.True(t, ll.HasWide)
	assert.Equal(t, 3, ll.Len())
	assert.Equal(t, 6, ll.Width)
	assert.Equal(t, 4, ll.Graphemes[2].Cell)
}

func TestLayoutCombiningMarks(t *testing.T) {
	// "e" + combining acute is one grapheme.
	ll := Layout("éx", 0, DefaultOptions())

	require.Equal(t, 2, ll.Len())
	assert.Equal(t, "é", ll.Graphemes[0].Text)
	assert.Equal(t, 1, ll.Graphemes[1].Cell)
}

func TestWrapRows(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		opts   Options
		bounds [][2]int
	}{
		{"no wrap", "abcdefgh", Options{}, [][2]int{{0, 8}}},
		{"fits exactly", "abcd", Options{WrapWidth: 4}, [][2]int{{0, 4}}},
		{"char wrap", "abcdefghij", Options{WrapWidth: 4}, [][2]int{{0, 4}, {4, 8}, {8, 10}}},
		{"word wrap", "ab cd ef", Options{WrapWidth: 4, WrapAtWord: true}, [][2]int{{0, 3}, {3, 6}, {6, 8}}},
		{"wide wrap", "日本語", Options{WrapWidth: 3}, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{"empty", "", Options{WrapWidth: 4}, [][2]int{{0, 0}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ll := Layout(tt.text, 0, tt.opts)
			require.Len(t, ll.Rows, len(tt.bounds))
			for i, b := range tt.bounds {
				assert.Equal(t, b[0], ll.Rows[i].Start, "row %d start", i)
				assert.Equal(t, b[1], ll.Rows[i].End, "row %d end", i)
				assert.Equal(t, i, ll.Rows[i].Index)
			}
			assert.True(t, ll.Rows[len(ll.Rows)-1].Last)
		})
	}
}

func TestSnapshotRows(t *testing.T) {
	s := NewSnapshot([]string{"ab", "", "abcdefgh"}, Options{WrapWidth: 4})

	assert.Equal(t, 3, s.LineCount())
	assert.Equal(t, 4, s.RowCount())
	assert.Equal(t, Point{Row: 3, Column: 4}, s.MaxPoint())
	assert.Equal(t, 0, s.RowWidth(1))
	assert.Equal(t, "efgh", s.RowText(3))
	assert.Equal(t, 2, s.Row(3).Line)
}

func TestSnapshotEmpty(t *testing.T) {
	s := NewSnapshot(nil, DefaultOptions())

	assert.Equal(t, 1, s.RowCount())
	assert.Equal(t, Point{}, s.MaxPoint())
	assert.Equal(t, BufferPoint{}, s.ToBuffer(Point{Row: 5, Column: 5}))
}

func TestClipColumn(t *testing.T) {
	wide := NewSnapshot([]string{"日本語"}, DefaultOptions())
	wrapped := NewSnapshot([]string{"abcdefgh"}, Options{WrapWidth: 4})

	tests := []struct {
		name string
		s    *Snapshot
		row  int
		col  int
		want int
	}{
		{"negative", wide, 0, -3, 0},
		{"inside wide grapheme", wide, 0, 1, 0},
		{"second wide grapheme", wide, 0, 3, 2},
		{"line end", wide, 0, 6, 6},
		{"past line end", wide, 0, 99, 6},
		{"continued row end", wrapped, 0, 4, 3},
		{"final row end", wrapped, 1, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.ClipColumn(tt.row, tt.col))
		})
	}
}

func TestToDisplay(t *testing.T) {
	s := NewSnapshot([]string{"abcdefgh", "x\ty"}, Options{WrapWidth: 4, TabWidth: 4})

	tests := []struct {
		in   BufferPoint
		want Point
	}{
		{BufferPoint{0, 0}, Point{0, 0}},
		{BufferPoint{0, 3}, Point{0, 3}},
		{BufferPoint{0, 4}, Point{1, 0}},
		{BufferPoint{0, 8}, Point{1, 4}},
		{BufferPoint{0, 42}, Point{1, 4}},
		{BufferPoint{1, 1}, Point{2, 1}},
		{BufferPoint{1, 2}, Point{3, 0}},
		{BufferPoint{9, 0}, Point{3, 1}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.ToDisplay(tt.in), "ToDisplay(%v)", tt.in)
	}
}

func TestToBuffer(t *testing.T) {
	s := NewSnapshot([]string{"abcdefgh", "日本"}, Options{WrapWidth: 4})

	tests := []struct {
		in   Point
		want BufferPoint
	}{
		{Point{0, 2}, BufferPoint{0, 2}},
		{Point{0, 10}, BufferPoint{0, 3}},
		{Point{1, 4}, BufferPoint{0, 8}},
		{Point{2, 1}, BufferPoint{1, 0}},
		{Point{2, 3}, BufferPoint{1, 1}},
		{Point{2, 4}, BufferPoint{1, 2}},
		{Point{-1, 3}, BufferPoint{0, 0}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, s.ToBuffer(tt.in), "ToBuffer(%v)", tt.in)
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	s := NewSnapshot([]string{"hello wide 日本 world", "\tindented", ""}, Options{WrapWidth: 7, WrapAtWord: true})

	for line := 0; line < s.LineCount(); line++ {
		for col := 0; col <= s.Line(line).Len(); col++ {
			bp := BufferPoint{Line: line, Col: col}
			assert.Equal(t, bp, s.ToBuffer(s.ToDisplay(bp)), "round trip %v", bp)
		}
	}
}

func TestGoal(t *testing.T) {
	assert.Equal(t, 7, NoGoal().ColumnOr(7))
	assert.Equal(t, 3, ColumnGoal(3).ColumnOr(7))
	assert.Equal(t, "none", NoGoal().String())
	assert.Equal(t, "column(3)", ColumnGoal(3).String())
}
