package layout

import "fmt"

// Point is a position in display space: a wrapped row and a cell column
// within that row.
type Point struct {
	Row    int
	Column int
}

// String returns a string representation of the point.
func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Column)
}

// Less reports whether p comes before other.
func (p Point) Less(other Point) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Column < other.Column
}

// BufferPoint is a position in the text: a logical line and a grapheme
// column within that line.
type BufferPoint struct {
	Line int
	Col  int
}

// String returns a string representation of the buffer point.
func (p BufferPoint) String() string {
	return fmt.Sprintf("L%d:C%d", p.Line, p.Col)
}

// Less reports whether p comes before other.
func (p BufferPoint) Less(other BufferPoint) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

// GoalKind identifies how a selection goal constrains vertical motion.
type GoalKind uint8

const (
	// GoalNone means no sticky column is recorded.
	GoalNone GoalKind = iota

	// GoalColumn keeps vertical motions aligned to a display column.
	GoalColumn
)

// Goal is the sticky horizontal target of a selection. Vertical motions
// aim for Column when Kind is GoalColumn, so that moving through a short
// line does not lose the original column.
type Goal struct {
	Kind   GoalKind
	Column int
}

// NoGoal returns an empty goal.
func NoGoal() Goal {
	return Goal{}
}

// ColumnGoal returns a goal pinned to a display column.
func ColumnGoal(col int) Goal {
	return Goal{Kind: GoalColumn, Column: col}
}

// ColumnOr returns the goal column, or fallback when no goal is set.
func (g Goal) ColumnOr(fallback int) int {
	if g.Kind == GoalColumn {
		return g.Column
	}
	return fallback
}

// String returns a string representation of the goal.
func (g Goal) String() string {
	if g.Kind == GoalColumn {
		return fmt.Sprintf("column(%d)", g.Column)
	}
	return "none"
}
