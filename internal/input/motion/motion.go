// Package motion resolves symbolic cursor motions against a display
// snapshot.
//
// Motions are stateless values. Everything needed to resolve one (the
// snapshot, the starting point, the selection goal and a repeat count)
// is passed in at call time, and resolution never mutates its inputs.
package motion

import (
	"errors"
	"fmt"
	"strings"

	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// ErrUnknownMotion is returned when a motion name is not recognized.
var ErrUnknownMotion = errors.New("unknown motion")

// Namespace prefixes the action name of every motion.
const Namespace = "hx::"

// Motion is a symbolic cursor motion.
type Motion uint8

const (
	// Down moves one display row down.
	Down Motion = iota

	// Up moves one display row up.
	Up
)

var motionNames = map[Motion]string{
	Down: "Down",
	Up:   "Up",
}

// Motions returns every known motion.
func Motions() []Motion {
	return []Motion{Down, Up}
}

// String returns the motion name, e.g. "Down".
func (m Motion) String() string {
	if name, ok := motionNames[m]; ok {
		return name
	}
	return fmt.Sprintf("Motion(%d)", m)
}

// Name returns the action name of the motion, e.g. "hx::Down".
func (m Motion) Name() string {
	return Namespace + m.String()
}

// ParseMotion parses a motion from its name or action name.
func ParseMotion(name string) (Motion, error) {
	name = strings.TrimPrefix(name, Namespace)
	for m, n := range motionNames {
		if strings.EqualFold(n, name) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMotion, name)
}

// stepFunc applies one unit of a motion.
type stepFunc func(snap *layout.Snapshot, p layout.Point, goal layout.Goal) (layout.Point, layout.Goal)

func (m Motion) step() stepFunc {
	switch m {
	case Down:
		return down
	case Up:
		return up
	default:
		return stay
	}
}

// MovePoint resolves the motion from p under goal, repeated times times.
// A count below 1 is treated as 1. The point and goal are threaded
// through every step. ok is false when the resolved point equals p.
func (m Motion) MovePoint(snap *layout.Snapshot, p layout.Point, goal layout.Goal, times int) (layout.Point, layout.Goal, bool) {
	if times < 1 {
		times = 1
	}
	step := m.step()
	cur, curGoal := p, goal
	for range times {
		next, nextGoal := step(snap, cur, curGoal)
		if next == cur && nextGoal == curGoal {
			break
		}
		cur, curGoal = next, nextGoal
	}
	if cur == p {
		return p, goal, false
	}
	return cur, curGoal, true
}

// Move adapts the motion to cursor.Set.MoveCursorsWith. Points that do
// not move keep their goal.
func (m Motion) Move(times int) func(*layout.Snapshot, layout.Point, layout.Goal) (layout.Point, layout.Goal) {
	return func(snap *layout.Snapshot, p layout.Point, goal layout.Goal) (layout.Point, layout.Goal) {
		np, ng, _ := m.MovePoint(snap, p, goal, times)
		return np, ng
	}
}

func down(snap *layout.Snapshot, p layout.Point, goal layout.Goal) (layout.Point, layout.Goal) {
	if p.Row >= snap.RowCount()-1 {
		return p, goal
	}
	return vertical(snap, p, goal, p.Row+1)
}

func up(snap *layout.Snapshot, p layout.Point, goal layout.Goal) (layout.Point, layout.Goal) {
	if p.Row <= 0 {
		return p, goal
	}
	return vertical(snap, p, goal, p.Row-1)
}

func vertical(snap *layout.Snapshot, p layout.Point, goal layout.Goal, row int) (layout.Point, layout.Goal) {
	target := goal.ColumnOr(p.Column)
	return layout.Point{Row: row, Column: snap.ClipColumn(row, target)}, layout.ColumnGoal(target)
}

func stay(_ *layout.Snapshot, p layout.Point, goal layout.Goal) (layout.Point, layout.Goal) {
	return p, goal
}
