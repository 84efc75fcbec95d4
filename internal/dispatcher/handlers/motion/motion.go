package motion

import (
	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/engine/cursor"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/input/motion"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// Action names for motions.
const (
	ActionDown           = "hx::Down"
	ActionUp             = "hx::Up"
	ActionAddCursorBelow = "hx::AddCursorBelow"
	ActionAddCursorAbove = "hx::AddCursorAbove"
)

// Handler handles motion actions.
type Handler struct{}

// NewHandler creates a new motion handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Actions returns the action names handled.
func (h *Handler) Actions() []string {
	return []string{ActionDown, ActionUp, ActionAddCursorBelow, ActionAddCursorAbove}
}

// CanHandle returns true if this handler can process the action.
func (h *Handler) CanHandle(actionName string) bool {
	switch actionName {
	case ActionDown, ActionUp, ActionAddCursorBelow, ActionAddCursorAbove:
		return true
	}
	return false
}

// Register registers every motion action with r.
func (h *Handler) Register(r *handler.Registry) {
	for _, name := range h.Actions() {
		r.Register(name, h)
	}
}

// Handle processes a motion action.
func (h *Handler) Handle(action handler.Action, ctx *handler.Context) handler.Result {
	d := ctx.Dispatcher
	if !d.Enabled() {
		return handler.NoOpWithMessage("modal layer disabled")
	}

	switch action.Name {
	case ActionDown:
		return h.move(d, motion.Down)
	case ActionUp:
		return h.move(d, motion.Up)
	case ActionAddCursorBelow:
		return h.addCursors(d, motion.Down)
	case ActionAddCursorAbove:
		return h.addCursors(d, motion.Up)
	default:
		return handler.Errorf("unknown motion action: %s", action.Name)
	}
}

// times consumes the pending count. Motions only run in Normal mode.
func times(d *dispatcher.Dispatcher) (int, bool) {
	n, ok := d.TakeCount()
	if d.State().Mode != mode.Normal {
		return 0, false
	}
	if !ok {
		n = 1
	}
	return n, true
}

// move resolves m against every selection of the active surface.
func (h *Handler) move(d *dispatcher.Dispatcher, m motion.Motion) handler.Result {
	return dispatcher.Update(d, func(d *dispatcher.Dispatcher) handler.Result {
		n, ok := times(d)
		if !ok {
			return handler.NoOp()
		}

		var moved bool
		live := d.UpdateActiveSurface(func(s dispatcher.Surface) {
			s.MutateSelections(func(snap *layout.Snapshot, sels *cursor.Set) bool {
				moved = sels.MoveCursorsWith(snap, m.Move(n))
				return moved
			})
		})
		if !live {
			return handler.NoOpWithMessage("no active surface")
		}
		if !moved {
			return handler.NoOp()
		}
		return handler.Success()
	})
}

// addCursors adds a cursor n display rows from every selection head.
func (h *Handler) addCursors(d *dispatcher.Dispatcher, m motion.Motion) handler.Result {
	return dispatcher.Update(d, func(d *dispatcher.Dispatcher) handler.Result {
		n, ok := times(d)
		if !ok {
			return handler.NoOp()
		}

		var added bool
		live := d.UpdateActiveSurface(func(s dispatcher.Surface) {
			s.MutateSelections(func(snap *layout.Snapshot, sels *cursor.Set) bool {
				for _, sel := range sels.All() {
					p, goal, ok := m.MovePoint(snap, snap.ToDisplay(sel.Head), sel.Goal, n)
					if !ok {
						continue
					}
					head := snap.ToBuffer(p)
					if sels.Add(cursor.NewCursorSelection(head).WithGoal(goal)) {
						added = true
					}
				}
				return added
			})
		})
		if !live {
			return handler.NoOpWithMessage("no active surface")
		}
		if !added {
			return handler.NoOp()
		}
		return handler.Success()
	})
}
