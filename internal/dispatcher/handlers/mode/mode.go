package mode

import (
	"errors"
	"strconv"

	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/engine/cursor"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// Action names for mode operations.
const (
	ActionSwitchMode      = "hx::SwitchMode"
	ActionInsertBefore    = "hx::InsertBefore"
	ActionNormalBefore    = "hx::NormalBefore"
	ActionNumber          = "hx::Number"
	ActionToggleHelixMode = "workspace::ToggleHelixMode"
)

// ModeHandler handles mode switching operations.
type ModeHandler struct{}

// NewModeHandler creates a new mode handler.
func NewModeHandler() *ModeHandler {
	return &ModeHandler{}
}

// Actions returns the action names handled.
func (h *ModeHandler) Actions() []string {
	return []string{ActionSwitchMode, ActionInsertBefore, ActionNormalBefore, ActionNumber, ActionToggleHelixMode}
}

// Register registers every mode action with r.
func (h *ModeHandler) Register(r *handler.Registry) {
	for _, name := range h.Actions() {
		r.Register(name, h)
	}
}

// Handle processes a mode action.
func (h *ModeHandler) Handle(action handler.Action, ctx *handler.Context) handler.Result {
	if action.Name == ActionToggleHelixMode {
		return h.toggle(ctx)
	}

	d := ctx.Dispatcher
	if !d.Enabled() {
		return handler.NoOpWithMessage("modal layer disabled")
	}

	switch action.Name {
	case ActionSwitchMode:
		m, err := mode.ParseMode(action.Arg)
		if err != nil {
			return handler.Error(err)
		}
		return h.switchTo(d, m)
	case ActionInsertBefore:
		return h.insertBefore(d)
	case ActionNormalBefore:
		return h.switchTo(d, mode.Normal)
	case ActionNumber:
		return h.number(d, action.Arg)
	default:
		return handler.Errorf("unknown mode action: %s", action.Name)
	}
}

// switchTo switches the active surface to m.
func (h *ModeHandler) switchTo(d *dispatcher.Dispatcher, m mode.Mode) handler.Result {
	return dispatcher.Update(d, func(d *dispatcher.Dispatcher) handler.Result {
		d.ClearCount()
		if d.State().Mode == m {
			return handler.NoOp()
		}
		if err := d.SetMode(m); err != nil {
			if errors.Is(err, dispatcher.ErrNoActiveSurface) {
				return handler.NoOpWithMessage("no active surface")
			}
			return handler.Error(err)
		}
		return handler.Success().WithModeChange(m.String())
	})
}

// insertBefore collapses every selection to its start and enters Insert.
func (h *ModeHandler) insertBefore(d *dispatcher.Dispatcher) handler.Result {
	return dispatcher.Update(d, func(d *dispatcher.Dispatcher) handler.Result {
		d.UpdateActiveSurface(func(s dispatcher.Surface) {
			s.MutateSelections(func(_ *layout.Snapshot, sels *cursor.Set) bool {
				before := sels.Clone()
				sels.MapInPlace(func(sel cursor.Selection) cursor.Selection {
					return sel.MoveTo(sel.Start(), layout.NoGoal())
				})
				return !sels.Equals(before)
			})
		})
		return h.switchTo(d, mode.Insert)
	})
}

// number appends a digit to the pending count.
func (h *ModeHandler) number(d *dispatcher.Dispatcher, arg string) handler.Result {
	digit, err := strconv.Atoi(arg)
	if err != nil {
		return handler.Errorf("hx::Number: invalid digit %q", arg)
	}
	accepted, err := d.PushCountDigit(digit)
	if err != nil {
		return handler.Error(err)
	}
	if !accepted {
		return handler.NoOp()
	}
	n, _ := d.Count()
	return handler.Success().WithMessage(strconv.Itoa(n))
}

// toggle flips the enabled setting. Without a settings store the
// dispatcher is toggled directly.
func (h *ModeHandler) toggle(ctx *handler.Context) handler.Result {
	if ctx.Settings == nil {
		enabled := !ctx.Dispatcher.Enabled()
		ctx.Dispatcher.SetEnabled(enabled)
		return handler.Success().WithMessage(enabledMessage(enabled))
	}
	enabled, err := ctx.Settings.ToggleHelixMode()
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success().WithMessage(enabledMessage(enabled))
}

func enabledMessage(enabled bool) string {
	if enabled {
		return "helix mode enabled"
	}
	return "helix mode disabled"
}
