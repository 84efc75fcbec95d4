// Package window provides handlers for pane and workspace navigation.
package window

import (
	"github.com/j0lol/hxzed/internal/dispatcher/handler"
)

// Action names for pane and workspace operations.
const (
	ActionNextItem  = "pane::ActivateNextItem"
	ActionPrevItem  = "pane::ActivatePrevItem"
	ActionCloseItem = "pane::CloseActiveItem"
	ActionQuit      = "workspace::Quit"
)

// Panes provides pane item operations.
// This interface is implemented by the workspace.
type Panes interface {
	// FocusNext focuses the next item.
	FocusNext() error
	// FocusPrev focuses the previous item.
	FocusPrev() error
	// CloseFocused closes the focused item.
	CloseFocused() error
}

// Handler handles pane and workspace actions.
type Handler struct {
	panes Panes
	quit  func()
}

// NewHandler creates a window handler. quit is called for workspace::Quit.
func NewHandler(panes Panes, quit func()) *Handler {
	return &Handler{panes: panes, quit: quit}
}

// Actions returns the action names handled.
func (h *Handler) Actions() []string {
	return []string{ActionNextItem, ActionPrevItem, ActionCloseItem, ActionQuit}
}

// Register registers every window action with r.
func (h *Handler) Register(r *handler.Registry) {
	for _, name := range h.Actions() {
		r.Register(name, h)
	}
}

// Handle processes a window action.
func (h *Handler) Handle(action handler.Action, _ *handler.Context) handler.Result {
	var err error
	switch action.Name {
	case ActionNextItem:
		err = h.panes.FocusNext()
	case ActionPrevItem:
		err = h.panes.FocusPrev()
	case ActionCloseItem:
		err = h.panes.CloseFocused()
	case ActionQuit:
		if h.quit == nil {
			return handler.NoOpWithMessage("quit not supported")
		}
		h.quit()
	default:
		return handler.Errorf("unknown window action: %s", action.Name)
	}
	if err != nil {
		return handler.Error(err)
	}
	return handler.Success()
}
