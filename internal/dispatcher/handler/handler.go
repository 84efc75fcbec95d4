// Package handler provides the action and handler types used to drive
// the modal dispatcher from keybindings, scripts and commands.
package handler

import (
	"log/slog"
	"strings"

	"github.com/j0lol/hxzed/internal/dispatcher"
)

// NamespaceSeparator separates an action namespace from its name.
const NamespaceSeparator = "::"

// Action is a named, dispatchable command with an optional argument.
type Action struct {
	// Name is the qualified action name, e.g. "hx::Down".
	Name string

	// Arg carries the action argument, e.g. a mode name or digit.
	Arg string
}

// Namespace returns the prefix before "::", or "" if there is none.
func (a Action) Namespace() string {
	ns, _, ok := strings.Cut(a.Name, NamespaceSeparator)
	if !ok {
		return ""
	}
	return ns
}

// InNamespace reports whether the action belongs to namespace ns.
func (a Action) InNamespace(ns string) bool {
	return strings.HasPrefix(a.Name, ns+NamespaceSeparator)
}

// String returns the action name with its argument, if any.
func (a Action) String() string {
	if a.Arg == "" {
		return a.Name
	}
	return a.Name + "(" + a.Arg + ")"
}

// SettingsToggler flips the persisted modal-layer setting.
type SettingsToggler interface {
	// ToggleHelixMode flips the setting and returns the new value.
	ToggleHelixMode() (bool, error)
}

// Context gives handlers access to the editor subsystems.
type Context struct {
	// Dispatcher holds the modal state.
	Dispatcher *dispatcher.Dispatcher

	// Settings persists the enabled flag. May be nil.
	Settings SettingsToggler

	// Logger is the handler logger. Never nil once passed to a handler.
	Logger *slog.Logger
}

// Handler processes an action.
type Handler interface {
	// Handle executes the action and returns a result.
	Handle(action Action, ctx *Context) Result
}

// HandlerFunc is a function adapter for the Handler interface.
type HandlerFunc func(action Action, ctx *Context) Result

// Handle implements Handler.
func (f HandlerFunc) Handle(action Action, ctx *Context) Result {
	if f == nil {
		return Errorf("handler function is nil")
	}
	return f(action, ctx)
}
