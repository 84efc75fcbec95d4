package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/j0lol/hxzed/internal/config"
	"github.com/j0lol/hxzed/internal/config/loader"
	"github.com/j0lol/hxzed/internal/config/registry"
	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/event"
	"github.com/j0lol/hxzed/internal/host"
	"github.com/j0lol/hxzed/internal/host/terminal"
	"github.com/j0lol/hxzed/internal/input"
	"github.com/j0lol/hxzed/internal/plugin/lua"
)

// Options configures an Application.
type Options struct {
	// SettingsPaths lists settings files, lowest precedence first.
	SettingsPaths []string

	// KeymapPath is a user keymap merged over the built-in one. A missing
	// file is ignored.
	KeymapPath string

	// ScriptPath is a Lua script run at startup.
	ScriptPath string

	// Files are opened at startup. With none, a scratch buffer is opened.
	Files []string

	// Settings are extra setting definitions registered before the
	// built-in ones. A definition with a built-in key replaces it.
	Settings []registry.Definition

	// Env maps environment variables to settings. Nil uses the default
	// HX_HELIX_MODE mapping.
	Env *loader.EnvLoader

	Logger *slog.Logger
}

// Application owns every component and the order they start and stop in.
type Application struct {
	opts   Options
	logger *slog.Logger

	bus      *event.Bus
	ws       *host.Workspace
	settings *config.Settings
	d        *dispatcher.Dispatcher
	actions  *handler.Registry
	input    *input.Handler
	subs     *subscriptions

	script *lua.State
	api    *lua.API

	ui      *terminal.UI
	running bool
	closed  bool
}

// New bootstraps an application from opts.
func New(opts Options) (*Application, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	a := &Application{opts: opts, logger: logger}
	if err := a.bootstrap(); err != nil {
		a.Close()
		return nil, err
	}
	return a, nil
}

// Dispatcher returns the modal dispatcher.
func (a *Application) Dispatcher() *dispatcher.Dispatcher {
	return a.d
}

// Workspace returns the editor workspace.
func (a *Application) Workspace() *host.Workspace {
	return a.ws
}

// Settings returns the settings store.
func (a *Application) Settings() *config.Settings {
	return a.settings
}

// Input returns the keystroke handler.
func (a *Application) Input() *input.Handler {
	return a.input
}

// Actions returns the action registry.
func (a *Application) Actions() *handler.Registry {
	return a.actions
}

// ReloadSettings re-reads the settings files and applies the enabled flag.
// A failed load keeps the previous values.
func (a *Application) ReloadSettings() {
	if err := a.settings.Load(); err != nil {
		a.logger.Warn("reloading settings", "error", err)
	}
	enabled := a.settings.HelixMode()
	dispatcher.Update(a.d, func(d *dispatcher.Dispatcher) struct{} {
		d.SetEnabled(enabled)
		return struct{}{}
	})
}

// Run drives the terminal UI on screen until quit or ctx is done.
// Settings file changes are applied on the UI goroutine.
func (a *Application) Run(ctx context.Context, screen tcell.Screen) error {
	if a.closed {
		return ErrClosed
	}
	if a.running {
		return ErrAlreadyRunning
	}
	a.running = true
	defer func() { a.running = false }()

	ui := terminal.New(screen, a.ws, a.d, a.input, terminal.WithLogger(a.logger))
	if err := ui.Init(); err != nil {
		return initError("terminal", err)
	}
	defer ui.Fini()
	a.ui = ui
	defer func() { a.ui = nil }()

	if len(a.settings.Paths()) > 0 {
		stop, err := a.settings.Watch(ctx, func() {
			if err := ui.Post(a.ReloadSettings); err != nil {
				a.logger.Warn("queueing settings reload", "error", err)
			}
		})
		if err != nil {
			a.logger.Warn("watching settings", "error", err)
		} else {
			defer stop()
		}
	}

	a.logger.Info("running", "editors", len(a.ws.Editors()), "helix_mode", a.d.Enabled())
	return ui.Run(ctx)
}

// quit stops the UI loop, if one is running.
func (a *Application) quit() {
	if a.ui != nil {
		a.ui.Quit()
	}
}

// Close releases the script state and event subscriptions. Safe to call
// more than once.
func (a *Application) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.api != nil {
		a.api.Close()
	}
	if a.script != nil {
		if err := a.script.Close(); err != nil {
			a.logger.Warn("closing script state", "error", err)
		}
	}
	if a.subs != nil {
		a.subs.cancel()
	}
}
