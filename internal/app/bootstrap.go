package app

import (
	"errors"
	"io/fs"

	"github.com/j0lol/hxzed/internal/config"
	"github.com/j0lol/hxzed/internal/config/loader"
	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	"github.com/j0lol/hxzed/internal/dispatcher/handlers/file"
	modehandlers "github.com/j0lol/hxzed/internal/dispatcher/handlers/mode"
	motionhandlers "github.com/j0lol/hxzed/internal/dispatcher/handlers/motion"
	"github.com/j0lol/hxzed/internal/dispatcher/handlers/window"
	"github.com/j0lol/hxzed/internal/event"
	"github.com/j0lol/hxzed/internal/host"
	"github.com/j0lol/hxzed/internal/input"
	"github.com/j0lol/hxzed/internal/input/keymap"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/plugin/lua"
)

// bootstrap creates the components in dependency order. Surfaces are
// opened last so the dispatcher sees their focus events.
func (a *Application) bootstrap() error {
	a.bus = event.NewBus(event.WithLogger(a.logger))
	a.ws = host.NewWorkspace(a.bus, host.WithLogger(a.logger))

	env := a.opts.Env
	if env == nil {
		env = loader.NewEnvLoader()
	}
	reg, err := config.NewRegistry(a.opts.Settings...)
	if err != nil {
		return initError("settings", err)
	}
	a.settings = config.New(a.opts.SettingsPaths,
		config.WithRegistry(reg),
		config.WithLogger(a.logger),
		config.WithEnv(env),
	)
	if err := a.settings.Load(); err != nil {
		a.logger.Warn("loading settings, using defaults", "error", err)
	}

	a.d = dispatcher.New(a.ws,
		dispatcher.WithLogger(a.logger),
		dispatcher.WithEnabled(a.settings.HelixMode()),
	)
	a.d.OnModeChange(func(id dispatcher.SurfaceID, from, to mode.Mode) {
		a.logger.Debug("mode changed", "surface", id, "from", from, "to", to)
	})
	a.subs = subscribe(a.bus, a.d)

	a.actions = handler.NewRegistry()
	motionhandlers.NewHandler().Register(a.actions)
	modehandlers.NewModeHandler().Register(a.actions)
	file.NewHandler(documents{ws: a.ws}).Register(a.actions)
	window.NewHandler(a.ws, a.quit).Register(a.actions)

	km, err := a.loadKeymap()
	if err != nil {
		return initError("keymap", err)
	}

	actx := &handler.Context{Dispatcher: a.d, Logger: a.logger.With("component", "actions")}
	if len(a.settings.Paths()) > 0 {
		actx.Settings = settingsToggler{settings: a.settings, d: a.d}
	}
	a.input = input.NewHandler(km, a.actions, actx, focusedTarget(a.ws), input.WithLogger(a.logger))
	a.input.Hooks().RegisterNamed(input.NewModalObserver(a.d), "hx")
	a.input.Hooks().RegisterNamed(input.LoggingHook{Logger: a.logger.With("component", "keys")}, "log")

	if err := a.openFiles(); err != nil {
		return initError("workspace", err)
	}

	if a.opts.ScriptPath != "" {
		a.script = lua.NewState(lua.WithLogger(a.logger))
		a.api = lua.Install(a.script, a.d)
		if err := a.script.DoFile(a.opts.ScriptPath); err != nil {
			return initError("script", err)
		}
	}
	return nil
}

// loadKeymap returns the built-in keymap with the user keymap appended,
// so user bindings take precedence.
func (a *Application) loadKeymap() (*keymap.Keymap, error) {
	km := keymap.Default()
	if a.opts.KeymapPath == "" {
		return km, nil
	}
	user, err := keymap.LoadFile(a.opts.KeymapPath)
	if errors.Is(err, fs.ErrNotExist) {
		a.logger.Debug("no user keymap", "path", a.opts.KeymapPath)
		return km, nil
	}
	if err != nil {
		return nil, err
	}
	km.Merge(user)
	a.logger.Info("loaded user keymap", "path", a.opts.KeymapPath, "bindings", user.Len())
	return km, nil
}

func (a *Application) openFiles() error {
	var first *host.Editor
	for _, path := range a.opts.Files {
		e, err := a.ws.OpenFile(path)
		if err != nil {
			return err
		}
		if first == nil {
			first = e
		}
	}
	if first == nil {
		first = a.ws.Open("", "")
	}
	return a.ws.Focus(first.ID())
}
