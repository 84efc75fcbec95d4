package lua

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/input/mode"
)

// API binds the hx global table to a dispatcher.
type API struct {
	state       *State
	d           *dispatcher.Dispatcher
	unsubscribe []func()
}

// Install creates the hx table in s, bound to d.
func Install(s *State, d *dispatcher.Dispatcher) *API {
	api := &API{state: s, d: d}
	mod := s.L.SetFuncs(s.L.NewTable(), map[string]lua.LGFunction{
		"mode":           api.mode,
		"set_mode":       api.setMode,
		"enabled":        api.enabled,
		"set_enabled":    api.setEnabled,
		"count":          api.count,
		"on_mode_change": api.onModeChange,
		"log":            api.log,
	})
	s.L.SetGlobal("hx", mod)
	return api
}

// Close unregisters every callback the script registered.
func (a *API) Close() {
	for _, fn := range a.unsubscribe {
		fn()
	}
	a.unsubscribe = nil
}

func (a *API) mode(L *lua.LState) int {
	L.Push(lua.LString(a.d.State().Mode.String()))
	return 1
}

func (a *API) setMode(L *lua.LState) int {
	m, err := mode.ParseMode(L.CheckString(1))
	if err != nil {
		L.ArgError(1, err.Error())
		return 0
	}
	err = dispatcher.Update(a.d, func(d *dispatcher.Dispatcher) error {
		return d.SetMode(m)
	})
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (a *API) enabled(L *lua.LState) int {
	L.Push(lua.LBool(a.d.Enabled()))
	return 1
}

func (a *API) setEnabled(L *lua.LState) int {
	enabled := L.CheckBool(1)
	dispatcher.Update(a.d, func(d *dispatcher.Dispatcher) struct{} {
		d.SetEnabled(enabled)
		return struct{}{}
	})
	return 0
}

func (a *API) count(L *lua.LState) int {
	n, ok := a.d.Count()
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LNumber(n))
	return 1
}

func (a *API) onModeChange(L *lua.LState) int {
	fn := L.CheckFunction(1)
	unsubscribe := a.d.OnModeChange(func(id dispatcher.SurfaceID, _, to mode.Mode) {
		if err := a.state.CallFunction(fn, lua.LString(id), lua.LString(to.String())); err != nil {
			a.state.logger.Error("mode change callback failed", "surface", id, "error", err)
		}
	})
	a.unsubscribe = append(a.unsubscribe, unsubscribe)
	return 0
}

func (a *API) log(L *lua.LState) int {
	a.state.logger.Info(L.CheckString(1))
	return 0
}
