package lua

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"

	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/event"
	"github.com/j0lol/hxzed/internal/host"
	"github.com/j0lol/hxzed/internal/input/mode"
)

func newLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

type fixture struct {
	d     *dispatcher.Dispatcher
	w     *host.Workspace
	e     *host.Editor
	state *State
	api   *API
	logs  *bytes.Buffer
}

func setup(t *testing.T) *fixture {
	t.Helper()
	bus := event.NewBus()
	w := host.NewWorkspace(bus)
	d := dispatcher.New(w, dispatcher.WithEnabled(true))
	bus.Subscribe(event.SurfaceFocused, func(e event.Event) { d.HandleFocused(dispatcher.SurfaceID(e.Surface)) })
	bus.Subscribe(event.SurfaceClosed, func(e event.Event) { d.HandleClosed(dispatcher.SurfaceID(e.Surface)) })

	e := w.Open("", "abc\ndef")
	require.NoError(t, w.Focus(e.ID()))

	logs := &bytes.Buffer{}
	state := NewState(WithLogger(newLogger(logs)))
	t.Cleanup(func() { _ = state.Close() })
	api := Install(state, d)
	t.Cleanup(api.Close)

	return &fixture{d: d, w: w, e: e, state: state, api: api, logs: logs}
}

func (f *fixture) global(name string) lua.LValue {
	return f.state.GetGlobal(name)
}

func TestSandboxedGlobals(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"io", "os", "debug", "package", "require", "dofile", "loadfile", "load", "loadstring"} {
		assert.Equal(t, lua.LNil, s.GetGlobal(name), name)
	}
	for _, name := range []string{"string", "table", "math", "pairs", "tostring"} {
		assert.NotEqual(t, lua.LNil, s.GetGlobal(name), name)
	}

	require.NoError(t, s.DoString(`x = string.upper("hx") .. math.floor(2.5) .. table.concat({"a", "b"})`))
	assert.Equal(t, "HX2ab", s.GetGlobal("x").String())
}

func TestSandboxRejectsLoaders(t *testing.T) {
	s := NewState()
	defer s.Close()

	assert.Error(t, s.DoString(`os.exit(1)`))
	assert.Error(t, s.DoString(`load("return 1")()`))
}

func TestPrintGoesToLogger(t *testing.T) {
	logs := &bytes.Buffer{}
	s := NewState(WithLogger(newLogger(logs)))
	defer s.Close()

	require.NoError(t, s.DoString(`print("hello", 42)`))
	assert.Contains(t, logs.String(), "hello")
	assert.Contains(t, logs.String(), "component=script")
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(20 * time.Millisecond))
	defer s.Close()

	err := s.DoString(`while true do end`)
	assert.ErrorIs(t, err, ErrExecutionTimeout)

	require.NoError(t, s.DoString(`y = 1`))
}

func TestClosedState(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(`x = 1`), ErrStateClosed)
	assert.Equal(t, lua.LNil, s.GetGlobal("x"))
}

func TestDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	require.NoError(t, os.WriteFile(path, []byte(`loaded = true`), 0o644))

	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoFile(path))
	assert.Equal(t, lua.LTrue, s.GetGlobal("loaded"))
	assert.Error(t, s.DoFile(filepath.Join(t.TempDir(), "missing.lua")))
}

func TestModeAndSetMode(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.state.DoString(`before = hx.mode(); ok = hx.set_mode("insert"); after = hx.mode()`))
	assert.Equal(t, "normal", f.global("before").String())
	assert.Equal(t, lua.LTrue, f.global("ok"))
	assert.Equal(t, "insert", f.global("after").String())
	assert.Equal(t, mode.Insert, f.d.State().Mode)
	assert.Equal(t, mode.CursorBar, f.e.CursorShape())
}

func TestSetModeUnknownName(t *testing.T) {
	f := setup(t)

	err := f.state.DoString(`hx.set_mode("visual")`)
	assert.Error(t, err)
	assert.Equal(t, mode.Normal, f.d.State().Mode)
}

func TestSetModeDisabled(t *testing.T) {
	f := setup(t)
	f.d.SetEnabled(false)

	require.NoError(t, f.state.DoString(`ok, err = hx.set_mode("insert")`))
	assert.Equal(t, lua.LNil, f.global("ok"))
	assert.Contains(t, f.global("err").String(), "disabled")
}

func TestEnabledAndSetEnabled(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.state.DoString(`was = hx.enabled(); hx.set_enabled(false); now = hx.enabled()`))
	assert.Equal(t, lua.LTrue, f.global("was"))
	assert.Equal(t, lua.LFalse, f.global("now"))
	assert.False(t, f.d.Enabled())

	_, ok := f.e.ContextLayer(dispatcher.ContextLayerKey)
	assert.False(t, ok)
}

func TestCount(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.state.DoString(`none = hx.count()`))
	assert.Equal(t, lua.LNil, f.global("none"))

	_, err := f.d.PushCountDigit(4)
	require.NoError(t, err)
	_, err = f.d.PushCountDigit(2)
	require.NoError(t, err)

	require.NoError(t, f.state.DoString(`n = hx.count()`))
	assert.Equal(t, lua.LNumber(42), f.global("n"))
}

func TestOnModeChange(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.state.DoString(`
		changes = {}
		hx.on_mode_change(function(id, m)
			table.insert(changes, m)
			last_id = id
		end)
	`))

	require.NoError(t, f.d.SetMode(mode.Insert))
	require.NoError(t, f.state.DoString(`hx.set_mode("normal")`))

	require.NoError(t, f.state.DoString(`joined = table.concat(changes, ",")`))
	assert.Equal(t, "insert,normal", f.global("joined").String())
	assert.Equal(t, string(f.e.ID()), f.global("last_id").String())
}

func TestOnModeChangeCallbackError(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.state.DoString(`hx.on_mode_change(function() error("boom") end)`))
	require.NoError(t, f.d.SetMode(mode.Insert))

	assert.Contains(t, f.logs.String(), "mode change callback failed")
	assert.Equal(t, mode.Insert, f.d.State().Mode)
}

func TestCloseUnsubscribes(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.state.DoString(`calls = 0; hx.on_mode_change(function() calls = calls + 1 end)`))
	f.api.Close()

	require.NoError(t, f.d.SetMode(mode.Insert))
	assert.Equal(t, lua.LNumber(0), f.global("calls"))
}

func TestLog(t *testing.T) {
	f := setup(t)

	require.NoError(t, f.state.DoString(`hx.log("from script")`))
	assert.Contains(t, f.logs.String(), "from script")
}
