package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/dispatcher/handler"
	modehandlers "github.com/j0lol/hxzed/internal/dispatcher/handlers/mode"
	motionhandlers "github.com/j0lol/hxzed/internal/dispatcher/handlers/motion"
	"github.com/j0lol/hxzed/internal/engine/cursor"
	"github.com/j0lol/hxzed/internal/event"
	"github.com/j0lol/hxzed/internal/host"
	"github.com/j0lol/hxzed/internal/input/key"
	"github.com/j0lol/hxzed/internal/input/keymap"
	"github.com/j0lol/hxzed/internal/input/mode"
)

type env struct {
	d   *dispatcher.Dispatcher
	w   *host.Workspace
	e   *host.Editor
	h   *Handler
	now time.Time
}

func newEnv(t *testing.T, text string, km *keymap.Keymap) *env {
	t.Helper()
	bus := event.NewBus()
	w := host.NewWorkspace(bus)
	d := dispatcher.New(w, dispatcher.WithEnabled(true))
	bus.Subscribe(event.SurfaceFocused, func(e event.Event) { d.HandleFocused(dispatcher.SurfaceID(e.Surface)) })
	bus.Subscribe(event.SurfaceClosed, func(e event.Event) { d.HandleClosed(dispatcher.SurfaceID(e.Surface)) })

	e := w.Open("", text)
	require.NoError(t, w.Focus(e.ID()))

	r := handler.NewRegistry()
	motionhandlers.NewHandler().Register(r)
	modehandlers.NewModeHandler().Register(r)

	if km == nil {
		km = keymap.Default()
	}
	env := &env{d: d, w: w, e: e, now: time.Unix(0, 0)}
	target := func() (Target, bool) {
		f := w.Focused()
		if f == nil {
			return nil, false
		}
		return f, true
	}
	env.h = NewHandler(km, r, &handler.Context{Dispatcher: d}, target, WithClock(func() time.Time { return env.now }))
	env.h.Hooks().RegisterNamed(NewModalObserver(d), "hx")
	return env
}

func (e *env) press(t *testing.T, keys ...string) Outcome {
	t.Helper()
	var out Outcome
	for _, k := range keys {
		ks, err := key.Parse(k)
		require.NoError(t, err)
		out = e.h.HandleKeystroke(ks)
	}
	return out
}

func (e *env) head() cursor.Point {
	return e.e.Primary().Head
}

func TestNormalModeMotion(t *testing.T) {
	e := newEnv(t, "abc\ndef\nghi", nil)

	out := e.press(t, "j")

	require.NotNil(t, out.Action)
	assert.Equal(t, "hx::Down", out.Action.Name)
	assert.True(t, out.Result.IsOK())
	assert.Equal(t, Handled, out.Verdict)
	assert.Equal(t, cursor.Point{Line: 1}, e.head())
}

func TestNormalModeSuppressesText(t *testing.T) {
	e := newEnv(t, "abc", nil)

	out := e.press(t, "x")

	assert.Nil(t, out.Action)
	assert.Equal(t, Handled, out.Verdict)
	assert.False(t, out.Inserted)
	assert.Equal(t, "abc", e.e.Text())
}

func TestInsertModeTyping(t *testing.T) {
	e := newEnv(t, "abc", nil)

	e.press(t, "i")
	require.Equal(t, mode.Insert, e.d.State().Mode)

	out := e.press(t, "j")
	assert.Equal(t, FallThrough, out.Verdict)
	assert.True(t, out.Inserted)

	e.press(t, "space", "enter", "x", "backspace")
	assert.Equal(t, "j \nabc", e.e.Text())

	e.press(t, "escape")
	assert.Equal(t, mode.Normal, e.d.State().Mode)
	e.press(t, "y")
	assert.Equal(t, "j \nabc", e.e.Text())
}

func TestCountPrefix(t *testing.T) {
	e := newEnv(t, "a\nb\nc\nd\ne", nil)

	e.press(t, "3", "j")

	assert.Equal(t, cursor.Point{Line: 3}, e.head())
	_, pending := e.d.Count()
	assert.False(t, pending)
}

func TestUnboundKeyClearsCount(t *testing.T) {
	e := newEnv(t, "a\nb\nc\nd\ne", nil)

	e.press(t, "3", "x", "j")

	assert.Equal(t, cursor.Point{Line: 1}, e.head())
}

func TestForeignActionClearsCount(t *testing.T) {
	e := newEnv(t, "a\nb\nc\nd\ne", nil)

	out := e.press(t, "3", "ctrl-s")
	assert.True(t, out.Result.IsError(), "no save handler registered")
	assert.ErrorIs(t, out.Result.Error, handler.ErrNoHandler)
	_, pending := e.d.Count()
	assert.False(t, pending)

	e.press(t, "j")
	assert.Equal(t, cursor.Point{Line: 1}, e.head())
}

func TestToggleDisablesLayer(t *testing.T) {
	e := newEnv(t, "abc", nil)

	out := e.press(t, "ctrl-t")
	require.NotNil(t, out.Action)
	assert.False(t, e.d.Enabled())
	assert.Equal(t, mode.CursorBar, e.e.CursorShape())

	out = e.press(t, "j")
	assert.Nil(t, out.Action)
	assert.True(t, out.Inserted)
	assert.Equal(t, "jabc", e.e.Text())

	e.press(t, "ctrl-t")
	assert.True(t, e.d.Enabled())
	e.press(t, "j")
	assert.Equal(t, "jabc", e.e.Text())
}

func TestMultiKeySequence(t *testing.T) {
	km := keymap.Default()
	require.NoError(t, km.Add(keymap.NewBinding("g g", "hx::Up").WithContext("Editor && HelixControl")))
	e := newEnv(t, "a\nb\nc\nd", km)
	e.e.SetSelections(cursor.NewCursorSelection(cursor.Point{Line: 3}))

	e.press(t, "3")
	out := e.press(t, "g")
	assert.True(t, out.Pending)
	assert.Equal(t, FallThrough, out.Verdict)
	assert.False(t, out.Inserted)
	assert.Equal(t, "g", e.h.PendingKeys())
	n, pending := e.d.Count()
	assert.True(t, pending, "pending keystrokes keep the count")
	assert.Equal(t, 3, n)

	out = e.press(t, "g")
	require.NotNil(t, out.Action)
	assert.Equal(t, "hx::Up", out.Action.Name)
	assert.Equal(t, cursor.Point{Line: 0}, e.head())
	assert.Empty(t, e.h.PendingKeys())
}

func TestAbandonedPrefixResolvesLastKey(t *testing.T) {
	km := keymap.Default()
	require.NoError(t, km.Add(keymap.NewBinding("g g", "hx::Up")))
	e := newEnv(t, "a\nb", km)

	e.press(t, "g")
	out := e.press(t, "j")

	require.NotNil(t, out.Action)
	assert.Equal(t, "hx::Down", out.Action.Name)
	assert.Equal(t, cursor.Point{Line: 1}, e.head())
}

func TestSequenceTimeout(t *testing.T) {
	km := keymap.Default()
	require.NoError(t, km.Add(keymap.NewBinding("g g", "hx::Up")))
	e := newEnv(t, "a\nb", km)

	e.press(t, "g")
	e.now = e.now.Add(2 * time.Second)
	out := e.press(t, "g")

	assert.True(t, out.Pending)
	assert.Nil(t, out.Action)
	assert.Equal(t, "g", e.h.PendingKeys())
	assert.Equal(t, uint64(1), e.h.Metrics().Snapshot().SequenceTimeouts)
}

func TestNoFocusedTarget(t *testing.T) {
	e := newEnv(t, "abc", nil)
	require.NoError(t, e.w.Close(e.e.ID()))

	out := e.press(t, "x")

	assert.False(t, out.Inserted)
	out = e.press(t, "j")
	assert.Nil(t, out.Action, "hx bindings need the Editor context")
	assert.Equal(t, Handled, out.Verdict)
}

func TestDispatchDirect(t *testing.T) {
	e := newEnv(t, "a\nb", nil)

	res := e.h.Dispatch(handler.Action{Name: "hx::SwitchMode", Arg: "insert"})

	assert.True(t, res.IsOK())
	assert.Equal(t, mode.Insert, e.d.State().Mode)
}

func TestHandlerMetrics(t *testing.T) {
	e := newEnv(t, "a\nb", nil)

	e.press(t, "j", "i", "z")

	snap := e.h.Metrics().Snapshot()
	assert.Equal(t, uint64(3), snap.KeystrokesTotal)
	assert.Equal(t, uint64(2), snap.ActionsTotal)
	assert.Equal(t, uint64(1), snap.InsertionsTotal)
	assert.Equal(t, uint64(2), snap.HookConsumptions)
}
