package dispatcher

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j0lol/hxzed/internal/input/mode"
)

func newEnabled(t *testing.T) (*Dispatcher, *fakeHost) {
	t.Helper()
	h := newFakeHost()
	return New(h, WithEnabled(true)), h
}

func focus(d *Dispatcher, h *fakeHost, id SurfaceID) {
	h.focus(id)
	d.HandleFocused(id)
}

func TestStateDefaultsWithoutActiveSurface(t *testing.T) {
	d, _ := newEnabled(t)

	assert.Equal(t, mode.Normal, d.State().Mode)
	_, ok := d.Active()
	assert.False(t, ok)
}

func TestWithDefaultMode(t *testing.T) {
	h := newFakeHost()
	d := New(h, WithEnabled(true), WithDefaultMode(mode.Insert))
	a := h.open("a")

	focus(d, h, "a")

	assert.Equal(t, mode.Insert, d.State().Mode)
	assert.Equal(t, mode.CursorBar, a.shape)
}

func TestFocusInstallsLayer(t *testing.T) {
	d, h := newEnabled(t)
	a := h.open("a", "text")

	focus(d, h, "a")

	assert.Equal(t, mode.CursorBlock, a.shape)
	ctx, ok := a.layer()
	require.True(t, ok)
	v, _ := ctx.Get(mode.ContextKeyMode)
	assert.Equal(t, "normal", v)
	assert.True(t, ctx.Contains(mode.ContextModalControl))
}

func TestModeScenarioAcrossSurfaces(t *testing.T) {
	d, h := newEnabled(t)
	a := h.open("a")
	b := h.open("b")

	focus(d, h, "a")
	require.NoError(t, d.SetMode(mode.Insert))

	assert.Equal(t, mode.Insert, d.State().Mode)
	assert.Equal(t, mode.CursorBar, a.shape)
	ctx, ok := a.layer()
	require.True(t, ok)
	v, _ := ctx.Get(mode.ContextKeyMode)
	assert.Equal(t, "insert", v)
	assert.False(t, ctx.Contains(mode.ContextModalControl))

	focus(d, h, "b")

	_, ok = a.layer()
	assert.False(t, ok, "unfocused surface keeps no layer")
	assert.Equal(t, mode.CursorBar, a.shape)
	assert.Equal(t, mode.Normal, d.State().Mode)
	assert.Equal(t, mode.CursorBlock, b.shape)
	_, ok = b.layer()
	assert.True(t, ok)

	// returning restores the per-surface state
	focus(d, h, "a")
	assert.Equal(t, mode.Insert, d.State().Mode)
	assert.Equal(t, mode.CursorBar, a.shape)
}

func TestClosedActiveSurfaceFallsBackToDefault(t *testing.T) {
	d, h := newEnabled(t)
	h.open("a")
	focus(d, h, "a")
	require.NoError(t, d.SetMode(mode.Insert))

	h.close("a")

	assert.Equal(t, mode.Normal, d.State().Mode)
	assert.False(t, d.UpdateActiveSurface(func(Surface) { t.Fatal("closed surface resolved") }))
	assert.True(t, errors.Is(d.SetMode(mode.Insert), ErrNoActiveSurface))

	d.HandleClosed("a")
	_, ok := d.Active()
	assert.False(t, ok)
	assert.Empty(t, d.Tracked())
}

func TestDisabledIgnoresFocus(t *testing.T) {
	h := newFakeHost()
	d := New(h)
	a := h.open("a")

	focus(d, h, "a")

	_, ok := d.Active()
	assert.False(t, ok)
	assert.Empty(t, a.layers)
	assert.True(t, errors.Is(d.SetMode(mode.Insert), ErrDisabled))
}

func TestSetEnabled(t *testing.T) {
	h := newFakeHost()
	d := New(h)
	a := h.open("a")
	b := h.open("b")
	h.focus("a")

	d.SetEnabled(true)

	id, ok := d.Active()
	require.True(t, ok)
	assert.Equal(t, SurfaceID("a"), id)
	_, ok = a.layer()
	assert.True(t, ok)
	assert.Equal(t, mode.CursorBlock, a.shape)

	focus(d, h, "b")
	ok, err := d.PushCountDigit(3)
	require.NoError(t, err)
	require.True(t, ok)

	d.SetEnabled(false)

	assert.False(t, d.Enabled())
	_, ok = d.Active()
	assert.False(t, ok)
	for _, s := range []*fakeSurface{a, b} {
		assert.Empty(t, s.layers, "surface %s", s.id)
		assert.Equal(t, mode.CursorBar, s.shape, "surface %s", s.id)
	}
	_, pending := d.Count()
	assert.False(t, pending)

	// idempotent
	d.SetEnabled(false)
	assert.False(t, d.Enabled())
}

func TestSynchronizeIsIdempotent(t *testing.T) {
	d, h := newEnabled(t)
	a := h.open("a")
	focus(d, h, "a")

	d.Synchronize("a")
	first, _ := a.layer()
	d.Synchronize("a")
	second, _ := a.layer()

	assert.True(t, first.Equal(second))
	assert.Len(t, a.layers, 1)

	// unknown surfaces are skipped
	d.Synchronize("missing")
}

func TestNestedUpdateSynchronizesOnce(t *testing.T) {
	d, h := newEnabled(t)
	a := h.open("a")
	focus(d, h, "a")

	var innerShape mode.CursorShape
	got := Update(d, func(d *Dispatcher) int {
		Update(d, func(d *Dispatcher) struct{} {
			require.NoError(t, d.SetMode(mode.Insert))
			return struct{}{}
		})
		innerShape = a.shape
		return 42
	})

	assert.Equal(t, 42, got)
	assert.Equal(t, mode.CursorBlock, innerShape, "no sync before outermost update returns")
	assert.Equal(t, mode.CursorBar, a.shape)
}

func TestOnModeChange(t *testing.T) {
	d, h := newEnabled(t)
	a := h.open("a")
	focus(d, h, "a")

	type change struct {
		id       SurfaceID
		from, to mode.Mode
		shape    mode.CursorShape
	}
	var got []change
	unregister := d.OnModeChange(func(id SurfaceID, from, to mode.Mode) {
		got = append(got, change{id, from, to, a.shape})
	})

	require.NoError(t, d.SetMode(mode.Insert))
	require.NoError(t, d.SetMode(mode.Insert))
	require.Len(t, got, 1)
	assert.Equal(t, change{"a", mode.Normal, mode.Insert, mode.CursorBar}, got[0])

	unregister()
	require.NoError(t, d.SetMode(mode.Normal))
	assert.Len(t, got, 1)
}

func TestModeChangeCallbackMayUpdate(t *testing.T) {
	d, h := newEnabled(t)
	h.open("a")
	focus(d, h, "a")

	d.OnModeChange(func(_ SurfaceID, _, to mode.Mode) {
		if to == mode.Insert {
			_ = d.SetMode(mode.Normal)
		}
	})

	require.NoError(t, d.SetMode(mode.Insert))
	assert.Equal(t, mode.Normal, d.State().Mode)
}

func TestCount(t *testing.T) {
	d, h := newEnabled(t)
	h.open("a")
	focus(d, h, "a")

	ok, err := d.PushCountDigit(0)
	require.NoError(t, err)
	assert.False(t, ok, "leading zero is not a count")

	for _, digit := range []int{1, 2, 0} {
		ok, err = d.PushCountDigit(digit)
		require.NoError(t, err)
		require.True(t, ok)
	}
	n, pending := d.Count()
	assert.True(t, pending)
	assert.Equal(t, 120, n)

	n, pending = d.TakeCount()
	assert.True(t, pending)
	assert.Equal(t, 120, n)
	_, pending = d.Count()
	assert.False(t, pending)

	_, err = d.PushCountDigit(11)
	assert.True(t, errors.Is(err, ErrInvalidDigit))

	for range 8 {
		_, _ = d.PushCountDigit(9)
	}
	n, _ = d.Count()
	assert.Equal(t, MaxCount, n)

	d.ClearCount()
	_, pending = d.Count()
	assert.False(t, pending)
}

func TestUpdateActiveSurface(t *testing.T) {
	d, h := newEnabled(t)
	h.open("a")

	assert.False(t, d.UpdateActiveSurface(func(Surface) {}))

	focus(d, h, "a")
	var seen SurfaceID
	assert.True(t, d.UpdateActiveSurface(func(s Surface) { seen = s.ID() }))
	assert.Equal(t, SurfaceID("a"), seen)
}
