package handler_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j0lol/hxzed/internal/dispatcher/handler"
)

func TestActionNamespace(t *testing.T) {
	tests := []struct {
		name string
		ns   string
	}{
		{"hx::Down", "hx"},
		{"workspace::ToggleHelixMode", "workspace"},
		{"plain", ""},
	}

	for _, tt := range tests {
		a := handler.Action{Name: tt.name}
		assert.Equal(t, tt.ns, a.Namespace(), tt.name)
	}

	assert.True(t, handler.Action{Name: "hx::Up"}.InNamespace("hx"))
	assert.False(t, handler.Action{Name: "hxx::Up"}.InNamespace("hx"))
	assert.Equal(t, "hx::SwitchMode(insert)", handler.Action{Name: "hx::SwitchMode", Arg: "insert"}.String())
}

func TestResultStatus(t *testing.T) {
	assert.Equal(t, "ok", handler.StatusOK.String())
	assert.Equal(t, "no-op", handler.StatusNoOp.String())
	assert.Equal(t, "error", handler.StatusError.String())
	assert.Equal(t, "unknown", handler.ResultStatus(99).String())
}

func TestResultBuilders(t *testing.T) {
	r := handler.Success().WithModeChange("insert").WithMessage("-- INSERT --")
	assert.True(t, r.IsOK())
	assert.Equal(t, "insert", r.ModeChange)
	assert.Equal(t, "-- INSERT --", r.Message)

	r = handler.Errorf("bad %d", 1)
	assert.True(t, r.IsError())
	assert.EqualError(t, r.Error, "bad 1")

	assert.Equal(t, "why", handler.NoOpWithMessage("why").Message)
}

func TestNilHandlerFunc(t *testing.T) {
	var fn handler.HandlerFunc
	assert.True(t, fn.Handle(handler.Action{}, &handler.Context{}).IsError())
}

func TestRegistry(t *testing.T) {
	r := handler.NewRegistry()
	r.RegisterFunc("hx::Up", func(handler.Action, *handler.Context) handler.Result {
		return handler.Success()
	})
	r.RegisterFunc("hx::Down", func(handler.Action, *handler.Context) handler.Result {
		return handler.NoOp()
	})

	assert.True(t, r.Has("hx::Up"))
	assert.False(t, r.Has("hx::Left"))
	assert.Equal(t, []string{"hx::Down", "hx::Up"}, r.List())
	assert.Equal(t, 2, r.Count())

	r.Unregister("hx::Up")
	assert.Nil(t, r.Get("hx::Up"))
}

func TestRegistryDispatch(t *testing.T) {
	r := handler.NewRegistry()
	var got handler.Action
	r.RegisterFunc("hx::SwitchMode", func(a handler.Action, _ *handler.Context) handler.Result {
		got = a
		return handler.Success()
	})

	res := r.Dispatch(handler.Action{Name: "hx::SwitchMode", Arg: "insert"}, &handler.Context{})

	require.True(t, res.IsOK())
	assert.Equal(t, "insert", got.Arg)

	stats := r.Metrics().ActionStats("hx::SwitchMode")
	require.NotNil(t, stats)
	assert.Equal(t, uint64(1), stats.DispatchCount)
}

func TestRegistryDispatchUnknown(t *testing.T) {
	r := handler.NewRegistry()

	res := r.Dispatch(handler.Action{Name: "hx::Nope"}, &handler.Context{})

	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Error, handler.ErrNoHandler))
}

func TestRegistryRecoversPanics(t *testing.T) {
	r := handler.NewRegistry()
	r.RegisterFunc("boom", func(handler.Action, *handler.Context) handler.Result {
		panic("kaboom")
	})

	res := r.Dispatch(handler.Action{Name: "boom"}, &handler.Context{})

	require.True(t, res.IsError())
	assert.True(t, errors.Is(res.Error, handler.ErrPanic))
	assert.Equal(t, uint64(1), r.Metrics().TotalPanics())
	assert.Equal(t, uint64(1), r.Metrics().TotalErrors())
}

func TestMetricsTopActions(t *testing.T) {
	m := handler.NewMetrics()
	m.RecordDispatch("a", 0, handler.StatusOK)
	m.RecordDispatch("b", 0, handler.StatusNoOp)
	m.RecordDispatch("b", 0, handler.StatusOK)

	top := m.TopActions(5)
	require.Len(t, top, 2)
	assert.Equal(t, "b", top[0].Name)
	assert.Equal(t, uint64(1), top[0].NoOpCount)
	assert.Equal(t, uint64(3), m.TotalDispatches())
	assert.Len(t, m.TopActions(1), 1)
	assert.Nil(t, m.ActionStats("missing"))
}
