package window

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j0lol/hxzed/internal/dispatcher/handler"
)

type fakePanes struct {
	calls []string
	err   error
}

func (p *fakePanes) FocusNext() error    { p.calls = append(p.calls, "next"); return p.err }
func (p *fakePanes) FocusPrev() error    { p.calls = append(p.calls, "prev"); return p.err }
func (p *fakePanes) CloseFocused() error { p.calls = append(p.calls, "close"); return p.err }

func TestHandle(t *testing.T) {
	panes := &fakePanes{}
	quit := 0
	r := handler.NewRegistry()
	NewHandler(panes, func() { quit++ }).Register(r)
	ctx := &handler.Context{}

	for _, name := range []string{ActionNextItem, ActionPrevItem, ActionCloseItem, ActionQuit} {
		res := r.Dispatch(handler.Action{Name: name}, ctx)
		assert.True(t, res.IsOK(), name)
	}

	assert.Equal(t, []string{"next", "prev", "close"}, panes.calls)
	assert.Equal(t, 1, quit)
}

func TestHandleError(t *testing.T) {
	errBoom := errors.New("boom")
	r := handler.NewRegistry()
	NewHandler(&fakePanes{err: errBoom}, nil).Register(r)

	res := r.Dispatch(handler.Action{Name: ActionCloseItem}, &handler.Context{})
	require.True(t, res.IsError())
	assert.ErrorIs(t, res.Error, errBoom)

	res = r.Dispatch(handler.Action{Name: ActionQuit}, &handler.Context{})
	assert.Equal(t, handler.StatusNoOp, res.Status)
}
