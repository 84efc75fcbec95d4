package dispatcher

import (
	"github.com/j0lol/hxzed/internal/engine/cursor"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

type fakeSurface struct {
	id      SurfaceID
	lines   []string
	sels    *cursor.Set
	shape   mode.CursorShape
	layers  map[string]mode.KeyContext
	focused bool
	changes int
}

func newFakeSurface(id SurfaceID, lines ...string) *fakeSurface {
	return &fakeSurface{
		id:     id,
		lines:  lines,
		sels:   cursor.NewSet(),
		shape:  mode.CursorBar,
		layers: make(map[string]mode.KeyContext),
	}
}

func (s *fakeSurface) ID() SurfaceID { return s.id }

func (s *fakeSurface) LayoutSnapshot() *layout.Snapshot {
	return layout.NewSnapshot(s.lines, layout.DefaultOptions())
}

func (s *fakeSurface) MutateSelections(fn func(*layout.Snapshot, *cursor.Set) bool) {
	if fn(s.LayoutSnapshot(), s.sels) {
		s.changes++
	}
}

func (s *fakeSurface) Selections() []cursor.Selection { return s.sels.All() }

func (s *fakeSurface) SetCursorShape(shape mode.CursorShape) { s.shape = shape }

func (s *fakeSurface) InstallContextLayer(key string, ctx mode.KeyContext) { s.layers[key] = ctx }

func (s *fakeSurface) RemoveContextLayer(key string) { delete(s.layers, key) }

func (s *fakeSurface) IsFocused() bool { return s.focused }

func (s *fakeSurface) layer() (mode.KeyContext, bool) {
	ctx, ok := s.layers[ContextLayerKey]
	return ctx, ok
}

type fakeHost struct {
	surfaces map[SurfaceID]*fakeSurface
	focused  SurfaceID
}

func newFakeHost() *fakeHost {
	return &fakeHost{surfaces: make(map[SurfaceID]*fakeSurface)}
}

func (h *fakeHost) open(id SurfaceID, lines ...string) *fakeSurface {
	s := newFakeSurface(id, lines...)
	h.surfaces[id] = s
	return s
}

func (h *fakeHost) focus(id SurfaceID) {
	for sid, s := range h.surfaces {
		s.focused = sid == id
	}
	h.focused = id
}

func (h *fakeHost) close(id SurfaceID) {
	delete(h.surfaces, id)
	if h.focused == id {
		h.focused = ""
	}
}

func (h *fakeHost) Surface(id SurfaceID) (Surface, bool) {
	s, ok := h.surfaces[id]
	if !ok {
		return nil, false
	}
	return s, true
}

func (h *fakeHost) FocusedSurface() (SurfaceID, bool) {
	if h.focused == "" {
		return "", false
	}
	return h.focused, true
}
