package host

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/event"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// Workspace owns the open editors and tracks focus.
type Workspace struct {
	bus     *event.Bus
	logger  *slog.Logger
	opts    layout.Options
	editors map[dispatcher.SurfaceID]*Editor
	order   []dispatcher.SurfaceID
	focused dispatcher.SurfaceID
}

// Option configures a Workspace.
type Option func(*Workspace)

// WithLayoutOptions sets the layout options of new editors.
func WithLayoutOptions(opts layout.Options) Option {
	return func(w *Workspace) {
		w.opts = opts
	}
}

// WithLogger sets the workspace logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Workspace) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWorkspace creates an empty workspace publishing on bus.
func NewWorkspace(bus *event.Bus, opts ...Option) *Workspace {
	w := &Workspace{
		bus:     bus,
		logger:  slog.Default(),
		opts:    layout.DefaultOptions(),
		editors: make(map[dispatcher.SurfaceID]*Editor),
	}
	for _, opt := range opts {
		opt(w)
	}
	w.logger = w.logger.With("component", "workspace")
	return w
}

// Bus returns the event bus.
func (w *Workspace) Bus() *event.Bus {
	return w.bus
}

// Open creates an editor holding text and announces it.
func (w *Workspace) Open(path, text string) *Editor {
	id := dispatcher.SurfaceID(uuid.NewString())
	e := newEditor(id, path, splitLines(strings.TrimSuffix(text, "\n")), w.opts)
	e.onSelections = func(id dispatcher.SurfaceID) {
		w.bus.Publish(event.New(event.SelectionsChanged, string(id)))
	}
	w.editors[id] = e
	w.order = append(w.order, id)
	w.logger.Debug("editor opened", "surface", id, "path", path)
	w.bus.Publish(event.New(event.SurfaceCreated, string(id)))
	return e
}

// OpenFile opens path. A missing file opens as an empty buffer.
func (w *Workspace) OpenFile(path string) (*Editor, error) {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return w.Open(path, string(data)), nil
}

// Editor returns the editor for id.
func (w *Workspace) Editor(id dispatcher.SurfaceID) (*Editor, bool) {
	e, ok := w.editors[id]
	return e, ok
}

// Editors returns the open editors in opening order.
func (w *Workspace) Editors() []*Editor {
	out := make([]*Editor, 0, len(w.order))
	for _, id := range w.order {
		out = append(out, w.editors[id])
	}
	return out
}

// Surface implements dispatcher.Host.
func (w *Workspace) Surface(id dispatcher.SurfaceID) (dispatcher.Surface, bool) {
	e, ok := w.editors[id]
	if !ok {
		return nil, false
	}
	return e, true
}

// FocusedSurface implements dispatcher.Host.
func (w *Workspace) FocusedSurface() (dispatcher.SurfaceID, bool) {
	if w.focused == "" {
		return "", false
	}
	return w.focused, true
}

// Focused returns the focused editor, or nil.
func (w *Workspace) Focused() *Editor {
	return w.editors[w.focused]
}

// Focus gives input focus to id and announces it.
func (w *Workspace) Focus(id dispatcher.SurfaceID) error {
	e, ok := w.editors[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSurface, id)
	}
	if prev, ok := w.editors[w.focused]; ok {
		prev.focused = false
	}
	e.focused = true
	w.focused = id
	w.bus.Publish(event.New(event.SurfaceFocused, string(id)))
	return nil
}

// FocusNext moves focus to the next editor in opening order.
func (w *Workspace) FocusNext() error {
	if len(w.order) == 0 {
		return ErrUnknownSurface
	}
	i := slices.Index(w.order, w.focused)
	return w.Focus(w.order[(i+1)%len(w.order)])
}

// FocusPrev moves focus to the previous editor in opening order.
func (w *Workspace) FocusPrev() error {
	n := len(w.order)
	if n == 0 {
		return ErrUnknownSurface
	}
	i := slices.Index(w.order, w.focused)
	if i < 0 {
		return w.Focus(w.order[n-1])
	}
	return w.Focus(w.order[(i+n-1)%n])
}

// CloseFocused closes the focused editor.
func (w *Workspace) CloseFocused() error {
	if w.focused == "" {
		return ErrUnknownSurface
	}
	return w.Close(w.focused)
}

// Close closes id. If it held focus, the next editor is focused.
func (w *Workspace) Close(id dispatcher.SurfaceID) error {
	if _, ok := w.editors[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownSurface, id)
	}
	i := slices.Index(w.order, id)
	delete(w.editors, id)
	w.order = slices.Delete(w.order, i, i+1)
	wasFocused := w.focused == id
	if wasFocused {
		w.focused = ""
	}
	w.logger.Debug("editor closed", "surface", id)
	w.bus.Publish(event.New(event.SurfaceClosed, string(id)))

	if wasFocused && len(w.order) > 0 {
		return w.Focus(w.order[min(i, len(w.order)-1)])
	}
	return nil
}

// ContextFor returns the keymap context of editor id.
func (w *Workspace) ContextFor(id dispatcher.SurfaceID) mode.KeyContext {
	e, ok := w.editors[id]
	if !ok {
		return mode.NewKeyContext()
	}
	return e.KeyContext()
}

// SetLayoutOptions changes layout options of every editor.
func (w *Workspace) SetLayoutOptions(opts layout.Options) {
	w.opts = opts
	for _, e := range w.editors {
		e.SetLayoutOptions(opts)
	}
}
