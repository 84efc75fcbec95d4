package host

import (
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/engine/cursor"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// Base context identifiers present on every editor.
const (
	ContextEditor   = "Editor"
	ContextKeyEMode = "mode"
)

// Editor is an in-memory text surface.
type Editor struct {
	id    dispatcher.SurfaceID
	path  string
	lines []string
	sels  *cursor.Set

	shape   mode.CursorShape
	layers  map[string]mode.KeyContext
	focused bool
	dirty   bool

	opts layout.Options
	snap *layout.Snapshot

	// onSelections is called after a selection mutation changed anything.
	onSelections func(id dispatcher.SurfaceID)
}

func newEditor(id dispatcher.SurfaceID, path string, lines []string, opts layout.Options) *Editor {
	if len(lines) == 0 {
		lines = []string{""}
	}
	return &Editor{
		id:     id,
		path:   path,
		lines:  lines,
		sels:   cursor.NewSet(),
		shape:  mode.CursorBar,
		layers: make(map[string]mode.KeyContext),
		opts:   opts,
	}
}

// ID implements dispatcher.Surface.
func (e *Editor) ID() dispatcher.SurfaceID {
	return e.id
}

// Path returns the file backing the editor, or "".
func (e *Editor) Path() string {
	return e.path
}

// Name returns a display name for the editor.
func (e *Editor) Name() string {
	if e.path == "" {
		return "[scratch]"
	}
	return e.path
}

// Lines returns a copy of the editor lines.
func (e *Editor) Lines() []string {
	return slices.Clone(e.lines)
}

// Text returns the editor contents joined with newlines.
func (e *Editor) Text() string {
	return strings.Join(e.lines, "\n")
}

// Dirty reports unsaved changes.
func (e *Editor) Dirty() bool {
	return e.dirty
}

// SetLayoutOptions changes wrapping and tab settings.
func (e *Editor) SetLayoutOptions(opts layout.Options) {
	if e.opts == opts {
		return
	}
	e.opts = opts
	e.snap = nil
}

// LayoutSnapshot implements dispatcher.Surface. The snapshot is cached
// until the text or layout options change.
func (e *Editor) LayoutSnapshot() *layout.Snapshot {
	if e.snap == nil {
		e.snap = layout.NewSnapshot(e.lines, e.opts)
	}
	return e.snap
}

// MutateSelections implements dispatcher.Surface.
func (e *Editor) MutateSelections(fn func(snap *layout.Snapshot, sels *cursor.Set) bool) {
	if fn(e.LayoutSnapshot(), e.sels) && e.onSelections != nil {
		e.onSelections(e.id)
	}
}

// Selections implements dispatcher.Surface.
func (e *Editor) Selections() []cursor.Selection {
	return e.sels.All()
}

// Primary returns the primary selection.
func (e *Editor) Primary() cursor.Selection {
	return e.sels.Primary()
}

// PrimaryIndex returns the position of the primary selection in
// Selections.
func (e *Editor) PrimaryIndex() int {
	return e.sels.PrimaryIndex()
}

// SetSelections replaces the selections, clipped to the text.
func (e *Editor) SetSelections(sels ...cursor.Selection) {
	e.MutateSelections(func(snap *layout.Snapshot, set *cursor.Set) bool {
		before := set.Clone()
		set.SetAll(sels)
		set.Clip(snap)
		return !set.Equals(before)
	})
}

// SetCursorShape implements dispatcher.Surface.
func (e *Editor) SetCursorShape(shape mode.CursorShape) {
	e.shape = shape
}

// CursorShape returns the current caret shape.
func (e *Editor) CursorShape() mode.CursorShape {
	return e.shape
}

// InstallContextLayer implements dispatcher.Surface.
func (e *Editor) InstallContextLayer(key string, ctx mode.KeyContext) {
	e.layers[key] = ctx
}

// RemoveContextLayer implements dispatcher.Surface.
func (e *Editor) RemoveContextLayer(key string) {
	delete(e.layers, key)
}

// ContextLayer returns the layer installed under key.
func (e *Editor) ContextLayer(key string) (mode.KeyContext, bool) {
	ctx, ok := e.layers[key]
	return ctx, ok
}

// KeyContext returns the editor's base context with every installed
// layer merged on top, in key order.
func (e *Editor) KeyContext() mode.KeyContext {
	ctx := mode.NewKeyContext()
	ctx.Add(ContextEditor)
	ctx.Set(ContextKeyEMode, "full")
	for _, key := range slices.Sorted(maps.Keys(e.layers)) {
		ctx = ctx.Merge(e.layers[key])
	}
	return ctx
}

// IsFocused implements dispatcher.Surface.
func (e *Editor) IsFocused() bool {
	return e.focused
}

// InsertText replaces every selection with text. Text may contain
// newlines.
func (e *Editor) InsertText(text string) {
	e.editEach(func(sel cursor.Selection) (cursor.Point, cursor.Point, string, bool) {
		return sel.Start(), sel.End(), text, true
	})
}

// Newline splits the line at every selection.
func (e *Editor) Newline() {
	e.InsertText("\n")
}

// Backspace deletes each selection, or the grapheme before each cursor,
// joining lines at column 0.
func (e *Editor) Backspace() {
	e.editEach(func(sel cursor.Selection) (cursor.Point, cursor.Point, string, bool) {
		if !sel.IsEmpty() {
			return sel.Start(), sel.End(), "", true
		}
		head := sel.Head
		switch {
		case head.Col > 0:
			return cursor.Point{Line: head.Line, Col: head.Col - 1}, head, "", true
		case head.Line > 0:
			prev := e.LayoutSnapshot().Line(head.Line - 1).Len()
			return cursor.Point{Line: head.Line - 1, Col: prev}, head, "", true
		}
		return head, head, "", false
	})
}

// editEach applies one edit per selection, last selection first, and
// shifts the remaining selections after each edit.
func (e *Editor) editEach(plan func(sel cursor.Selection) (start, end cursor.Point, text string, ok bool)) {
	changed := false
	for i := e.sels.Len() - 1; i >= 0; i-- {
		all := e.sels.All()
		if i >= len(all) {
			continue
		}
		start, end, text, ok := plan(all[i])
		if !ok {
			continue
		}
		var ed cursor.Edit
		e.lines, ed = replaceRange(e.lines, start, end, text)
		e.snap = nil
		cursor.TransformSet(e.sels, ed)
		changed = true
	}
	if !changed {
		return
	}
	e.dirty = true
	e.sels.MapInPlace(func(sel cursor.Selection) cursor.Selection {
		return sel.WithGoal(layout.NoGoal())
	})
	if e.onSelections != nil {
		e.onSelections(e.id)
	}
}

// Save writes the editor contents to its path.
func (e *Editor) Save() error {
	if e.path == "" {
		return ErrNoPath
	}
	if err := os.WriteFile(e.path, []byte(e.Text()+"\n"), 0o644); err != nil {
		return err
	}
	e.dirty = false
	return nil
}
