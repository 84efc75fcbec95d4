package dispatcher

import (
	"github.com/j0lol/hxzed/internal/engine/cursor"
	"github.com/j0lol/hxzed/internal/input/mode"
	"github.com/j0lol/hxzed/internal/renderer/layout"
)

// ContextLayerKey identifies the keymap context layer installed on
// surfaces by the dispatcher.
const ContextLayerKey = "hx"

// SurfaceID is the opaque, stable identity of a host text surface.
type SurfaceID string

// Surface is the host-side text editing surface the dispatcher drives.
type Surface interface {
	// ID returns the surface identity.
	ID() SurfaceID

	// LayoutSnapshot returns the current wrapped layout.
	LayoutSnapshot() *layout.Snapshot

	// MutateSelections runs fn with the current layout and selection
	// set. fn reports whether it changed the selections; the surface
	// emits a selection-change notification only in that case.
	MutateSelections(fn func(snap *layout.Snapshot, sels *cursor.Set) bool)

	// Selections returns a copy of the current selections.
	Selections() []cursor.Selection

	// SetCursorShape sets the caret shape.
	SetCursorShape(shape mode.CursorShape)

	// InstallContextLayer adds or replaces the keymap context layer
	// registered under key.
	InstallContextLayer(key string, ctx mode.KeyContext)

	// RemoveContextLayer removes the layer under key, if any.
	RemoveContextLayer(key string)

	// IsFocused reports whether the surface has input focus.
	IsFocused() bool
}

// Host resolves surface identities to live surfaces.
type Host interface {
	// Surface returns the live surface for id. ok is false once the
	// surface has been closed.
	Surface(id SurfaceID) (Surface, bool)

	// FocusedSurface returns the surface holding input focus, if any.
	FocusedSurface() (SurfaceID, bool)
}
