package dispatcher

import "github.com/j0lol/hxzed/internal/input/mode"

// Synchronize pushes the recorded state of id onto its surface: cursor
// shape from the mode, and the keymap context layer while focused. When
// the layer is disabled the context layer is removed and the host's Bar
// cursor restored. A surface the host no longer resolves is skipped.
func (d *Dispatcher) Synchronize(id SurfaceID) {
	s, ok := d.host.Surface(id)
	if !ok {
		return
	}
	if !d.enabled {
		s.RemoveContextLayer(ContextLayerKey)
		s.SetCursorShape(mode.CursorBar)
		return
	}

	st := d.StateFor(id)
	s.SetCursorShape(st.CursorShape())
	if s.IsFocused() {
		s.InstallContextLayer(ContextLayerKey, st.KeymapContextLayer())
	} else {
		s.RemoveContextLayer(ContextLayerKey)
	}
}
