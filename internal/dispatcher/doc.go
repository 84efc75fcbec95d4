// Package dispatcher owns the modal editing state of every text surface
// and keeps the host surfaces in sync with it.
//
// # Architecture
//
// A Dispatcher is an explicit context object created by the composition
// root. It never owns surfaces: it stores opaque SurfaceIDs and resolves
// them through the Host on every use, so a closed surface simply stops
// resolving.
//
// Per-surface state is a mode.EditorState. Reads go through State, which
// falls back to a default state whenever there is no live active surface.
// Writes go through Update:
//
//	dispatcher.Update(d, func(d *dispatcher.Dispatcher) struct{} {
//	    d.SetMode(mode.Insert)
//	    return struct{}{}
//	})
//
// Update calls may nest. Once the outermost call returns, the active
// surface is re-synchronized: its cursor shape is set from the mode and
// the keymap context layer is installed under ContextLayerKey while the
// surface is focused.
//
// # Enabling
//
// When disabled, no context layers are installed anywhere, motions are
// no-ops and every tracked surface gets the host's Bar cursor back.
//
// # Thread Safety
//
// A Dispatcher is not safe for concurrent use. All calls must be made on
// the host's UI goroutine; background producers (settings watchers,
// scripts) must post their work onto that goroutine.
package dispatcher
