// Package lua runs user scripts that observe and drive the modal layer.
//
// Scripts run in a sandboxed gopher-lua state with only the base, table,
// string and math libraries. Functions that load code from disk or from
// strings are removed, and print is redirected to the logger.
//
// A global hx table exposes the dispatcher:
//
//	hx.mode()              -- "normal" or "insert" for the active editor
//	hx.set_mode(name)      -- returns true, or nil and an error message
//	hx.enabled()           -- whether the modal layer is on
//	hx.set_enabled(bool)
//	hx.count()             -- pending repeat count, or nil
//	hx.on_mode_change(fn)  -- fn(surface_id, mode) after every mode change
//	hx.log(msg)
//
// For example:
//
//	hx.on_mode_change(function(id, mode)
//	    hx.log(id .. " is now in " .. mode)
//	end)
//
// A State is not safe for concurrent use. Like the dispatcher it is
// bound to, it must only be used from the UI goroutine.
package lua
