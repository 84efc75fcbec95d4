// Package keymap resolves keystroke sequences to actions.
//
// A Keymap is an ordered list of bindings. Each binding maps a key
// sequence to an action name and an optional argument, guarded by a
// context predicate evaluated against the focused surface's key context:
//
//	Editor && HelixControl
//	Editor && editing_mode == insert
//	!HelixControl
//
// Terms are joined with "&&". A term is a bare identifier, a negated
// identifier, or a "key == value" / "key != value" comparison.
//
// When several bindings match, the one added last wins, so user keymaps
// loaded after the defaults override them.
//
// Keymaps are written in YAML as a list of sections:
//
//	- context: Editor && HelixControl
//	  bindings:
//	    j: hx::Down
//	    "2": [hx::Number, "2"]
package keymap
