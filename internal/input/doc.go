// Package input turns keystrokes into actions.
//
// A Handler resolves each keystroke against a keymap in the focused
// surface's key context, dispatches the bound action, runs the
// registered keystroke hooks and finally applies default text handling
// when no hook claimed the keystroke.
//
// # Hooks
//
// Hooks observe every keystroke after resolution. They run in priority
// order and the first one that returns Handled stops the chain. The
// ModalObserver hook keeps the modal layer's pending count consistent
// and suppresses character insertion while a surface is modally
// controlled.
//
// # Key Sequences
//
// Multi-key bindings such as "g g" are accumulated until they resolve or
// stop matching. An exact match is dispatched immediately even when a
// longer binding shares its prefix. A pending sequence older than the
// configured timeout is discarded when the next keystroke arrives.
//
// # Usage
//
//	h := input.NewHandler(km, registry, actx, focused)
//	h.Hooks().RegisterNamed(input.NewModalObserver(d), "hx")
//
//	for ks := range keystrokes {
//	    out := h.HandleKeystroke(ks)
//	    status.Show(out.Result.Message)
//	}
package input
