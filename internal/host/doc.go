// Package host provides an in-memory reference host for the modal
// dispatcher: text editors implementing dispatcher.Surface and a
// workspace implementing dispatcher.Host.
//
// The workspace publishes surface lifecycle events on an event.Bus. It
// owns its editors; the dispatcher only ever holds their ids.
//
// Editors also provide the host's default text handling (InsertText,
// Backspace, Newline), which runs whenever the modal layer lets a
// keystroke fall through.
package host
