// Package mode defines the editing modes of the modal layer and the
// per-surface editor state derived from them.
//
// The mode set is closed: Normal and Insert. Everything a host needs to
// render a surface in a given mode is a pure function of the mode:
//
//	Mode     CursorShape   Keymap context layer
//	───────  ────────────  ───────────────────────────────────────
//	Normal   block         editing_mode=normal HelixControl
//	Insert   bar           editing_mode=insert
//
// State transitions:
//
//	┌────────┐  hx::InsertBefore   ┌────────┐
//	│ Normal │ ──────────────────▶ │ Insert │
//	└────────┘ ◀────────────────── └────────┘
//	     ▲      hx::NormalBefore
//	     └── motions / commands
//
// A surface the dispatcher has never seen starts in Normal.
package mode
