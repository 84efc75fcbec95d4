// Package mode provides handlers for mode switching operations.
//
// # Mode Operations
//
//   - hx::SwitchMode (Arg: mode name): switch the active surface
//   - hx::InsertBefore (i): collapse selections to their start, enter Insert
//   - hx::NormalBefore (escape): leave Insert for Normal
//   - hx::Number (Arg: digit): append a digit to the repeat count
//   - workspace::ToggleHelixMode: flip the persisted enabled setting
//
// Every action except the toggle is a no-op while the modal layer is
// disabled. The toggle lives in the workspace namespace so it stays
// reachable when the layer is off.
package mode
