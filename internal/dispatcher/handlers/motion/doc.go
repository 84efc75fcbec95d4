// Package motion provides handlers for modal cursor motions.
//
// # Motion Operations
//
//   - hx::Down (j): move every cursor down one display row
//   - hx::Up (k): move every cursor up one display row
//   - hx::AddCursorBelow (C): add a cursor one display row below each
//   - hx::AddCursorAbove (alt-C): add a cursor one display row above each
//
// All motions consume the pending repeat count and act only in Normal
// mode; in Insert mode, or while the modal layer is disabled, they are
// no-ops.
//
// # Usage
//
//	motion.NewHandler().Register(registry)
package motion
