// Package cursor provides selections and multi-cursor sets.
//
// Selections use an anchor/head model in buffer space:
//   - Anchor: where the selection started
//   - Head: the caret, where typing would occur
//
// When Anchor == Head the selection is just a cursor. Each selection also
// carries a layout.Goal so vertical motions keep their column across
// lines of different width.
//
// A Set holds at least one selection, kept sorted by head with duplicate
// heads merged. The first selection is the primary one.
//
// Selection is an immutable value type. Set is not thread-safe; it is
// owned by a single surface and mutated on the UI goroutine.
package cursor
