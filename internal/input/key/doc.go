// Package key provides keystroke representation and parsing.
//
// Keystrokes are written as optional modifiers followed by a key, joined
// with "-" or "+":
//
//	i           a character
//	shift-a     a modified character
//	ctrl-c      control chord
//	escape      a named key
//
// A Sequence is a space-separated list of keystrokes such as "g g".
package key
