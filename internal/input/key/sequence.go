package key

import "strings"

// Sequence represents a series of keystrokes forming a command.
// Examples: "g g", "ctrl-x ctrl-s".
type Sequence []Keystroke

// ParseSequence parses a space-separated list of keystrokes.
func ParseSequence(spec string) (Sequence, error) {
	fields := strings.Fields(spec)
	if len(fields) == 0 {
		return nil, ErrEmptySpec
	}
	seq := make(Sequence, 0, len(fields))
	for _, f := range fields {
		k, err := Parse(f)
		if err != nil {
			return nil, err
		}
		seq = append(seq, k)
	}
	return seq, nil
}

// String returns the canonical notation of the sequence.
func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, k := range s {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}

// HasPrefix returns true if prefix is a prefix of s.
func (s Sequence) HasPrefix(prefix Sequence) bool {
	if len(prefix) > len(s) {
		return false
	}
	for i, k := range prefix {
		if s[i] != k {
			return false
		}
	}
	return true
}

// Equal returns true if both sequences hold the same keystrokes.
func (s Sequence) Equal(other Sequence) bool {
	return len(s) == len(other) && s.HasPrefix(other)
}
