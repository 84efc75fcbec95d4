package mode

import (
	"sort"
	"strings"
)

// KeyContext is a set of key/value pairs and bare identifiers consulted
// by a keybinding resolver. The zero value is an empty context.
type KeyContext struct {
	pairs       map[string]string
	identifiers map[string]struct{}
}

// NewKeyContext creates an empty context.
func NewKeyContext() KeyContext {
	return KeyContext{
		pairs:       make(map[string]string),
		identifiers: make(map[string]struct{}),
	}
}

// Set assigns a value to key.
func (c *KeyContext) Set(key, value string) {
	if c.pairs == nil {
		c.pairs = make(map[string]string)
	}
	c.pairs[key] = value
}

// Add inserts a bare identifier.
func (c *KeyContext) Add(identifier string) {
	if c.identifiers == nil {
		c.identifiers = make(map[string]struct{})
	}
	c.identifiers[identifier] = struct{}{}
}

// Get returns the value stored under key.
func (c KeyContext) Get(key string) (string, bool) {
	v, ok := c.pairs[key]
	return v, ok
}

// Contains reports whether identifier is present, either bare or as a key.
func (c KeyContext) Contains(identifier string) bool {
	if _, ok := c.identifiers[identifier]; ok {
		return true
	}
	_, ok := c.pairs[identifier]
	return ok
}

// IsEmpty returns true if the context has no pairs and no identifiers.
func (c KeyContext) IsEmpty() bool {
	return len(c.pairs) == 0 && len(c.identifiers) == 0
}

// Merge returns a new context with other layered over c.
func (c KeyContext) Merge(other KeyContext) KeyContext {
	out := NewKeyContext()
	for k, v := range c.pairs {
		out.pairs[k] = v
	}
	for id := range c.identifiers {
		out.identifiers[id] = struct{}{}
	}
	for k, v := range other.pairs {
		out.pairs[k] = v
	}
	for id := range other.identifiers {
		out.identifiers[id] = struct{}{}
	}
	return out
}

// Equal reports whether both contexts hold the same pairs and identifiers.
func (c KeyContext) Equal(other KeyContext) bool {
	if len(c.pairs) != len(other.pairs) || len(c.identifiers) != len(other.identifiers) {
		return false
	}
	for k, v := range c.pairs {
		if ov, ok := other.pairs[k]; !ok || ov != v {
			return false
		}
	}
	for id := range c.identifiers {
		if _, ok := other.identifiers[id]; !ok {
			return false
		}
	}
	return true
}

// String returns a canonical representation, e.g. "HelixControl editing_mode=normal".
func (c KeyContext) String() string {
	parts := make([]string, 0, len(c.pairs)+len(c.identifiers))
	for id := range c.identifiers {
		parts = append(parts, id)
	}
	for k, v := range c.pairs {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, " ")
}
