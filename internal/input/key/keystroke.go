package key

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Parse errors
var (
	ErrEmptySpec   = errors.New("empty key specification")
	ErrInvalidSpec = errors.New("invalid key specification")
)

// Keystroke is a single key press.
type Keystroke struct {
	Key       Key
	Rune      rune
	Modifiers Modifier
}

// Rune creates a keystroke for an unmodified character.
func Rune(r rune) Keystroke {
	return Keystroke{Key: KeyRune, Rune: r}
}

// Special creates a keystroke for a named key.
func Special(k Key, mods Modifier) Keystroke {
	return Keystroke{Key: k, Modifiers: mods}
}

// IsChar returns true if this keystroke would insert a printable
// character.
func (k Keystroke) IsChar() bool {
	if k.Key == KeySpace {
		return k.Modifiers&^ModShift == 0
	}
	return k.Key == KeyRune && unicode.IsPrint(k.Rune) && k.Modifiers&(ModCtrl|ModAlt|ModMeta) == 0
}

// Text returns the text inserted by a character keystroke.
func (k Keystroke) Text() string {
	if k.Key == KeySpace {
		return " "
	}
	if k.Key == KeyRune {
		return string(k.Rune)
	}
	return ""
}

// String returns the canonical notation, e.g. "ctrl-c" or "escape".
func (k Keystroke) String() string {
	var name string
	if k.Key == KeyRune {
		name = string(k.Rune)
	} else {
		name = k.Key.String()
	}
	if k.Modifiers == ModNone {
		return name
	}
	return k.Modifiers.String() + "-" + name
}

// Parse parses a keystroke specification.
//
// Supported formats:
//   - Single character: "a", "A", "1", "-"
//   - Named keys: "escape", "enter", "space"
//   - With modifiers: "ctrl-c", "ctrl+shift+p", "alt-enter"
func Parse(spec string) (Keystroke, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Keystroke{}, ErrEmptySpec
	}
	if utf8.RuneCountInString(spec) == 1 {
		r, _ := utf8.DecodeRuneInString(spec)
		return Rune(r), nil
	}

	parts := splitModifiers(spec)
	var mods Modifier
	for _, p := range parts[:len(parts)-1] {
		mod := ModifierFromName(p)
		if mod == ModNone {
			return Keystroke{}, fmt.Errorf("%w: unknown modifier %q", ErrInvalidSpec, p)
		}
		mods = mods.With(mod)
	}

	last := parts[len(parts)-1]
	if utf8.RuneCountInString(last) == 1 {
		r, _ := utf8.DecodeRuneInString(last)
		// shift on a letter is the uppercase letter
		if mods.Has(ModShift) && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
			mods &^= ModShift
		}
		return Keystroke{Key: KeyRune, Rune: r, Modifiers: mods}, nil
	}
	if k := KeyFromName(last); k != KeyNone {
		return Special(k, mods), nil
	}
	return Keystroke{}, fmt.Errorf("%w: unknown key %q", ErrInvalidSpec, last)
}

// MustParse is like Parse but panics on error.
func MustParse(spec string) Keystroke {
	k, err := Parse(spec)
	if err != nil {
		panic(err)
	}
	return k
}

// splitModifiers splits "ctrl-shift--" into ["ctrl", "shift", "-"],
// keeping a trailing separator character as the key.
func splitModifiers(spec string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(spec); i++ {
		if (spec[i] == '-' || spec[i] == '+') && i > start {
			parts = append(parts, spec[start:i])
			start = i + 1
		}
	}
	return append(parts, spec[start:])
}
