package terminal

import (
	"github.com/gdamore/tcell/v2"

	"github.com/j0lol/hxzed/internal/input/key"
)

var specialKeys = map[tcell.Key]key.Key{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
}

// ConvertKey converts a tcell key event into a keystroke. Shift is
// dropped from character keys since it is already reflected in the rune.
// Returns false for keys with no keystroke equivalent.
func ConvertKey(ev *tcell.EventKey) (key.Keystroke, bool) {
	mods := convertMod(ev.Modifiers())

	if k, ok := specialKeys[ev.Key()]; ok {
		return key.Special(k, mods), true
	}

	switch k := ev.Key(); {
	case k == tcell.KeyRune:
		r := ev.Rune()
		mods &^= key.ModShift
		if r == ' ' {
			return key.Special(key.KeySpace, mods), true
		}
		return key.Keystroke{Key: key.KeyRune, Rune: r, Modifiers: mods}, true

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		r := 'a' + rune(k-tcell.KeyCtrlA)
		return key.Keystroke{Key: key.KeyRune, Rune: r, Modifiers: (mods &^ key.ModShift) | key.ModCtrl}, true

	case k == tcell.KeyCtrlSpace:
		return key.Special(key.KeySpace, key.ModCtrl), true
	}

	return key.Keystroke{}, false
}

func convertMod(m tcell.ModMask) key.Modifier {
	var mods key.Modifier
	if m&tcell.ModShift != 0 {
		mods |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		mods |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		mods |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		mods |= key.ModMeta
	}
	return mods
}
