package mode

import (
	"errors"
	"fmt"
)

// ErrUnknownMode is returned when parsing a mode name that is not defined.
var ErrUnknownMode = errors.New("unknown mode")

// Mode is an editing mode. The zero value is Normal.
type Mode uint8

const (
	// Normal interprets keys as motions and commands.
	Normal Mode = iota

	// Insert lets ordinary character input reach the host.
	Insert
)

// Standard mode names.
const (
	NameNormal = "normal"
	NameInsert = "insert"
)

// String returns the mode name used in keymap contexts.
func (m Mode) String() string {
	switch m {
	case Normal:
		return NameNormal
	case Insert:
		return NameInsert
	default:
		return "unknown"
	}
}

// DisplayName returns a human-readable name for the status line.
func (m Mode) DisplayName() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// Modes returns every defined mode.
func Modes() []Mode {
	return []Mode{Normal, Insert}
}

// ParseMode converts a mode name into a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case NameNormal:
		return Normal, nil
	case NameInsert:
		return Insert, nil
	default:
		return Normal, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// CursorShape defines the visual appearance of the cursor.
type CursorShape uint8

const (
	// CursorBlock is a full-cell block cursor (normal mode).
	CursorBlock CursorShape = iota

	// CursorBar is a thin vertical bar cursor (insert mode).
	CursorBar

	// CursorUnderline is an underline cursor.
	CursorUnderline

	// CursorHollow is an outlined block cursor.
	CursorHollow
)

// String returns a human-readable cursor shape name.
func (c CursorShape) String() string {
	switch c {
	case CursorBlock:
		return "block"
	case CursorBar:
		return "bar"
	case CursorUnderline:
		return "underline"
	case CursorHollow:
		return "hollow"
	default:
		return "unknown"
	}
}
