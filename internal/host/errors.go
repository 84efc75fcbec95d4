package host

import "errors"

// Host errors.
var (
	// ErrUnknownSurface indicates the id does not name an open editor.
	ErrUnknownSurface = errors.New("host: unknown surface")

	// ErrNoPath indicates the editor has no backing file.
	ErrNoPath = errors.New("host: editor has no file path")
)
