package dispatcher

import "errors"

// Dispatcher errors.
var (
	// ErrNoActiveSurface indicates there is no live active surface.
	ErrNoActiveSurface = errors.New("dispatcher: no active surface")

	// ErrDisabled indicates the modal layer is turned off.
	ErrDisabled = errors.New("dispatcher: modal layer disabled")

	// ErrInvalidDigit indicates a count digit outside 0-9.
	ErrInvalidDigit = errors.New("dispatcher: invalid count digit")
)
