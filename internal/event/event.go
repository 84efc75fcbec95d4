package event

import (
	"fmt"
	"time"
)

// Kind identifies the type of a host event.
type Kind uint8

const (
	// SurfaceCreated is published when a text surface is opened.
	SurfaceCreated Kind = iota + 1

	// SurfaceFocused is published when a surface gains input focus.
	SurfaceFocused

	// SurfaceClosed is published after a surface has been closed.
	SurfaceClosed

	// SelectionsChanged is published when a surface's selections moved.
	SelectionsChanged
)

// String returns a human-readable kind name.
func (k Kind) String() string {
	switch k {
	case SurfaceCreated:
		return "surface.created"
	case SurfaceFocused:
		return "surface.focused"
	case SurfaceClosed:
		return "surface.closed"
	case SelectionsChanged:
		return "surface.selections"
	default:
		return fmt.Sprintf("kind(%d)", k)
	}
}

// Event is a host notification about a surface.
type Event struct {
	Kind      Kind
	Surface   string
	Timestamp time.Time
}

// New creates an event stamped with the current time.
func New(kind Kind, surface string) Event {
	return Event{Kind: kind, Surface: surface, Timestamp: time.Now()}
}

// String returns a string representation of the event.
func (e Event) String() string {
	return fmt.Sprintf("%s(%s)", e.Kind, e.Surface)
}
