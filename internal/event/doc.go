// Package event provides the synchronous host event bus.
//
// Surfaces announce their lifecycle (created, focused, closed) on a Bus.
// Delivery is synchronous and happens on the publishing goroutine, which
// for a host is its UI goroutine. Subscribers receive events in priority
// order and may cancel their own Subscription at any time, including from
// inside a handler.
//
// Basic usage:
//
//	bus := event.NewBus()
//	sub := bus.Subscribe(event.SurfaceFocused, func(e event.Event) {
//	    fmt.Println("focused", e.Surface)
//	})
//	defer sub.Cancel()
package event
