package app

import (
	"github.com/j0lol/hxzed/internal/dispatcher"
	"github.com/j0lol/hxzed/internal/event"
)

// subscriptions forwards workspace focus and close events to the
// dispatcher.
type subscriptions struct {
	subs []*event.Subscription
}

func subscribe(bus *event.Bus, d *dispatcher.Dispatcher) *subscriptions {
	s := &subscriptions{}
	s.subs = append(s.subs,
		bus.Subscribe(event.SurfaceFocused, func(e event.Event) {
			d.HandleFocused(dispatcher.SurfaceID(e.Surface))
		}, event.WithPriority(event.PriorityHigh)),
		bus.Subscribe(event.SurfaceClosed, func(e event.Event) {
			d.HandleClosed(dispatcher.SurfaceID(e.Surface))
		}, event.WithPriority(event.PriorityHigh)),
	)
	return s
}

func (s *subscriptions) cancel() {
	for _, sub := range s.subs {
		sub.Cancel()
	}
	s.subs = nil
}
