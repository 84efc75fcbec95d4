package event

import "sync/atomic"

// Priority orders subscribers. Lower values run first.
type Priority int

// Standard priorities.
const (
	PriorityHigh   Priority = -100
	PriorityNormal Priority = 0
	PriorityLow    Priority = 100
)

// HandlerFunc receives events.
type HandlerFunc func(Event)

// FilterFunc decides whether an event is delivered.
type FilterFunc func(Event) bool

// SubscriptionConfig contains configuration for a subscription.
type SubscriptionConfig struct {
	// Priority determines execution order (lower values execute first).
	Priority Priority

	// Filter is an optional predicate to filter events.
	Filter FilterFunc

	// Once cancels the subscription after the first delivered event.
	Once bool
}

// SubscriptionOption is a function that configures a subscription.
type SubscriptionOption func(*SubscriptionConfig)

// WithPriority sets the subscription priority.
func WithPriority(p Priority) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Priority = p
	}
}

// WithFilter sets a filter predicate.
func WithFilter(f FilterFunc) SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Filter = f
	}
}

// WithSurface only delivers events about the given surface.
func WithSurface(id string) SubscriptionOption {
	return WithFilter(func(e Event) bool { return e.Surface == id })
}

// WithOnce sets the subscription to auto-cancel after the first event.
func WithOnce() SubscriptionOption {
	return func(c *SubscriptionConfig) {
		c.Once = true
	}
}

// Subscription is a live registration on a Bus. Cancel removes it;
// calling Cancel more than once is harmless.
type Subscription struct {
	id        string
	kind      Kind
	handler   HandlerFunc
	config    SubscriptionConfig
	bus       *Bus
	cancelled atomic.Bool
}

// ID returns the unique subscription identifier.
func (s *Subscription) ID() string {
	return s.id
}

// Kind returns the subscribed event kind.
func (s *Subscription) Kind() Kind {
	return s.kind
}

// IsActive returns true until the subscription is cancelled.
func (s *Subscription) IsActive() bool {
	return !s.cancelled.Load()
}

// Cancel permanently cancels the subscription. Events published after
// Cancel returns are never delivered to it.
func (s *Subscription) Cancel() {
	if s.cancelled.Swap(true) {
		return
	}
	s.bus.remove(s)
}

func (s *Subscription) shouldDeliver(e Event) bool {
	if !s.IsActive() {
		return false
	}
	return s.config.Filter == nil || s.config.Filter(e)
}
