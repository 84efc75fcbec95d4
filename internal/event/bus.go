package event

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// ErrHandlerPanic reports a recovered subscriber panic.
var ErrHandlerPanic = errors.New("event: handler panic")

// Bus delivers host events to subscribers synchronously.
type Bus struct {
	mu     sync.RWMutex
	subs   map[Kind][]*Subscription
	logger *slog.Logger
}

// BusOption configures a Bus.
type BusOption func(*Bus)

// WithLogger sets the logger used to report subscriber panics.
func WithLogger(logger *slog.Logger) BusOption {
	return func(b *Bus) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...BusOption) *Bus {
	b := &Bus{
		subs:   make(map[Kind][]*Subscription),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Subscribe registers fn for events of kind.
func (b *Bus) Subscribe(kind Kind, fn HandlerFunc, opts ...SubscriptionOption) *Subscription {
	var config SubscriptionConfig
	for _, opt := range opts {
		opt(&config)
	}
	s := &Subscription{
		id:      uuid.NewString(),
		kind:    kind,
		handler: fn,
		config:  config,
		bus:     b,
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	subs := append(b.subs[kind], s)
	slices.SortStableFunc(subs, func(x, y *Subscription) int {
		return int(x.config.Priority) - int(y.config.Priority)
	})
	b.subs[kind] = subs
	return s
}

// Publish delivers e to every active subscriber of its kind, in priority
// order, on the calling goroutine. A panicking subscriber is logged and
// does not stop delivery to the others.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	subs := slices.Clone(b.subs[e.Kind])
	b.mu.RUnlock()

	for _, s := range subs {
		if !s.shouldDeliver(e) {
			continue
		}
		if s.config.Once {
			s.Cancel()
		}
		if err := b.deliver(s, e); err != nil {
			b.logger.Error("event handler failed", "event", e.String(), "subscription", s.id, "error", err)
		}
	}
}

// SubscriberCount returns the number of active subscribers for kind.
func (b *Bus) SubscriberCount(kind Kind) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[kind])
}

func (b *Bus) deliver(s *Subscription, e Event) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("%w: %v", ErrHandlerPanic, p)
		}
	}()
	s.handler(e)
	return nil
}

func (b *Bus) remove(s *Subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs[s.kind] = slices.DeleteFunc(b.subs[s.kind], func(x *Subscription) bool {
		return x == s
	})
}
