package event

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKindString(t *testing.T) {
	assert.Equal(t, "surface.focused", SurfaceFocused.String())
	assert.Equal(t, "kind(99)", Kind(99).String())
	assert.Equal(t, "surface.closed(a)", New(SurfaceClosed, "a").String())
}

func TestPublishDeliversByKind(t *testing.T) {
	b := NewBus()
	var got []Event
	b.Subscribe(SurfaceFocused, func(e Event) { got = append(got, e) })

	b.Publish(New(SurfaceFocused, "a"))
	b.Publish(New(SurfaceClosed, "a"))

	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].Surface)
}

func TestSubscriptionIDsAreUUIDs(t *testing.T) {
	b := NewBus()
	s1 := b.Subscribe(SurfaceCreated, func(Event) {})
	s2 := b.Subscribe(SurfaceCreated, func(Event) {})

	_, err := uuid.Parse(s1.ID())
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, SurfaceCreated, s1.Kind())
}

func TestCancelIsIdempotent(t *testing.T) {
	b := NewBus()
	calls := 0
	s := b.Subscribe(SurfaceFocused, func(Event) { calls++ })

	s.Cancel()
	s.Cancel()
	b.Publish(New(SurfaceFocused, "a"))

	assert.Zero(t, calls)
	assert.False(t, s.IsActive())
	assert.Zero(t, b.SubscriberCount(SurfaceFocused))
}

func TestCancelDuringDelivery(t *testing.T) {
	b := NewBus()
	var second int
	var s2 *Subscription
	b.Subscribe(SurfaceFocused, func(Event) { s2.Cancel() }, WithPriority(PriorityHigh))
	s2 = b.Subscribe(SurfaceFocused, func(Event) { second++ })

	b.Publish(New(SurfaceFocused, "a"))

	assert.Zero(t, second)
}

func TestPriorityOrder(t *testing.T) {
	b := NewBus()
	var order []string
	b.Subscribe(SurfaceCreated, func(Event) { order = append(order, "low") }, WithPriority(PriorityLow))
	b.Subscribe(SurfaceCreated, func(Event) { order = append(order, "normal") })
	b.Subscribe(SurfaceCreated, func(Event) { order = append(order, "high") }, WithPriority(PriorityHigh))

	b.Publish(New(SurfaceCreated, "a"))

	assert.Equal(t, []string{"high", "normal", "low"}, order)
}

func TestFilterAndOnce(t *testing.T) {
	b := NewBus()
	var filtered, once int
	b.Subscribe(SurfaceFocused, func(Event) { filtered++ }, WithSurface("b"))
	b.Subscribe(SurfaceFocused, func(Event) { once++ }, WithOnce())

	b.Publish(New(SurfaceFocused, "a"))
	b.Publish(New(SurfaceFocused, "b"))

	assert.Equal(t, 1, filtered)
	assert.Equal(t, 1, once)
}

func TestPanickingHandlerDoesNotStopDelivery(t *testing.T) {
	b := NewBus()
	delivered := false
	b.Subscribe(SurfaceClosed, func(Event) { panic("boom") }, WithPriority(PriorityHigh))
	b.Subscribe(SurfaceClosed, func(Event) { delivered = true })

	assert.NotPanics(t, func() { b.Publish(New(SurfaceClosed, "a")) })
	assert.True(t, delivered)
}
