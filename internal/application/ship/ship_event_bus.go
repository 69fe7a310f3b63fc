package ship

import (
	"sync"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// ShipEventBus provides pub/sub for navigation events.
// Implements both ShipEventPublisher and ShipEventSubscriber from domain ports.
// Thread-safe, supports multiple subscribers per ship.
// Uses buffered channels to prevent blocking publishers.
type ShipEventBus struct {
	mu sync.RWMutex

	// arrivedSubscribers[shipSymbol] = []channels
	arrivedSubscribers map[string][]chan navigation.ShipArrivedEvent

	// routeCompletedSubscribers[shipSymbol] = []channels
	routeCompletedSubscribers map[string][]chan navigation.RouteCompletedEvent
}

// Compile-time interface checks
var (
	_ navigation.ShipEventPublisher  = (*ShipEventBus)(nil)
	_ navigation.ShipEventSubscriber = (*ShipEventBus)(nil)
)

// NewShipEventBus creates a new event bus for navigation events
func NewShipEventBus() *ShipEventBus {
	return &ShipEventBus{
		arrivedSubscribers:        make(map[string][]chan navigation.ShipArrivedEvent),
		routeCompletedSubscribers: make(map[string][]chan navigation.RouteCompletedEvent),
	}
}

// PublishArrived publishes an event when a ship transitions out of IN_TRANSIT.
func (b *ShipEventBus) PublishArrived(event navigation.ShipArrivedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	channels := b.arrivedSubscribers[event.ShipSymbol]
	for _, ch := range channels {
		// Non-blocking send - skip if channel buffer is full
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscribeArrived subscribes to arrival events for a specific ship.
// Returns a channel that receives events. Caller must UnsubscribeArrived when done.
func (b *ShipEventBus) SubscribeArrived(shipSymbol string) <-chan navigation.ShipArrivedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan navigation.ShipArrivedEvent, 1)
	b.arrivedSubscribers[shipSymbol] = append(b.arrivedSubscribers[shipSymbol], ch)

	return ch
}

// UnsubscribeArrived removes a subscription. Closes the channel.
func (b *ShipEventBus) UnsubscribeArrived(shipSymbol string, ch <-chan navigation.ShipArrivedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channels := b.arrivedSubscribers[shipSymbol]
	for i, c := range channels {
		if c == ch {
			close(c)
			channels[i] = channels[len(channels)-1]
			b.arrivedSubscribers[shipSymbol] = channels[:len(channels)-1]
			break
		}
	}

	if len(b.arrivedSubscribers[shipSymbol]) == 0 {
		delete(b.arrivedSubscribers, shipSymbol)
	}
}

// PublishRouteCompleted publishes a route completion event, successful or not.
func (b *ShipEventBus) PublishRouteCompleted(event navigation.RouteCompletedEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	channels := b.routeCompletedSubscribers[event.ShipSymbol]
	for _, ch := range channels {
		select {
		case ch <- event:
		default:
		}
	}
}

// SubscribeRouteCompleted subscribes to route completion events for a ship.
// Returns a channel that receives events. Caller must UnsubscribeRouteCompleted when done.
func (b *ShipEventBus) SubscribeRouteCompleted(shipSymbol string) <-chan navigation.RouteCompletedEvent {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan navigation.RouteCompletedEvent, 1)
	b.routeCompletedSubscribers[shipSymbol] = append(b.routeCompletedSubscribers[shipSymbol], ch)

	return ch
}

// UnsubscribeRouteCompleted removes a subscription. Closes the channel.
func (b *ShipEventBus) UnsubscribeRouteCompleted(shipSymbol string, ch <-chan navigation.RouteCompletedEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	channels := b.routeCompletedSubscribers[shipSymbol]
	for i, c := range channels {
		if c == ch {
			close(c)
			channels[i] = channels[len(channels)-1]
			b.routeCompletedSubscribers[shipSymbol] = channels[:len(channels)-1]
			break
		}
	}

	if len(b.routeCompletedSubscribers[shipSymbol]) == 0 {
		delete(b.routeCompletedSubscribers, shipSymbol)
	}
}

// SubscriberCount returns the number of arrival subscribers for a ship.
// Useful for testing and monitoring.
func (b *ShipEventBus) SubscriberCount(shipSymbol string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.arrivedSubscribers[shipSymbol])
}
