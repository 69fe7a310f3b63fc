package navigation

import (
	"time"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// ShipArrivedEvent is published when a ship transitions out of IN_TRANSIT
// and its local state has been refreshed.
type ShipArrivedEvent struct {
	ShipSymbol     string
	PlayerID       shared.PlayerID
	WaypointSymbol string
	FuelCurrent    int
	ArrivedAt      time.Time
}

// RouteCompletedEvent is published when a route execution finishes,
// successfully or not. Legs already completed before a failure remain
// committed.
type RouteCompletedEvent struct {
	RouteID     string
	ShipSymbol  string
	PlayerID    shared.PlayerID
	Origin      string
	Destination string
	Success     bool
	Error       string
	FinishedAt  time.Time
}

// ShipEventPublisher publishes navigation state-change notifications.
// Implementations must not block the executor.
type ShipEventPublisher interface {
	PublishArrived(event ShipArrivedEvent)
	PublishRouteCompleted(event RouteCompletedEvent)
}

// ShipEventSubscriber receives navigation state-change notifications for a
// specific ship.
type ShipEventSubscriber interface {
	SubscribeArrived(shipSymbol string) <-chan ShipArrivedEvent
	UnsubscribeArrived(shipSymbol string, ch <-chan ShipArrivedEvent)
	SubscribeRouteCompleted(shipSymbol string) <-chan RouteCompletedEvent
	UnsubscribeRouteCompleted(shipSymbol string, ch <-chan RouteCompletedEvent)
}

// NopEventPublisher discards all events.
type NopEventPublisher struct{}

func (NopEventPublisher) PublishArrived(ShipArrivedEvent)           {}
func (NopEventPublisher) PublishRouteCompleted(RouteCompletedEvent) {}
