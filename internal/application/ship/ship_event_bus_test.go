package ship_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/application/ship"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

func TestShipEventBus_ArrivedPubSub(t *testing.T) {
	// Arrange
	bus := ship.NewShipEventBus()
	events := bus.SubscribeArrived("ENDURANCE-1")
	assert.Equal(t, 1, bus.SubscriberCount("ENDURANCE-1"))

	// Act
	bus.PublishArrived(navigation.ShipArrivedEvent{
		ShipSymbol:     "ENDURANCE-1",
		PlayerID:       shared.MustNewPlayerID(1),
		WaypointSymbol: "X1-TST-B",
		FuelCurrent:    70,
		ArrivedAt:      time.Now(),
	})

	// Assert
	select {
	case event := <-events:
		assert.Equal(t, "X1-TST-B", event.WaypointSymbol)
		assert.Equal(t, 70, event.FuelCurrent)
	default:
		t.Fatal("expected an arrival event")
	}
}

func TestShipEventBus_OnlyMatchingShipReceives(t *testing.T) {
	// Arrange
	bus := ship.NewShipEventBus()
	other := bus.SubscribeArrived("ENDURANCE-2")

	// Act
	bus.PublishArrived(navigation.ShipArrivedEvent{ShipSymbol: "ENDURANCE-1"})

	// Assert
	select {
	case <-other:
		t.Fatal("event delivered to the wrong ship's subscriber")
	default:
	}
}

func TestShipEventBus_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	// Arrange
	bus := ship.NewShipEventBus()
	events := bus.SubscribeRouteCompleted("ENDURANCE-1")

	// Act: second publish finds the buffer full and is dropped
	bus.PublishRouteCompleted(navigation.RouteCompletedEvent{RouteID: "route-1", ShipSymbol: "ENDURANCE-1"})
	bus.PublishRouteCompleted(navigation.RouteCompletedEvent{RouteID: "route-2", ShipSymbol: "ENDURANCE-1"})

	// Assert
	first := <-events
	assert.Equal(t, "route-1", first.RouteID)
	select {
	case <-events:
		t.Fatal("full buffer should have dropped the second event")
	default:
	}
}

func TestShipEventBus_UnsubscribeClosesChannel(t *testing.T) {
	// Arrange
	bus := ship.NewShipEventBus()
	events := bus.SubscribeArrived("ENDURANCE-1")

	// Act
	bus.UnsubscribeArrived("ENDURANCE-1", events)

	// Assert
	_, open := <-events
	require.False(t, open)
	assert.Equal(t, 0, bus.SubscriberCount("ENDURANCE-1"))
}
