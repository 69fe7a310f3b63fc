package ship_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// scriptedMediator records every dispatched request and answers from a
// scripted response function.
type scriptedMediator struct {
	requests []common.Request
	respond  func(request common.Request) (common.Response, error)
}

func (m *scriptedMediator) Send(ctx context.Context, request common.Request) (common.Response, error) {
	m.requests = append(m.requests, request)
	if m.respond != nil {
		return m.respond(request)
	}
	return nil, nil
}

func (m *scriptedMediator) Register(requestType reflect.Type, handler common.RequestHandler) error {
	return nil
}

func executorWaypoint(t *testing.T, symbol string, x, y int, market bool) *shared.Waypoint {
	t.Helper()
	wp, err := shared.NewWaypoint(symbol, x, y)
	require.NoError(t, err)
	wp.IsMarketplace = market
	return wp
}

// recordingLogger captures log entries for assertions.
type recordingLogger struct {
	entries []struct{ level, message string }
}

func (l *recordingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.entries = append(l.entries, struct{ level, message string }{level, message})
}

func (l *recordingLogger) messages(level string) []string {
	var out []string
	for _, entry := range l.entries {
		if entry.level == level {
			out = append(out, entry.message)
		}
	}
	return out
}

func executorShipWithCargoFuel(
	t *testing.T,
	location *shared.Waypoint,
	fuelCurrent, cargoFuel int,
) *navigation.Ship {
	t.Helper()
	fuel, err := shared.NewFuel(fuelCurrent, 400)
	require.NoError(t, err)
	item, err := shared.NewCargoItem(shared.FuelGoodSymbol, "Fuel", "", cargoFuel)
	require.NoError(t, err)
	cargo, err := shared.NewCargo(40, cargoFuel, []*shared.CargoItem{item})
	require.NoError(t, err)

	entity, err := navigation.NewShip(
		"ENDURANCE-1", shared.MustNewPlayerID(1),
		location, fuel, cargo, 10, nil,
		navigation.NavStatusInOrbit, shared.FlightModeCruise,
	)
	require.NoError(t, err)
	return entity
}

func executorShip(t *testing.T, location *shared.Waypoint, fuelCurrent int) *navigation.Ship {
	t.Helper()
	fuel, err := shared.NewFuel(fuelCurrent, 400)
	require.NoError(t, err)
	cargo, err := shared.NewCargo(40, 0, nil)
	require.NoError(t, err)

	entity, err := navigation.NewShip(
		"ENDURANCE-1", shared.MustNewPlayerID(1),
		location, fuel, cargo, 10, nil,
		navigation.NavStatusInOrbit, shared.FlightModeCruise,
	)
	require.NoError(t, err)
	return entity
}

func singleLegRoute(
	t *testing.T,
	from, to *shared.Waypoint,
	mode shared.FlightMode,
	refuel *navigation.Refuel,
) *navigation.Route {
	t.Helper()
	leg := navigation.NewNavigateConnection(
		from, to, mode,
		from.DistanceTo(to),
		mode.FuelCost(from.DistanceTo(to)),
		mode.TravelTime(from.DistanceTo(to), 10),
		refuel,
	)
	route, err := navigation.NewRoute(
		"route-1", "ENDURANCE-1", shared.MustNewPlayerID(1),
		[]navigation.ConcreteConnection{leg}, 400,
		shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	)
	require.NoError(t, err)
	return route
}

func TestRouteExecutor_PositionMismatchFailsBeforeAnyDispatch(t *testing.T) {
	// Arrange: ship is not where the route plan begins
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)
	b := executorWaypoint(t, "X1-TST-B", 30, 0, true)
	elsewhere := executorWaypoint(t, "X1-TST-Z", 99, 99, false)

	mediator := &scriptedMediator{}
	executor := ship.NewRouteExecutor(mediator, nil, nil, nil, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeCruise,
		&navigation.Refuel{FuelNeeded: 30, StartIsMarket: true})
	entity := executorShip(t, elsewhere, 100)

	// Act
	err := executor.ExecuteRoute(context.Background(), route, entity, nil)

	// Assert: nothing reached the remote API
	var mismatch *shared.PositionMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Empty(t, mediator.requests)
	assert.True(t, route.IsFailed())
}

func TestRouteExecutor_ExecutesNavigateLeg(t *testing.T) {
	// Arrange: the tank already satisfies the leg's fuel plan
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)
	b := executorWaypoint(t, "X1-TST-B", 30, 0, true)

	mediator := &scriptedMediator{
		respond: func(request common.Request) (common.Response, error) {
			switch request.(type) {
			case *types.OrbitShipCommand:
				return &types.OrbitShipResponse{}, nil
			case *types.NavigateDirectCommand:
				return &types.NavigateDirectResponse{FuelConsumed: 30}, nil
			}
			return nil, nil
		},
	}
	executor := ship.NewRouteExecutor(mediator, nil, nil, nil, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeCruise,
		&navigation.Refuel{FuelNeeded: 30, StartIsMarket: true})
	entity := executorShip(t, a, 100)

	// Act
	err := executor.ExecuteRoute(context.Background(), route, entity, nil)

	// Assert: orbit for departure, then the move itself
	require.NoError(t, err)
	assert.True(t, route.IsComplete())
	require.Len(t, mediator.requests, 2)
	assert.IsType(t, &types.OrbitShipCommand{}, mediator.requests[0])

	move, ok := mediator.requests[1].(*types.NavigateDirectCommand)
	require.True(t, ok)
	assert.Equal(t, "X1-TST-B", move.Destination.Symbol)
	assert.Equal(t, "route-1", move.RouteID)
	assert.Same(t, entity, move.Ship)
}

func TestRouteExecutor_RefuelsAtMarketBeforeDeparture(t *testing.T) {
	// Arrange: 20 aboard against a 150-unit plan plus a 90-unit forecast
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)
	b := executorWaypoint(t, "X1-TST-B", 150, 0, true)

	mediator := &scriptedMediator{
		respond: func(request common.Request) (common.Response, error) {
			if _, ok := request.(*types.NavigateDirectCommand); ok {
				return &types.NavigateDirectResponse{FuelConsumed: 150}, nil
			}
			return nil, nil
		},
	}
	executor := ship.NewRouteExecutor(mediator, nil, nil, nil, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeCruise,
		&navigation.Refuel{FuelNeeded: 150, FuelRequired: 90, StartIsMarket: true})
	entity := executorShip(t, a, 20)

	// Act
	err := executor.ExecuteRoute(context.Background(), route, entity, nil)

	// Assert: dock, top up, restock, then depart
	require.NoError(t, err)
	require.Len(t, mediator.requests, 5)
	assert.IsType(t, &types.DockShipCommand{}, mediator.requests[0])

	refuel, ok := mediator.requests[1].(*types.RefuelShipCommand)
	require.True(t, ok)
	assert.Equal(t, 200, refuel.Units)
	assert.False(t, refuel.FromCargo)

	// Restock is clamped to the hold's free capacity
	restock, ok := mediator.requests[2].(*types.PurchaseCargoCommand)
	require.True(t, ok)
	assert.Equal(t, shared.FuelGoodSymbol, restock.GoodSymbol)
	assert.Equal(t, 40, restock.Units)

	assert.IsType(t, &types.OrbitShipCommand{}, mediator.requests[3])
	assert.IsType(t, &types.NavigateDirectCommand{}, mediator.requests[4])
}

func TestRouteExecutor_SwitchesFlightModeWhenLegDiffers(t *testing.T) {
	// Arrange: ship cruises but the leg is planned under Drift
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)
	b := executorWaypoint(t, "X1-TST-B", 30, 0, true)

	mediator := &scriptedMediator{}
	executor := ship.NewRouteExecutor(mediator, nil, nil, nil, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeDrift,
		&navigation.Refuel{FuelNeeded: 1, StartIsMarket: true})
	entity := executorShip(t, a, 100)

	// Act
	err := executor.ExecuteRoute(context.Background(), route, entity, nil)

	// Assert
	require.NoError(t, err)
	require.Len(t, mediator.requests, 3)

	switched, ok := mediator.requests[0].(*types.SetFlightModeCommand)
	require.True(t, ok)
	assert.Equal(t, shared.FlightModeDrift, switched.Mode)
}

func TestRouteExecutor_PublishesRouteCompleted(t *testing.T) {
	// Arrange
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)
	b := executorWaypoint(t, "X1-TST-B", 30, 0, true)

	bus := ship.NewShipEventBus()
	completed := bus.SubscribeRouteCompleted("ENDURANCE-1")
	defer bus.UnsubscribeRouteCompleted("ENDURANCE-1", completed)

	mediator := &scriptedMediator{}
	executor := ship.NewRouteExecutor(mediator, nil, nil, bus, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeCruise,
		&navigation.Refuel{FuelNeeded: 30, StartIsMarket: true})
	entity := executorShip(t, a, 100)

	// Act
	require.NoError(t, executor.ExecuteRoute(context.Background(), route, entity, nil))

	// Assert
	select {
	case event := <-completed:
		assert.Equal(t, "route-1", event.RouteID)
		assert.True(t, event.Success)
		assert.Equal(t, "X1-TST-A", event.Origin)
		assert.Equal(t, "X1-TST-B", event.Destination)
	default:
		t.Fatal("expected a route completion event")
	}
}

func TestRouteExecutor_WarnsOnRestockShortfallAwayFromMarket(t *testing.T) {
	// Arrange: the leg departs a non-market holding too little cargo fuel
	// for both the tank transfer and the forward restock forecast
	a := executorWaypoint(t, "X1-TST-A", 0, 0, false)
	b := executorWaypoint(t, "X1-TST-B", 150, 0, true)

	mediator := &scriptedMediator{
		respond: func(request common.Request) (common.Response, error) {
			if _, ok := request.(*types.NavigateDirectCommand); ok {
				return &types.NavigateDirectResponse{FuelConsumed: 150}, nil
			}
			return nil, nil
		},
	}
	executor := ship.NewRouteExecutor(mediator, nil, nil, nil, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeCruise,
		&navigation.Refuel{FuelNeeded: 150, FuelRequired: 90, StartIsMarket: false})
	entity := executorShipWithCargoFuel(t, a, 20, 10)

	logger := &recordingLogger{}
	ctx := common.WithLogger(context.Background(), logger)

	// Act
	err := executor.ExecuteRoute(ctx, route, entity, nil)

	// Assert: both shortfalls are warned about, then the leg proceeds with
	// whatever fuel the hold can transfer
	require.NoError(t, err)
	assert.True(t, route.IsComplete())

	warnings := logger.messages("WARN")
	require.Len(t, warnings, 2)
	assert.Contains(t, warnings[0], "restock")
	assert.Contains(t, warnings[1], "transfer")

	require.Len(t, mediator.requests, 4)
	assert.IsType(t, &types.DockShipCommand{}, mediator.requests[0])

	transfer, ok := mediator.requests[1].(*types.RefuelShipCommand)
	require.True(t, ok)
	assert.True(t, transfer.FromCargo)
	assert.Equal(t, 10, transfer.Units)

	assert.IsType(t, &types.OrbitShipCommand{}, mediator.requests[2])
	assert.IsType(t, &types.NavigateDirectCommand{}, mediator.requests[3])
}

func TestRouteExecutor_EmptyRouteCompletesWithoutDispatch(t *testing.T) {
	// Arrange: origin equals destination, so the plan has no legs
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)

	bus := ship.NewShipEventBus()
	completed := bus.SubscribeRouteCompleted("ENDURANCE-1")
	defer bus.UnsubscribeRouteCompleted("ENDURANCE-1", completed)

	mediator := &scriptedMediator{}
	executor := ship.NewRouteExecutor(mediator, nil, nil, bus, shared.NewMockClock(time.Time{}))

	route, err := navigation.NewRoute(
		"route-1", "ENDURANCE-1", shared.MustNewPlayerID(1),
		nil, 400, shared.NewMockClock(time.Time{}),
	)
	require.NoError(t, err)
	entity := executorShip(t, a, 100)

	// Act
	require.NoError(t, executor.ExecuteRoute(context.Background(), route, entity, nil))

	// Assert: completed without a single remote call, and the completion
	// event reports the ship's position for both endpoints
	assert.True(t, route.IsComplete())
	assert.Empty(t, mediator.requests)

	select {
	case event := <-completed:
		assert.True(t, event.Success)
		assert.Equal(t, "X1-TST-A", event.Origin)
		assert.Equal(t, "X1-TST-A", event.Destination)
	default:
		t.Fatal("expected a route completion event")
	}
}

func TestRouteExecutor_FailedMoveFailsRoute(t *testing.T) {
	// Arrange
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)
	b := executorWaypoint(t, "X1-TST-B", 30, 0, true)
	remoteFailure := errors.New("rate limit exceeded")

	mediator := &scriptedMediator{
		respond: func(request common.Request) (common.Response, error) {
			if _, ok := request.(*types.NavigateDirectCommand); ok {
				return nil, remoteFailure
			}
			return nil, nil
		},
	}
	executor := ship.NewRouteExecutor(mediator, nil, nil, nil, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeCruise,
		&navigation.Refuel{FuelNeeded: 30, StartIsMarket: true})
	entity := executorShip(t, a, 100)

	// Act
	err := executor.ExecuteRoute(context.Background(), route, entity, nil)

	// Assert
	require.ErrorIs(t, err, remoteFailure)
	assert.True(t, route.IsFailed())
	assert.Equal(t, remoteFailure, route.LastError())
}

func TestRouteExecutor_SideEffectFailureFailsRoute(t *testing.T) {
	// Arrange: the per-waypoint callback rejects the leg before departure
	a := executorWaypoint(t, "X1-TST-A", 0, 0, true)
	b := executorWaypoint(t, "X1-TST-B", 30, 0, true)

	mediator := &scriptedMediator{}
	executor := ship.NewRouteExecutor(mediator, nil, nil, nil, shared.NewMockClock(time.Time{}))

	route := singleLegRoute(t, a, b, shared.FlightModeCruise,
		&navigation.Refuel{FuelNeeded: 30, StartIsMarket: true})
	entity := executorShip(t, a, 100)

	callbackErr := errors.New("market scan failed")
	callback := func(ctx context.Context, s *navigation.Ship, startSymbol, endSymbol string) error {
		return callbackErr
	}

	// Act
	err := executor.ExecuteRoute(context.Background(), route, entity, callback)

	// Assert: no movement was dispatched
	require.ErrorIs(t, err, callbackErr)
	assert.True(t, route.IsFailed())
	assert.Empty(t, mediator.requests)
}
