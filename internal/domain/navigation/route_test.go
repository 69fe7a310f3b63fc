package navigation_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

func navigateLeg(t *testing.T, from, to *shared.Waypoint, fuelNeeded int) navigation.ConcreteConnection {
	t.Helper()
	return navigation.NewNavigateConnection(
		from, to, shared.FlightModeCruise,
		from.DistanceTo(to),
		fuelNeeded,
		shared.FlightModeCruise.TravelTime(from.DistanceTo(to), 10),
		&navigation.Refuel{FuelNeeded: fuelNeeded, StartIsMarket: from.CanRefuel()},
	)
}

func twoLegRoute(t *testing.T) *navigation.Route {
	t.Helper()
	a := testWaypoint(t, "X1-TST-A", 0, 0, true)
	b := testWaypoint(t, "X1-TST-B", 30, 0, true)
	c := testWaypoint(t, "X1-TST-C", 60, 0, false)

	route, err := navigation.NewRoute(
		"route-1", "ENDURANCE-1", shared.MustNewPlayerID(1),
		[]navigation.ConcreteConnection{
			navigateLeg(t, a, b, 30),
			navigateLeg(t, b, c, 30),
		},
		100,
		shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)),
	)
	require.NoError(t, err)
	return route
}

func TestNewRoute_RejectsDisconnectedLegs(t *testing.T) {
	// Arrange: second leg does not start where the first ends
	a := testWaypoint(t, "X1-TST-A", 0, 0, true)
	b := testWaypoint(t, "X1-TST-B", 30, 0, true)
	c := testWaypoint(t, "X1-TST-C", 60, 0, false)
	d := testWaypoint(t, "X1-TST-D", 90, 0, false)

	// Act
	_, err := navigation.NewRoute(
		"route-1", "ENDURANCE-1", shared.MustNewPlayerID(1),
		[]navigation.ConcreteConnection{
			navigateLeg(t, a, b, 30),
			navigateLeg(t, c, d, 30),
		},
		100, nil,
	)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}

func TestNewRoute_RejectsLegExceedingTankCapacity(t *testing.T) {
	// Arrange
	a := testWaypoint(t, "X1-TST-A", 0, 0, true)
	b := testWaypoint(t, "X1-TST-B", 80, 0, true)

	// Act: the leg needs 80 tank units but the tank holds 40
	_, err := navigation.NewRoute(
		"route-1", "ENDURANCE-1", shared.MustNewPlayerID(1),
		[]navigation.ConcreteConnection{navigateLeg(t, a, b, 80)},
		40, nil,
	)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tank capacity")
}

func TestRoute_ExecutionLifecycle(t *testing.T) {
	// Arrange
	route := twoLegRoute(t)
	assert.Equal(t, navigation.RouteStatusPlanned, route.Status())
	assert.Equal(t, "X1-TST-A", route.Origin().Symbol)
	assert.Equal(t, "X1-TST-C", route.Destination().Symbol)

	// Legs cannot complete before execution starts
	require.Error(t, route.CompleteLeg())

	// Act
	require.NoError(t, route.StartExecution())

	// Assert
	assert.Equal(t, navigation.RouteStatusExecuting, route.Status())
	require.NotNil(t, route.StartedAt())
	require.Error(t, route.StartExecution())

	assert.Equal(t, "X1-TST-B", route.CurrentConnection().End().Symbol)
	assert.Len(t, route.RemainingConnections(), 2)

	require.NoError(t, route.CompleteLeg())
	assert.Equal(t, "X1-TST-C", route.CurrentConnection().End().Symbol)
	assert.False(t, route.IsComplete())

	// Completing the final leg completes the route
	require.NoError(t, route.CompleteLeg())
	assert.True(t, route.IsComplete())
	assert.Nil(t, route.CurrentConnection())
	assert.Empty(t, route.RemainingConnections())
	require.NotNil(t, route.FinishedAt())
}

func TestRoute_FailRecordsCause(t *testing.T) {
	// Arrange
	route := twoLegRoute(t)
	require.NoError(t, route.StartExecution())
	cause := errors.New("reactor scrammed")

	// Act
	route.Fail(cause)

	// Assert
	assert.True(t, route.IsFailed())
	assert.Equal(t, cause, route.LastError())
	require.NotNil(t, route.FinishedAt())
}

func TestRoute_Abort(t *testing.T) {
	// Arrange
	route := twoLegRoute(t)
	require.NoError(t, route.StartExecution())

	// Act
	route.Abort()

	// Assert
	assert.Equal(t, navigation.RouteStatusAborted, route.Status())
	assert.False(t, route.IsFailed())
}

func TestRoute_IsEmpty(t *testing.T) {
	// Arrange
	route, err := navigation.NewRoute(
		"route-1", "ENDURANCE-1", shared.MustNewPlayerID(1),
		nil, 100, nil,
	)
	require.NoError(t, err)

	// Assert
	assert.True(t, route.IsEmpty())
	assert.Nil(t, route.Origin())
	assert.Nil(t, route.Destination())
}
