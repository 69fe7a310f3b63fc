package routing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/domain/routing"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// lineGraph builds three collinear waypoints: A(0,0), B(30,0), C(60,0).
func lineGraph(t *testing.T, bIsMarket bool) map[string]*shared.Waypoint {
	t.Helper()

	a, err := shared.NewWaypoint("X1-TST-A", 0, 0)
	require.NoError(t, err)
	a.IsMarketplace = true

	b, err := shared.NewWaypoint("X1-TST-B", 30, 0)
	require.NoError(t, err)
	b.IsMarketplace = bIsMarket

	c, err := shared.NewWaypoint("X1-TST-C", 60, 0)
	require.NoError(t, err)

	return map[string]*shared.Waypoint{
		a.Symbol: a,
		b.Symbol: b,
		c.Symbol: c,
	}
}

func TestPathfinder_FindRoute_HopsThroughIntermediateMarket(t *testing.T) {
	// Arrange: fuel capacity 40 cannot cover the direct 60-unit hop
	pathfinder := routing.NewPathfinder(routing.NewRouteCache())
	request := routing.SearchRequest{
		Waypoints:    lineGraph(t, true),
		Start:        "X1-TST-A",
		End:          "X1-TST-C",
		Modes:        shared.CruiseOnly(),
		FuelCapacity: 40,
		StartRange:   40,
		OnlyMarkets:  true,
	}

	// Act
	edges, err := pathfinder.FindRoute(request)

	// Assert: edges come back in discovery order, destination first
	require.NoError(t, err)
	require.Len(t, edges, 2)

	assert.Equal(t, "X1-TST-B", edges[0].Start)
	assert.Equal(t, "X1-TST-C", edges[0].End)
	assert.Equal(t, "X1-TST-A", edges[1].Start)
	assert.Equal(t, "X1-TST-B", edges[1].End)

	for _, edge := range edges {
		assert.Equal(t, shared.FlightModeCruise, edge.Mode)
		assert.InDelta(t, 30.0, edge.Distance, 0.001)
	}

	// Cost accumulates weighted distance plus the per-leg overhead
	assert.InDelta(t, 31.0, edges[1].Cost, 0.001)
	assert.InDelta(t, 62.0, edges[0].Cost, 0.001)
}

func TestPathfinder_FindRoute_OnlyMarketsBlocksNonMarketRelay(t *testing.T) {
	// Arrange: B cannot sell fuel, so it cannot relay the route
	pathfinder := routing.NewPathfinder(routing.NewRouteCache())
	request := routing.SearchRequest{
		Waypoints:    lineGraph(t, false),
		Start:        "X1-TST-A",
		End:          "X1-TST-C",
		Modes:        shared.CruiseOnly(),
		FuelCapacity: 40,
		StartRange:   40,
		OnlyMarkets:  true,
	}

	// Act
	_, err := pathfinder.FindRoute(request)

	// Assert
	var noRoute *shared.NoRouteFoundError
	require.ErrorAs(t, err, &noRoute)
}

func TestPathfinder_FindRoute_StartRangeBoundsFirstHop(t *testing.T) {
	// Arrange: a non-market origin only gets the fuel already aboard
	waypoints := lineGraph(t, true)
	waypoints["X1-TST-A"].IsMarketplace = false

	pathfinder := routing.NewPathfinder(routing.NewRouteCache())
	request := routing.SearchRequest{
		Waypoints:    waypoints,
		Start:        "X1-TST-A",
		End:          "X1-TST-C",
		Modes:        shared.CruiseOnly(),
		FuelCapacity: 100,
		StartRange:   20,
		OnlyMarkets:  true,
	}

	// Act: 20 units of range cannot reach B at distance 30
	_, err := pathfinder.FindRoute(request)

	// Assert
	var noRoute *shared.NoRouteFoundError
	require.ErrorAs(t, err, &noRoute)

	// Act: enough starting fuel unlocks the same graph
	request.StartRange = 35
	edges, err := pathfinder.FindRoute(request)

	// Assert
	require.NoError(t, err)
	assert.Len(t, edges, 2)
}

func TestPathfinder_FindRoute_CostNeverRisesWithBiggerTank(t *testing.T) {
	// Arrange: the small tank forces the relay through B; a bigger one
	// unlocks the direct hop
	waypoints := lineGraph(t, true)
	pathfinder := routing.NewPathfinder(routing.NewRouteCache())

	destinationCost := func(capacity int) float64 {
		edges, err := pathfinder.FindRoute(routing.SearchRequest{
			Waypoints:    waypoints,
			Start:        "X1-TST-A",
			End:          "X1-TST-C",
			Modes:        shared.CruiseOnly(),
			FuelCapacity: capacity,
			StartRange:   capacity,
			OnlyMarkets:  true,
		})
		require.NoError(t, err)
		return edges[0].Cost
	}

	// Act / Assert: every capacity increase keeps the cost flat or lower
	previous := destinationCost(40)
	for _, capacity := range []int{61, 80, 150, 400} {
		cost := destinationCost(capacity)
		assert.LessOrEqual(t, cost, previous,
			"capacity %d found a costlier route than a smaller tank", capacity)
		previous = cost
	}

	// The relay pays two per-leg overheads, the direct hop only one
	assert.InDelta(t, 62.0, destinationCost(40), 0.001)
	assert.InDelta(t, 61.0, destinationCost(400), 0.001)
}

func TestPathfinder_FindRoute_UnknownWaypoint(t *testing.T) {
	// Arrange
	pathfinder := routing.NewPathfinder(routing.NewRouteCache())
	request := routing.SearchRequest{
		Waypoints:    lineGraph(t, true),
		Start:        "X1-TST-A",
		End:          "X1-TST-NOPE",
		Modes:        shared.CruiseOnly(),
		FuelCapacity: 40,
	}

	// Act
	_, err := pathfinder.FindRoute(request)

	// Assert
	var notFound *shared.WaypointNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestPathfinder_FindRoute_MemoizesResult(t *testing.T) {
	// Arrange
	cache := routing.NewRouteCache()
	pathfinder := routing.NewPathfinder(cache)
	request := routing.SearchRequest{
		Waypoints:    lineGraph(t, true),
		Start:        "X1-TST-A",
		End:          "X1-TST-C",
		Modes:        shared.CruiseOnly(),
		FuelCapacity: 40,
		StartRange:   40,
		OnlyMarkets:  true,
	}

	// Act
	first, err := pathfinder.FindRoute(request)
	require.NoError(t, err)
	second, err := pathfinder.FindRoute(request)
	require.NoError(t, err)

	// Assert: one entry stored, hit indistinguishable from a fresh search
	assert.Equal(t, 1, cache.Len())
	assert.Equal(t, first, second)
}
