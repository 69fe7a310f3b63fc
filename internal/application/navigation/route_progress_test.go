package navigation_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	appnav "github.com/andrescamacho/starnav-go/internal/application/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/test/helpers"
)

// snapshotShipControl serves a fixed snapshot; every other remote
// operation is unexpected in these tests.
type snapshotShipControl struct {
	snapshot *navigation.ShipSnapshot
	getCalls int
}

func (c *snapshotShipControl) GetShip(ctx context.Context, shipSymbol string) (*navigation.ShipSnapshot, error) {
	c.getCalls++
	return c.snapshot, nil
}

func (c *snapshotShipControl) Dock(ctx context.Context, shipSymbol string) error {
	return fmt.Errorf("unexpected Dock call")
}

func (c *snapshotShipControl) Orbit(ctx context.Context, shipSymbol string) error {
	return fmt.Errorf("unexpected Orbit call")
}

func (c *snapshotShipControl) SetFlightMode(ctx context.Context, shipSymbol string, mode shared.FlightMode) error {
	return fmt.Errorf("unexpected SetFlightMode call")
}

func (c *snapshotShipControl) Navigate(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	return nil, fmt.Errorf("unexpected Navigate call")
}

func (c *snapshotShipControl) Warp(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	return nil, fmt.Errorf("unexpected Warp call")
}

func (c *snapshotShipControl) Jump(ctx context.Context, shipSymbol, destination string) (*navigation.JumpResult, error) {
	return nil, fmt.Errorf("unexpected Jump call")
}

func (c *snapshotShipControl) Refuel(ctx context.Context, shipSymbol string, units int, fromCargo bool) (*navigation.RefuelResult, error) {
	return nil, fmt.Errorf("unexpected Refuel call")
}

func (c *snapshotShipControl) PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int) (*navigation.PurchaseResult, error) {
	return nil, fmt.Errorf("unexpected PurchaseCargo call")
}

func TestGetRouteProgress_SeesExecutingRoute(t *testing.T) {
	// Arrange: load the ship the way the navigate command does
	db := helpers.NewTestDB(t)
	control := &snapshotShipControl{snapshot: &navigation.ShipSnapshot{
		Symbol:         "ENDURANCE-1",
		WaypointSymbol: "X1-TST-A",
		NavStatus:      "IN_ORBIT",
		FlightMode:     "CRUISE",
		FuelCurrent:    100,
		FuelCapacity:   400,
		CargoCapacity:  40,
		EngineSpeed:    10,
	}}
	repo := persistence.NewGormShipRepository(db, control, persistence.NewGormWaypointRepository(db, nil))
	handler := appnav.NewGetRouteProgressHandler(repo)

	playerID := shared.MustNewPlayerID(1)
	entity, err := repo.FindBySymbol(context.Background(), "ENDURANCE-1", playerID)
	require.NoError(t, err)

	entity.BeginRoute(&navigation.RouteProgress{
		RouteID:     "route-7",
		Origin:      "X1-TST-A",
		Destination: "X1-TST-C",
		FuelCost:    60,
	})

	// Act
	response, err := handler.Handle(context.Background(), &appnav.GetRouteProgressQuery{
		ShipSymbol: "ENDURANCE-1",
		PlayerID:   playerID,
	})

	// Assert: the query observes the plan running on the live entity
	require.NoError(t, err)
	progress := response.(*appnav.GetRouteProgressResponse).Progress
	require.NotNil(t, progress)
	assert.Equal(t, "route-7", progress.RouteID)
	assert.Equal(t, "X1-TST-C", progress.Destination)

	// While the route runs, lookups share the executing entity instead of
	// reconstructing a fresh snapshot
	again, err := repo.FindBySymbol(context.Background(), "ENDURANCE-1", playerID)
	require.NoError(t, err)
	assert.Same(t, entity, again)
	assert.Equal(t, 1, control.getCalls)

	// Once the route finishes, lookups fall back to the remote snapshot
	entity.ClearRouteProgress()
	response, err = handler.Handle(context.Background(), &appnav.GetRouteProgressQuery{
		ShipSymbol: "ENDURANCE-1",
		PlayerID:   playerID,
	})
	require.NoError(t, err)
	assert.Nil(t, response.(*appnav.GetRouteProgressResponse).Progress)
	assert.Equal(t, 2, control.getCalls)
}
