package navigation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

func testShip(t *testing.T, navStatus navigation.NavStatus, fuelCurrent, cargoFuel int) *navigation.Ship {
	t.Helper()

	location := testWaypoint(t, "X1-TST-A", 0, 0, true)
	fuel, err := shared.NewFuel(fuelCurrent, 400)
	require.NoError(t, err)

	var inventory []*shared.CargoItem
	if cargoFuel > 0 {
		item, err := shared.NewCargoItem(shared.FuelGoodSymbol, "Fuel", "", cargoFuel)
		require.NoError(t, err)
		inventory = append(inventory, item)
	}
	cargo, err := shared.NewCargo(40, cargoFuel, inventory)
	require.NoError(t, err)

	ship, err := navigation.NewShip(
		"ENDURANCE-1", shared.MustNewPlayerID(1),
		location, fuel, cargo, 10, nil,
		navStatus, shared.FlightModeCruise,
	)
	require.NoError(t, err)
	return ship
}

func TestNewShip_Validation(t *testing.T) {
	// Arrange
	location := testWaypoint(t, "X1-TST-A", 0, 0, true)
	fuel, err := shared.NewFuel(100, 400)
	require.NoError(t, err)
	cargo, err := shared.NewCargo(40, 0, nil)
	require.NoError(t, err)

	// Act / Assert
	_, err = navigation.NewShip("", shared.MustNewPlayerID(1), location, fuel, cargo,
		10, nil, navigation.NavStatusDocked, shared.FlightModeCruise)
	assert.Error(t, err)

	_, err = navigation.NewShip("ENDURANCE-1", shared.MustNewPlayerID(1), location, fuel, cargo,
		0, nil, navigation.NavStatusDocked, shared.FlightModeCruise)
	assert.Error(t, err)

	_, err = navigation.NewShip("ENDURANCE-1", shared.MustNewPlayerID(1), location, fuel, cargo,
		10, nil, navigation.NavStatus("WARPING"), shared.FlightModeCruise)
	assert.Error(t, err)
}

func TestShip_NavStatusTransitions(t *testing.T) {
	// Arrange
	ship := testShip(t, navigation.NavStatusDocked, 100, 0)

	// Act: departing a docked ship changes state
	changed, err := ship.EnsureInOrbit()

	// Assert
	require.NoError(t, err)
	assert.True(t, changed)
	assert.True(t, ship.IsInOrbit())

	// Already in orbit is a no-op
	changed, err = ship.EnsureInOrbit()
	require.NoError(t, err)
	assert.False(t, changed)

	// Transit round trip
	destination := testWaypoint(t, "X1-TST-B", 30, 0, false)
	arrival := shared.NewArrivalTimeFrom(time.Date(2024, 3, 1, 12, 5, 0, 0, time.UTC))
	require.NoError(t, ship.StartTransit(destination, arrival))
	assert.True(t, ship.IsInTransit())
	assert.True(t, ship.IsAtLocation("X1-TST-B"))

	// Cannot dock mid-flight
	_, err = ship.EnsureDocked()
	assert.Error(t, err)

	require.NoError(t, ship.Arrive())
	assert.True(t, ship.IsInOrbit())
	assert.Nil(t, ship.ArrivalTime())
}

func TestShip_StartTransit_RequiresOrbit(t *testing.T) {
	// Arrange
	ship := testShip(t, navigation.NavStatusDocked, 100, 0)
	destination := testWaypoint(t, "X1-TST-B", 30, 0, false)

	// Act
	err := ship.StartTransit(destination, nil)

	// Assert
	var invalid *shared.InvalidNavStatusError
	require.ErrorAs(t, err, &invalid)
}

func TestShip_FuelManagement(t *testing.T) {
	// Arrange
	ship := testShip(t, navigation.NavStatusDocked, 100, 0)

	// Act / Assert
	require.NoError(t, ship.ConsumeFuel(30))
	assert.Equal(t, 70, ship.Fuel().Current)

	var insufficient *shared.InsufficientFuelError
	require.ErrorAs(t, ship.ConsumeFuel(500), &insufficient)

	require.NoError(t, ship.AddFuel(50))
	assert.Equal(t, 120, ship.Fuel().Current)
}

func TestShip_TransferFuelFromCargo(t *testing.T) {
	// Arrange: 20 fuel units in cargo, tank headroom 300
	ship := testShip(t, navigation.NavStatusInOrbit, 100, 20)
	assert.Equal(t, 120, ship.StartingRange())

	// Act: the transfer is bounded by what the hold actually carries
	moved, err := ship.TransferFuelFromCargo(50)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 20, moved)
	assert.Equal(t, 120, ship.Fuel().Current)
	assert.Equal(t, 0, ship.CargoFuelUnits())

	// Nothing left to move
	moved, err = ship.TransferFuelFromCargo(10)
	require.NoError(t, err)
	assert.Equal(t, 0, moved)
}

func TestShip_CooldownRemaining(t *testing.T) {
	// Arrange
	ship := testShip(t, navigation.NavStatusInOrbit, 100, 0)
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	assert.Equal(t, time.Duration(0), ship.CooldownRemaining(clock))

	// Act
	ship.SetCooldown(clock.Now().Add(60 * time.Second))

	// Assert
	assert.Equal(t, 60*time.Second, ship.CooldownRemaining(clock))

	clock.Advance(90 * time.Second)
	assert.Equal(t, time.Duration(0), ship.CooldownRemaining(clock))
}

func TestShip_HasJumpDrive(t *testing.T) {
	// Arrange
	location := testWaypoint(t, "X1-TST-A", 0, 0, true)
	fuel, err := shared.NewFuel(100, 400)
	require.NoError(t, err)
	cargo, err := shared.NewCargo(40, 0, nil)
	require.NoError(t, err)

	modules := []*navigation.ShipModule{
		navigation.NewShipModule("MODULE_CARGO_HOLD_I", 30, 0),
		navigation.NewShipModule("MODULE_JUMP_DRIVE_I", 0, 500),
	}

	ship, err := navigation.NewShip(
		"ENDURANCE-1", shared.MustNewPlayerID(1),
		location, fuel, cargo, 10, modules,
		navigation.NavStatusDocked, shared.FlightModeCruise,
	)
	require.NoError(t, err)

	// Assert
	assert.True(t, ship.HasJumpDrive())

	bare := testShip(t, navigation.NavStatusDocked, 100, 0)
	assert.False(t, bare.HasJumpDrive())
}

func TestShip_RouteProgress(t *testing.T) {
	// Arrange
	ship := testShip(t, navigation.NavStatusInOrbit, 100, 0)
	started := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	// Act
	ship.BeginRoute(&navigation.RouteProgress{
		RouteID:     "route-1",
		Origin:      "X1-TST-A",
		Destination: "X1-TST-C",
		FuelCost:    60,
		ETA:         started.Add(216 * time.Second),
		StartedAt:   started,
	})

	// Assert
	require.NotNil(t, ship.RouteProgress())
	assert.Equal(t, "route-1", ship.RouteProgress().RouteID)

	ship.ClearRouteProgress()
	assert.Nil(t, ship.RouteProgress())
}
