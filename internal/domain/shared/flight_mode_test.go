package shared_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

func TestFlightMode_FuelCost(t *testing.T) {
	// Zero distance is free
	assert.Equal(t, 0, shared.FlightModeCruise.FuelCost(0))

	// Cruise burns one unit per distance unit, rounded up
	assert.Equal(t, 30, shared.FlightModeCruise.FuelCost(30))
	assert.Equal(t, 31, shared.FlightModeCruise.FuelCost(30.2))

	// Burn doubles the rate
	assert.Equal(t, 60, shared.FlightModeBurn.FuelCost(30))

	// Drift barely sips fuel but every move costs at least one unit
	assert.Equal(t, 1, shared.FlightModeDrift.FuelCost(30))
	assert.Equal(t, 1, shared.FlightModeDrift.FuelCost(300))
	assert.Equal(t, 2, shared.FlightModeDrift.FuelCost(500))
}

func TestFlightMode_TravelTime(t *testing.T) {
	// Zero distance means no travel and no dispatch overhead
	assert.Equal(t, 0, shared.FlightModeCruise.TravelTime(0, 10))

	// Cruise: round(30*31/10) + 15
	assert.Equal(t, 108, shared.FlightModeCruise.TravelTime(30, 10))

	// Burn: round(30*15/10) + 15
	assert.Equal(t, 60, shared.FlightModeBurn.TravelTime(30, 10))

	// Drift: round(30*155/10) + 15
	assert.Equal(t, 480, shared.FlightModeDrift.TravelTime(30, 10))

	// A non-positive engine speed is clamped to 1
	assert.Equal(t, 945, shared.FlightModeCruise.TravelTime(30, 0))
}

func TestFlightMode_Radius(t *testing.T) {
	// Burn covers half the tank per hop
	assert.Equal(t, 50.0, shared.FlightModeBurn.Radius(100))

	// Cruise and Stealth cover the full tank
	assert.Equal(t, 100.0, shared.FlightModeCruise.Radius(100))
	assert.Equal(t, 100.0, shared.FlightModeStealth.Radius(100))

	// A zero-capacity tank means an unlimited-range craft
	assert.True(t, math.IsInf(shared.FlightModeCruise.Radius(0), 1))
	assert.True(t, math.IsInf(shared.FlightModeStealth.Radius(0), 1))

	// Drift is always unbounded
	assert.True(t, math.IsInf(shared.FlightModeDrift.Radius(0), 1))
	assert.True(t, math.IsInf(shared.FlightModeDrift.Radius(100), 1))
}

func TestParseFlightMode(t *testing.T) {
	// Act
	mode, err := shared.ParseFlightMode("BURN")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, shared.FlightModeBurn, mode)

	// Invalid names fail
	_, err = shared.ParseFlightMode("WARP9")
	assert.Error(t, err)

	assert.True(t, shared.IsValidFlightModeName("DRIFT"))
	assert.False(t, shared.IsValidFlightModeName("drift"))
}

func TestModeSet_Key(t *testing.T) {
	modes := shared.ModeSet{shared.FlightModeBurn, shared.FlightModeDrift}

	assert.Equal(t, "BURN+DRIFT", modes.Key())
	assert.Equal(t, "CRUISE", shared.CruiseOnly().Key())
	assert.Equal(t, "BURN+CRUISE+DRIFT", shared.DefaultModeSet().Key())

	assert.True(t, modes.Contains(shared.FlightModeBurn))
	assert.False(t, modes.Contains(shared.FlightModeCruise))
}
