package navigation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

func TestRequirementsFor_RoundsDeficitToPurchaseGranularity(t *testing.T) {
	// Arrange: 20 aboard, 150 needed, deficit 130 rounds up to 200
	fuel, err := shared.NewFuel(20, 400)
	require.NoError(t, err)
	refuel := &navigation.Refuel{FuelNeeded: 150, FuelRequired: 0}

	// Act
	reqs := navigation.RequirementsFor(refuel, fuel, 0)

	// Assert
	assert.Equal(t, 200, reqs.RefuelAmount)
	assert.Equal(t, 0, reqs.RestockAmount)
	assert.False(t, reqs.IsSatisfied())
}

func TestRequirementsFor_CapsAtTankGranularityMultiple(t *testing.T) {
	// Arrange: a 250-unit tank can take at most 200 purchased units
	fuel, err := shared.NewFuel(0, 250)
	require.NoError(t, err)
	refuel := &navigation.Refuel{FuelNeeded: 250}

	// Act
	reqs := navigation.RequirementsFor(refuel, fuel, 0)

	// Assert
	assert.Equal(t, 200, reqs.RefuelAmount)
}

func TestRequirementsFor_RestockCoversForecastBeyondCargo(t *testing.T) {
	// Arrange
	fuel, err := shared.NewFuel(100, 100)
	require.NoError(t, err)
	refuel := &navigation.Refuel{FuelNeeded: 60, FuelRequired: 90}

	// Act: 40 units already in cargo leave 50 to buy
	reqs := navigation.RequirementsFor(refuel, fuel, 40)

	// Assert: full tank means no top-up, restock covers the remainder
	assert.Equal(t, 0, reqs.RefuelAmount)
	assert.Equal(t, 50, reqs.RestockAmount)

	// Cargo already holding enough needs nothing
	reqs = navigation.RequirementsFor(refuel, fuel, 120)
	assert.True(t, reqs.IsSatisfied())
}

func TestRequirementsFor_NilRefuel(t *testing.T) {
	// Arrange
	fuel, err := shared.NewFuel(0, 100)
	require.NoError(t, err)

	// Act
	reqs := navigation.RequirementsFor(nil, fuel, 0)

	// Assert
	assert.True(t, reqs.IsSatisfied())
}
