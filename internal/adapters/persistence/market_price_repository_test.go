package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/test/helpers"
)

func TestMarketPriceRepository_SaveAndGetFuelPrice(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMarketPriceRepository(db, nil)

	// Act
	err := repo.SavePrice(context.Background(), "X1-GZ7-A1", shared.FuelGoodSymbol, 72, 60)
	require.NoError(t, err)

	price, err := repo.GetFuelPrice(context.Background(), "X1-GZ7")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 72, price)
}

func TestMarketPriceRepository_LatestObservationWins(t *testing.T) {
	// Arrange: two markets in the system observed at different times
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormMarketPriceRepository(db, clock)

	require.NoError(t, repo.SavePrice(context.Background(), "X1-GZ7-A1", shared.FuelGoodSymbol, 72, 60))
	clock.Advance(time.Hour)
	require.NoError(t, repo.SavePrice(context.Background(), "X1-GZ7-B2", shared.FuelGoodSymbol, 85, 70))

	// Act
	price, err := repo.GetFuelPrice(context.Background(), "X1-GZ7")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 85, price)
}

func TestMarketPriceRepository_SavePriceIsUpsert(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	repo := persistence.NewGormMarketPriceRepository(db, clock)

	require.NoError(t, repo.SavePrice(context.Background(), "X1-GZ7-A1", shared.FuelGoodSymbol, 72, 60))

	// Act: a fresh observation at the same waypoint replaces the row
	clock.Advance(time.Hour)
	require.NoError(t, repo.SavePrice(context.Background(), "X1-GZ7-A1", shared.FuelGoodSymbol, 64, 55))

	// Assert
	price, err := repo.GetFuelPrice(context.Background(), "X1-GZ7")
	require.NoError(t, err)
	assert.Equal(t, 64, price)
}

func TestMarketPriceRepository_GetFuelPrice_NeverObserved(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormMarketPriceRepository(db, nil)

	// Other goods do not count as fuel observations
	require.NoError(t, repo.SavePrice(context.Background(), "X1-GZ7-A1", "IRON_ORE", 40, 30))

	// Act
	_, err := repo.GetFuelPrice(context.Background(), "X1-GZ7")

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fuel price")
}
