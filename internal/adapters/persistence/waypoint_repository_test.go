package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/test/helpers"
)

func marketWaypoint(t *testing.T, symbol string, x, y int) *shared.Waypoint {
	t.Helper()
	wp, err := shared.NewWaypoint(symbol, x, y)
	require.NoError(t, err)
	wp.Type = "PLANET"
	wp.IsMarketplace = true
	return wp
}

func TestWaypointRepository_SaveAndGet(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)

	wp, err := shared.NewWaypoint("X1-GZ7-A1", 10, 20)
	require.NoError(t, err)
	wp.Type = "PLANET"
	wp.IsMarketplace = true
	wp.IsJumpGate = true

	// Act
	require.NoError(t, repo.Save(context.Background(), wp))
	found, err := repo.GetWaypoint(context.Background(), "X1-GZ7-A1")

	// Assert
	require.NoError(t, err)
	assert.Equal(t, wp.Symbol, found.Symbol)
	assert.Equal(t, "X1-GZ7", found.SystemSymbol)
	assert.Equal(t, wp.X, found.X)
	assert.Equal(t, wp.Y, found.Y)
	assert.True(t, found.IsMarketplace)
	assert.True(t, found.IsJumpGate)
	assert.False(t, found.IsShipyard)
}

func TestWaypointRepository_GetWaypoint_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)

	// Act
	_, err := repo.GetWaypoint(context.Background(), "X1-GZ7-NOPE")

	// Assert
	var notFound *shared.WaypointNotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestWaypointRepository_GetSystemWaypoints(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)

	require.NoError(t, repo.SaveAll(context.Background(), []*shared.Waypoint{
		marketWaypoint(t, "X1-GZ7-A1", 0, 0),
		marketWaypoint(t, "X1-GZ7-B2", 30, 0),
		marketWaypoint(t, "X1-ABC-C3", 50, 60),
	}))

	// Act
	waypoints, err := repo.GetSystemWaypoints(context.Background(), "X1-GZ7")

	// Assert: keyed by symbol, other systems excluded
	require.NoError(t, err)
	require.Len(t, waypoints, 2)
	assert.Contains(t, waypoints, "X1-GZ7-A1")
	assert.Contains(t, waypoints, "X1-GZ7-B2")
}

func TestWaypointRepository_ListMarketplaces(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)

	plain, err := shared.NewWaypoint("X1-GZ7-C3", 60, 0)
	require.NoError(t, err)
	plain.Type = "ASTEROID"

	require.NoError(t, repo.SaveAll(context.Background(), []*shared.Waypoint{
		marketWaypoint(t, "X1-GZ7-A1", 0, 0),
		plain,
	}))

	// Act
	markets, err := repo.ListMarketplaces(context.Background(), "X1-GZ7")

	// Assert
	require.NoError(t, err)
	require.Len(t, markets, 1)
	assert.Equal(t, "X1-GZ7-A1", markets[0].Symbol)
}

func TestWaypointRepository_SaveIsUpsert(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)

	wp := marketWaypoint(t, "X1-GZ7-A1", 0, 0)
	require.NoError(t, repo.Save(context.Background(), wp))

	// Act: a later sync changes the capability flags
	wp.IsMarketplace = false
	wp.IsShipyard = true
	require.NoError(t, repo.Save(context.Background(), wp))

	// Assert
	found, err := repo.GetWaypoint(context.Background(), "X1-GZ7-A1")
	require.NoError(t, err)
	assert.False(t, found.IsMarketplace)
	assert.True(t, found.IsShipyard)
}

func TestWaypointRepository_ListKnownSystems(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormWaypointRepository(db, nil)

	require.NoError(t, repo.SaveAll(context.Background(), []*shared.Waypoint{
		marketWaypoint(t, "X1-GZ7-A1", 0, 0),
		marketWaypoint(t, "X1-GZ7-B2", 30, 0),
		marketWaypoint(t, "X1-ABC-C3", 50, 60),
	}))

	// Act
	systems, err := repo.ListKnownSystems(context.Background())

	// Assert: distinct, sorted
	require.NoError(t, err)
	assert.Equal(t, []string{"X1-ABC", "X1-GZ7"}, systems)
}
