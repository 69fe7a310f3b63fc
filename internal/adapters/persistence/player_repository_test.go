package persistence_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	"github.com/andrescamacho/starnav-go/internal/domain/player"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/test/helpers"
)

func TestPlayerRepository_AddAndFind(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db, nil)

	p := player.NewPlayer(shared.MustNewPlayerID(1), "ENDURANCE", "secret-token")

	// Act
	require.NoError(t, repo.Add(context.Background(), p))

	// Assert - FindByID
	found, err := repo.FindByID(context.Background(), shared.MustNewPlayerID(1))
	require.NoError(t, err)
	assert.Equal(t, "ENDURANCE", found.AgentSymbol)
	assert.Equal(t, "secret-token", found.Token)

	// Assert - FindByAgentSymbol
	found, err = repo.FindByAgentSymbol(context.Background(), "ENDURANCE")
	require.NoError(t, err)
	assert.Equal(t, 1, found.ID.Value())
}

func TestPlayerRepository_FindNotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db, nil)

	// Act / Assert
	_, err := repo.FindByID(context.Background(), shared.MustNewPlayerID(42))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player not found")

	_, err = repo.FindByAgentSymbol(context.Background(), "GHOST")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player not found")
}

func TestPlayerRepository_UpdateCredits(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db, nil)

	p := player.NewPlayer(shared.MustNewPlayerID(1), "ENDURANCE", "secret-token")
	require.NoError(t, repo.Add(context.Background(), p))

	// Act
	err := repo.UpdateCredits(context.Background(), shared.MustNewPlayerID(1), 123_456)

	// Assert
	require.NoError(t, err)
	found, err := repo.FindByID(context.Background(), shared.MustNewPlayerID(1))
	require.NoError(t, err)
	assert.Equal(t, int64(123_456), found.Credits)
}

func TestPlayerRepository_UpdateCredits_NotFound(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormPlayerRepository(db, nil)

	// Act
	err := repo.UpdateCredits(context.Background(), shared.MustNewPlayerID(42), 100)

	// Assert
	require.Error(t, err)
	assert.Contains(t, err.Error(), "player not found")
}
