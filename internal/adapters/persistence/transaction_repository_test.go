package persistence_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/test/helpers"
)

func fuelPurchase(id, shipSymbol string, totalPrice int, at time.Time) *navigation.MarketTransaction {
	return &navigation.MarketTransaction{
		TransactionID:   id,
		WaypointSymbol:  "X1-GZ7-A1",
		ShipSymbol:      shipSymbol,
		PlayerID:        1,
		GoodSymbol:      shared.FuelGoodSymbol,
		TransactionType: "PURCHASE",
		Units:           100,
		PricePerUnit:    totalPrice / 100,
		TotalPrice:      totalPrice,
		Timestamp:       at,
	}
}

func TestTransactionRepository_SaveAndListByShip(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, repo.SaveTransaction(context.Background(),
		fuelPurchase("txn-1", "ENDURANCE-1", 7200, base)))
	require.NoError(t, repo.SaveTransaction(context.Background(),
		fuelPurchase("txn-2", "ENDURANCE-1", 6400, base.Add(time.Hour))))
	require.NoError(t, repo.SaveTransaction(context.Background(),
		fuelPurchase("txn-3", "ENDURANCE-2", 8000, base)))

	// Act
	transactions, err := repo.ListByShip(context.Background(), "ENDURANCE-1", 0)

	// Assert: newest first, other ships excluded
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "txn-2", transactions[0].TransactionID)
	assert.Equal(t, "txn-1", transactions[1].TransactionID)
	assert.Equal(t, shared.FuelGoodSymbol, transactions[0].GoodSymbol)
	assert.Equal(t, 6400, transactions[0].TotalPrice)
}

func TestTransactionRepository_ListByShip_Limit(t *testing.T) {
	// Arrange
	db := helpers.NewTestDB(t)
	repo := persistence.NewGormTransactionRepository(db)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"txn-1", "txn-2", "txn-3"} {
		require.NoError(t, repo.SaveTransaction(context.Background(),
			fuelPurchase(id, "ENDURANCE-1", 7200, base.Add(time.Duration(i)*time.Minute))))
	}

	// Act
	transactions, err := repo.ListByShip(context.Background(), "ENDURANCE-1", 2)

	// Assert
	require.NoError(t, err)
	require.Len(t, transactions, 2)
	assert.Equal(t, "txn-3", transactions[0].TransactionID)
}
