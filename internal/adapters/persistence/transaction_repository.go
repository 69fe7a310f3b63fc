package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// GormTransactionRepository implements navigation.TransactionRepository
// using GORM
type GormTransactionRepository struct {
	db *gorm.DB
}

// NewGormTransactionRepository creates a new GORM transaction repository
func NewGormTransactionRepository(db *gorm.DB) *GormTransactionRepository {
	return &GormTransactionRepository{db: db}
}

// SaveTransaction persists a market transaction
func (r *GormTransactionRepository) SaveTransaction(ctx context.Context, transaction *navigation.MarketTransaction) error {
	model := &TransactionModel{
		TransactionID:   transaction.TransactionID,
		WaypointSymbol:  transaction.WaypointSymbol,
		ShipSymbol:      transaction.ShipSymbol,
		PlayerID:        transaction.PlayerID,
		GoodSymbol:      transaction.GoodSymbol,
		TransactionType: transaction.TransactionType,
		Units:           transaction.Units,
		PricePerUnit:    transaction.PricePerUnit,
		TotalPrice:      transaction.TotalPrice,
		Timestamp:       transaction.Timestamp,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save transaction: %w", result.Error)
	}
	return nil
}

// ListByShip retrieves a ship's transactions, newest first
func (r *GormTransactionRepository) ListByShip(ctx context.Context, shipSymbol string, limit int) ([]*navigation.MarketTransaction, error) {
	query := r.db.WithContext(ctx).
		Where("ship_symbol = ?", shipSymbol).
		Order("timestamp DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var models []TransactionModel
	if err := query.Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	transactions := make([]*navigation.MarketTransaction, 0, len(models))
	for _, model := range models {
		transactions = append(transactions, &navigation.MarketTransaction{
			TransactionID:   model.TransactionID,
			WaypointSymbol:  model.WaypointSymbol,
			ShipSymbol:      model.ShipSymbol,
			PlayerID:        model.PlayerID,
			GoodSymbol:      model.GoodSymbol,
			TransactionType: model.TransactionType,
			Units:           model.Units,
			PricePerUnit:    model.PricePerUnit,
			TotalPrice:      model.TotalPrice,
			Timestamp:       model.Timestamp,
		})
	}
	return transactions, nil
}
