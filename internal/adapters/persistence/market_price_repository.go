package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// GormMarketPriceRepository implements navigation.MarketPriceRepository
// using GORM
type GormMarketPriceRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormMarketPriceRepository creates a new GORM market price repository
func NewGormMarketPriceRepository(db *gorm.DB, clock shared.Clock) *GormMarketPriceRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormMarketPriceRepository{db: db, clock: clock}
}

// GetFuelPrice returns the most recently observed purchase price of one
// FUEL unit in the system
func (r *GormMarketPriceRepository) GetFuelPrice(ctx context.Context, systemSymbol string) (int, error) {
	var model MarketPriceModel
	result := r.db.WithContext(ctx).
		Where("system_symbol = ? AND good_symbol = ?", systemSymbol, shared.FuelGoodSymbol).
		Order("last_updated DESC").
		First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return 0, fmt.Errorf("no fuel price observed in system %s", systemSymbol)
		}
		return 0, fmt.Errorf("failed to find fuel price: %w", result.Error)
	}

	return model.PurchasePrice, nil
}

// SavePrice records an observed good price at a waypoint (upsert)
func (r *GormMarketPriceRepository) SavePrice(ctx context.Context, waypointSymbol, goodSymbol string, purchasePrice, sellPrice int) error {
	model := &MarketPriceModel{
		WaypointSymbol: waypointSymbol,
		GoodSymbol:     goodSymbol,
		SystemSymbol:   shared.ExtractSystemSymbol(waypointSymbol),
		PurchasePrice:  purchasePrice,
		SellPrice:      sellPrice,
		LastUpdated:    r.clock.Now(),
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save market price: %w", result.Error)
	}
	return nil
}
