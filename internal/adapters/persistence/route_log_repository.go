package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// GormRouteLogRepository implements navigation.RouteLogRepository using GORM
type GormRouteLogRepository struct {
	db *gorm.DB
}

// NewGormRouteLogRepository creates a new GORM route log repository
func NewGormRouteLogRepository(db *gorm.DB) *GormRouteLogRepository {
	return &GormRouteLogRepository{db: db}
}

// SaveLeg persists one executed-leg record
func (r *GormRouteLogRepository) SaveLeg(ctx context.Context, record *navigation.RouteLogRecord) error {
	model := &RouteLogModel{
		RouteID:        record.RouteID,
		ShipSymbol:     record.ShipSymbol,
		PlayerID:       record.PlayerID,
		FromWaypoint:   record.FromWaypoint,
		ToWaypoint:     record.ToWaypoint,
		ConnectionKind: string(record.ConnectionKind),
		FlightMode:     record.FlightMode,
		Distance:       record.Distance,
		FuelConsumed:   record.FuelConsumed,
		FuelBefore:     record.FuelBefore,
		FuelAfter:      record.FuelAfter,
		DepartedAt:     record.DepartedAt,
		ArrivedAt:      record.ArrivedAt,
		TravelSeconds:  record.TravelSeconds,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save route leg: %w", result.Error)
	}
	return nil
}

// ListByRoute retrieves the executed legs of a route in departure order
func (r *GormRouteLogRepository) ListByRoute(ctx context.Context, routeID string) ([]*navigation.RouteLogRecord, error) {
	var models []RouteLogModel
	result := r.db.WithContext(ctx).
		Where("route_id = ?", routeID).
		Order("departed_at ASC").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list route legs: %w", result.Error)
	}

	records := make([]*navigation.RouteLogRecord, 0, len(models))
	for _, model := range models {
		records = append(records, &navigation.RouteLogRecord{
			RouteID:        model.RouteID,
			ShipSymbol:     model.ShipSymbol,
			PlayerID:       model.PlayerID,
			FromWaypoint:   model.FromWaypoint,
			ToWaypoint:     model.ToWaypoint,
			ConnectionKind: navigation.ConnectionKind(model.ConnectionKind),
			FlightMode:     model.FlightMode,
			Distance:       model.Distance,
			FuelConsumed:   model.FuelConsumed,
			FuelBefore:     model.FuelBefore,
			FuelAfter:      model.FuelAfter,
			DepartedAt:     model.DepartedAt,
			ArrivedAt:      model.ArrivedAt,
			TravelSeconds:  model.TravelSeconds,
		})
	}
	return records, nil
}
