package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// GormWaypointRepository implements navigation.WaypointRepository using GORM
type GormWaypointRepository struct {
	db    *gorm.DB
	clock shared.Clock
}

// NewGormWaypointRepository creates a new GORM waypoint repository
func NewGormWaypointRepository(db *gorm.DB, clock shared.Clock) *GormWaypointRepository {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &GormWaypointRepository{db: db, clock: clock}
}

// GetWaypoint retrieves a waypoint by symbol
func (r *GormWaypointRepository) GetWaypoint(ctx context.Context, symbol string) (*shared.Waypoint, error) {
	var model WaypointModel
	result := r.db.WithContext(ctx).Where("waypoint_symbol = ?", symbol).First(&model)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, shared.NewWaypointNotFoundError(symbol)
		}
		return nil, fmt.Errorf("failed to find waypoint: %w", result.Error)
	}

	return modelToWaypoint(&model), nil
}

// GetSystemWaypoints retrieves all waypoints in a system, keyed by symbol
func (r *GormWaypointRepository) GetSystemWaypoints(ctx context.Context, systemSymbol string) (map[string]*shared.Waypoint, error) {
	var models []WaypointModel
	result := r.db.WithContext(ctx).Where("system_symbol = ?", systemSymbol).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list waypoints: %w", result.Error)
	}

	waypoints := make(map[string]*shared.Waypoint, len(models))
	for i := range models {
		waypoint := modelToWaypoint(&models[i])
		waypoints[waypoint.Symbol] = waypoint
	}

	return waypoints, nil
}

// ListMarketplaces retrieves the refuel-capable waypoints of a system
func (r *GormWaypointRepository) ListMarketplaces(ctx context.Context, systemSymbol string) ([]*shared.Waypoint, error) {
	var models []WaypointModel
	result := r.db.WithContext(ctx).
		Where("system_symbol = ? AND is_marketplace = 1", systemSymbol).
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list marketplaces: %w", result.Error)
	}

	waypoints := make([]*shared.Waypoint, 0, len(models))
	for i := range models {
		waypoints = append(waypoints, modelToWaypoint(&models[i]))
	}

	return waypoints, nil
}

// Save persists a waypoint (upsert)
func (r *GormWaypointRepository) Save(ctx context.Context, waypoint *shared.Waypoint) error {
	result := r.db.WithContext(ctx).Save(r.waypointToModel(waypoint))
	if result.Error != nil {
		return fmt.Errorf("failed to save waypoint: %w", result.Error)
	}
	return nil
}

// SaveAll persists a batch of waypoints in one transaction
func (r *GormWaypointRepository) SaveAll(ctx context.Context, waypoints []*shared.Waypoint) error {
	if len(waypoints) == 0 {
		return nil
	}
	models := make([]*WaypointModel, 0, len(waypoints))
	for _, waypoint := range waypoints {
		models = append(models, r.waypointToModel(waypoint))
	}

	result := r.db.WithContext(ctx).Save(models)
	if result.Error != nil {
		return fmt.Errorf("failed to save waypoints: %w", result.Error)
	}
	return nil
}

// ListKnownSystems returns the distinct system symbols present in the
// waypoints table. The daemon's refresh loop re-syncs each of these.
func (r *GormWaypointRepository) ListKnownSystems(ctx context.Context) ([]string, error) {
	var systems []string
	result := r.db.WithContext(ctx).
		Model(&WaypointModel{}).
		Distinct("system_symbol").
		Order("system_symbol ASC").
		Pluck("system_symbol", &systems)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list systems: %w", result.Error)
	}
	return systems, nil
}

func modelToWaypoint(model *WaypointModel) *shared.Waypoint {
	return &shared.Waypoint{
		Symbol:        model.WaypointSymbol,
		SystemSymbol:  model.SystemSymbol,
		X:             model.X,
		Y:             model.Y,
		Type:          model.Type,
		IsMarketplace: model.IsMarketplace == 1,
		IsShipyard:    model.IsShipyard == 1,
		IsCharted:     model.IsCharted == 1,
		IsJumpGate:    model.IsJumpGate == 1,
	}
}

func (r *GormWaypointRepository) waypointToModel(waypoint *shared.Waypoint) *WaypointModel {
	toFlag := func(b bool) int {
		if b {
			return 1
		}
		return 0
	}

	return &WaypointModel{
		WaypointSymbol: waypoint.Symbol,
		SystemSymbol:   waypoint.SystemSymbol,
		Type:           waypoint.Type,
		X:              waypoint.X,
		Y:              waypoint.Y,
		IsMarketplace:  toFlag(waypoint.IsMarketplace),
		IsShipyard:     toFlag(waypoint.IsShipyard),
		IsCharted:      toFlag(waypoint.IsCharted),
		IsJumpGate:     toFlag(waypoint.IsJumpGate),
		SyncedAt:       r.clock.Now(),
	}
}
