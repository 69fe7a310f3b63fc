package persistence

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// GormJumpGateRepository implements navigation.JumpGateRepository using GORM
type GormJumpGateRepository struct {
	db *gorm.DB
}

// NewGormJumpGateRepository creates a new GORM jump gate repository
func NewGormJumpGateRepository(db *gorm.DB) *GormJumpGateRepository {
	return &GormJumpGateRepository{db: db}
}

// GetConnectionsFrom retrieves the gates reachable by one jump
func (r *GormJumpGateRepository) GetConnectionsFrom(ctx context.Context, waypointSymbol string) ([]string, error) {
	var models []JumpGateConnectionModel
	result := r.db.WithContext(ctx).Where("from_waypoint = ?", waypointSymbol).Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to list jump connections: %w", result.Error)
	}

	targets := make([]string, 0, len(models))
	for _, model := range models {
		targets = append(targets, model.ToWaypoint)
	}
	return targets, nil
}

// GetNetwork retrieves the full jump adjacency touching a system: edges
// departing it plus edges arriving into it, so cross-system pairs classify
// correctly from either side.
func (r *GormJumpGateRepository) GetNetwork(ctx context.Context, systemSymbol string) (*navigation.JumpGateNetwork, error) {
	var models []JumpGateConnectionModel
	result := r.db.WithContext(ctx).
		Where("system_symbol = ? OR to_waypoint LIKE ?", systemSymbol, systemSymbol+"-%").
		Find(&models)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to load jump network: %w", result.Error)
	}

	network := navigation.NewJumpGateNetwork()
	for _, model := range models {
		network.AddConnection(model.FromWaypoint, model.ToWaypoint)
	}
	return network, nil
}

// SaveConnections replaces the outgoing edges of a gate
func (r *GormJumpGateRepository) SaveConnections(ctx context.Context, fromWaypoint string, toWaypoints []string) error {
	systemSymbol := shared.ExtractSystemSymbol(fromWaypoint)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("from_waypoint = ?", fromWaypoint).
			Delete(&JumpGateConnectionModel{}).Error; err != nil {
			return fmt.Errorf("failed to clear jump connections: %w", err)
		}
		for _, to := range toWaypoints {
			model := &JumpGateConnectionModel{
				FromWaypoint: fromWaypoint,
				ToWaypoint:   to,
				SystemSymbol: systemSymbol,
			}
			if err := tx.Create(model).Error; err != nil {
				return fmt.Errorf("failed to save jump connection: %w", err)
			}
		}
		return nil
	})
}
