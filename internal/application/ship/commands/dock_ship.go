package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// DockShipHandler - Handles dock ship commands
type DockShipHandler struct {
	shipRepo    navigation.ShipRepository
	shipControl navigation.ShipControl
}

// NewDockShipHandler creates a new dock ship handler
func NewDockShipHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
) *DockShipHandler {
	return &DockShipHandler{
		shipRepo:    shipRepo,
		shipControl: shipControl,
	}
}

// Handle executes the dock ship command
func (h *DockShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.DockShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	stateChanged, err := ship.EnsureDocked()
	if err != nil {
		return nil, err
	}

	if !stateChanged {
		return &types.DockShipResponse{Status: "already_docked"}, nil
	}

	if err := h.shipControl.Dock(ctx, ship.ShipSymbol()); err != nil {
		return nil, fmt.Errorf("failed to dock ship: %w", err)
	}

	return &types.DockShipResponse{Status: "docked"}, nil
}

// loadShip resolves the ship entity for a command: use the supplied entity
// when present, otherwise fall back to the repository.
func loadShip(
	ctx context.Context,
	shipRepo navigation.ShipRepository,
	supplied *navigation.Ship,
	shipSymbol string,
	playerID shared.PlayerID,
) (*navigation.Ship, error) {
	if supplied != nil {
		return supplied, nil
	}
	ship, err := shipRepo.FindBySymbol(ctx, shipSymbol, playerID)
	if err != nil {
		return nil, fmt.Errorf("ship not found: %w", err)
	}
	return ship, nil
}
