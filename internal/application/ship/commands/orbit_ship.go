package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// OrbitShipHandler - Handles orbit ship commands
type OrbitShipHandler struct {
	shipRepo    navigation.ShipRepository
	shipControl navigation.ShipControl
}

// NewOrbitShipHandler creates a new orbit ship handler
func NewOrbitShipHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
) *OrbitShipHandler {
	return &OrbitShipHandler{
		shipRepo:    shipRepo,
		shipControl: shipControl,
	}
}

// Handle executes the orbit ship command
func (h *OrbitShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.OrbitShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	stateChanged, err := ship.EnsureInOrbit()
	if err != nil {
		return nil, err
	}

	if !stateChanged {
		return &types.OrbitShipResponse{Status: "already_in_orbit"}, nil
	}

	if err := h.shipControl.Orbit(ctx, ship.ShipSymbol()); err != nil {
		return nil, fmt.Errorf("failed to orbit ship: %w", err)
	}

	return &types.OrbitShipResponse{Status: "in_orbit"}, nil
}
