package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// SetFlightModeHandler - Handles flight mode change commands
type SetFlightModeHandler struct {
	shipRepo    navigation.ShipRepository
	shipControl navigation.ShipControl
}

// NewSetFlightModeHandler creates a new set flight mode handler
func NewSetFlightModeHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
) *SetFlightModeHandler {
	return &SetFlightModeHandler{
		shipRepo:    shipRepo,
		shipControl: shipControl,
	}
}

// Handle executes the set flight mode command
func (h *SetFlightModeHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.SetFlightModeCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	if ship.FlightMode() == cmd.Mode {
		return &types.SetFlightModeResponse{Status: "already_set", Mode: cmd.Mode}, nil
	}

	if err := h.shipControl.SetFlightMode(ctx, ship.ShipSymbol(), cmd.Mode); err != nil {
		return nil, fmt.Errorf("failed to set flight mode: %w", err)
	}
	ship.SetFlightMode(cmd.Mode)

	return &types.SetFlightModeResponse{Status: "mode_set", Mode: cmd.Mode}, nil
}
