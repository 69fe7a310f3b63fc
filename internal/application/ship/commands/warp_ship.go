package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// WarpShipHandler - Handles single-hop cross-system warps outside the
// jump-gate network. Mirrors NavigateDirectHandler with the warp endpoint.
type WarpShipHandler struct {
	shipRepo     navigation.ShipRepository
	shipControl  navigation.ShipControl
	routeLogRepo navigation.RouteLogRepository
}

// NewWarpShipHandler creates a new warp ship handler
func NewWarpShipHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
	routeLogRepo navigation.RouteLogRepository,
) *WarpShipHandler {
	return &WarpShipHandler{
		shipRepo:     shipRepo,
		shipControl:  shipControl,
		routeLogRepo: routeLogRepo,
	}
}

// Handle executes the warp ship command
func (h *WarpShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.WarpShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	if ship.IsAtLocation(cmd.Destination.Symbol) {
		return &types.WarpShipResponse{Status: "already_at_destination"}, nil
	}

	fuelBefore := ship.Fuel().Current
	origin := ship.CurrentLocation()

	result, err := h.shipControl.Warp(ctx, ship.ShipSymbol(), cmd.Destination.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to warp: %w", err)
	}

	if err := applyMovement(ship, cmd.Destination, result); err != nil {
		return nil, err
	}

	persistLegRecord(ctx, h.routeLogRepo, legRecordInput{
		routeID:    cmd.RouteID,
		ship:       ship,
		playerID:   cmd.PlayerID,
		kind:       navigation.ConnectionKindWarp,
		mode:       cmd.FlightMode,
		origin:     origin,
		dest:       cmd.Destination,
		fuelBefore: fuelBefore,
		result:     result,
	})

	return &types.WarpShipResponse{
		Status:         "warping",
		ArrivalTimeStr: result.ArrivalTime,
		FuelConsumed:   result.FuelConsumed,
		FuelCurrent:    result.FuelCurrent,
		FuelCapacity:   result.FuelCapacity,
	}, nil
}
