package navigation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	appship "github.com/andrescamacho/starnav-go/internal/application/ship"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// NavigateRouteHandler - Plans a route and drives it to completion.
//
// The command blocks for the route's full duration, so callers wanting
// concurrency run it in its own goroutine per ship. The in-progress plan
// is snapshotted onto the ship for external inspection while it runs.
type NavigateRouteHandler struct {
	mediator common.Mediator
	shipRepo navigation.ShipRepository
	executor *appship.RouteExecutor
}

// NewNavigateRouteHandler creates a new navigate route handler
func NewNavigateRouteHandler(
	mediator common.Mediator,
	shipRepo navigation.ShipRepository,
	executor *appship.RouteExecutor,
) *NavigateRouteHandler {
	return &NavigateRouteHandler{
		mediator: mediator,
		shipRepo: shipRepo,
		executor: executor,
	}
}

// Handle executes the navigate route command
func (h *NavigateRouteHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*NavigateRouteCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship := cmd.Ship
	if ship == nil {
		var err error
		ship, err = h.shipRepo.FindBySymbol(ctx, cmd.ShipSymbol, cmd.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ship %s: %w", cmd.ShipSymbol, err)
		}
	}

	if ship.IsAtLocation(cmd.Destination) && !ship.IsInTransit() {
		return &NavigateRouteResponse{
			Origin:      ship.CurrentLocation().Symbol,
			Destination: cmd.Destination,
			Status:      "already_at_destination",
		}, nil
	}

	response, err := h.mediator.Send(ctx, &SearchRouteQuery{
		ShipSymbol:  cmd.ShipSymbol,
		PlayerID:    cmd.PlayerID,
		Destination: cmd.Destination,
		Modes:       cmd.Modes,
		OnlyMarkets: cmd.OnlyMarkets,
		Ship:        ship,
	})
	if err != nil {
		return nil, err
	}
	planned, ok := response.(*SearchRouteResponse)
	if !ok {
		return nil, fmt.Errorf("unexpected search response type")
	}
	route := planned.Route

	if route.IsEmpty() {
		return &NavigateRouteResponse{
			RouteID:     route.RouteID(),
			Origin:      ship.CurrentLocation().Symbol,
			Destination: cmd.Destination,
			Status:      "already_at_destination",
		}, nil
	}

	ship.BeginRoute(&navigation.RouteProgress{
		RouteID:     route.RouteID(),
		Origin:      route.Origin().Symbol,
		Destination: route.Destination().Symbol,
		FuelCost:    route.TotalFuelCost(),
		ETA:         route.EstimatedArrival(),
		StartedAt:   route.CreatedAt(),
	})

	if err := h.executor.ExecuteRoute(ctx, route, ship, cmd.Callback); err != nil {
		return nil, fmt.Errorf("route %s failed: %w", route.RouteID(), err)
	}

	return &NavigateRouteResponse{
		RouteID:      route.RouteID(),
		Origin:       route.Origin().Symbol,
		Destination:  route.Destination().Symbol,
		Legs:         len(route.Connections()),
		FuelConsumed: route.TotalFuelCost(),
		Status:       "completed",
	}, nil
}
