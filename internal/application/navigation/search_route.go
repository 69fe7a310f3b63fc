package navigation

import (
	"context"
	"errors"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/routing"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// SearchRouteHandler - Plans a cost-optimal route for a ship.
//
// Loads the waypoint graph for the origin system (and the destination
// system when they differ), runs the search with the ship's live fuel
// state, and assembles the result into an executable route. Planning
// makes no remote calls and has no side effects on the ship.
type SearchRouteHandler struct {
	shipRepo        navigation.ShipRepository
	waypointRepo    navigation.WaypointRepository
	jumpGateRepo    navigation.JumpGateRepository
	marketPriceRepo navigation.MarketPriceRepository
	pathfinder      *routing.Pathfinder
	assembler       *navigation.RouteAssembler
}

// NewSearchRouteHandler creates a new search route handler
func NewSearchRouteHandler(
	shipRepo navigation.ShipRepository,
	waypointRepo navigation.WaypointRepository,
	jumpGateRepo navigation.JumpGateRepository,
	marketPriceRepo navigation.MarketPriceRepository,
	pathfinder *routing.Pathfinder,
	assembler *navigation.RouteAssembler,
) *SearchRouteHandler {
	return &SearchRouteHandler{
		shipRepo:        shipRepo,
		waypointRepo:    waypointRepo,
		jumpGateRepo:    jumpGateRepo,
		marketPriceRepo: marketPriceRepo,
		pathfinder:      pathfinder,
		assembler:       assembler,
	}
}

// Handle executes the search route query
func (h *SearchRouteHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*SearchRouteQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship := query.Ship
	if ship == nil {
		var err error
		ship, err = h.shipRepo.FindBySymbol(ctx, query.ShipSymbol, query.PlayerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load ship %s: %w", query.ShipSymbol, err)
		}
	}

	route, err := h.plan(ctx, ship, query)
	if err != nil {
		return nil, err
	}

	response := &SearchRouteResponse{Route: route}
	h.estimateCredits(ctx, route, ship, response)
	return response, nil
}

func (h *SearchRouteHandler) plan(
	ctx context.Context,
	ship *navigation.Ship,
	query *SearchRouteQuery,
) (*navigation.Route, error) {
	origin := ship.CurrentLocation()
	originSystem := origin.SystemSymbol
	destinationSystem := shared.ExtractSystemSymbol(query.Destination)

	waypoints, err := h.loadGraph(ctx, originSystem, destinationSystem)
	if err != nil {
		return nil, err
	}

	jumpGates, err := h.loadJumpGates(ctx, originSystem, destinationSystem)
	if err != nil {
		return nil, err
	}

	modes := query.Modes
	if len(modes) == 0 {
		modes = shared.DefaultModeSet()
	}

	edges, err := h.pathfinder.FindRoute(routing.SearchRequest{
		Waypoints:    waypoints,
		Start:        origin.Symbol,
		End:          query.Destination,
		Modes:        modes,
		FuelCapacity: ship.FuelCapacity(),
		StartRange:   ship.StartingRange(),
		OnlyMarkets:  query.OnlyMarkets,
	})
	if err != nil {
		return nil, err
	}

	return h.assembler.Assemble(navigation.AssembleRequest{
		ShipSymbol:   ship.ShipSymbol(),
		PlayerID:     ship.PlayerID(),
		Edges:        edges,
		Waypoints:    waypoints,
		JumpGates:    jumpGates,
		EngineSpeed:  ship.EngineSpeed(),
		FuelCapacity: ship.FuelCapacity(),
	})
}

// loadGraph merges the origin and destination systems' waypoints into one
// search graph. Same-system plans load a single system.
func (h *SearchRouteHandler) loadGraph(
	ctx context.Context,
	originSystem, destinationSystem string,
) (map[string]*shared.Waypoint, error) {
	waypoints, err := h.waypointRepo.GetSystemWaypoints(ctx, originSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to load waypoints for %s: %w", originSystem, err)
	}
	if destinationSystem == originSystem {
		return waypoints, nil
	}

	remote, err := h.waypointRepo.GetSystemWaypoints(ctx, destinationSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to load waypoints for %s: %w", destinationSystem, err)
	}
	for symbol, waypoint := range remote {
		waypoints[symbol] = waypoint
	}
	return waypoints, nil
}

func (h *SearchRouteHandler) loadJumpGates(
	ctx context.Context,
	originSystem, destinationSystem string,
) (*navigation.JumpGateNetwork, error) {
	network, err := h.jumpGateRepo.GetNetwork(ctx, originSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to load jump gates for %s: %w", originSystem, err)
	}
	if destinationSystem == originSystem {
		return network, nil
	}

	remote, err := h.jumpGateRepo.GetNetwork(ctx, destinationSystem)
	if err != nil {
		return nil, fmt.Errorf("failed to load jump gates for %s: %w", destinationSystem, err)
	}
	network.Merge(remote)
	return network, nil
}

// estimateCredits attaches a fuel-credit estimate when a price is known.
// Routes with jump legs are not estimable and leave the estimate unset.
func (h *SearchRouteHandler) estimateCredits(
	ctx context.Context,
	route *navigation.Route,
	ship *navigation.Ship,
	response *SearchRouteResponse,
) {
	if h.marketPriceRepo == nil {
		return
	}
	price, err := h.marketPriceRepo.GetFuelPrice(ctx, ship.CurrentLocation().SystemSymbol)
	if err != nil {
		return
	}
	credits, err := route.EstimateCost(price)
	if err != nil {
		var unsupported *shared.UnsupportedConnectionError
		if !errors.As(err, &unsupported) {
			common.LoggerFromContext(ctx).Log("WARN", "Route cost estimate failed", map[string]interface{}{
				"route_id": route.RouteID(),
				"error":    err.Error(),
			})
		}
		return
	}
	response.EstimatedCredits = credits
	response.CreditsEstimated = true
}
