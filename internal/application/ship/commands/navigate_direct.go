package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// NavigateDirectHandler - Handles single-hop in-system navigation.
//
// Issues the remote move, updates local nav and fuel state from the
// response, and persists an executed-leg record whose timestamps come from
// the response itself: the executed record is authoritative, not the
// planner's estimate.
type NavigateDirectHandler struct {
	shipRepo     navigation.ShipRepository
	shipControl  navigation.ShipControl
	routeLogRepo navigation.RouteLogRepository
}

// NewNavigateDirectHandler creates a new navigate direct handler
func NewNavigateDirectHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
	routeLogRepo navigation.RouteLogRepository,
) *NavigateDirectHandler {
	return &NavigateDirectHandler{
		shipRepo:     shipRepo,
		shipControl:  shipControl,
		routeLogRepo: routeLogRepo,
	}
}

// Handle executes the navigate direct command
func (h *NavigateDirectHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.NavigateDirectCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	if ship.IsAtLocation(cmd.Destination.Symbol) {
		return &types.NavigateDirectResponse{Status: "already_at_destination"}, nil
	}

	fuelBefore := ship.Fuel().Current
	origin := ship.CurrentLocation()

	result, err := h.shipControl.Navigate(ctx, ship.ShipSymbol(), cmd.Destination.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to navigate: %w", err)
	}

	if err := applyMovement(ship, cmd.Destination, result); err != nil {
		return nil, err
	}

	persistLegRecord(ctx, h.routeLogRepo, legRecordInput{
		routeID:    cmd.RouteID,
		ship:       ship,
		playerID:   cmd.PlayerID,
		kind:       navigation.ConnectionKindNavigate,
		mode:       cmd.FlightMode,
		origin:     origin,
		dest:       cmd.Destination,
		fuelBefore: fuelBefore,
		result:     result,
	})

	return &types.NavigateDirectResponse{
		Status:         "navigating",
		ArrivalTimeStr: result.ArrivalTime,
		FuelConsumed:   result.FuelConsumed,
		FuelCurrent:    result.FuelCurrent,
		FuelCapacity:   result.FuelCapacity,
	}, nil
}

// applyMovement updates the ship entity from a movement response.
func applyMovement(ship *navigation.Ship, destination *shared.Waypoint, result *navigation.MovementResult) error {
	arrival, err := shared.NewArrivalTime(result.ArrivalTime)
	if err != nil {
		return fmt.Errorf("invalid arrival time in response: %w", err)
	}
	if err := ship.StartTransit(destination, arrival); err != nil {
		return err
	}
	ship.UpdateFuelFromAPI(result.FuelCurrent, result.FuelCapacity)
	return nil
}

type legRecordInput struct {
	routeID    string
	ship       *navigation.Ship
	playerID   shared.PlayerID
	kind       navigation.ConnectionKind
	mode       shared.FlightMode
	origin     *shared.Waypoint
	dest       *shared.Waypoint
	fuelBefore int
	result     *navigation.MovementResult
}

// persistLegRecord stores the executed-leg record with the response's own
// departure/arrival timestamps. Persistence failures are logged, not
// propagated: the move has already been issued.
func persistLegRecord(ctx context.Context, repo navigation.RouteLogRepository, in legRecordInput) {
	if repo == nil {
		return
	}
	logger := common.LoggerFromContext(ctx)

	departed, err := shared.NewArrivalTime(in.result.DepartureTime)
	if err != nil {
		logger.Log("WARN", "Leg record skipped: bad departure timestamp", map[string]interface{}{
			"ship_symbol": in.ship.ShipSymbol(),
			"error":       err.Error(),
		})
		return
	}
	arrived, err := shared.NewArrivalTime(in.result.ArrivalTime)
	if err != nil {
		logger.Log("WARN", "Leg record skipped: bad arrival timestamp", map[string]interface{}{
			"ship_symbol": in.ship.ShipSymbol(),
			"error":       err.Error(),
		})
		return
	}

	record := &navigation.RouteLogRecord{
		RouteID:        in.routeID,
		ShipSymbol:     in.ship.ShipSymbol(),
		PlayerID:       in.playerID.Value(),
		FromWaypoint:   in.origin.Symbol,
		ToWaypoint:     in.dest.Symbol,
		ConnectionKind: in.kind,
		FlightMode:     in.mode.Name(),
		Distance:       in.origin.DistanceTo(in.dest),
		FuelConsumed:   in.result.FuelConsumed,
		FuelBefore:     in.fuelBefore,
		FuelAfter:      in.result.FuelCurrent,
		DepartedAt:     departed.Time(),
		ArrivedAt:      arrived.Time(),
		TravelSeconds:  int(arrived.Time().Sub(departed.Time()).Seconds()),
	}

	if err := repo.SaveLeg(ctx, record); err != nil {
		logger.Log("WARN", "Failed to persist leg record", map[string]interface{}{
			"ship_symbol": in.ship.ShipSymbol(),
			"from":        in.origin.Symbol,
			"to":          in.dest.Symbol,
			"error":       err.Error(),
		})
	}
}
