package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/starnav-go/internal/adapters/metrics"
	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// RefuelShipHandler - Handles refuel ship commands.
//
// Market refuels purchase tank fuel at the current waypoint and record the
// transaction and updated agent credits. Cargo refuels transfer fuel-good
// units from the hold into the tank and touch no persistence beyond local
// bookkeeping.
type RefuelShipHandler struct {
	shipRepo        navigation.ShipRepository
	shipControl     navigation.ShipControl
	transactionRepo navigation.TransactionRepository
	agentRepo       navigation.AgentRepository
	clock           shared.Clock
}

// NewRefuelShipHandler creates a new refuel ship handler
func NewRefuelShipHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
	transactionRepo navigation.TransactionRepository,
	agentRepo navigation.AgentRepository,
	clock shared.Clock,
) *RefuelShipHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RefuelShipHandler{
		shipRepo:        shipRepo,
		shipControl:     shipControl,
		transactionRepo: transactionRepo,
		agentRepo:       agentRepo,
		clock:           clock,
	}
}

// Handle executes the refuel ship command
func (h *RefuelShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.RefuelShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	if cmd.FromCargo {
		return h.refuelFromCargo(ctx, ship, cmd)
	}
	return h.refuelAtMarket(ctx, ship, cmd)
}

func (h *RefuelShipHandler) refuelAtMarket(
	ctx context.Context,
	ship *navigation.Ship,
	cmd *types.RefuelShipCommand,
) (common.Response, error) {
	if !ship.CurrentLocation().CanRefuel() {
		return nil, fmt.Errorf("waypoint %s does not sell fuel", ship.CurrentLocation().Symbol)
	}

	units := cmd.Units
	if units <= 0 {
		units = ship.Fuel().Headroom()
	}
	if units == 0 {
		return &types.RefuelShipResponse{
			Status:       "already_full",
			CurrentFuel:  ship.Fuel().Current,
			FuelCapacity: ship.Fuel().Capacity,
		}, nil
	}

	result, err := h.shipControl.Refuel(ctx, ship.ShipSymbol(), units, false)
	if err != nil {
		return nil, fmt.Errorf("failed to refuel ship: %w", err)
	}

	ship.UpdateFuelFromAPI(result.FuelCurrent, result.FuelCapacity)

	metrics.RecordFuelPurchase(cmd.PlayerID.Value(), ship.CurrentLocation().Symbol, result.FuelAdded)

	h.recordPurchase(ctx, ship, cmd.PlayerID, result)

	return &types.RefuelShipResponse{
		Status:       "refueled",
		FuelAdded:    result.FuelAdded,
		CreditsCost:  result.TotalPrice,
		CurrentFuel:  result.FuelCurrent,
		FuelCapacity: result.FuelCapacity,
	}, nil
}

func (h *RefuelShipHandler) refuelFromCargo(
	ctx context.Context,
	ship *navigation.Ship,
	cmd *types.RefuelShipCommand,
) (common.Response, error) {
	result, err := h.shipControl.Refuel(ctx, ship.ShipSymbol(), cmd.Units, true)
	if err != nil {
		return nil, fmt.Errorf("failed to refuel from cargo: %w", err)
	}

	// Local bookkeeping only: the fuel came out of the hold, no purchase
	// transaction exists.
	if _, err := ship.TransferFuelFromCargo(result.FuelAdded); err != nil {
		return nil, err
	}
	ship.UpdateFuelFromAPI(result.FuelCurrent, result.FuelCapacity)

	return &types.RefuelShipResponse{
		Status:       "refueled_from_cargo",
		FuelAdded:    result.FuelAdded,
		CurrentFuel:  result.FuelCurrent,
		FuelCapacity: result.FuelCapacity,
	}, nil
}

// recordPurchase persists the fuel transaction and updated credit balance.
// Persistence failures are logged, not propagated: the remote purchase has
// already happened and must not fail the route.
func (h *RefuelShipHandler) recordPurchase(
	ctx context.Context,
	ship *navigation.Ship,
	playerID shared.PlayerID,
	result *navigation.RefuelResult,
) {
	logger := common.LoggerFromContext(ctx)

	if h.transactionRepo != nil {
		transaction := &navigation.MarketTransaction{
			TransactionID:   uuid.New().String(),
			WaypointSymbol:  ship.CurrentLocation().Symbol,
			ShipSymbol:      ship.ShipSymbol(),
			PlayerID:        playerID.Value(),
			GoodSymbol:      shared.FuelGoodSymbol,
			TransactionType: "PURCHASE",
			Units:           result.FuelAdded,
			PricePerUnit:    pricePerUnit(result.TotalPrice, result.FuelAdded),
			TotalPrice:      result.TotalPrice,
			Timestamp:       h.clock.Now(),
		}
		if err := h.transactionRepo.SaveTransaction(ctx, transaction); err != nil {
			logger.Log("WARN", "Failed to record fuel transaction", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"waypoint":    ship.CurrentLocation().Symbol,
				"error":       err.Error(),
			})
		}
	}

	if h.agentRepo != nil && result.AgentCredits != 0 {
		if err := h.agentRepo.UpdateCredits(ctx, playerID, result.AgentCredits); err != nil {
			logger.Log("WARN", "Failed to update agent credits after refuel", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"error":       err.Error(),
			})
		}
	}
}

func pricePerUnit(totalPrice, units int) int {
	if units <= 0 {
		return 0
	}
	return totalPrice / units
}
