package commands

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// PurchaseCargoHandler - Handles cargo purchase commands (fuel restocking)
type PurchaseCargoHandler struct {
	shipRepo        navigation.ShipRepository
	shipControl     navigation.ShipControl
	transactionRepo navigation.TransactionRepository
	agentRepo       navigation.AgentRepository
	clock           shared.Clock
}

// NewPurchaseCargoHandler creates a new purchase cargo handler
func NewPurchaseCargoHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
	transactionRepo navigation.TransactionRepository,
	agentRepo navigation.AgentRepository,
	clock shared.Clock,
) *PurchaseCargoHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &PurchaseCargoHandler{
		shipRepo:        shipRepo,
		shipControl:     shipControl,
		transactionRepo: transactionRepo,
		agentRepo:       agentRepo,
		clock:           clock,
	}
}

// Handle executes the purchase cargo command
func (h *PurchaseCargoHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.PurchaseCargoCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	if cmd.Units <= 0 {
		return nil, fmt.Errorf("purchase units must be positive")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	if !ship.CurrentLocation().IsMarketplace {
		return nil, fmt.Errorf("waypoint %s has no marketplace", ship.CurrentLocation().Symbol)
	}

	if ship.Cargo().AvailableCapacity() < cmd.Units {
		return nil, fmt.Errorf("insufficient cargo space: need %d, have %d available",
			cmd.Units, ship.Cargo().AvailableCapacity())
	}

	result, err := h.shipControl.PurchaseCargo(ctx, ship.ShipSymbol(), cmd.GoodSymbol, cmd.Units)
	if err != nil {
		return nil, fmt.Errorf("failed to purchase cargo: %w", err)
	}

	if err := ship.ReceiveCargo(cmd.GoodSymbol, result.Units); err != nil {
		return nil, err
	}

	h.recordPurchase(ctx, ship, cmd.PlayerID, result)

	return &types.PurchaseCargoResponse{
		Status:      "purchased",
		Units:       result.Units,
		TotalPrice:  result.TotalPrice,
		CreditsLeft: result.AgentCredits,
	}, nil
}

// recordPurchase persists the transaction and updated credits. Persistence
// failures are logged, not propagated: the purchase already happened.
func (h *PurchaseCargoHandler) recordPurchase(
	ctx context.Context,
	ship *navigation.Ship,
	playerID shared.PlayerID,
	result *navigation.PurchaseResult,
) {
	logger := common.LoggerFromContext(ctx)

	if h.transactionRepo != nil {
		transaction := &navigation.MarketTransaction{
			TransactionID:   uuid.New().String(),
			WaypointSymbol:  ship.CurrentLocation().Symbol,
			ShipSymbol:      ship.ShipSymbol(),
			PlayerID:        playerID.Value(),
			GoodSymbol:      result.GoodSymbol,
			TransactionType: "PURCHASE",
			Units:           result.Units,
			PricePerUnit:    result.PricePerUnit,
			TotalPrice:      result.TotalPrice,
			Timestamp:       h.clock.Now(),
		}
		if err := h.transactionRepo.SaveTransaction(ctx, transaction); err != nil {
			logger.Log("WARN", "Failed to record cargo transaction", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"good":        result.GoodSymbol,
				"error":       err.Error(),
			})
		}
	}

	if h.agentRepo != nil && result.AgentCredits != 0 {
		if err := h.agentRepo.UpdateCredits(ctx, playerID, result.AgentCredits); err != nil {
			logger.Log("WARN", "Failed to update agent credits after purchase", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"error":       err.Error(),
			})
		}
	}
}
