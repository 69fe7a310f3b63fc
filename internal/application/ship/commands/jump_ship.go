package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// JumpShipHandler - Handles jump-gate traversals.
//
// The jump-gate adjacency is verified locally before any remote call is
// issued, and an active drive cooldown is waited out rather than surfaced
// as an error. The antimatter purchase the jump consumes is recorded the
// same way a fuel purchase is.
type JumpShipHandler struct {
	shipRepo        navigation.ShipRepository
	shipControl     navigation.ShipControl
	jumpGateRepo    navigation.JumpGateRepository
	transactionRepo navigation.TransactionRepository
	agentRepo       navigation.AgentRepository
	clock           shared.Clock
}

// NewJumpShipHandler creates a new jump ship handler
func NewJumpShipHandler(
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
	jumpGateRepo navigation.JumpGateRepository,
	transactionRepo navigation.TransactionRepository,
	agentRepo navigation.AgentRepository,
	clock shared.Clock,
) *JumpShipHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &JumpShipHandler{
		shipRepo:        shipRepo,
		shipControl:     shipControl,
		jumpGateRepo:    jumpGateRepo,
		transactionRepo: transactionRepo,
		agentRepo:       agentRepo,
		clock:           clock,
	}
}

// Handle executes the jump ship command
func (h *JumpShipHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	cmd, ok := request.(*types.JumpShipCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := loadShip(ctx, h.shipRepo, cmd.Ship, cmd.ShipSymbol, cmd.PlayerID)
	if err != nil {
		return nil, err
	}

	if ship.IsAtLocation(cmd.Destination.Symbol) {
		return &types.JumpShipResponse{Status: "already_at_destination"}, nil
	}

	if err := h.verifyAdjacency(ctx, ship.CurrentLocation().Symbol, cmd.Destination.Symbol); err != nil {
		return nil, err
	}

	h.waitOutCooldown(ctx, ship)

	result, err := h.shipControl.Jump(ctx, ship.ShipSymbol(), cmd.Destination.Symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to jump: %w", err)
	}

	ship.SetLocation(cmd.Destination)
	ship.SetCooldown(result.CooldownExpiration)

	h.recordJump(ctx, ship, cmd.PlayerID, result)

	cooldown := int(result.CooldownExpiration.Sub(h.clock.Now()).Seconds())
	if cooldown < 0 {
		cooldown = 0
	}
	return &types.JumpShipResponse{
		Status:          "jumped",
		CooldownSeconds: cooldown,
	}, nil
}

// verifyAdjacency rejects jumps between unlinked gates without touching
// the remote API.
func (h *JumpShipHandler) verifyAdjacency(ctx context.Context, from, to string) error {
	connections, err := h.jumpGateRepo.GetConnectionsFrom(ctx, from)
	if err != nil {
		return fmt.Errorf("failed to load jump connections: %w", err)
	}
	for _, symbol := range connections {
		if symbol == to {
			return nil
		}
	}
	return shared.NewNoJumpConnectionError(from, to)
}

// waitOutCooldown blocks until the ship's jump drive is ready again.
func (h *JumpShipHandler) waitOutCooldown(ctx context.Context, ship *navigation.Ship) {
	remaining := ship.CooldownRemaining(h.clock)
	if remaining <= 0 {
		return
	}
	common.LoggerFromContext(ctx).Log("INFO", "Waiting for jump drive cooldown", map[string]interface{}{
		"ship_symbol":      ship.ShipSymbol(),
		"cooldown_seconds": int(remaining.Seconds()),
	})
	h.clock.Sleep(remaining)
	ship.ClearCooldown()
}

// recordJump persists the antimatter transaction and credit balance.
// Persistence failures are logged, not propagated.
func (h *JumpShipHandler) recordJump(
	ctx context.Context,
	ship *navigation.Ship,
	playerID shared.PlayerID,
	result *navigation.JumpResult,
) {
	logger := common.LoggerFromContext(ctx)

	if h.transactionRepo != nil && result.Transaction != nil {
		transaction := result.Transaction
		transaction.ShipSymbol = ship.ShipSymbol()
		transaction.PlayerID = playerID.Value()
		if err := h.transactionRepo.SaveTransaction(ctx, transaction); err != nil {
			logger.Log("WARN", "Failed to record jump transaction", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"error":       err.Error(),
			})
		}
	}

	if h.agentRepo != nil && result.AgentCredits != 0 {
		if err := h.agentRepo.UpdateCredits(ctx, playerID, result.AgentCredits); err != nil {
			logger.Log("WARN", "Failed to update agent credits after jump", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"error":       err.Error(),
			})
		}
	}
}
