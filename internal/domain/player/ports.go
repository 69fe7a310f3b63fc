package player

import (
	"context"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// PlayerRepository defines player persistence operations
type PlayerRepository interface {
	FindByID(ctx context.Context, playerID shared.PlayerID) (*Player, error)
	FindByAgentSymbol(ctx context.Context, agentSymbol string) (*Player, error)
	Add(ctx context.Context, player *Player) error
}
