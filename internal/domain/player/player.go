package player

import "github.com/andrescamacho/starnav-go/internal/domain/shared"

// Player represents a registered agent: the owner of ships and the holder
// of the API token every remote call authenticates with.
type Player struct {
	ID          shared.PlayerID
	AgentSymbol string
	Token       string
	Credits     int64
	Metadata    map[string]interface{}
}

// NewPlayer creates a new player
func NewPlayer(id shared.PlayerID, agentSymbol, token string) *Player {
	return &Player{
		ID:          id,
		AgentSymbol: agentSymbol,
		Token:       token,
		Metadata:    make(map[string]interface{}),
	}
}
