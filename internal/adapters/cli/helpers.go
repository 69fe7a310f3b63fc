package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/andrescamacho/starnav-go/internal/domain/player"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/config"
)

// resolvePlayer resolves the acting player from flags or defaults.
// Priority: --player-id > --agent > defaults in ~/.starnav/config.json
func resolvePlayer(ctx context.Context, repo player.PlayerRepository) (*player.Player, error) {
	if playerID > 0 {
		id, err := shared.NewPlayerID(playerID)
		if err != nil {
			return nil, err
		}
		return repo.FindByID(ctx, id)
	}
	if agentSymbol != "" {
		return repo.FindByAgentSymbol(ctx, agentSymbol)
	}

	// Fall back to the user config default
	handler, err := config.NewUserConfigHandler()
	if err != nil {
		return nil, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}
	userCfg, err := handler.Load()
	if err != nil {
		return nil, fmt.Errorf("no player specified and failed to load user config: %w", err)
	}

	if userCfg.DefaultPlayerID != nil {
		id, err := shared.NewPlayerID(*userCfg.DefaultPlayerID)
		if err != nil {
			return nil, err
		}
		return repo.FindByID(ctx, id)
	}
	if userCfg.DefaultAgent != "" {
		return repo.FindByAgentSymbol(ctx, userCfg.DefaultAgent)
	}

	return nil, fmt.Errorf("no player specified: use --player-id or --agent, or set a default with 'starnav config set-player'")
}

// parseModes converts --modes flag values into a flight mode set.
// Empty input yields nil, which lets handlers apply their default.
func parseModes(names []string) (shared.ModeSet, error) {
	if len(names) == 0 {
		return nil, nil
	}

	modes := make(shared.ModeSet, 0, len(names))
	for _, name := range names {
		mode, err := shared.ParseFlightMode(strings.ToUpper(strings.TrimSpace(name)))
		if err != nil {
			return nil, fmt.Errorf("invalid flight mode %q: %w", name, err)
		}
		modes = append(modes, mode)
	}
	return modes, nil
}

// formatSeconds renders a travel time as h/m/s
func formatSeconds(seconds int) string {
	return (time.Duration(seconds) * time.Second).String()
}

// maskPassword hides the credential section of a connection URL
func maskPassword(url string) string {
	atIndex := strings.LastIndex(url, "@")
	schemeIndex := strings.Index(url, "://")
	if atIndex == -1 || schemeIndex == -1 || atIndex < schemeIndex {
		return url
	}

	credentials := url[schemeIndex+3 : atIndex]
	if colonIndex := strings.Index(credentials, ":"); colonIndex != -1 {
		credentials = credentials[:colonIndex] + ":****"
	}
	return url[:schemeIndex+3] + credentials + url[atIndex:]
}
