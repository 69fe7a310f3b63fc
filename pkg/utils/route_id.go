package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRouteID creates a standardized, human-readable route ID.
// Format: route-{shipSymbolWithoutAgentPrefix}-{8charHexUUID}
//
// Example:
//   - Input: shipSymbol="AGENT-SCOUT-1"
//   - Output: "route-SCOUT-1-a3f8e2b1"
func GenerateRouteID(shipSymbol string) string {
	return "route-" + stripAgentPrefix(shipSymbol) + "-" + generateShortUUID()
}

// stripAgentPrefix removes the agent prefix from ship symbols.
// Ship symbols have the form {AGENT_PREFIX}-{SHIP_TYPE}-{SHIP_NUMBER}
// where the agent prefix can itself contain hyphens; keep the last two
// hyphen-separated segments.
func stripAgentPrefix(shipSymbol string) string {
	parts := strings.Split(shipSymbol, "-")
	if len(parts) <= 2 {
		return shipSymbol
	}
	return strings.Join(parts[len(parts)-2:], "-")
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
