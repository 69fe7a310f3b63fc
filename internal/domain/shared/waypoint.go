package shared

import (
	"fmt"
	"math"
)

// Waypoint is an immutable snapshot of one node in a system's spatial graph.
// Instances are supplied per search by the persistence layer and never
// mutated by the routing engine.
type Waypoint struct {
	Symbol       string `json:"symbol"`
	SystemSymbol string `json:"systemSymbol"`
	X            int    `json:"x"`
	Y            int    `json:"y"`
	Type         string `json:"type"`

	// Capability flags
	IsMarketplace bool `json:"is_marketplace"`
	IsShipyard    bool `json:"is_shipyard"`
	IsCharted     bool `json:"is_charted"`
	IsJumpGate    bool `json:"is_jump_gate"`

	// Resource flags
	Minable    bool `json:"minable"`
	Siphonable bool `json:"siphonable"`
}

// NewWaypoint creates a new waypoint with validation
func NewWaypoint(symbol string, x, y int) (*Waypoint, error) {
	if symbol == "" {
		return nil, NewValidationError("symbol", "cannot be empty")
	}

	return &Waypoint{
		Symbol:       symbol,
		SystemSymbol: ExtractSystemSymbol(symbol),
		X:            x,
		Y:            y,
	}, nil
}

// DistanceTo calculates Euclidean distance to another waypoint
func (w *Waypoint) DistanceTo(other *Waypoint) float64 {
	dx := float64(other.X - w.X)
	dy := float64(other.Y - w.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// CanRefuel reports whether fuel can be purchased here. Fuel is only sold
// at marketplaces.
func (w *Waypoint) CanRefuel() bool {
	return w.IsMarketplace
}

func (w *Waypoint) String() string {
	return fmt.Sprintf("Waypoint(%s)", w.Symbol)
}

// ExtractSystemSymbol extracts the system symbol from a waypoint symbol
// by finding the last hyphen and returning everything before it.
// Example: "X1-AB12-C3D4" -> "X1-AB12"
func ExtractSystemSymbol(waypointSymbol string) string {
	systemSymbol := waypointSymbol
	for i := len(waypointSymbol) - 1; i >= 0; i-- {
		if waypointSymbol[i] == '-' {
			systemSymbol = waypointSymbol[:i]
			break
		}
	}
	return systemSymbol
}
