package routing

import (
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// RouteConnection is a search-time edge. During a search exactly one
// instance exists per vertex holding the best-known predecessor edge for
// that vertex; the finished search returns them in discovery order
// (destination first).
type RouteConnection struct {
	Start    string
	End      string
	Mode     shared.FlightMode
	Distance float64

	// Cost is the accumulated path cost from the search origin.
	Cost float64

	// Priority is Cost plus the heuristic estimate to the goal. Equal to
	// Cost when the search runs without a heuristic.
	Priority float64
}

func (c *RouteConnection) String() string {
	return fmt.Sprintf("%s→%s [%s] d=%.1f c=%.2f", c.Start, c.End, c.Mode, c.Distance, c.Cost)
}

// IsSelfLoop reports whether this is the zero-cost sentinel edge placed at
// the search origin. Sentinels are never part of a returned route.
func (c *RouteConnection) IsSelfLoop() bool {
	return c.Start == c.End
}
