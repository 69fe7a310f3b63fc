package navigation

import (
	appship "github.com/andrescamacho/starnav-go/internal/application/ship"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// SearchRouteQuery - Query for a cost-optimal route plan without executing
// it. Modes defaults to burn, cruise and drift when empty.
type SearchRouteQuery struct {
	ShipSymbol  string
	PlayerID    shared.PlayerID
	Destination string
	Modes       shared.ModeSet
	OnlyMarkets bool
	Ship        *navigation.Ship
}

// SearchRouteResponse - The planned route plus a credit estimate when a
// fuel price for the origin system is known. Routes containing jump legs
// cannot be estimated.
type SearchRouteResponse struct {
	Route            *navigation.Route
	EstimatedCredits int
	CreditsEstimated bool
}

// NavigateRouteCommand - Command to plan a route and drive it to
// completion. Blocks until the route finishes or fails.
type NavigateRouteCommand struct {
	ShipSymbol  string
	PlayerID    shared.PlayerID
	Destination string
	Modes       shared.ModeSet
	OnlyMarkets bool
	Ship        *navigation.Ship

	// Callback runs at each leg's start waypoint before departure.
	Callback appship.SideEffectCallback
}

// NavigateRouteResponse - Response from a completed route execution
type NavigateRouteResponse struct {
	RouteID      string
	Origin       string
	Destination  string
	Legs         int
	FuelConsumed int
	Status       string
}

// GetRouteProgressQuery - Query for a ship's in-progress route snapshot
type GetRouteProgressQuery struct {
	ShipSymbol string
	PlayerID   shared.PlayerID
}

// GetRouteProgressResponse - Progress is nil when no route is executing
type GetRouteProgressResponse struct {
	Progress *navigation.RouteProgress
}
