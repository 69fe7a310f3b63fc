package navigation

import (
	"github.com/andrescamacho/starnav-go/internal/domain/routing"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/pkg/utils"
)

// AssembleRequest carries the search output plus the live ship
// characteristics route assembly needs.
type AssembleRequest struct {
	ShipSymbol string
	PlayerID   shared.PlayerID

	// Edges is the search output in discovery order (destination first).
	Edges []*routing.RouteConnection

	Waypoints map[string]*shared.Waypoint
	JumpGates *JumpGateNetwork

	EngineSpeed  int
	FuelCapacity int
}

// RouteAssembler converts abstract search edges into a concrete Route:
// classify each edge, annotate real fuel cost and travel time, then run
// the backward refuel pass and fill aggregate totals.
type RouteAssembler struct {
	clock shared.Clock
}

func NewRouteAssembler(clock shared.Clock) *RouteAssembler {
	if clock == nil {
		clock = &shared.RealClock{}
	}
	return &RouteAssembler{clock: clock}
}

// Assemble produces an immutable Route from a search result.
func (a *RouteAssembler) Assemble(request AssembleRequest) (*Route, error) {
	simple, err := a.classify(request)
	if err != nil {
		return nil, err
	}

	connections := a.annotate(simple, request.EngineSpeed)
	a.planRefuels(connections)

	return NewRoute(
		utils.GenerateRouteID(request.ShipSymbol),
		request.ShipSymbol,
		request.PlayerID,
		connections,
		request.FuelCapacity,
		a.clock,
	)
}

// classify reverses the edges into travel order and tags each with the
// connection kind it will execute as. An edge between a pair present in
// the jump-gate adjacency is a jump; any other cross-system edge is a
// warp; everything else is an in-system navigate.
func (a *RouteAssembler) classify(request AssembleRequest) ([]*SimpleConnection, error) {
	simple := make([]*SimpleConnection, 0, len(request.Edges))

	for i := len(request.Edges) - 1; i >= 0; i-- {
		edge := request.Edges[i]

		start, ok := request.Waypoints[edge.Start]
		if !ok {
			return nil, shared.NewWaypointNotFoundError(edge.Start)
		}
		end, ok := request.Waypoints[edge.End]
		if !ok {
			return nil, shared.NewWaypointNotFoundError(edge.End)
		}

		kind := ConnectionKindNavigate
		switch {
		case request.JumpGates != nil && request.JumpGates.Connected(start.Symbol, end.Symbol):
			kind = ConnectionKindJump
		case start.SystemSymbol != end.SystemSymbol:
			kind = ConnectionKindWarp
		}

		simple = append(simple, &SimpleConnection{
			Kind:     kind,
			Start:    start,
			End:      end,
			Mode:     edge.Mode,
			Distance: edge.Distance,
		})
	}

	return simple, nil
}

// annotate attaches real fuel costs and travel times per the flight-mode
// formulas. Jump legs carry the fixed cooldown-class time and no tank
// fuel cost.
func (a *RouteAssembler) annotate(simple []*SimpleConnection, engineSpeed int) []ConcreteConnection {
	connections := make([]ConcreteConnection, 0, len(simple))

	for _, conn := range simple {
		refuel := &Refuel{StartIsMarket: conn.Start.CanRefuel()}

		switch conn.Kind {
		case ConnectionKindJump:
			connections = append(connections, NewJumpConnection(conn.Start, conn.End, refuel))
		case ConnectionKindWarp:
			connections = append(connections, NewWarpConnection(
				conn.Start, conn.End, conn.Mode, conn.Distance,
				conn.Mode.FuelCost(conn.Distance),
				conn.Mode.TravelTime(conn.Distance, engineSpeed),
				refuel,
			))
		default:
			connections = append(connections, NewNavigateConnection(
				conn.Start, conn.End, conn.Mode, conn.Distance,
				conn.Mode.FuelCost(conn.Distance),
				conn.Mode.TravelTime(conn.Distance, engineSpeed),
				refuel,
			))
		}
	}

	return connections
}

// planRefuels runs the backward refuel pass over travel-order legs.
//
// Walking from destination to origin, the accumulator tracks the tank
// fuel needed for every leg seen so far since the last marketplace. Each
// leg's fuel_required is the accumulator before that leg's own cost is
// added: cargo only has to carry fuel for what comes after the leg, since
// the leg's own fill is bought fresh wherever a market is available. A
// marketplace at a leg's start resets the accumulator.
func (a *RouteAssembler) planRefuels(connections []ConcreteConnection) {
	accumulated := 0
	for i := len(connections) - 1; i >= 0; i-- {
		leg := connections[i]
		refuel := leg.Refuel()

		refuel.FuelNeeded = leg.FuelCost()
		refuel.FuelRequired = accumulated

		accumulated += leg.FuelCost()
		if refuel.StartIsMarket {
			accumulated = 0
		}
	}
}
