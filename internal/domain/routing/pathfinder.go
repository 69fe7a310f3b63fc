package routing

import (
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// DefaultHeuristicFactor scales the straight-line distance to the goal
// when ordering the frontier. Any value at or below the smallest mode
// search multiplier keeps the estimate a consistent lower bound, so the
// search stays exact while expanding fewer vertices.
const DefaultHeuristicFactor = 0.4

// legOverhead is the fixed per-leg cost added on top of weighted distance,
// penalizing many short hops over one long one.
const legOverhead = 1.0

// SearchRequest describes one constrained shortest-path query.
type SearchRequest struct {
	Waypoints map[string]*shared.Waypoint

	Start string
	End   string

	// Modes restricts which flight modes the search may use.
	Modes shared.ModeSet

	// FuelCapacity bounds per-hop range for hops departing refuel points.
	FuelCapacity int

	// StartRange is the fuel actually available at departure (tank plus
	// cargo-held fuel); it bounds the very first hop when the origin
	// cannot refuel.
	StartRange int

	// OnlyMarkets restricts expansion to marketplace vertices, modeling
	// that fuel can only be bought there. The origin is exempt: it gets
	// one hop on whatever fuel it already has.
	OnlyMarkets bool
}

// Pathfinder runs label-correcting shortest-path searches over a waypoint
// graph, optionally guided by a straight-line heuristic, with results
// memoized in a shared RouteCache.
type Pathfinder struct {
	heuristicFactor float64
	cache           *RouteCache
}

// NewPathfinder creates a pathfinder with the default heuristic factor.
func NewPathfinder(cache *RouteCache) *Pathfinder {
	return NewPathfinderWithHeuristic(cache, DefaultHeuristicFactor)
}

// NewPathfinderWithHeuristic creates a pathfinder with a custom heuristic
// factor. A factor of zero degenerates to plain Dijkstra.
func NewPathfinderWithHeuristic(cache *RouteCache, heuristicFactor float64) *Pathfinder {
	return &Pathfinder{
		heuristicFactor: heuristicFactor,
		cache:           cache,
	}
}

// FindRoute returns the cost-optimal edge list from request.Start to
// request.End in discovery order (destination first), consulting the route
// cache before searching.
//
// Fails with WaypointNotFoundError when either endpoint is missing from
// the supplied graph and NoRouteFoundError when the frontier empties
// before the destination is reached.
func (p *Pathfinder) FindRoute(request SearchRequest) ([]*RouteConnection, error) {
	key := NewCacheKey(request)
	if p.cache != nil {
		if cached, ok := p.cache.Get(key); ok {
			return cached, nil
		}
	}

	route, err := p.search(request)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		p.cache.Put(key, route)
	}
	return route, nil
}

func (p *Pathfinder) search(request SearchRequest) ([]*RouteConnection, error) {
	start, ok := request.Waypoints[request.Start]
	if !ok {
		return nil, shared.NewWaypointNotFoundError(request.Start)
	}
	goal, ok := request.Waypoints[request.End]
	if !ok {
		return nil, shared.NewWaypointNotFoundError(request.End)
	}

	unvisited := make(map[string]*shared.Waypoint, len(request.Waypoints))
	for symbol, waypoint := range request.Waypoints {
		unvisited[symbol] = waypoint
	}

	// Best-known predecessor edge per finalized vertex.
	visited := make(map[string]*RouteConnection)

	queue := newFrontier()
	queue.Offer(&RouteConnection{
		Start: start.Symbol,
		End:   start.Symbol,
		Mode:  shared.FlightModeDrift, // sentinel, not a real leg
	})

	for queue.Len() > 0 {
		edge := queue.Pop()
		current := request.Waypoints[edge.End]

		visited[edge.End] = edge
		delete(unvisited, edge.End)

		if edge.End == goal.Symbol {
			return assemblePath(visited, start.Symbol, goal.Symbol), nil
		}

		if !p.canExpand(current, start.Symbol, request.OnlyMarkets) {
			continue
		}

		p.expand(edge, current, goal, unvisited, queue, request)
	}

	return nil, shared.NewNoRouteFoundError(request.Start, request.End)
}

// canExpand applies the refuel-capability gate: under OnlyMarkets a vertex
// may source further edges only if fuel can be bought there, except the
// origin itself.
func (p *Pathfinder) canExpand(current *shared.Waypoint, startSymbol string, onlyMarkets bool) bool {
	if !onlyMarkets {
		return true
	}
	if current.Symbol == startSymbol {
		return true
	}
	return current.CanRefuel()
}

func (p *Pathfinder) expand(
	edge *RouteConnection,
	current *shared.Waypoint,
	goal *shared.Waypoint,
	unvisited map[string]*shared.Waypoint,
	queue *frontier,
	request SearchRequest,
) {
	// The first hop from a non-market origin runs on whatever fuel is
	// already aboard (tank plus cargo); every later hop departs a refuel
	// point with a full tank.
	rangeFuel := request.FuelCapacity
	if current.Symbol == request.Start && !current.CanRefuel() {
		rangeFuel = request.StartRange
	}

	for _, mode := range request.Modes {
		radius := mode.Radius(rangeFuel)

		for _, candidate := range unvisited {
			if candidate.Symbol == current.Symbol {
				continue
			}
			distance := current.DistanceTo(candidate)
			if distance > radius {
				continue
			}

			cost := edge.Cost + distance*mode.SearchMultiplier() + legOverhead
			next := &RouteConnection{
				Start:    current.Symbol,
				End:      candidate.Symbol,
				Mode:     mode,
				Distance: distance,
				Cost:     cost,
				Priority: cost + p.heuristicFactor*candidate.DistanceTo(goal),
			}
			queue.Offer(next)
		}
	}
}

// assemblePath walks predecessor edges back from the goal, returning them
// in discovery order (destination first). The origin sentinel is dropped.
func assemblePath(visited map[string]*RouteConnection, start, goal string) []*RouteConnection {
	var path []*RouteConnection
	cursor := goal
	for cursor != start {
		edge := visited[cursor]
		if edge == nil || edge.IsSelfLoop() {
			break
		}
		path = append(path, edge)
		cursor = edge.Start
	}
	return path
}
