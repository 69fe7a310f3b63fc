package navigation

import (
	"fmt"
	"time"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// RouteStatus represents route execution status
type RouteStatus string

const (
	RouteStatusPlanned   RouteStatus = "PLANNED"
	RouteStatusExecuting RouteStatus = "EXECUTING"
	RouteStatusCompleted RouteStatus = "COMPLETED"
	RouteStatusFailed    RouteStatus = "FAILED"
	RouteStatusAborted   RouteStatus = "ABORTED"
)

// Route aggregate root - an assembled navigation plan for one ship.
//
// Invariants:
// - Connections form a connected path (leg[i].End == leg[i+1].Start)
// - No leg's tank-fuel need exceeds the ship's fuel capacity
// - Immutable once assembled; consumed exactly once by the executor
type Route struct {
	routeID      string
	shipSymbol   string
	playerID     shared.PlayerID
	connections  []ConcreteConnection
	fuelCapacity int

	totalDistance   float64
	totalFuelCost   int
	totalTravelTime int

	status       RouteStatus
	currentIndex int
	createdAt    time.Time
	startedAt    *time.Time
	finishedAt   *time.Time
	lastError    error
	clock        shared.Clock
}

// NewRoute creates a route with validation. An empty connection list is a
// valid route (origin equals destination).
func NewRoute(
	routeID, shipSymbol string,
	playerID shared.PlayerID,
	connections []ConcreteConnection,
	fuelCapacity int,
	clock shared.Clock,
) (*Route, error) {
	if clock == nil {
		clock = &shared.RealClock{}
	}

	r := &Route{
		routeID:      routeID,
		shipSymbol:   shipSymbol,
		playerID:     playerID,
		connections:  connections,
		fuelCapacity: fuelCapacity,
		status:       RouteStatusPlanned,
		createdAt:    clock.Now(),
		clock:        clock,
	}

	if err := r.validate(); err != nil {
		return nil, err
	}

	for _, leg := range connections {
		r.totalDistance += leg.Distance()
		r.totalFuelCost += leg.FuelCost()
		r.totalTravelTime += leg.TravelTime()
	}

	return r, nil
}

func (r *Route) validate() error {
	for i := 0; i < len(r.connections)-1; i++ {
		current := r.connections[i]
		next := r.connections[i+1]
		if current.End().Symbol != next.Start().Symbol {
			return fmt.Errorf("route legs not connected: %s -> %s",
				current.End().Symbol, next.Start().Symbol)
		}
	}

	if r.fuelCapacity > 0 {
		for _, leg := range r.connections {
			if leg.Refuel() != nil && leg.Refuel().FuelNeeded > r.fuelCapacity {
				return fmt.Errorf("leg %s needs %d fuel but tank capacity is %d",
					leg, leg.Refuel().FuelNeeded, r.fuelCapacity)
			}
		}
	}

	return nil
}

// Getters

func (r *Route) RouteID() string {
	return r.routeID
}

func (r *Route) ShipSymbol() string {
	return r.shipSymbol
}

func (r *Route) PlayerID() shared.PlayerID {
	return r.playerID
}

// Connections returns a copy of the travel-order leg list.
func (r *Route) Connections() []ConcreteConnection {
	connections := make([]ConcreteConnection, len(r.connections))
	copy(connections, r.connections)
	return connections
}

func (r *Route) Status() RouteStatus {
	return r.status
}

func (r *Route) CreatedAt() time.Time {
	return r.createdAt
}

func (r *Route) StartedAt() *time.Time {
	return r.startedAt
}

func (r *Route) FinishedAt() *time.Time {
	return r.finishedAt
}

func (r *Route) LastError() error {
	return r.lastError
}

func (r *Route) CurrentIndex() int {
	return r.currentIndex
}

// Origin returns the route's first waypoint, nil for an empty route.
func (r *Route) Origin() *shared.Waypoint {
	if len(r.connections) == 0 {
		return nil
	}
	return r.connections[0].Start()
}

// Destination returns the route's final waypoint, nil for an empty route.
func (r *Route) Destination() *shared.Waypoint {
	if len(r.connections) == 0 {
		return nil
	}
	return r.connections[len(r.connections)-1].End()
}

func (r *Route) TotalDistance() float64 {
	return r.totalDistance
}

func (r *Route) TotalFuelCost() int {
	return r.totalFuelCost
}

func (r *Route) TotalTravelTime() int {
	return r.totalTravelTime
}

// EstimatedArrival projects the arrival instant from now using the
// aggregate travel time.
func (r *Route) EstimatedArrival() time.Time {
	return r.clock.Now().Add(time.Duration(r.totalTravelTime) * time.Second)
}

// EstimateCost converts the route's fuel plan into credits given the price
// of one unit of the FUEL trade good. Fails with UnsupportedConnection if
// the route contains a jump leg.
func (r *Route) EstimateCost(fuelGoodPrice int) (int, error) {
	total := 0
	for _, leg := range r.connections {
		cost, err := leg.EstimateCost(fuelGoodPrice)
		if err != nil {
			return 0, err
		}
		total += cost
	}
	return total, nil
}

// Execution lifecycle

// StartExecution begins route execution
func (r *Route) StartExecution() error {
	if r.status != RouteStatusPlanned {
		return fmt.Errorf("cannot start route in status %s", r.status)
	}
	now := r.clock.Now()
	r.startedAt = &now
	r.status = RouteStatusExecuting
	return nil
}

// CompleteLeg marks the current leg complete and advances. Completing the
// final leg completes the route.
func (r *Route) CompleteLeg() error {
	if r.status != RouteStatusExecuting {
		return fmt.Errorf("cannot complete leg when route status is %s", r.status)
	}

	r.currentIndex++
	if r.currentIndex >= len(r.connections) {
		now := r.clock.Now()
		r.finishedAt = &now
		r.status = RouteStatusCompleted
	}
	return nil
}

// Fail marks the route failed, recording the cause. Completed legs stay
// committed; the caller resumes from the ship's actual position.
func (r *Route) Fail(err error) {
	now := r.clock.Now()
	r.finishedAt = &now
	r.status = RouteStatusFailed
	r.lastError = err
}

// Abort marks the route abandoned between legs.
func (r *Route) Abort() {
	now := r.clock.Now()
	r.finishedAt = &now
	r.status = RouteStatusAborted
}

// Queries

// CurrentConnection returns the leg being executed, nil when the route is
// exhausted.
func (r *Route) CurrentConnection() ConcreteConnection {
	if r.currentIndex < len(r.connections) {
		return r.connections[r.currentIndex]
	}
	return nil
}

// RemainingConnections returns the legs not yet completed.
func (r *Route) RemainingConnections() []ConcreteConnection {
	if r.currentIndex >= len(r.connections) {
		return []ConcreteConnection{}
	}
	remaining := make([]ConcreteConnection, len(r.connections)-r.currentIndex)
	copy(remaining, r.connections[r.currentIndex:])
	return remaining
}

func (r *Route) IsComplete() bool {
	return r.status == RouteStatusCompleted
}

func (r *Route) IsFailed() bool {
	return r.status == RouteStatusFailed
}

func (r *Route) IsEmpty() bool {
	return len(r.connections) == 0
}

func (r *Route) String() string {
	return fmt.Sprintf("Route(id=%s, ship=%s, legs=%d, status=%s)",
		r.routeID, r.shipSymbol, len(r.connections), r.status)
}
