package navigation

import (
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// JumpTravelTimeSeconds is the cooldown-class constant charged for a jump
// leg. Jumps are instant but gate the reactor for this long.
const JumpTravelTimeSeconds = 60

// FuelGoodUnitSize is how many tank units one unit of the FUEL trade good
// yields, which is also the remote API's purchase granularity.
const FuelGoodUnitSize = 100

// ConnectionKind discriminates the concrete connection union.
type ConnectionKind string

const (
	ConnectionKindJump     ConnectionKind = "JUMP"
	ConnectionKindWarp     ConnectionKind = "WARP"
	ConnectionKindNavigate ConnectionKind = "NAVIGATE"
)

// SimpleConnection is the pre-classification of a search edge: the kind it
// will execute as, plus the geometry the concrete annotation needs.
type SimpleConnection struct {
	Kind     ConnectionKind
	Start    *shared.Waypoint
	End      *shared.Waypoint
	Mode     shared.FlightMode
	Distance float64
}

// Refuel is the planning-time fuel requirement attached to a concrete leg.
//
// FuelNeeded is the tank fuel that must be aboard to start the leg.
// FuelRequired is the cargo-held fuel that must be carried past this leg
// to cover subsequent legs before the next marketplace. StartIsMarket
// records whether fuel can be bought at the leg's start.
type Refuel struct {
	FuelNeeded    int
	FuelRequired  int
	StartIsMarket bool
}

// ConcreteConnection is one executable leg of an assembled route:
// JumpConnection, WarpConnection or NavigateConnection.
type ConcreteConnection interface {
	Kind() ConnectionKind
	Start() *shared.Waypoint
	End() *shared.Waypoint
	Distance() float64
	FuelCost() int
	TravelTime() int
	Refuel() *Refuel

	// EstimateCost converts the leg's fuel cost into credits given the
	// price of one unit of the FUEL trade good. Jump legs cannot be
	// estimated (antimatter is priced by an external feed) and fail with
	// UnsupportedConnection.
	EstimateCost(fuelGoodPrice int) (int, error)

	String() string
}

type baseConnection struct {
	start      *shared.Waypoint
	end        *shared.Waypoint
	distance   float64
	fuelCost   int
	travelTime int
	refuel     *Refuel
}

func (c *baseConnection) Start() *shared.Waypoint { return c.start }
func (c *baseConnection) End() *shared.Waypoint   { return c.end }
func (c *baseConnection) Distance() float64       { return c.distance }
func (c *baseConnection) FuelCost() int           { return c.fuelCost }
func (c *baseConnection) TravelTime() int         { return c.travelTime }
func (c *baseConnection) Refuel() *Refuel         { return c.refuel }

func (c *baseConnection) estimateFuelCredits(fuelGoodPrice int) int {
	if c.fuelCost == 0 {
		return 0
	}
	goodUnits := (c.fuelCost + FuelGoodUnitSize - 1) / FuelGoodUnitSize
	return goodUnits * fuelGoodPrice
}

// JumpConnection is an instant inter-system traversal along the jump-gate
// adjacency, gated by a reactor cooldown and an antimatter purchase.
type JumpConnection struct {
	baseConnection
}

// NewJumpConnection creates a jump leg. Jumps consume no tank fuel.
func NewJumpConnection(start, end *shared.Waypoint, refuel *Refuel) *JumpConnection {
	return &JumpConnection{baseConnection{
		start:      start,
		end:        end,
		distance:   0,
		fuelCost:   0,
		travelTime: JumpTravelTimeSeconds,
		refuel:     refuel,
	}}
}

func (c *JumpConnection) Kind() ConnectionKind { return ConnectionKindJump }

func (c *JumpConnection) EstimateCost(fuelGoodPrice int) (int, error) {
	return 0, shared.NewUnsupportedConnectionError(fmt.Sprintf(
		"cannot estimate cost of jump %s -> %s: antimatter is priced externally",
		c.start.Symbol, c.end.Symbol))
}

func (c *JumpConnection) String() string {
	return fmt.Sprintf("Jump(%s -> %s)", c.start.Symbol, c.end.Symbol)
}

// WarpConnection is a cross-system move flown under a flight mode without
// using the jump-gate network.
type WarpConnection struct {
	baseConnection
	mode shared.FlightMode
}

func NewWarpConnection(
	start, end *shared.Waypoint,
	mode shared.FlightMode,
	distance float64,
	fuelCost, travelTime int,
	refuel *Refuel,
) *WarpConnection {
	return &WarpConnection{
		baseConnection: baseConnection{
			start:      start,
			end:        end,
			distance:   distance,
			fuelCost:   fuelCost,
			travelTime: travelTime,
			refuel:     refuel,
		},
		mode: mode,
	}
}

func (c *WarpConnection) Kind() ConnectionKind        { return ConnectionKindWarp }
func (c *WarpConnection) Mode() shared.FlightMode     { return c.mode }

func (c *WarpConnection) EstimateCost(fuelGoodPrice int) (int, error) {
	return c.estimateFuelCredits(fuelGoodPrice), nil
}

func (c *WarpConnection) String() string {
	return fmt.Sprintf("Warp(%s -> %s, %s, %.1fu)", c.start.Symbol, c.end.Symbol, c.mode, c.distance)
}

// NavigateConnection is a standard in-system move under a flight mode.
type NavigateConnection struct {
	baseConnection
	mode shared.FlightMode
}

func NewNavigateConnection(
	start, end *shared.Waypoint,
	mode shared.FlightMode,
	distance float64,
	fuelCost, travelTime int,
	refuel *Refuel,
) *NavigateConnection {
	return &NavigateConnection{
		baseConnection: baseConnection{
			start:      start,
			end:        end,
			distance:   distance,
			fuelCost:   fuelCost,
			travelTime: travelTime,
			refuel:     refuel,
		},
		mode: mode,
	}
}

func (c *NavigateConnection) Kind() ConnectionKind    { return ConnectionKindNavigate }
func (c *NavigateConnection) Mode() shared.FlightMode { return c.mode }

func (c *NavigateConnection) EstimateCost(fuelGoodPrice int) (int, error) {
	return c.estimateFuelCredits(fuelGoodPrice), nil
}

func (c *NavigateConnection) String() string {
	return fmt.Sprintf("Navigate(%s -> %s, %s, %.1fu)", c.start.Symbol, c.end.Symbol, c.mode, c.distance)
}
