package types

import (
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// Ship command types - shared between handlers and RouteExecutor to avoid circular imports
//
// Every command carries an optional Ship. When set, handlers operate on the
// supplied entity instead of reloading it, so a route execution mutates one
// entity throughout.

// OrbitShipCommand - Command to put a ship into orbit at its current waypoint
type OrbitShipCommand struct {
	ShipSymbol string
	PlayerID   shared.PlayerID
	Ship       *navigation.Ship
}

// OrbitShipResponse - Response from orbit ship command
type OrbitShipResponse struct {
	Status string // "in_orbit" or "already_in_orbit"
}

// DockShipCommand - Command to dock a ship at its current waypoint
type DockShipCommand struct {
	ShipSymbol string
	PlayerID   shared.PlayerID
	Ship       *navigation.Ship
}

// DockShipResponse - Response from dock ship command
type DockShipResponse struct {
	Status string // "docked" or "already_docked"
}

// SetFlightModeCommand - Command to set a ship's flight mode
type SetFlightModeCommand struct {
	ShipSymbol string
	Mode       shared.FlightMode
	PlayerID   shared.PlayerID
	Ship       *navigation.Ship
}

// SetFlightModeResponse - Response from set flight mode command
type SetFlightModeResponse struct {
	Status string
	Mode   shared.FlightMode
}

// RefuelShipCommand - Command to refuel a ship at its current waypoint.
// FromCargo refuels from cargo-held fuel instead of purchasing at a market.
type RefuelShipCommand struct {
	ShipSymbol string
	PlayerID   shared.PlayerID
	Units      int // 0 = refuel to full
	FromCargo  bool
	Ship       *navigation.Ship
}

// RefuelShipResponse - Response from refuel ship command
type RefuelShipResponse struct {
	Status       string
	FuelAdded    int
	CreditsCost  int
	CurrentFuel  int
	FuelCapacity int
}

// PurchaseCargoCommand - Command to buy trade-good units into the hold
type PurchaseCargoCommand struct {
	ShipSymbol string
	PlayerID   shared.PlayerID
	GoodSymbol string
	Units      int
	Ship       *navigation.Ship
}

// PurchaseCargoResponse - Response from purchase cargo command
type PurchaseCargoResponse struct {
	Status      string
	Units       int
	TotalPrice  int
	CreditsLeft int64
}

// NavigateDirectCommand - Low-level command for a single in-system hop.
// Used internally by RouteExecutor - applications should plan full routes.
type NavigateDirectCommand struct {
	ShipSymbol  string
	Destination *shared.Waypoint
	FlightMode  shared.FlightMode
	PlayerID    shared.PlayerID
	RouteID     string
	Ship        *navigation.Ship
}

// NavigateDirectResponse - Response from navigate direct command
type NavigateDirectResponse struct {
	Status         string
	ArrivalTimeStr string // ISO8601 from API, authoritative
	FuelConsumed   int
	// Fuel state from API response (avoids separate GetShip call)
	FuelCurrent  int
	FuelCapacity int
}

// WarpShipCommand - Command for a single cross-system hop outside the
// jump-gate network
type WarpShipCommand struct {
	ShipSymbol  string
	Destination *shared.Waypoint
	FlightMode  shared.FlightMode
	PlayerID    shared.PlayerID
	RouteID     string
	Ship        *navigation.Ship
}

// WarpShipResponse - Response from warp ship command
type WarpShipResponse struct {
	Status         string
	ArrivalTimeStr string
	FuelConsumed   int
	FuelCurrent    int
	FuelCapacity   int
}

// JumpShipCommand - Command to traverse the jump-gate network
type JumpShipCommand struct {
	ShipSymbol  string
	Destination *shared.Waypoint
	PlayerID    shared.PlayerID
	Ship        *navigation.Ship
}

// JumpShipResponse - Response from jump ship command
type JumpShipResponse struct {
	Status          string
	CooldownSeconds int
}
