package navigation

import (
	"context"
	"time"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// ShipControl abstracts the remote game API's ship operations. Every call
// may fail with a RemoteAPIError wrapping either a domain rejection
// (not-in-orbit, insufficient-fuel, no-marketplace) or a transport error.
// Implementations are internally rate limited and safe for concurrent use.
type ShipControl interface {
	// Dock docks the ship at its current waypoint.
	Dock(ctx context.Context, shipSymbol string) error

	// Orbit moves the ship from docked to orbit.
	Orbit(ctx context.Context, shipSymbol string) error

	// SetFlightMode changes the ship's active flight mode.
	SetFlightMode(ctx context.Context, shipSymbol string, mode shared.FlightMode) error

	// Navigate issues an in-system move. The response timestamps are
	// authoritative for the executed record.
	Navigate(ctx context.Context, shipSymbol, destination string) (*MovementResult, error)

	// Warp issues a cross-system move outside the jump-gate network.
	Warp(ctx context.Context, shipSymbol, destination string) (*MovementResult, error)

	// Jump traverses the jump-gate network. Cooldown-gated; the
	// antimatter purchase is returned as a market transaction.
	Jump(ctx context.Context, shipSymbol, destination string) (*JumpResult, error)

	// Refuel purchases tank fuel at a marketplace, or transfers
	// cargo-held fuel into the tank when fromCargo is set.
	Refuel(ctx context.Context, shipSymbol string, units int, fromCargo bool) (*RefuelResult, error)

	// PurchaseCargo buys trade-good units into the hold (fuel restocking).
	PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int) (*PurchaseResult, error)

	// GetShip fetches the ship's live state for snapshot refreshes.
	GetShip(ctx context.Context, shipSymbol string) (*ShipSnapshot, error)
}

// MovementResult is the remote API's answer to a navigate or warp call.
type MovementResult struct {
	Destination   string
	DepartureTime string // ISO8601, authoritative
	ArrivalTime   string // ISO8601, authoritative
	FuelConsumed  int
	FuelCurrent   int
	FuelCapacity  int
}

// JumpResult is the remote API's answer to a jump call.
type JumpResult struct {
	Destination        string
	CooldownExpiration time.Time
	AgentCredits       int64
	Transaction        *MarketTransaction
}

// RefuelResult is the remote API's answer to a refuel call.
type RefuelResult struct {
	FuelAdded    int
	FuelCurrent  int
	FuelCapacity int
	TotalPrice   int
	AgentCredits int64
}

// PurchaseResult is the remote API's answer to a cargo purchase.
type PurchaseResult struct {
	GoodSymbol   string
	Units        int
	PricePerUnit int
	TotalPrice   int
	AgentCredits int64
}

// ShipSnapshot is the live ship state used to refresh local entities.
type ShipSnapshot struct {
	Symbol             string
	WaypointSymbol     string
	NavStatus          string
	FlightMode         string
	ArrivalTime        string
	FuelCurrent        int
	FuelCapacity       int
	CargoCapacity      int
	CargoUnits         int
	CargoInventory     []*shared.CargoItem
	EngineSpeed        int
	Modules            []*ShipModule
	CooldownExpiration *time.Time
}

// Persistence collaborators. Implementations are safe for concurrent use.

// ShipRepository loads and persists ship entities.
type ShipRepository interface {
	FindBySymbol(ctx context.Context, symbol string, playerID shared.PlayerID) (*Ship, error)
	Save(ctx context.Context, ship *Ship) error
}

// WaypointRepository supplies the read-only waypoint graph.
type WaypointRepository interface {
	GetSystemWaypoints(ctx context.Context, systemSymbol string) (map[string]*shared.Waypoint, error)
	GetWaypoint(ctx context.Context, symbol string) (*shared.Waypoint, error)
}

// JumpGateRepository supplies the jump-gate adjacency.
type JumpGateRepository interface {
	GetConnectionsFrom(ctx context.Context, waypointSymbol string) ([]string, error)
	GetNetwork(ctx context.Context, systemSymbol string) (*JumpGateNetwork, error)
}

// MarketPriceRepository supplies last-known trade-good prices for route
// cost estimation.
type MarketPriceRepository interface {
	// GetFuelPrice returns the last-known purchase price of one unit of
	// the FUEL trade good in the system, or an error if never observed.
	GetFuelPrice(ctx context.Context, systemSymbol string) (int, error)
}

// RouteLogRecord captures one executed leg with authoritative timestamps.
type RouteLogRecord struct {
	RouteID        string
	ShipSymbol     string
	PlayerID       int
	FromWaypoint   string
	ToWaypoint     string
	ConnectionKind ConnectionKind
	FlightMode     string
	Distance       float64
	FuelConsumed   int
	FuelBefore     int
	FuelAfter      int
	DepartedAt     time.Time
	ArrivedAt      time.Time
	TravelSeconds  int
}

// RouteLogRepository persists executed-leg records.
type RouteLogRepository interface {
	SaveLeg(ctx context.Context, record *RouteLogRecord) error
}

// MarketTransaction is a fuel (or antimatter) purchase at a marketplace.
type MarketTransaction struct {
	TransactionID   string
	WaypointSymbol  string
	ShipSymbol      string
	PlayerID        int
	GoodSymbol      string
	TransactionType string // PURCHASE or SELL
	Units           int
	PricePerUnit    int
	TotalPrice      int
	Timestamp       time.Time
}

// TransactionRepository persists market transactions.
type TransactionRepository interface {
	SaveTransaction(ctx context.Context, transaction *MarketTransaction) error
}

// AgentRepository persists the player's credit balance.
type AgentRepository interface {
	UpdateCredits(ctx context.Context, playerID shared.PlayerID, credits int64) error
}
