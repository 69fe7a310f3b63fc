package navigation

import (
	"fmt"
	"sync"
	"time"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// NavStatus represents ship navigation status
type NavStatus string

const (
	NavStatusDocked    NavStatus = "DOCKED"
	NavStatusInOrbit   NavStatus = "IN_ORBIT"
	NavStatusInTransit NavStatus = "IN_TRANSIT"
)

var validNavStatuses = map[NavStatus]bool{
	NavStatusDocked:    true,
	NavStatusInOrbit:   true,
	NavStatusInTransit: true,
}

// RouteProgress is the in-progress plan snapshot kept on the ship while a
// route executes, exposed for external inspection only.
type RouteProgress struct {
	RouteID     string
	Origin      string
	Destination string
	FuelCost    int
	ETA         time.Time
	StartedAt   time.Time
}

// Ship entity - a vehicle whose navigation state this engine owns while a
// route is running.
//
// Invariants:
// - ShipSymbol must be unique and non-empty
// - PlayerID must be positive
// - NavStatus must be one of: IN_ORBIT, DOCKED, IN_TRANSIT
// - Fuel operations respect capacity limits
// - Cargo units cannot exceed cargo capacity
// - EngineSpeed must be positive
//
// Navigation state machine:
// - DOCKED -> depart -> IN_ORBIT
// - IN_ORBIT -> StartTransit -> IN_TRANSIT
// - IN_TRANSIT -> Arrive -> IN_ORBIT
// - IN_ORBIT -> dock -> DOCKED
type Ship struct {
	shipSymbol      string
	playerID        shared.PlayerID
	currentLocation *shared.Waypoint
	fuel            *shared.Fuel
	fuelCapacity    int
	cargoCapacity   int
	cargo           *shared.Cargo
	engineSpeed     int
	modules         []*ShipModule
	navStatus       NavStatus

	flightMode         shared.FlightMode
	arrivalTime        *shared.ArrivalTime
	cooldownExpiration *time.Time

	// progressMu guards routeProgress, which progress queries read from
	// other goroutines while the executor owns the rest of the entity.
	progressMu    sync.RWMutex
	routeProgress *RouteProgress
}

// NewShip creates a new Ship entity with validation
func NewShip(
	shipSymbol string,
	playerID shared.PlayerID,
	currentLocation *shared.Waypoint,
	fuel *shared.Fuel,
	cargo *shared.Cargo,
	engineSpeed int,
	modules []*ShipModule,
	navStatus NavStatus,
	flightMode shared.FlightMode,
) (*Ship, error) {
	s := &Ship{
		shipSymbol:      shipSymbol,
		playerID:        playerID,
		currentLocation: currentLocation,
		fuel:            fuel,
		fuelCapacity:    0,
		cargoCapacity:   0,
		cargo:           cargo,
		engineSpeed:     engineSpeed,
		modules:         modules,
		navStatus:       navStatus,
		flightMode:      flightMode,
	}
	if fuel != nil {
		s.fuelCapacity = fuel.Capacity
	}
	if cargo != nil {
		s.cargoCapacity = cargo.Capacity
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Ship) validate() error {
	if s.shipSymbol == "" {
		return shared.NewInvalidShipDataError("ship_symbol cannot be empty")
	}

	if s.playerID.IsZero() {
		return shared.NewInvalidShipDataError("player_id must be positive")
	}

	if s.currentLocation == nil {
		return shared.NewInvalidShipDataError("current_location cannot be nil")
	}

	if s.fuel == nil {
		return shared.NewInvalidShipDataError("fuel cannot be nil")
	}

	if s.cargo == nil {
		return shared.NewInvalidShipDataError("cargo cannot be nil")
	}

	if s.cargo.Units > s.cargoCapacity {
		return shared.NewInvalidShipDataError("cargo_units cannot exceed cargo_capacity")
	}

	if s.engineSpeed <= 0 {
		return shared.NewInvalidShipDataError("engine_speed must be positive")
	}

	if !validNavStatuses[s.navStatus] {
		return shared.NewInvalidShipDataError(fmt.Sprintf("invalid nav_status: %s", s.navStatus))
	}

	return nil
}

// Getters

func (s *Ship) ShipSymbol() string {
	return s.shipSymbol
}

func (s *Ship) PlayerID() shared.PlayerID {
	return s.playerID
}

func (s *Ship) CurrentLocation() *shared.Waypoint {
	return s.currentLocation
}

func (s *Ship) IsAtLocation(symbol string) bool {
	return s.currentLocation.Symbol == symbol
}

func (s *Ship) Fuel() *shared.Fuel {
	return s.fuel
}

func (s *Ship) FuelCapacity() int {
	return s.fuelCapacity
}

func (s *Ship) Cargo() *shared.Cargo {
	return s.cargo
}

func (s *Ship) CargoCapacity() int {
	return s.cargoCapacity
}

func (s *Ship) EngineSpeed() int {
	return s.engineSpeed
}

func (s *Ship) NavStatus() NavStatus {
	return s.navStatus
}

func (s *Ship) FlightMode() shared.FlightMode {
	return s.flightMode
}

// Modules returns the ship's installed modules
func (s *Ship) Modules() []*ShipModule {
	return s.modules
}

// HasJumpDrive checks if ship has any jump drive module installed
func (s *Ship) HasJumpDrive() bool {
	for _, module := range s.modules {
		if module.IsJumpDrive() {
			return true
		}
	}
	return false
}

// StartingRange is the fuel available for the first hop of a search: the
// tank contents plus any fuel good carried in cargo (convertible away from
// a marketplace).
func (s *Ship) StartingRange() int {
	return s.fuel.Current + s.cargo.FuelUnits()
}

// CargoFuelUnits returns the fuel good units held in cargo.
func (s *Ship) CargoFuelUnits() int {
	return s.cargo.FuelUnits()
}

// Navigation status management

// EnsureInOrbit transitions DOCKED -> IN_ORBIT; no-op when already in
// orbit. Returns true if state changed.
func (s *Ship) EnsureInOrbit() (bool, error) {
	if s.navStatus == NavStatusInOrbit {
		return false, nil
	}

	if s.navStatus == NavStatusInTransit {
		return false, shared.NewInvalidNavStatusError("cannot orbit while in transit")
	}

	s.navStatus = NavStatusInOrbit
	return true, nil
}

// EnsureDocked transitions IN_ORBIT -> DOCKED; no-op when already docked.
// Returns true if state changed.
func (s *Ship) EnsureDocked() (bool, error) {
	if s.navStatus == NavStatusDocked {
		return false, nil
	}

	if s.navStatus == NavStatusInTransit {
		return false, shared.NewInvalidNavStatusError("cannot dock while in transit")
	}

	s.navStatus = NavStatusDocked
	return true, nil
}

// StartTransit begins transit to destination, recording the arrival time
// reported by the remote API.
func (s *Ship) StartTransit(destination *shared.Waypoint, arrival *shared.ArrivalTime) error {
	if s.navStatus != NavStatusInOrbit {
		return shared.NewInvalidNavStatusError(fmt.Sprintf(
			"ship must be in orbit to start transit, currently: %s", s.navStatus))
	}
	if s.currentLocation.Symbol == destination.Symbol {
		return fmt.Errorf("cannot transit to same location")
	}
	s.navStatus = NavStatusInTransit
	s.currentLocation = destination
	s.arrivalTime = arrival
	return nil
}

// Arrive transitions from in-transit to orbit and clears the arrival time.
func (s *Ship) Arrive() error {
	if s.navStatus != NavStatusInTransit {
		return shared.NewInvalidNavStatusError(fmt.Sprintf(
			"ship must be in transit to arrive, currently: %s", s.navStatus))
	}
	s.navStatus = NavStatusInOrbit
	s.arrivalTime = nil
	return nil
}

// ArrivalTime returns when an in-transit ship arrives, nil otherwise.
func (s *Ship) ArrivalTime() *shared.ArrivalTime {
	return s.arrivalTime
}

// Fuel management

// ConsumeFuel consumes fuel from the tank.
func (s *Ship) ConsumeFuel(amount int) error {
	if s.fuel.Current < amount {
		return shared.NewInsufficientFuelError(amount, s.fuel.Current)
	}

	newFuel, err := s.fuel.Consume(amount)
	if err != nil {
		return err
	}
	s.fuel = newFuel
	return nil
}

// AddFuel adds fuel to the tank, capped at capacity.
func (s *Ship) AddFuel(amount int) error {
	newFuel, err := s.fuel.Add(amount)
	if err != nil {
		return err
	}
	s.fuel = newFuel
	return nil
}

// UpdateFuelFromAPI replaces the tank state from a remote response,
// avoiding a separate GetShip call after navigation or refuel.
func (s *Ship) UpdateFuelFromAPI(current, capacity int) {
	fuel, err := shared.NewFuel(current, capacity)
	if err == nil {
		s.fuel = fuel
		s.fuelCapacity = capacity
	}
}

// TransferFuelFromCargo moves cargo-held fuel into the tank, used to
// refuel away from marketplaces. Transfers at most the units held and at
// most the tank headroom; returns the units actually moved.
func (s *Ship) TransferFuelFromCargo(units int) (int, error) {
	if units <= 0 {
		return 0, nil
	}

	held := s.cargo.FuelUnits()
	if units > held {
		units = held
	}
	if units > s.fuel.Headroom() {
		units = s.fuel.Headroom()
	}
	if units == 0 {
		return 0, nil
	}

	newCargo, err := s.cargo.WithItemRemoved(shared.FuelGoodSymbol, units)
	if err != nil {
		return 0, err
	}
	if err := s.AddFuel(units); err != nil {
		return 0, err
	}
	s.cargo = newCargo
	return units, nil
}

// Cargo management

// ReceiveCargo adds purchased units of a good to the hold.
func (s *Ship) ReceiveCargo(symbol string, units int) error {
	newCargo, err := s.cargo.WithItemAdded(symbol, units)
	if err != nil {
		return err
	}
	s.cargo = newCargo
	return nil
}

// RemoveCargo removes units of a good from the hold.
func (s *Ship) RemoveCargo(symbol string, units int) error {
	newCargo, err := s.cargo.WithItemRemoved(symbol, units)
	if err != nil {
		return err
	}
	s.cargo = newCargo
	return nil
}

// SetCargo replaces the cargo manifest (repository reconstruction).
func (s *Ship) SetCargo(c *shared.Cargo) {
	s.cargo = c
	if c != nil {
		s.cargoCapacity = c.Capacity
	}
}

// State setters used by repositories and the executor

// SetFlightMode records the ship's active flight mode.
func (s *Ship) SetFlightMode(mode shared.FlightMode) {
	s.flightMode = mode
}

// SetLocation updates the ship's current location.
func (s *Ship) SetLocation(w *shared.Waypoint) {
	s.currentLocation = w
}

// SetNavStatus sets the navigation status directly (repository loading).
func (s *Ship) SetNavStatus(status NavStatus) {
	s.navStatus = status
}

// Cooldown

// SetCooldown records when the reactor cooldown expires.
func (s *Ship) SetCooldown(t time.Time) {
	s.cooldownExpiration = &t
}

// ClearCooldown clears an expired cooldown.
func (s *Ship) ClearCooldown() {
	s.cooldownExpiration = nil
}

// CooldownExpiration returns when the cooldown expires, nil if none.
func (s *Ship) CooldownExpiration() *time.Time {
	return s.cooldownExpiration
}

// CooldownRemaining returns the remaining cooldown duration, zero when
// expired or absent.
func (s *Ship) CooldownRemaining(clock shared.Clock) time.Duration {
	if s.cooldownExpiration == nil {
		return 0
	}
	remaining := s.cooldownExpiration.Sub(clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Route progress snapshot

// BeginRoute records the in-progress plan snapshot for external inspection.
func (s *Ship) BeginRoute(progress *RouteProgress) {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.routeProgress = progress
}

// ClearRouteProgress removes the snapshot after the route finishes.
func (s *Ship) ClearRouteProgress() {
	s.progressMu.Lock()
	defer s.progressMu.Unlock()
	s.routeProgress = nil
}

// RouteProgress returns the in-progress snapshot, nil when no route runs.
func (s *Ship) RouteProgress() *RouteProgress {
	s.progressMu.RLock()
	defer s.progressMu.RUnlock()
	return s.routeProgress
}

// State queries

func (s *Ship) IsDocked() bool {
	return s.navStatus == NavStatusDocked
}

func (s *Ship) IsInOrbit() bool {
	return s.navStatus == NavStatusInOrbit
}

func (s *Ship) IsInTransit() bool {
	return s.navStatus == NavStatusInTransit
}

func (s *Ship) String() string {
	return fmt.Sprintf("Ship(symbol=%s, location=%s, status=%s, fuel=%s)",
		s.shipSymbol, s.currentLocation.Symbol, s.navStatus, s.fuel)
}

// ApplySnapshot refreshes the entity from a live API snapshot, resolving
// the waypoint through the supplied graph view when available.
func (s *Ship) ApplySnapshot(snapshot *ShipSnapshot, waypoint *shared.Waypoint) error {
	if snapshot == nil {
		return shared.NewInvalidShipDataError("snapshot cannot be nil")
	}

	if waypoint != nil {
		s.currentLocation = waypoint
	} else if snapshot.WaypointSymbol != s.currentLocation.Symbol {
		relocated, err := shared.NewWaypoint(snapshot.WaypointSymbol, 0, 0)
		if err != nil {
			return err
		}
		s.currentLocation = relocated
	}

	s.UpdateFuelFromAPI(snapshot.FuelCurrent, snapshot.FuelCapacity)

	if validNavStatuses[NavStatus(snapshot.NavStatus)] {
		s.navStatus = NavStatus(snapshot.NavStatus)
	}
	if mode, err := shared.ParseFlightMode(snapshot.FlightMode); err == nil {
		s.flightMode = mode
	}
	if snapshot.NavStatus == string(NavStatusInTransit) && snapshot.ArrivalTime != "" {
		if arrival, err := shared.NewArrivalTime(snapshot.ArrivalTime); err == nil {
			s.arrivalTime = arrival
		}
	} else {
		s.arrivalTime = nil
	}
	s.cooldownExpiration = snapshot.CooldownExpiration

	if cargo, err := shared.NewCargo(snapshot.CargoCapacity, snapshot.CargoUnits, snapshot.CargoInventory); err == nil {
		s.SetCargo(cargo)
	}

	return nil
}

// ReconstructShip creates a Ship from persisted state (repository loading).
func ReconstructShip(
	shipSymbol string,
	playerID shared.PlayerID,
	currentLocation *shared.Waypoint,
	fuel *shared.Fuel,
	cargo *shared.Cargo,
	engineSpeed int,
	modules []*ShipModule,
	navStatus NavStatus,
	flightMode shared.FlightMode,
	arrivalTime *shared.ArrivalTime,
	cooldownExpiration *time.Time,
) (*Ship, error) {
	s, err := NewShip(shipSymbol, playerID, currentLocation, fuel, cargo,
		engineSpeed, modules, navStatus, flightMode)
	if err != nil {
		return nil, err
	}
	s.arrivalTime = arrivalTime
	s.cooldownExpiration = cooldownExpiration
	return s, nil
}
