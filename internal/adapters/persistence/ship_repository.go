package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// GormShipRepository implements navigation.ShipRepository.
//
// The remote API is the source of truth for idle ship state: FindBySymbol
// fetches a live snapshot and reconstructs the entity against the local
// waypoint graph. While a route is executing, the in-process entity the
// executor mutates is more current than any API snapshot, so reconstructed
// entities are tracked per symbol and served back as long as they carry a
// route-progress snapshot. Save writes the last-known state to the
// database for inspection across process restarts.
type GormShipRepository struct {
	db           *gorm.DB
	shipControl  navigation.ShipControl
	waypointRepo navigation.WaypointRepository

	mu   sync.RWMutex
	live map[string]*navigation.Ship
}

// NewGormShipRepository creates a new GORM ship repository
func NewGormShipRepository(
	db *gorm.DB,
	shipControl navigation.ShipControl,
	waypointRepo navigation.WaypointRepository,
) *GormShipRepository {
	return &GormShipRepository{
		db:           db,
		shipControl:  shipControl,
		waypointRepo: waypointRepo,
		live:         make(map[string]*navigation.Ship),
	}
}

// executingShip returns the tracked entity for symbol if a route is
// running on it, nil otherwise.
func (r *GormShipRepository) executingShip(symbol string) *navigation.Ship {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if ship := r.live[symbol]; ship != nil && ship.RouteProgress() != nil {
		return ship
	}
	return nil
}

// FindBySymbol retrieves a ship's live state and reconstructs the entity.
// A ship currently executing a route is returned as-is so callers observe
// the running plan.
func (r *GormShipRepository) FindBySymbol(ctx context.Context, symbol string, playerID shared.PlayerID) (*navigation.Ship, error) {
	if ship := r.executingShip(symbol); ship != nil {
		return ship, nil
	}

	snapshot, err := r.shipControl.GetShip(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("failed to get ship from API: %w", err)
	}

	waypoint, err := r.waypointRepo.GetWaypoint(ctx, snapshot.WaypointSymbol)
	if err != nil {
		// Unknown waypoint: fall back to a bare node so the ship is
		// still usable, e.g. right after warping into an unsynced system.
		waypoint, err = shared.NewWaypoint(snapshot.WaypointSymbol, 0, 0)
		if err != nil {
			return nil, err
		}
	}

	fuel, err := shared.NewFuel(snapshot.FuelCurrent, snapshot.FuelCapacity)
	if err != nil {
		return nil, fmt.Errorf("invalid fuel state: %w", err)
	}
	cargo, err := shared.NewCargo(snapshot.CargoCapacity, snapshot.CargoUnits, snapshot.CargoInventory)
	if err != nil {
		return nil, fmt.Errorf("invalid cargo state: %w", err)
	}

	flightMode, err := shared.ParseFlightMode(snapshot.FlightMode)
	if err != nil {
		flightMode = shared.FlightModeCruise
	}

	var arrival *shared.ArrivalTime
	if snapshot.NavStatus == string(navigation.NavStatusInTransit) && snapshot.ArrivalTime != "" {
		arrival, err = shared.NewArrivalTime(snapshot.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("invalid arrival time: %w", err)
		}
	}

	ship, err := navigation.ReconstructShip(
		snapshot.Symbol,
		playerID,
		waypoint,
		fuel,
		cargo,
		snapshot.EngineSpeed,
		snapshot.Modules,
		navigation.NavStatus(snapshot.NavStatus),
		flightMode,
		arrival,
		snapshot.CooldownExpiration,
	)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	r.live[symbol] = ship
	r.mu.Unlock()

	return ship, nil
}

// Save persists the ship's current navigation state (upsert)
func (r *GormShipRepository) Save(ctx context.Context, ship *navigation.Ship) error {
	model, err := r.shipToModel(ship)
	if err != nil {
		return fmt.Errorf("failed to convert ship to model: %w", err)
	}

	result := r.db.WithContext(ctx).Save(model)
	if result.Error != nil {
		return fmt.Errorf("failed to save ship: %w", result.Error)
	}
	return nil
}

type cargoItemRecord struct {
	Symbol string `json:"symbol"`
	Units  int    `json:"units"`
}

type moduleRecord struct {
	Symbol   string `json:"symbol"`
	Capacity int    `json:"capacity"`
	Range    int    `json:"range"`
}

func (r *GormShipRepository) shipToModel(ship *navigation.Ship) (*ShipModel, error) {
	items := make([]cargoItemRecord, 0, len(ship.Cargo().Inventory))
	for _, item := range ship.Cargo().Inventory {
		items = append(items, cargoItemRecord{Symbol: item.Symbol, Units: item.Units})
	}
	inventoryJSON, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal cargo inventory: %w", err)
	}

	modules := make([]moduleRecord, 0, len(ship.Modules()))
	for _, module := range ship.Modules() {
		modules = append(modules, moduleRecord{
			Symbol:   module.Symbol(),
			Capacity: module.Capacity(),
			Range:    module.Range(),
		})
	}
	modulesJSON, err := json.Marshal(modules)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal modules: %w", err)
	}

	model := &ShipModel{
		ShipSymbol:         ship.ShipSymbol(),
		PlayerID:           ship.PlayerID().Value(),
		WaypointSymbol:     ship.CurrentLocation().Symbol,
		NavStatus:          string(ship.NavStatus()),
		FlightMode:         ship.FlightMode().Name(),
		FuelCurrent:        ship.Fuel().Current,
		FuelCapacity:       ship.Fuel().Capacity,
		CargoCapacity:      ship.CargoCapacity(),
		CargoInventory:     string(inventoryJSON),
		EngineSpeed:        ship.EngineSpeed(),
		Modules:            string(modulesJSON),
		CooldownExpiration: ship.CooldownExpiration(),
	}
	if ship.ArrivalTime() != nil {
		arrival := ship.ArrivalTime().Time()
		model.ArrivalTime = &arrival
	}
	return model, nil
}
