package persistence

import (
	"time"
)

// PlayerModel represents the players table
type PlayerModel struct {
	ID          int        `gorm:"column:id;primaryKey;autoIncrement"`
	AgentSymbol string     `gorm:"column:agent_symbol;unique;not null"`
	Token       string     `gorm:"column:token;not null"`
	Credits     int64      `gorm:"column:credits;not null;default:0"`
	CreatedAt   time.Time  `gorm:"column:created_at;not null"`
	LastActive  *time.Time `gorm:"column:last_active"`
	Metadata    string     `gorm:"column:metadata;type:jsonb"` // JSON stored as string
}

func (PlayerModel) TableName() string {
	return "players"
}

// WaypointModel represents the waypoints table
type WaypointModel struct {
	WaypointSymbol string    `gorm:"column:waypoint_symbol;primaryKey"`
	SystemSymbol   string    `gorm:"column:system_symbol;index;not null"`
	Type           string    `gorm:"column:type;not null"`
	X              int       `gorm:"column:x;not null"`
	Y              int       `gorm:"column:y;not null"`
	IsMarketplace  int       `gorm:"column:is_marketplace;not null;default:0"` // 0 or 1 (SQLite compatible)
	IsShipyard     int       `gorm:"column:is_shipyard;not null;default:0"`
	IsCharted      int       `gorm:"column:is_charted;not null;default:0"`
	IsJumpGate     int       `gorm:"column:is_jump_gate;not null;default:0"`
	SyncedAt       time.Time `gorm:"column:synced_at"`
}

func (WaypointModel) TableName() string {
	return "waypoints"
}

// JumpGateConnectionModel represents the jump_gate_connections table.
// One row per directed edge of the jump-gate network.
type JumpGateConnectionModel struct {
	FromWaypoint string `gorm:"column:from_waypoint;primaryKey"`
	ToWaypoint   string `gorm:"column:to_waypoint;primaryKey"`
	SystemSymbol string `gorm:"column:system_symbol;index;not null"`
}

func (JumpGateConnectionModel) TableName() string {
	return "jump_gate_connections"
}

// MarketPriceModel represents the market_prices table.
// One row per (waypoint, good) combination, last observation wins.
type MarketPriceModel struct {
	WaypointSymbol string    `gorm:"column:waypoint_symbol;primaryKey;size:255"`
	GoodSymbol     string    `gorm:"column:good_symbol;primaryKey;size:100"`
	SystemSymbol   string    `gorm:"column:system_symbol;index;not null"`
	PurchasePrice  int       `gorm:"column:purchase_price;not null"`
	SellPrice      int       `gorm:"column:sell_price;not null"`
	LastUpdated    time.Time `gorm:"column:last_updated;index;not null"`
}

func (MarketPriceModel) TableName() string {
	return "market_prices"
}

// ShipModel represents the ships table: the locally-tracked navigation
// state last persisted for a ship.
type ShipModel struct {
	ShipSymbol         string       `gorm:"column:ship_symbol;primaryKey;not null"`
	PlayerID           int          `gorm:"column:player_id;primaryKey;not null"`
	Player             *PlayerModel `gorm:"foreignKey:PlayerID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	WaypointSymbol     string       `gorm:"column:waypoint_symbol;not null"`
	NavStatus          string       `gorm:"column:nav_status;not null"`
	FlightMode         string       `gorm:"column:flight_mode;not null"`
	FuelCurrent        int          `gorm:"column:fuel_current;not null"`
	FuelCapacity       int          `gorm:"column:fuel_capacity;not null"`
	CargoCapacity      int          `gorm:"column:cargo_capacity;not null"`
	CargoInventory     string       `gorm:"column:cargo_inventory;type:text"` // JSON array as text
	EngineSpeed        int          `gorm:"column:engine_speed;not null"`
	Modules            string       `gorm:"column:modules;type:text"` // JSON array as text
	ArrivalTime        *time.Time   `gorm:"column:arrival_time"`
	CooldownExpiration *time.Time   `gorm:"column:cooldown_expiration"`
	UpdatedAt          time.Time    `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (ShipModel) TableName() string {
	return "ships"
}

// RouteLogModel represents the route_legs table: one row per executed
// leg, with the remote API's own timestamps.
type RouteLogModel struct {
	ID             int       `gorm:"column:id;primaryKey;autoIncrement"`
	RouteID        string    `gorm:"column:route_id;index;not null"`
	ShipSymbol     string    `gorm:"column:ship_symbol;index;not null"`
	PlayerID       int       `gorm:"column:player_id;index;not null"`
	FromWaypoint   string    `gorm:"column:from_waypoint;not null"`
	ToWaypoint     string    `gorm:"column:to_waypoint;not null"`
	ConnectionKind string    `gorm:"column:connection_kind;not null"`
	FlightMode     string    `gorm:"column:flight_mode;not null"`
	Distance       float64   `gorm:"column:distance;not null"`
	FuelConsumed   int       `gorm:"column:fuel_consumed;not null"`
	FuelBefore     int       `gorm:"column:fuel_before;not null"`
	FuelAfter      int       `gorm:"column:fuel_after;not null"`
	DepartedAt     time.Time `gorm:"column:departed_at;not null"`
	ArrivedAt      time.Time `gorm:"column:arrived_at;not null"`
	TravelSeconds  int       `gorm:"column:travel_seconds;not null"`
}

func (RouteLogModel) TableName() string {
	return "route_legs"
}

// TransactionModel represents the market_transactions table
type TransactionModel struct {
	TransactionID   string    `gorm:"column:transaction_id;primaryKey"`
	WaypointSymbol  string    `gorm:"column:waypoint_symbol;index;not null"`
	ShipSymbol      string    `gorm:"column:ship_symbol;index;not null"`
	PlayerID        int       `gorm:"column:player_id;index;not null"`
	GoodSymbol      string    `gorm:"column:good_symbol;not null"`
	TransactionType string    `gorm:"column:transaction_type;not null"`
	Units           int       `gorm:"column:units;not null"`
	PricePerUnit    int       `gorm:"column:price_per_unit;not null"`
	TotalPrice      int       `gorm:"column:total_price;not null"`
	Timestamp       time.Time `gorm:"column:timestamp;index;not null"`
}

func (TransactionModel) TableName() string {
	return "market_transactions"
}

// AllModels lists every model for migration
func AllModels() []interface{} {
	return []interface{}{
		&PlayerModel{},
		&WaypointModel{},
		&JumpGateConnectionModel{},
		&MarketPriceModel{},
		&ShipModel{},
		&RouteLogModel{},
		&TransactionModel{},
	}
}
