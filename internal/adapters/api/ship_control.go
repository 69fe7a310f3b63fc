package api

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// ShipControl implements navigation.ShipControl against the remote game
// API. All calls share the client's rate limiter and circuit breaker.
type ShipControl struct {
	client *Client
}

// NewShipControl creates the remote ship control adapter.
func NewShipControl(client *Client) *ShipControl {
	return &ShipControl{client: client}
}

// Dock docks the ship at its current waypoint
func (s *ShipControl) Dock(ctx context.Context, shipSymbol string) error {
	path := fmt.Sprintf("/my/ships/%s/dock", shipSymbol)

	// Empty JSON object, not nil, to satisfy API requirements
	if err := s.client.request(ctx, "POST", path, map[string]interface{}{}, nil); err != nil {
		return shared.NewRemoteAPIError("dock", err)
	}
	return nil
}

// Orbit moves the ship from docked to orbit
func (s *ShipControl) Orbit(ctx context.Context, shipSymbol string) error {
	path := fmt.Sprintf("/my/ships/%s/orbit", shipSymbol)

	if err := s.client.request(ctx, "POST", path, map[string]interface{}{}, nil); err != nil {
		return shared.NewRemoteAPIError("orbit", err)
	}
	return nil
}

// SetFlightMode changes the ship's active flight mode
func (s *ShipControl) SetFlightMode(ctx context.Context, shipSymbol string, mode shared.FlightMode) error {
	path := fmt.Sprintf("/my/ships/%s/nav", shipSymbol)

	body := map[string]string{
		"flightMode": mode.Name(),
	}
	if err := s.client.request(ctx, "PATCH", path, body, nil); err != nil {
		return shared.NewRemoteAPIError("set_flight_mode", err)
	}
	return nil
}

// movementResponse is the shared shape of navigate and warp answers.
type movementResponse struct {
	Data struct {
		Fuel struct {
			Current  int `json:"current"`
			Capacity int `json:"capacity"`
			Consumed struct {
				Amount int `json:"amount"`
			} `json:"consumed"`
		} `json:"fuel"`
		Nav struct {
			WaypointSymbol string `json:"waypointSymbol"`
			Route          struct {
				DepartureTime string `json:"departureTime"`
				Arrival       string `json:"arrival"`
			} `json:"route"`
		} `json:"nav"`
	} `json:"data"`
}

func (r *movementResponse) toResult() *navigation.MovementResult {
	return &navigation.MovementResult{
		Destination:   r.Data.Nav.WaypointSymbol,
		DepartureTime: r.Data.Nav.Route.DepartureTime,
		ArrivalTime:   r.Data.Nav.Route.Arrival,
		FuelConsumed:  r.Data.Fuel.Consumed.Amount,
		FuelCurrent:   r.Data.Fuel.Current,
		FuelCapacity:  r.Data.Fuel.Capacity,
	}
}

// Navigate issues an in-system move
func (s *ShipControl) Navigate(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	path := fmt.Sprintf("/my/ships/%s/navigate", shipSymbol)

	body := map[string]string{
		"waypointSymbol": destination,
	}
	var response movementResponse
	if err := s.client.request(ctx, "POST", path, body, &response); err != nil {
		return nil, shared.NewRemoteAPIError("navigate", err)
	}
	return response.toResult(), nil
}

// Warp issues a cross-system move outside the jump-gate network
func (s *ShipControl) Warp(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	path := fmt.Sprintf("/my/ships/%s/warp", shipSymbol)

	body := map[string]string{
		"waypointSymbol": destination,
	}
	var response movementResponse
	if err := s.client.request(ctx, "POST", path, body, &response); err != nil {
		return nil, shared.NewRemoteAPIError("warp", err)
	}
	return response.toResult(), nil
}

// Jump traverses the jump-gate network
func (s *ShipControl) Jump(ctx context.Context, shipSymbol, destination string) (*navigation.JumpResult, error) {
	path := fmt.Sprintf("/my/ships/%s/jump", shipSymbol)

	body := map[string]string{
		"waypointSymbol": destination,
	}

	var response struct {
		Data struct {
			Nav struct {
				WaypointSymbol string `json:"waypointSymbol"`
			} `json:"nav"`
			Cooldown struct {
				Expiration string `json:"expiration"`
			} `json:"cooldown"`
			Agent struct {
				Credits int64 `json:"credits"`
			} `json:"agent"`
			Transaction struct {
				WaypointSymbol string `json:"waypointSymbol"`
				TradeSymbol    string `json:"tradeSymbol"`
				Units          int    `json:"units"`
				PricePerUnit   int    `json:"pricePerUnit"`
				TotalPrice     int    `json:"totalPrice"`
				Timestamp      string `json:"timestamp"`
			} `json:"transaction"`
		} `json:"data"`
	}

	if err := s.client.request(ctx, "POST", path, body, &response); err != nil {
		return nil, shared.NewRemoteAPIError("jump", err)
	}

	expiration, err := parseAPITime(response.Data.Cooldown.Expiration)
	if err != nil {
		return nil, shared.NewRemoteAPIError("jump", fmt.Errorf("bad cooldown expiration: %w", err))
	}

	result := &navigation.JumpResult{
		Destination:        response.Data.Nav.WaypointSymbol,
		CooldownExpiration: expiration,
		AgentCredits:       response.Data.Agent.Credits,
	}

	if response.Data.Transaction.TradeSymbol != "" {
		timestamp, err := parseAPITime(response.Data.Transaction.Timestamp)
		if err != nil {
			timestamp = expiration
		}
		result.Transaction = &navigation.MarketTransaction{
			WaypointSymbol:  response.Data.Transaction.WaypointSymbol,
			GoodSymbol:      response.Data.Transaction.TradeSymbol,
			TransactionType: "PURCHASE",
			Units:           response.Data.Transaction.Units,
			PricePerUnit:    response.Data.Transaction.PricePerUnit,
			TotalPrice:      response.Data.Transaction.TotalPrice,
			Timestamp:       timestamp,
		}
	}

	return result, nil
}

// Refuel purchases tank fuel at a marketplace, or transfers cargo-held
// fuel into the tank when fromCargo is set
func (s *ShipControl) Refuel(ctx context.Context, shipSymbol string, units int, fromCargo bool) (*navigation.RefuelResult, error) {
	path := fmt.Sprintf("/my/ships/%s/refuel", shipSymbol)

	body := map[string]interface{}{}
	if units > 0 {
		body["units"] = units
	}
	if fromCargo {
		body["fromCargo"] = true
	}

	var response struct {
		Data struct {
			Fuel struct {
				Current  int `json:"current"`
				Capacity int `json:"capacity"`
			} `json:"fuel"`
			Agent struct {
				Credits int64 `json:"credits"`
			} `json:"agent"`
			Transaction struct {
				Units      int `json:"units"`
				TotalPrice int `json:"totalPrice"`
			} `json:"transaction"`
		} `json:"data"`
	}

	if err := s.client.request(ctx, "POST", path, body, &response); err != nil {
		return nil, shared.NewRemoteAPIError("refuel", err)
	}

	return &navigation.RefuelResult{
		FuelAdded:    response.Data.Transaction.Units,
		FuelCurrent:  response.Data.Fuel.Current,
		FuelCapacity: response.Data.Fuel.Capacity,
		TotalPrice:   response.Data.Transaction.TotalPrice,
		AgentCredits: response.Data.Agent.Credits,
	}, nil
}

// PurchaseCargo buys trade-good units into the hold
func (s *ShipControl) PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int) (*navigation.PurchaseResult, error) {
	path := fmt.Sprintf("/my/ships/%s/purchase", shipSymbol)

	body := map[string]interface{}{
		"symbol": goodSymbol,
		"units":  units,
	}

	var response struct {
		Data struct {
			Agent struct {
				Credits int64 `json:"credits"`
			} `json:"agent"`
			Transaction struct {
				TradeSymbol  string `json:"tradeSymbol"`
				Units        int    `json:"units"`
				PricePerUnit int    `json:"pricePerUnit"`
				TotalPrice   int    `json:"totalPrice"`
			} `json:"transaction"`
		} `json:"data"`
	}

	if err := s.client.request(ctx, "POST", path, body, &response); err != nil {
		return nil, shared.NewRemoteAPIError("purchase_cargo", err)
	}

	return &navigation.PurchaseResult{
		GoodSymbol:   response.Data.Transaction.TradeSymbol,
		Units:        response.Data.Transaction.Units,
		PricePerUnit: response.Data.Transaction.PricePerUnit,
		TotalPrice:   response.Data.Transaction.TotalPrice,
		AgentCredits: response.Data.Agent.Credits,
	}, nil
}

// GetShip fetches the ship's live state
func (s *ShipControl) GetShip(ctx context.Context, shipSymbol string) (*navigation.ShipSnapshot, error) {
	path := fmt.Sprintf("/my/ships/%s", shipSymbol)

	var response struct {
		Data struct {
			Symbol string `json:"symbol"`
			Nav    struct {
				WaypointSymbol string `json:"waypointSymbol"`
				Status         string `json:"status"`
				FlightMode     string `json:"flightMode"`
				Route          *struct {
					Arrival string `json:"arrival"`
				} `json:"route,omitempty"` // Only present when IN_TRANSIT
			} `json:"nav"`
			Fuel struct {
				Current  int `json:"current"`
				Capacity int `json:"capacity"`
			} `json:"fuel"`
			Cargo struct {
				Capacity  int `json:"capacity"`
				Units     int `json:"units"`
				Inventory []struct {
					Symbol string `json:"symbol"`
					Units  int    `json:"units"`
				} `json:"inventory"`
			} `json:"cargo"`
			Engine struct {
				Speed int `json:"speed"`
			} `json:"engine"`
			Modules []struct {
				Symbol   string `json:"symbol"`
				Capacity int    `json:"capacity"`
				Range    int    `json:"range"`
			} `json:"modules"`
			Cooldown struct {
				Expiration string `json:"expiration"`
			} `json:"cooldown"`
		} `json:"data"`
	}

	if err := s.client.request(ctx, "GET", path, nil, &response); err != nil {
		return nil, shared.NewRemoteAPIError("get_ship", err)
	}

	inventory := make([]*shared.CargoItem, 0, len(response.Data.Cargo.Inventory))
	for _, item := range response.Data.Cargo.Inventory {
		inventory = append(inventory, &shared.CargoItem{
			Symbol: item.Symbol,
			Units:  item.Units,
		})
	}

	modules := make([]*navigation.ShipModule, 0, len(response.Data.Modules))
	for _, module := range response.Data.Modules {
		modules = append(modules, navigation.NewShipModule(module.Symbol, module.Capacity, module.Range))
	}

	snapshot := &navigation.ShipSnapshot{
		Symbol:         response.Data.Symbol,
		WaypointSymbol: response.Data.Nav.WaypointSymbol,
		NavStatus:      response.Data.Nav.Status,
		FlightMode:     response.Data.Nav.FlightMode,
		FuelCurrent:    response.Data.Fuel.Current,
		FuelCapacity:   response.Data.Fuel.Capacity,
		CargoCapacity:  response.Data.Cargo.Capacity,
		CargoUnits:     response.Data.Cargo.Units,
		CargoInventory: inventory,
		EngineSpeed:    response.Data.Engine.Speed,
		Modules:        modules,
	}

	if response.Data.Nav.Route != nil {
		snapshot.ArrivalTime = response.Data.Nav.Route.Arrival
	}
	if response.Data.Cooldown.Expiration != "" {
		if expiration, err := parseAPITime(response.Data.Cooldown.Expiration); err == nil {
			snapshot.CooldownExpiration = &expiration
		}
	}

	return snapshot, nil
}

func parseAPITime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
