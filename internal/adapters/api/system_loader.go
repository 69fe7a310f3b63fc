package api

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// SystemLoader fetches system topology from the remote API for seeding the
// local database: waypoints with capability flags, jump-gate adjacency,
// and market fuel prices.
type SystemLoader struct {
	client *Client
}

// NewSystemLoader creates a system loader on the shared client.
func NewSystemLoader(client *Client) *SystemLoader {
	return &SystemLoader{client: client}
}

// ListSystemWaypoints fetches every waypoint of a system, walking the
// paginated listing (20 per page).
func (l *SystemLoader) ListSystemWaypoints(ctx context.Context, systemSymbol string) ([]*shared.Waypoint, error) {
	var waypoints []*shared.Waypoint
	page := 1
	limit := 20

	for {
		path := fmt.Sprintf("/systems/%s/waypoints?page=%d&limit=%d", systemSymbol, page, limit)

		var response struct {
			Data []struct {
				Symbol string `json:"symbol"`
				Type   string `json:"type"`
				X      int    `json:"x"`
				Y      int    `json:"y"`
				Traits []struct {
					Symbol string `json:"symbol"`
				} `json:"traits"`
				Chart *struct {
					SubmittedOn string `json:"submittedOn"`
				} `json:"chart,omitempty"`
			} `json:"data"`
			Meta struct {
				Total int `json:"total"`
				Page  int `json:"page"`
				Limit int `json:"limit"`
			} `json:"meta"`
		}

		if err := l.client.request(ctx, "GET", path, nil, &response); err != nil {
			return nil, shared.NewRemoteAPIError("list_waypoints", err)
		}
		if len(response.Data) == 0 {
			break
		}

		for _, wp := range response.Data {
			waypoint := &shared.Waypoint{
				Symbol:       wp.Symbol,
				SystemSymbol: systemSymbol,
				X:            wp.X,
				Y:            wp.Y,
				Type:         wp.Type,
				IsJumpGate:   wp.Type == "JUMP_GATE",
				IsCharted:    wp.Chart != nil,
			}
			for _, trait := range wp.Traits {
				switch trait.Symbol {
				case "MARKETPLACE":
					waypoint.IsMarketplace = true
				case "SHIPYARD":
					waypoint.IsShipyard = true
				}
			}
			waypoints = append(waypoints, waypoint)
		}

		if page*limit >= response.Meta.Total {
			break
		}
		page++
	}

	return waypoints, nil
}

// GetJumpGateConnections fetches the waypoints reachable by one jump from
// a gate.
func (l *SystemLoader) GetJumpGateConnections(ctx context.Context, waypointSymbol string) ([]string, error) {
	systemSymbol := shared.ExtractSystemSymbol(waypointSymbol)
	path := fmt.Sprintf("/systems/%s/waypoints/%s/jump-gate", systemSymbol, waypointSymbol)

	var response struct {
		Data struct {
			Connections []string `json:"connections"`
		} `json:"data"`
	}

	if err := l.client.request(ctx, "GET", path, nil, &response); err != nil {
		return nil, shared.NewRemoteAPIError("get_jump_gate", err)
	}
	return response.Data.Connections, nil
}

// GetFuelPrice fetches the current purchase price of one FUEL unit at a
// marketplace, or zero when the good is not traded there.
func (l *SystemLoader) GetFuelPrice(ctx context.Context, waypointSymbol string) (int, error) {
	systemSymbol := shared.ExtractSystemSymbol(waypointSymbol)
	path := fmt.Sprintf("/systems/%s/waypoints/%s/market", systemSymbol, waypointSymbol)

	var response struct {
		Data struct {
			TradeGoods []struct {
				Symbol        string `json:"symbol"`
				PurchasePrice int    `json:"purchasePrice"`
			} `json:"tradeGoods"`
		} `json:"data"`
	}

	if err := l.client.request(ctx, "GET", path, nil, &response); err != nil {
		return 0, shared.NewRemoteAPIError("get_market", err)
	}

	for _, good := range response.Data.TradeGoods {
		if good.Symbol == shared.FuelGoodSymbol {
			return good.PurchasePrice, nil
		}
	}
	return 0, nil
}
