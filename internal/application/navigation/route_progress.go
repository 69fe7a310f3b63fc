package navigation

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
)

// GetRouteProgressHandler - Reads a ship's in-progress route snapshot.
type GetRouteProgressHandler struct {
	shipRepo navigation.ShipRepository
}

// NewGetRouteProgressHandler creates a new route progress handler
func NewGetRouteProgressHandler(shipRepo navigation.ShipRepository) *GetRouteProgressHandler {
	return &GetRouteProgressHandler{shipRepo: shipRepo}
}

// Handle executes the route progress query
func (h *GetRouteProgressHandler) Handle(ctx context.Context, request common.Request) (common.Response, error) {
	query, ok := request.(*GetRouteProgressQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type")
	}

	ship, err := h.shipRepo.FindBySymbol(ctx, query.ShipSymbol, query.PlayerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ship %s: %w", query.ShipSymbol, err)
	}

	return &GetRouteProgressResponse{Progress: ship.RouteProgress()}, nil
}
