package ship

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/starnav-go/internal/adapters/metrics"
	"github.com/andrescamacho/starnav-go/internal/application/common"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/pkg/utils"
)

// LegState tracks where a leg execution currently is. The executor walks
// each leg through these states in order, skipping the ones the leg does
// not need.
type LegState string

const (
	LegStateNotStarted      LegState = "NOT_STARTED"
	LegStateAwaitingArrival LegState = "AWAITING_ARRIVAL"
	LegStateRefueling       LegState = "REFUELING"
	LegStateModeSwitching   LegState = "MODE_SWITCHING"
	LegStateMoving          LegState = "MOVING"
	LegStateCompleted       LegState = "COMPLETED"
	LegStateFailed          LegState = "FAILED"
)

// SideEffectCallback runs after a leg's preparation (refuel, mode switch)
// and before its departure. A non-nil error fails the route. Used for
// per-waypoint work like market scans.
type SideEffectCallback func(ctx context.Context, ship *navigation.Ship, startSymbol, endSymbol string) error

// RouteExecutor - Drives a planned route leg by leg against the remote API.
//
// Each leg waits out any in-progress transit, satisfies the leg's refuel
// plan, switches flight mode, and issues the movement matching the leg's
// connection kind. A failed leg fails the whole route; there are no
// automatic retries. The remote API's own timestamps drive all waits.
type RouteExecutor struct {
	mediator    common.Mediator
	shipRepo    navigation.ShipRepository
	shipControl navigation.ShipControl
	events      navigation.ShipEventPublisher
	clock       shared.Clock
}

// NewRouteExecutor creates a new route executor
func NewRouteExecutor(
	mediator common.Mediator,
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
	events navigation.ShipEventPublisher,
	clock shared.Clock,
) *RouteExecutor {
	if events == nil {
		events = navigation.NopEventPublisher{}
	}
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &RouteExecutor{
		mediator:    mediator,
		shipRepo:    shipRepo,
		shipControl: shipControl,
		events:      events,
		clock:       clock,
	}
}

// ExecuteRoute runs the route to completion, mutating ship in place.
// Returns the route's final error, if any.
func (e *RouteExecutor) ExecuteRoute(
	ctx context.Context,
	route *navigation.Route,
	ship *navigation.Ship,
	callback SideEffectCallback,
) error {
	logger := common.LoggerFromContext(ctx)
	startedAt := e.clock.Now()

	if err := route.StartExecution(); err != nil {
		return err
	}

	// A zero-leg plan means origin equals destination; complete it without
	// touching the remote API.
	if route.IsEmpty() {
		if err := route.CompleteLeg(); err != nil {
			route.Fail(err)
			e.finishRoute(ctx, route, ship, startedAt)
			return err
		}
		e.finishRoute(ctx, route, ship, startedAt)
		return nil
	}

	logger.Log("INFO", "Route execution started", map[string]interface{}{
		"route_id":    route.RouteID(),
		"ship_symbol": ship.ShipSymbol(),
		"origin":      route.Origin().Symbol,
		"destination": route.Destination().Symbol,
		"legs":        len(route.Connections()),
	})

	for !route.IsComplete() {
		conn := route.CurrentConnection()
		if conn == nil {
			break
		}
		if err := e.executeLeg(ctx, route, ship, conn, callback); err != nil {
			route.Fail(err)
			e.finishRoute(ctx, route, ship, startedAt)
			return err
		}
		if err := route.CompleteLeg(); err != nil {
			route.Fail(err)
			e.finishRoute(ctx, route, ship, startedAt)
			return err
		}
		metrics.RecordLegCompletion(ship.PlayerID().Value(), int(conn.Distance()), conn.FuelCost())
	}

	e.finishRoute(ctx, route, ship, startedAt)
	return nil
}

func (e *RouteExecutor) executeLeg(
	ctx context.Context,
	route *navigation.Route,
	ship *navigation.Ship,
	conn navigation.ConcreteConnection,
	callback SideEffectCallback,
) error {
	logger := common.LoggerFromContext(ctx)
	start := conn.Start()
	end := conn.End()

	// The ship must be where the plan says it is before anything is sent
	// to the remote API.
	if !ship.IsAtLocation(start.Symbol) {
		return shared.NewPositionMismatchError(start.Symbol, ship.CurrentLocation().Symbol)
	}

	// Self-loop legs carry no work.
	if start.Symbol == end.Symbol {
		return nil
	}

	if err := e.awaitArrival(ctx, ship); err != nil {
		return err
	}

	if err := e.prepareFuel(ctx, ship, conn); err != nil {
		return err
	}

	if err := e.switchMode(ctx, ship, conn); err != nil {
		return err
	}

	if callback != nil {
		if err := callback(ctx, ship, start.Symbol, end.Symbol); err != nil {
			return fmt.Errorf("side effect at %s failed: %w", start.Symbol, err)
		}
	}

	logger.Log("INFO", "Executing route leg", map[string]interface{}{
		"route_id":    route.RouteID(),
		"ship_symbol": ship.ShipSymbol(),
		"state":       string(LegStateMoving),
		"kind":        string(conn.Kind()),
		"from":        start.Symbol,
		"to":          end.Symbol,
	})

	return e.move(ctx, route, ship, conn)
}

// awaitArrival waits out a transit left over from a previous leg or a
// previous process run.
func (e *RouteExecutor) awaitArrival(ctx context.Context, ship *navigation.Ship) error {
	arrival := ship.ArrivalTime()
	if arrival == nil {
		return nil
	}
	wait := arrival.WaitDuration(e.clock)
	if wait > 0 {
		common.LoggerFromContext(ctx).Log("INFO", "Awaiting arrival", map[string]interface{}{
			"ship_symbol":  ship.ShipSymbol(),
			"state":        string(LegStateAwaitingArrival),
			"wait_seconds": int(wait.Seconds()),
		})
		e.clock.Sleep(wait)
	}
	if err := ship.Arrive(); err != nil {
		return err
	}
	e.events.PublishArrived(navigation.ShipArrivedEvent{
		ShipSymbol:     ship.ShipSymbol(),
		PlayerID:       ship.PlayerID(),
		WaypointSymbol: ship.CurrentLocation().Symbol,
		FuelCurrent:    ship.Fuel().Current,
		ArrivedAt:      e.clock.Now(),
	})
	return nil
}

// prepareFuel satisfies the leg's refuel plan. At a marketplace the ship
// docks, tops up the tank, and restocks cargo fuel for later non-market
// legs. Elsewhere the tank is filled from cargo-held fuel. A restock that
// cannot be fully met is logged and tolerated; the route plan already
// proved the tank itself can be satisfied.
func (e *RouteExecutor) prepareFuel(
	ctx context.Context,
	ship *navigation.Ship,
	conn navigation.ConcreteConnection,
) error {
	refuel := conn.Refuel()
	if refuel == nil {
		return nil
	}
	reqs := navigation.RequirementsFor(refuel, ship.Fuel(), ship.CargoFuelUnits())
	if reqs.IsSatisfied() {
		return nil
	}

	logger := common.LoggerFromContext(ctx)
	logger.Log("INFO", "Refueling for leg", map[string]interface{}{
		"ship_symbol":    ship.ShipSymbol(),
		"state":          string(LegStateRefueling),
		"waypoint":       ship.CurrentLocation().Symbol,
		"refuel_amount":  reqs.RefuelAmount,
		"restock_amount": reqs.RestockAmount,
	})

	if refuel.StartIsMarket {
		return e.refuelAtMarket(ctx, ship, reqs)
	}
	return e.refuelFromCargo(ctx, ship, reqs)
}

func (e *RouteExecutor) refuelAtMarket(
	ctx context.Context,
	ship *navigation.Ship,
	reqs navigation.RefuelRequirements,
) error {
	if _, err := e.mediator.Send(ctx, &types.DockShipCommand{
		ShipSymbol: ship.ShipSymbol(),
		PlayerID:   ship.PlayerID(),
		Ship:       ship,
	}); err != nil {
		return fmt.Errorf("failed to dock for refuel: %w", err)
	}

	if reqs.RefuelAmount > 0 {
		if _, err := e.mediator.Send(ctx, &types.RefuelShipCommand{
			ShipSymbol: ship.ShipSymbol(),
			PlayerID:   ship.PlayerID(),
			Units:      reqs.RefuelAmount,
			Ship:       ship,
		}); err != nil {
			return err
		}
	}

	if reqs.RestockAmount > 0 {
		restock := utils.Min(reqs.RestockAmount, ship.Cargo().AvailableCapacity())
		if restock > 0 {
			if _, err := e.mediator.Send(ctx, &types.PurchaseCargoCommand{
				ShipSymbol: ship.ShipSymbol(),
				PlayerID:   ship.PlayerID(),
				GoodSymbol: shared.FuelGoodSymbol,
				Units:      restock,
				Ship:       ship,
			}); err != nil {
				return fmt.Errorf("failed to restock cargo fuel: %w", err)
			}
		}
		if restock < reqs.RestockAmount {
			// Later non-market legs may come up short; surfaced as a
			// warning, not a route failure.
			shortfall := shared.NewRestockShortfallError(
				ship.CurrentLocation().Symbol, reqs.RestockAmount, restock)
			common.LoggerFromContext(ctx).Log("WARN", "Cargo fuel restock short", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"error":       shortfall.Error(),
			})
		}
	}
	return nil
}

func (e *RouteExecutor) refuelFromCargo(
	ctx context.Context,
	ship *navigation.Ship,
	reqs navigation.RefuelRequirements,
) error {
	logger := common.LoggerFromContext(ctx)

	// No marketplace here, so a pending restock cannot be bought. Later
	// legs may run short; surfaced as a warning, not a route failure.
	if reqs.RestockAmount > 0 {
		shortfall := shared.NewRestockShortfallError(
			ship.CurrentLocation().Symbol, reqs.RestockAmount, 0)
		logger.Log("WARN", "Cannot restock cargo fuel away from a marketplace", map[string]interface{}{
			"ship_symbol": ship.ShipSymbol(),
			"error":       shortfall.Error(),
		})
	}

	units := utils.Min(reqs.RefuelAmount, ship.CargoFuelUnits())
	if units < reqs.RefuelAmount {
		shortfall := shared.NewRestockShortfallError(
			ship.CurrentLocation().Symbol, reqs.RefuelAmount, ship.CargoFuelUnits())
		logger.Log("WARN", "Cargo fuel transfer short of the leg's plan", map[string]interface{}{
			"ship_symbol": ship.ShipSymbol(),
			"error":       shortfall.Error(),
		})
	}
	if units <= 0 {
		return nil
	}

	if _, err := e.mediator.Send(ctx, &types.DockShipCommand{
		ShipSymbol: ship.ShipSymbol(),
		PlayerID:   ship.PlayerID(),
		Ship:       ship,
	}); err != nil {
		return fmt.Errorf("failed to dock for cargo refuel: %w", err)
	}

	_, err := e.mediator.Send(ctx, &types.RefuelShipCommand{
		ShipSymbol: ship.ShipSymbol(),
		PlayerID:   ship.PlayerID(),
		Units:      units,
		FromCargo:  true,
		Ship:       ship,
	})
	return err
}

// switchMode aligns the ship's flight mode with the leg's planned mode.
// Jump legs have no mode.
func (e *RouteExecutor) switchMode(
	ctx context.Context,
	ship *navigation.Ship,
	conn navigation.ConcreteConnection,
) error {
	moded, ok := conn.(interface{ Mode() shared.FlightMode })
	if !ok {
		return nil
	}
	if ship.FlightMode() == moded.Mode() {
		return nil
	}
	common.LoggerFromContext(ctx).Log("INFO", "Switching flight mode", map[string]interface{}{
		"ship_symbol": ship.ShipSymbol(),
		"state":       string(LegStateModeSwitching),
		"from":        ship.FlightMode().Name(),
		"to":          moded.Mode().Name(),
	})
	_, err := e.mediator.Send(ctx, &types.SetFlightModeCommand{
		ShipSymbol: ship.ShipSymbol(),
		Mode:       moded.Mode(),
		PlayerID:   ship.PlayerID(),
		Ship:       ship,
	})
	return err
}

// move issues the movement matching the leg's connection kind and, for
// navigate and warp legs, waits out the transit the response announces.
func (e *RouteExecutor) move(
	ctx context.Context,
	route *navigation.Route,
	ship *navigation.Ship,
	conn navigation.ConcreteConnection,
) error {
	if _, err := e.mediator.Send(ctx, &types.OrbitShipCommand{
		ShipSymbol: ship.ShipSymbol(),
		PlayerID:   ship.PlayerID(),
		Ship:       ship,
	}); err != nil {
		return fmt.Errorf("failed to orbit for departure: %w", err)
	}

	end := conn.End()

	switch conn.Kind() {
	case navigation.ConnectionKindJump:
		_, err := e.mediator.Send(ctx, &types.JumpShipCommand{
			ShipSymbol:  ship.ShipSymbol(),
			Destination: end,
			PlayerID:    ship.PlayerID(),
			Ship:        ship,
		})
		return err

	case navigation.ConnectionKindWarp:
		response, err := e.mediator.Send(ctx, &types.WarpShipCommand{
			ShipSymbol:  ship.ShipSymbol(),
			Destination: end,
			FlightMode:  ship.FlightMode(),
			PlayerID:    ship.PlayerID(),
			RouteID:     route.RouteID(),
			Ship:        ship,
		})
		if err != nil {
			return err
		}
		if warped, ok := response.(*types.WarpShipResponse); ok {
			metrics.RecordFuelConsumption(ship.PlayerID().Value(), ship.FlightMode(), warped.FuelConsumed)
		}
		return e.awaitArrival(ctx, ship)

	default:
		response, err := e.mediator.Send(ctx, &types.NavigateDirectCommand{
			ShipSymbol:  ship.ShipSymbol(),
			Destination: end,
			FlightMode:  ship.FlightMode(),
			PlayerID:    ship.PlayerID(),
			RouteID:     route.RouteID(),
			Ship:        ship,
		})
		if err != nil {
			return err
		}
		if moved, ok := response.(*types.NavigateDirectResponse); ok {
			metrics.RecordFuelConsumption(ship.PlayerID().Value(), ship.FlightMode(), moved.FuelConsumed)
		}
		return e.awaitArrival(ctx, ship)
	}
}

// finishRoute refreshes the ship from the live API state, persists it,
// records the route metric, and publishes the completion event.
func (e *RouteExecutor) finishRoute(
	ctx context.Context,
	route *navigation.Route,
	ship *navigation.Ship,
	startedAt time.Time,
) {
	logger := common.LoggerFromContext(ctx)

	e.refreshShip(ctx, route, ship)
	ship.ClearRouteProgress()

	if e.shipRepo != nil {
		if err := e.shipRepo.Save(ctx, ship); err != nil {
			logger.Log("WARN", "Failed to persist ship after route", map[string]interface{}{
				"ship_symbol": ship.ShipSymbol(),
				"error":       err.Error(),
			})
		}
	}

	duration := e.clock.Now().Sub(startedAt).Seconds()
	metrics.RecordRouteCompletion(
		ship.PlayerID().Value(),
		route.Status(),
		duration,
		int(route.TotalDistance()),
		route.TotalFuelCost(),
	)

	// An empty route has no legs to take endpoints from; the ship's
	// position stands in for both.
	origin := ship.CurrentLocation().Symbol
	destination := origin
	if o := route.Origin(); o != nil {
		origin = o.Symbol
	}
	if d := route.Destination(); d != nil {
		destination = d.Symbol
	}

	event := navigation.RouteCompletedEvent{
		RouteID:     route.RouteID(),
		ShipSymbol:  ship.ShipSymbol(),
		PlayerID:    ship.PlayerID(),
		Origin:      origin,
		Destination: destination,
		Success:     route.IsComplete(),
		FinishedAt:  e.clock.Now(),
	}
	if route.LastError() != nil {
		event.Error = route.LastError().Error()
	}
	e.events.PublishRouteCompleted(event)

	logger.Log("INFO", "Route execution finished", map[string]interface{}{
		"route_id":    route.RouteID(),
		"ship_symbol": ship.ShipSymbol(),
		"status":      string(route.Status()),
		"duration_s":  duration,
	})
}

// refreshShip replaces locally-tracked state with the API's live view.
// Best effort; the local state is already consistent if the fetch fails.
func (e *RouteExecutor) refreshShip(ctx context.Context, route *navigation.Route, ship *navigation.Ship) {
	if e.shipControl == nil {
		return
	}
	snapshot, err := e.shipControl.GetShip(ctx, ship.ShipSymbol())
	if err != nil {
		common.LoggerFromContext(ctx).Log("WARN", "Failed to refresh ship from API", map[string]interface{}{
			"ship_symbol": ship.ShipSymbol(),
			"error":       err.Error(),
		})
		return
	}
	waypoint := ship.CurrentLocation()
	if route.IsComplete() && route.Destination() != nil {
		waypoint = route.Destination()
	}
	if err := ship.ApplySnapshot(snapshot, waypoint); err != nil {
		common.LoggerFromContext(ctx).Log("WARN", "Failed to apply ship snapshot", map[string]interface{}{
			"ship_symbol": ship.ShipSymbol(),
			"error":       err.Error(),
		})
	}
}
