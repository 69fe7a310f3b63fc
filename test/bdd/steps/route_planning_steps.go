package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/routing"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

type routePlanningContext struct {
	waypoints    map[string]*shared.Waypoint
	engineSpeed  int
	fuelCapacity int

	route       *navigation.Route
	planningErr error
}

func (ctx *routePlanningContext) reset() {
	ctx.waypoints = make(map[string]*shared.Waypoint)
	ctx.engineSpeed = 0
	ctx.fuelCapacity = 0
	ctx.route = nil
	ctx.planningErr = nil
}

// Given steps

func (ctx *routePlanningContext) aWaypointAt(symbol string, x, y int, marketClause string) error {
	waypoint, err := shared.NewWaypoint(symbol, x, y)
	if err != nil {
		return err
	}
	waypoint.IsMarketplace = marketClause == "with"
	ctx.waypoints[symbol] = waypoint
	return nil
}

func (ctx *routePlanningContext) aShipWithEngineSpeedAndFuelCapacity(engineSpeed, fuelCapacity int) error {
	ctx.engineSpeed = engineSpeed
	ctx.fuelCapacity = fuelCapacity
	return nil
}

// When steps

func (ctx *routePlanningContext) planRoute(origin, destination string, onlyMarkets bool) error {
	pathfinder := routing.NewPathfinder(routing.NewRouteCache())
	edges, err := pathfinder.FindRoute(routing.SearchRequest{
		Waypoints:    ctx.waypoints,
		Start:        origin,
		End:          destination,
		Modes:        shared.CruiseOnly(),
		FuelCapacity: ctx.fuelCapacity,
		StartRange:   ctx.fuelCapacity,
		OnlyMarkets:  onlyMarkets,
	})
	if err != nil {
		ctx.planningErr = err
		return nil
	}

	assembler := navigation.NewRouteAssembler(shared.NewMockClock(time.Time{}))
	ctx.route, ctx.planningErr = assembler.Assemble(navigation.AssembleRequest{
		ShipSymbol:   "ENDURANCE-1",
		PlayerID:     shared.MustNewPlayerID(1),
		Edges:        edges,
		Waypoints:    ctx.waypoints,
		EngineSpeed:  ctx.engineSpeed,
		FuelCapacity: ctx.fuelCapacity,
	})
	return nil
}

func (ctx *routePlanningContext) iPlanARouteUsingOnlyMarketplaces(origin, destination string) error {
	return ctx.planRoute(origin, destination, true)
}

func (ctx *routePlanningContext) iPlanARoute(origin, destination string) error {
	return ctx.planRoute(origin, destination, false)
}

// Then steps

func (ctx *routePlanningContext) theRouteShouldHaveLegs(count int) error {
	if ctx.planningErr != nil {
		return fmt.Errorf("planning failed: %w", ctx.planningErr)
	}
	if got := len(ctx.route.Connections()); got != count {
		return fmt.Errorf("expected %d legs, got %d", count, got)
	}
	return nil
}

func (ctx *routePlanningContext) legShouldGoFromTo(index int, from, to string) error {
	legs := ctx.route.Connections()
	if index < 1 || index > len(legs) {
		return fmt.Errorf("no leg %d in a %d-leg route", index, len(legs))
	}
	leg := legs[index-1]
	if leg.Start().Symbol != from || leg.End().Symbol != to {
		return fmt.Errorf("leg %d goes %s -> %s, expected %s -> %s",
			index, leg.Start().Symbol, leg.End().Symbol, from, to)
	}
	return nil
}

func (ctx *routePlanningContext) legShouldRequireCargoFuel(index, units int) error {
	legs := ctx.route.Connections()
	if index < 1 || index > len(legs) {
		return fmt.Errorf("no leg %d in a %d-leg route", index, len(legs))
	}
	refuel := legs[index-1].Refuel()
	if refuel == nil {
		return fmt.Errorf("leg %d carries no refuel plan", index)
	}
	if refuel.FuelRequired != units {
		return fmt.Errorf("leg %d requires %d cargo fuel, expected %d",
			index, refuel.FuelRequired, units)
	}
	return nil
}

func (ctx *routePlanningContext) theTotalFuelCostShouldBe(units int) error {
	if got := ctx.route.TotalFuelCost(); got != units {
		return fmt.Errorf("total fuel cost is %d, expected %d", got, units)
	}
	return nil
}

func (ctx *routePlanningContext) planningShouldFailWithNoRouteFound() error {
	var noRoute *shared.NoRouteFoundError
	if !errors.As(ctx.planningErr, &noRoute) {
		return fmt.Errorf("expected NoRouteFoundError, got %v", ctx.planningErr)
	}
	return nil
}

func (ctx *routePlanningContext) planningShouldFailWithWaypointNotFound() error {
	var notFound *shared.WaypointNotFoundError
	if !errors.As(ctx.planningErr, &notFound) {
		return fmt.Errorf("expected WaypointNotFoundError, got %v", ctx.planningErr)
	}
	return nil
}

// InitializeRoutePlanningScenario registers route planning step definitions
func InitializeRoutePlanningScenario(sc *godog.ScenarioContext) {
	ctx := &routePlanningContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a waypoint "([^"]*)" at (-?\d+),(-?\d+) (with|without) a marketplace$`, ctx.aWaypointAt)
	sc.Step(`^a ship with engine speed (\d+) and fuel capacity (\d+)$`, ctx.aShipWithEngineSpeedAndFuelCapacity)
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)" using only marketplaces$`, ctx.iPlanARouteUsingOnlyMarketplaces)
	sc.Step(`^I plan a route from "([^"]*)" to "([^"]*)"$`, ctx.iPlanARoute)
	sc.Step(`^the route should have (\d+) legs$`, ctx.theRouteShouldHaveLegs)
	sc.Step(`^leg (\d+) should go from "([^"]*)" to "([^"]*)"$`, ctx.legShouldGoFromTo)
	sc.Step(`^leg (\d+) should require (\d+) units of cargo fuel$`, ctx.legShouldRequireCargoFuel)
	sc.Step(`^the total fuel cost should be (\d+)$`, ctx.theTotalFuelCostShouldBe)
	sc.Step(`^the planning should fail with no route found$`, ctx.planningShouldFailWithNoRouteFound)
	sc.Step(`^the planning should fail with waypoint not found$`, ctx.planningShouldFailWithWaypointNotFound)
}
