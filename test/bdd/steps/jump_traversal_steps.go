package steps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cucumber/godog"

	"github.com/andrescamacho/starnav-go/internal/application/ship/commands"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// fakeJumpControl answers Jump calls with a scripted cooldown and counts
// them; every other remote operation is unexpected in these scenarios.
type fakeJumpControl struct {
	clock     shared.Clock
	jumpCalls int
}

func (f *fakeJumpControl) Dock(ctx context.Context, shipSymbol string) error {
	return fmt.Errorf("unexpected Dock call")
}

func (f *fakeJumpControl) Orbit(ctx context.Context, shipSymbol string) error {
	return fmt.Errorf("unexpected Orbit call")
}

func (f *fakeJumpControl) SetFlightMode(ctx context.Context, shipSymbol string, mode shared.FlightMode) error {
	return fmt.Errorf("unexpected SetFlightMode call")
}

func (f *fakeJumpControl) Navigate(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	return nil, fmt.Errorf("unexpected Navigate call")
}

func (f *fakeJumpControl) Warp(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	return nil, fmt.Errorf("unexpected Warp call")
}

func (f *fakeJumpControl) Jump(ctx context.Context, shipSymbol, destination string) (*navigation.JumpResult, error) {
	f.jumpCalls++
	return &navigation.JumpResult{
		Destination:        destination,
		CooldownExpiration: f.clock.Now().Add(60 * time.Second),
	}, nil
}

func (f *fakeJumpControl) Refuel(ctx context.Context, shipSymbol string, units int, fromCargo bool) (*navigation.RefuelResult, error) {
	return nil, fmt.Errorf("unexpected Refuel call")
}

func (f *fakeJumpControl) PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int) (*navigation.PurchaseResult, error) {
	return nil, fmt.Errorf("unexpected PurchaseCargo call")
}

func (f *fakeJumpControl) GetShip(ctx context.Context, shipSymbol string) (*navigation.ShipSnapshot, error) {
	return nil, fmt.Errorf("unexpected GetShip call")
}

type fakeJumpGateRepo struct {
	connections map[string][]string
}

func (f *fakeJumpGateRepo) GetConnectionsFrom(ctx context.Context, waypointSymbol string) ([]string, error) {
	return f.connections[waypointSymbol], nil
}

func (f *fakeJumpGateRepo) GetNetwork(ctx context.Context, systemSymbol string) (*navigation.JumpGateNetwork, error) {
	return navigation.NewJumpGateNetwork(), nil
}

type jumpTraversalContext struct {
	clock    *shared.MockClock
	control  *fakeJumpControl
	gates    *fakeJumpGateRepo
	ship     *navigation.Ship
	response *types.JumpShipResponse
	jumpErr  error
}

func (ctx *jumpTraversalContext) reset() {
	ctx.clock = shared.NewMockClock(time.Time{})
	ctx.control = &fakeJumpControl{clock: ctx.clock}
	ctx.gates = &fakeJumpGateRepo{connections: make(map[string][]string)}
	ctx.ship = nil
	ctx.response = nil
	ctx.jumpErr = nil
}

// Given steps

func (ctx *jumpTraversalContext) aJumpGateLinkedTo(from, to string) error {
	ctx.gates.connections[from] = append(ctx.gates.connections[from], to)
	return nil
}

func (ctx *jumpTraversalContext) theShipIsInOrbitAt(symbol string) error {
	waypoint, err := shared.NewWaypoint(symbol, 0, 0)
	if err != nil {
		return err
	}
	waypoint.IsJumpGate = true

	fuel, err := shared.NewFuel(100, 400)
	if err != nil {
		return err
	}
	cargo, err := shared.NewCargo(40, 0, nil)
	if err != nil {
		return err
	}

	ctx.ship, err = navigation.NewShip(
		"ENDURANCE-1", shared.MustNewPlayerID(1),
		waypoint, fuel, cargo, 10,
		[]*navigation.ShipModule{navigation.NewShipModule("MODULE_JUMP_DRIVE_I", 0, 500)},
		navigation.NavStatusInOrbit, shared.FlightModeCruise,
	)
	return err
}

// When steps

func (ctx *jumpTraversalContext) theShipAttemptsToJumpTo(symbol string) error {
	destination, err := shared.NewWaypoint(symbol, 0, 0)
	if err != nil {
		return err
	}
	destination.IsJumpGate = true

	handler := commands.NewJumpShipHandler(nil, ctx.control, ctx.gates, nil, nil, ctx.clock)
	response, err := handler.Handle(context.Background(), &types.JumpShipCommand{
		ShipSymbol:  ctx.ship.ShipSymbol(),
		Destination: destination,
		PlayerID:    ctx.ship.PlayerID(),
		Ship:        ctx.ship,
	})
	ctx.jumpErr = err
	if response != nil {
		ctx.response, _ = response.(*types.JumpShipResponse)
	}
	return nil
}

// Then steps

func (ctx *jumpTraversalContext) theJumpShouldBeRejectedWithNoJumpConnection() error {
	var noLink *shared.NoJumpConnectionError
	if !errors.As(ctx.jumpErr, &noLink) {
		return fmt.Errorf("expected NoJumpConnectionError, got %v", ctx.jumpErr)
	}
	return nil
}

func (ctx *jumpTraversalContext) noRemoteJumpCallShouldHaveBeenMade() error {
	if ctx.control.jumpCalls != 0 {
		return fmt.Errorf("expected no remote jump calls, got %d", ctx.control.jumpCalls)
	}
	return nil
}

func (ctx *jumpTraversalContext) theShipShouldBeAt(symbol string) error {
	if ctx.jumpErr != nil {
		return fmt.Errorf("jump failed: %w", ctx.jumpErr)
	}
	if !ctx.ship.IsAtLocation(symbol) {
		return fmt.Errorf("ship is at %s, expected %s", ctx.ship.CurrentLocation().Symbol, symbol)
	}
	return nil
}

func (ctx *jumpTraversalContext) theJumpDriveShouldBeCoolingDown() error {
	if ctx.ship.CooldownRemaining(ctx.clock) <= 0 {
		return fmt.Errorf("expected an active jump drive cooldown")
	}
	return nil
}

func (ctx *jumpTraversalContext) theJumpShouldReport(status string) error {
	if ctx.jumpErr != nil {
		return fmt.Errorf("jump failed: %w", ctx.jumpErr)
	}
	if ctx.response == nil || ctx.response.Status != status {
		return fmt.Errorf("expected status %q, got %+v", status, ctx.response)
	}
	return nil
}

// InitializeJumpTraversalScenario registers jump traversal step definitions
func InitializeJumpTraversalScenario(sc *godog.ScenarioContext) {
	ctx := &jumpTraversalContext{}

	sc.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		ctx.reset()
		return c, nil
	})

	sc.Step(`^a jump gate "([^"]*)" linked to "([^"]*)"$`, ctx.aJumpGateLinkedTo)
	sc.Step(`^the ship is in orbit at "([^"]*)"$`, ctx.theShipIsInOrbitAt)
	sc.Step(`^the ship attempts to jump to "([^"]*)"$`, ctx.theShipAttemptsToJumpTo)
	sc.Step(`^the jump should be rejected with no jump connection$`, ctx.theJumpShouldBeRejectedWithNoJumpConnection)
	sc.Step(`^no remote jump call should have been made$`, ctx.noRemoteJumpCallShouldHaveBeenMade)
	sc.Step(`^the ship should be at "([^"]*)"$`, ctx.theShipShouldBeAt)
	sc.Step(`^the jump drive should be cooling down$`, ctx.theJumpDriveShouldBeCoolingDown)
	sc.Step(`^the jump should report "([^"]*)"$`, ctx.theJumpShouldReport)
}
