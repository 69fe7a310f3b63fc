package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starnav-go/internal/application/ship/commands"
	"github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// stubShipControl fails the test if any remote call other than Jump is
// issued; Jump returns the scripted result.
type stubShipControl struct {
	t          *testing.T
	jumpCalls  int
	jumpResult *navigation.JumpResult
}

func (s *stubShipControl) Dock(ctx context.Context, shipSymbol string) error {
	s.t.Fatal("unexpected Dock call")
	return nil
}

func (s *stubShipControl) Orbit(ctx context.Context, shipSymbol string) error {
	s.t.Fatal("unexpected Orbit call")
	return nil
}

func (s *stubShipControl) SetFlightMode(ctx context.Context, shipSymbol string, mode shared.FlightMode) error {
	s.t.Fatal("unexpected SetFlightMode call")
	return nil
}

func (s *stubShipControl) Navigate(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	s.t.Fatal("unexpected Navigate call")
	return nil, nil
}

func (s *stubShipControl) Warp(ctx context.Context, shipSymbol, destination string) (*navigation.MovementResult, error) {
	s.t.Fatal("unexpected Warp call")
	return nil, nil
}

func (s *stubShipControl) Jump(ctx context.Context, shipSymbol, destination string) (*navigation.JumpResult, error) {
	s.jumpCalls++
	return s.jumpResult, nil
}

func (s *stubShipControl) Refuel(ctx context.Context, shipSymbol string, units int, fromCargo bool) (*navigation.RefuelResult, error) {
	s.t.Fatal("unexpected Refuel call")
	return nil, nil
}

func (s *stubShipControl) PurchaseCargo(ctx context.Context, shipSymbol, goodSymbol string, units int) (*navigation.PurchaseResult, error) {
	s.t.Fatal("unexpected PurchaseCargo call")
	return nil, nil
}

func (s *stubShipControl) GetShip(ctx context.Context, shipSymbol string) (*navigation.ShipSnapshot, error) {
	s.t.Fatal("unexpected GetShip call")
	return nil, nil
}

type stubJumpGateRepo struct {
	connections map[string][]string
}

func (s *stubJumpGateRepo) GetConnectionsFrom(ctx context.Context, waypointSymbol string) ([]string, error) {
	return s.connections[waypointSymbol], nil
}

func (s *stubJumpGateRepo) GetNetwork(ctx context.Context, systemSymbol string) (*navigation.JumpGateNetwork, error) {
	return navigation.NewJumpGateNetwork(), nil
}

type recordingTransactionRepo struct {
	saved []*navigation.MarketTransaction
}

func (r *recordingTransactionRepo) SaveTransaction(ctx context.Context, transaction *navigation.MarketTransaction) error {
	r.saved = append(r.saved, transaction)
	return nil
}

type recordingAgentRepo struct {
	credits int64
}

func (r *recordingAgentRepo) UpdateCredits(ctx context.Context, playerID shared.PlayerID, credits int64) error {
	r.credits = credits
	return nil
}

func jumpTestShip(t *testing.T, at *shared.Waypoint) *navigation.Ship {
	t.Helper()
	fuel, err := shared.NewFuel(100, 400)
	require.NoError(t, err)
	cargo, err := shared.NewCargo(40, 0, nil)
	require.NoError(t, err)

	entity, err := navigation.NewShip(
		"ENDURANCE-1", shared.MustNewPlayerID(1),
		at, fuel, cargo, 10,
		[]*navigation.ShipModule{navigation.NewShipModule("MODULE_JUMP_DRIVE_I", 0, 500)},
		navigation.NavStatusInOrbit, shared.FlightModeCruise,
	)
	require.NoError(t, err)
	return entity
}

func gateWaypoint(t *testing.T, symbol string) *shared.Waypoint {
	t.Helper()
	wp, err := shared.NewWaypoint(symbol, 0, 0)
	require.NoError(t, err)
	wp.IsJumpGate = true
	return wp
}

func TestJumpShipHandler_RejectsUnlinkedGatesLocally(t *testing.T) {
	// Arrange: no adjacency between the two gates
	origin := gateWaypoint(t, "X1-AAA-GATE")
	target := gateWaypoint(t, "X1-BBB-GATE")

	control := &stubShipControl{t: t}
	handler := commands.NewJumpShipHandler(
		nil, control,
		&stubJumpGateRepo{connections: map[string][]string{}},
		nil, nil,
		shared.NewMockClock(time.Time{}),
	)

	// Act
	_, err := handler.Handle(context.Background(), &types.JumpShipCommand{
		ShipSymbol:  "ENDURANCE-1",
		Destination: target,
		PlayerID:    shared.MustNewPlayerID(1),
		Ship:        jumpTestShip(t, origin),
	})

	// Assert: rejected without touching the remote API
	var noLink *shared.NoJumpConnectionError
	require.ErrorAs(t, err, &noLink)
	assert.Equal(t, 0, control.jumpCalls)
}

func TestJumpShipHandler_JumpsAndRecordsAntimatterPurchase(t *testing.T) {
	// Arrange
	origin := gateWaypoint(t, "X1-AAA-GATE")
	target := gateWaypoint(t, "X1-BBB-GATE")
	clock := shared.NewMockClock(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))

	control := &stubShipControl{
		t: t,
		jumpResult: &navigation.JumpResult{
			Destination:        target.Symbol,
			CooldownExpiration: clock.Now().Add(60 * time.Second),
			AgentCredits:       99_500,
			Transaction: &navigation.MarketTransaction{
				TransactionID:   "txn-1",
				WaypointSymbol:  origin.Symbol,
				GoodSymbol:      "ANTIMATTER",
				TransactionType: "PURCHASE",
				Units:           1,
				PricePerUnit:    500,
				TotalPrice:      500,
			},
		},
	}
	transactions := &recordingTransactionRepo{}
	agents := &recordingAgentRepo{}

	handler := commands.NewJumpShipHandler(
		nil, control,
		&stubJumpGateRepo{connections: map[string][]string{
			origin.Symbol: {target.Symbol},
		}},
		transactions, agents, clock,
	)
	entity := jumpTestShip(t, origin)

	// Act
	response, err := handler.Handle(context.Background(), &types.JumpShipCommand{
		ShipSymbol:  "ENDURANCE-1",
		Destination: target,
		PlayerID:    shared.MustNewPlayerID(1),
		Ship:        entity,
	})

	// Assert
	require.NoError(t, err)
	jumped, ok := response.(*types.JumpShipResponse)
	require.True(t, ok)
	assert.Equal(t, "jumped", jumped.Status)
	assert.Equal(t, 60, jumped.CooldownSeconds)

	assert.Equal(t, 1, control.jumpCalls)
	assert.True(t, entity.IsAtLocation(target.Symbol))
	require.NotNil(t, entity.CooldownExpiration())

	// The antimatter purchase is attributed to the ship and player
	require.Len(t, transactions.saved, 1)
	assert.Equal(t, "ENDURANCE-1", transactions.saved[0].ShipSymbol)
	assert.Equal(t, 1, transactions.saved[0].PlayerID)
	assert.Equal(t, int64(99_500), agents.credits)
}

func TestJumpShipHandler_AlreadyAtDestination(t *testing.T) {
	// Arrange
	origin := gateWaypoint(t, "X1-AAA-GATE")

	control := &stubShipControl{t: t}
	handler := commands.NewJumpShipHandler(
		nil, control,
		&stubJumpGateRepo{connections: map[string][]string{}},
		nil, nil, nil,
	)

	// Act
	response, err := handler.Handle(context.Background(), &types.JumpShipCommand{
		ShipSymbol:  "ENDURANCE-1",
		Destination: origin,
		PlayerID:    shared.MustNewPlayerID(1),
		Ship:        jumpTestShip(t, origin),
	})

	// Assert
	require.NoError(t, err)
	jumped, ok := response.(*types.JumpShipResponse)
	require.True(t, ok)
	assert.Equal(t, "already_at_destination", jumped.Status)
	assert.Equal(t, 0, control.jumpCalls)
}
