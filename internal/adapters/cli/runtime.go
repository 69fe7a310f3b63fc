package cli

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/starnav-go/internal/adapters/api"
	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	"github.com/andrescamacho/starnav-go/internal/application/common"
	appnav "github.com/andrescamacho/starnav-go/internal/application/navigation"
	appship "github.com/andrescamacho/starnav-go/internal/application/ship"
	shipCommands "github.com/andrescamacho/starnav-go/internal/application/ship/commands"
	shipTypes "github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/player"
	"github.com/andrescamacho/starnav-go/internal/domain/routing"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/config"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/database"
)

// runtime wires the full application stack for one CLI invocation.
// Commands run in-process: load config, open the database, build the
// mediator, dispatch, exit.
type runtime struct {
	cfg             *config.Config
	db              *gorm.DB
	mediator        common.Mediator
	playerRepo      *persistence.GormPlayerRepository
	waypointRepo    *persistence.GormWaypointRepository
	jumpGateRepo    *persistence.GormJumpGateRepository
	marketPriceRepo *persistence.GormMarketPriceRepository
	routeLogRepo    *persistence.GormRouteLogRepository
	transactionRepo *persistence.GormTransactionRepository
	shipRepo        navigation.ShipRepository
	loader          *api.SystemLoader
}

// openRuntime builds the stack and resolves the acting player. The API
// client authenticates with the player's own token, falling back to the
// configured agent token.
func openRuntime(ctx context.Context) (*runtime, *player.Player, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	playerRepo := persistence.NewGormPlayerRepository(db, nil)
	current, err := resolvePlayer(ctx, playerRepo)
	if err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}

	token := current.Token
	if token == "" {
		token = cfg.API.Token
	}

	client := api.NewClientWithConfig(
		cfg.API.BaseURL,
		token,
		cfg.API.Retry.MaxAttempts,
		cfg.API.Retry.BackoffBase,
		nil,
	)
	shipControl := api.NewShipControl(client)

	waypointRepo := persistence.NewGormWaypointRepository(db, nil)
	jumpGateRepo := persistence.NewGormJumpGateRepository(db)
	marketPriceRepo := persistence.NewGormMarketPriceRepository(db, nil)
	routeLogRepo := persistence.NewGormRouteLogRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	shipRepo := persistence.NewGormShipRepository(db, shipControl, waypointRepo)

	med := common.NewMediator()
	executor := appship.NewRouteExecutor(med, shipRepo, shipControl, nil, nil)
	if err := registerHandlers(med, cfg, handlerDeps{
		shipRepo:        shipRepo,
		shipControl:     shipControl,
		waypointRepo:    waypointRepo,
		jumpGateRepo:    jumpGateRepo,
		marketPriceRepo: marketPriceRepo,
		routeLogRepo:    routeLogRepo,
		transactionRepo: transactionRepo,
		agentRepo:       playerRepo,
		executor:        executor,
	}); err != nil {
		_ = database.Close(db)
		return nil, nil, err
	}

	rt := &runtime{
		cfg:             cfg,
		db:              db,
		mediator:        med,
		playerRepo:      playerRepo,
		waypointRepo:    waypointRepo,
		jumpGateRepo:    jumpGateRepo,
		marketPriceRepo: marketPriceRepo,
		routeLogRepo:    routeLogRepo,
		transactionRepo: transactionRepo,
		shipRepo:        shipRepo,
		loader:          api.NewSystemLoader(client),
	}
	return rt, current, nil
}

// Close releases the database connection
func (r *runtime) Close() {
	_ = database.Close(r.db)
}

// handlerDeps groups the collaborators the mediator handlers share
type handlerDeps struct {
	shipRepo        navigation.ShipRepository
	shipControl     navigation.ShipControl
	waypointRepo    navigation.WaypointRepository
	jumpGateRepo    navigation.JumpGateRepository
	marketPriceRepo navigation.MarketPriceRepository
	routeLogRepo    navigation.RouteLogRepository
	transactionRepo navigation.TransactionRepository
	agentRepo       navigation.AgentRepository
	executor        *appship.RouteExecutor
}

// registerHandlers registers every command and query handler on the
// mediator. Shared by the CLI runtime and the daemon.
func registerHandlers(med common.Mediator, cfg *config.Config, deps handlerDeps) error {
	// Atomic ship commands (used directly and by the route executor)
	if err := common.RegisterHandler[*shipTypes.OrbitShipCommand](med,
		shipCommands.NewOrbitShipHandler(deps.shipRepo, deps.shipControl)); err != nil {
		return fmt.Errorf("failed to register OrbitShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.DockShipCommand](med,
		shipCommands.NewDockShipHandler(deps.shipRepo, deps.shipControl)); err != nil {
		return fmt.Errorf("failed to register DockShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.SetFlightModeCommand](med,
		shipCommands.NewSetFlightModeHandler(deps.shipRepo, deps.shipControl)); err != nil {
		return fmt.Errorf("failed to register SetFlightMode handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.RefuelShipCommand](med,
		shipCommands.NewRefuelShipHandler(deps.shipRepo, deps.shipControl, deps.transactionRepo, deps.agentRepo, nil)); err != nil {
		return fmt.Errorf("failed to register RefuelShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.PurchaseCargoCommand](med,
		shipCommands.NewPurchaseCargoHandler(deps.shipRepo, deps.shipControl, deps.transactionRepo, deps.agentRepo, nil)); err != nil {
		return fmt.Errorf("failed to register PurchaseCargo handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.NavigateDirectCommand](med,
		shipCommands.NewNavigateDirectHandler(deps.shipRepo, deps.shipControl, deps.routeLogRepo)); err != nil {
		return fmt.Errorf("failed to register NavigateDirect handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.WarpShipCommand](med,
		shipCommands.NewWarpShipHandler(deps.shipRepo, deps.shipControl, deps.routeLogRepo)); err != nil {
		return fmt.Errorf("failed to register WarpShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.JumpShipCommand](med,
		shipCommands.NewJumpShipHandler(deps.shipRepo, deps.shipControl, deps.jumpGateRepo, deps.transactionRepo, deps.agentRepo, nil)); err != nil {
		return fmt.Errorf("failed to register JumpShip handler: %w", err)
	}

	// Route planning and execution
	pathfinder := routing.NewPathfinderWithHeuristic(routing.NewRouteCache(), cfg.Routing.HeuristicFactor)
	assembler := navigation.NewRouteAssembler(nil)

	if err := common.RegisterHandler[*appnav.SearchRouteQuery](med,
		appnav.NewSearchRouteHandler(deps.shipRepo, deps.waypointRepo, deps.jumpGateRepo, deps.marketPriceRepo, pathfinder, assembler)); err != nil {
		return fmt.Errorf("failed to register SearchRoute handler: %w", err)
	}
	if err := common.RegisterHandler[*appnav.NavigateRouteCommand](med,
		appnav.NewNavigateRouteHandler(med, deps.shipRepo, deps.executor)); err != nil {
		return fmt.Errorf("failed to register NavigateRoute handler: %w", err)
	}
	if err := common.RegisterHandler[*appnav.GetRouteProgressQuery](med,
		appnav.NewGetRouteProgressHandler(deps.shipRepo)); err != nil {
		return fmt.Errorf("failed to register GetRouteProgress handler: %w", err)
	}

	return nil
}
