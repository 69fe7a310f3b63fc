package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/starnav-go/internal/adapters/api"
	"github.com/andrescamacho/starnav-go/internal/adapters/metrics"
	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	"github.com/andrescamacho/starnav-go/internal/application/common"
	appnav "github.com/andrescamacho/starnav-go/internal/application/navigation"
	appship "github.com/andrescamacho/starnav-go/internal/application/ship"
	shipCommands "github.com/andrescamacho/starnav-go/internal/application/ship/commands"
	shipTypes "github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/routing"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/config"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/database"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/pidfile"
)

func main() {
	// Parse command-line flags
	forceFlag := flag.Bool("force", false, "Kill any existing daemon and start a new one")
	configFlag := flag.String("config", "", "Path to config file")
	flag.Parse()

	fmt.Println("Starnav Daemon v0.1.0")
	fmt.Println("=====================")

	// Load configuration
	fmt.Println("Loading configuration...")
	cfg := config.MustLoadConfig(*configFlag)

	// Acquire PID file lock to prevent multiple instances
	fmt.Printf("Acquiring PID file lock: %s\n", cfg.Daemon.PIDFile)
	pf := pidfile.New(cfg.Daemon.PIDFile)

	err := pf.Acquire()
	if err != nil {
		if *forceFlag {
			fmt.Println("Force mode enabled - attempting to kill existing daemon...")
			if killErr := pf.KillExisting(); killErr != nil {
				log.Fatalf("Failed to kill existing daemon: %v", killErr)
			}
			fmt.Println("Existing daemon killed")

			if err := pf.Acquire(); err != nil {
				log.Fatalf("Failed to acquire PID file lock after killing existing daemon: %v", err)
			}
		} else {
			log.Fatalf("Failed to acquire PID file lock: %v\nUse --force to kill the existing daemon", err)
		}
	}

	defer func() {
		if err := pf.Release(); err != nil {
			log.Printf("Warning: failed to release PID file: %v", err)
		}
	}()
	fmt.Println("PID file lock acquired")

	if err := run(cfg); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run(cfg *config.Config) error {
	// 1. Database connection and schema
	fmt.Printf("Connecting to %s database...\n", cfg.Database.Type)

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() { _ = database.Close(db) }()
	fmt.Println("Database connected")

	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	fmt.Println("Database schema up to date")

	// 2. Metrics registry and collectors
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()

		navigationCollector := metrics.NewNavigationMetricsCollector()
		if err := navigationCollector.Register(); err != nil {
			return fmt.Errorf("failed to register navigation metrics: %w", err)
		}
		metrics.SetGlobalNavigationCollector(navigationCollector)

		apiCollector := metrics.NewAPIMetricsCollector()
		if err := apiCollector.Register(); err != nil {
			return fmt.Errorf("failed to register API metrics: %w", err)
		}
		metrics.SetGlobalAPICollector(apiCollector)

		fmt.Println("Metrics collectors registered")
	}

	// 3. Remote API client and ship control
	apiClient := api.NewClientWithConfig(
		cfg.API.BaseURL,
		cfg.API.Token,
		cfg.API.Retry.MaxAttempts,
		cfg.API.Retry.BackoffBase,
		nil,
	)
	shipControl := api.NewShipControl(apiClient)
	systemLoader := api.NewSystemLoader(apiClient)
	fmt.Println("API client initialized")

	// 4. Repositories
	playerRepo := persistence.NewGormPlayerRepository(db, nil)
	waypointRepo := persistence.NewGormWaypointRepository(db, nil)
	jumpGateRepo := persistence.NewGormJumpGateRepository(db)
	marketPriceRepo := persistence.NewGormMarketPriceRepository(db, nil)
	routeLogRepo := persistence.NewGormRouteLogRepository(db)
	transactionRepo := persistence.NewGormTransactionRepository(db)
	shipRepo := persistence.NewGormShipRepository(db, shipControl, waypointRepo)
	fmt.Println("Repositories initialized")

	// 5. Mediator, event bus and route executor
	med := common.NewMediator()
	eventBus := appship.NewShipEventBus()
	executor := appship.NewRouteExecutor(med, shipRepo, shipControl, eventBus, nil)

	if err := registerHandlers(med, cfg, shipRepo, shipControl, waypointRepo,
		jumpGateRepo, marketPriceRepo, routeLogRepo, transactionRepo, playerRepo, executor); err != nil {
		return err
	}
	fmt.Println("Command handlers registered")

	// 6. Metrics HTTP server
	var metricsServer *http.Server
	if cfg.Metrics.Enabled {
		mux := http.NewServeMux()
		mux.Handle(cfg.Metrics.Path, promhttp.HandlerFor(
			metrics.GetRegistry(),
			promhttp.HandlerOpts{},
		))
		metricsServer = &http.Server{
			Addr:    fmt.Sprintf("%s:%d", cfg.Metrics.Host, cfg.Metrics.Port),
			Handler: mux,
		}
		go func() {
			fmt.Printf("Metrics endpoint: http://%s%s\n", metricsServer.Addr, cfg.Metrics.Path)
			if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Printf("Metrics server error: %v", err)
			}
		}()
	}

	// 7. Background refresh of synced systems
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ctx = common.WithLogger(ctx, common.NewConsoleLogger(false))

	refreshDone := make(chan struct{})
	go func() {
		defer close(refreshDone)
		runRefreshLoop(ctx, cfg.Daemon.SyncInterval, systemLoader, waypointRepo, jumpGateRepo, marketPriceRepo)
	}()

	fmt.Println("Daemon running. Press Ctrl+C to stop.")

	// 8. Wait for shutdown signal
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	received := <-signals
	fmt.Printf("\nReceived %s, shutting down...\n", received)

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Daemon.ShutdownTimeout)
	defer shutdownCancel()

	if metricsServer != nil {
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Metrics server shutdown error: %v", err)
		}
	}

	select {
	case <-refreshDone:
	case <-shutdownCtx.Done():
		log.Println("Refresh loop did not stop in time")
	}

	fmt.Println("Daemon stopped")
	return nil
}

// runRefreshLoop periodically re-syncs waypoint, jump-gate and fuel-price
// data for every system already present in the local database.
func runRefreshLoop(
	ctx context.Context,
	interval time.Duration,
	loader *api.SystemLoader,
	waypointRepo *persistence.GormWaypointRepository,
	jumpGateRepo *persistence.GormJumpGateRepository,
	marketPriceRepo *persistence.GormMarketPriceRepository,
) {
	if interval <= 0 {
		<-ctx.Done()
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			refreshSystems(ctx, loader, waypointRepo, jumpGateRepo, marketPriceRepo)
		}
	}
}

func refreshSystems(
	ctx context.Context,
	loader *api.SystemLoader,
	waypointRepo *persistence.GormWaypointRepository,
	jumpGateRepo *persistence.GormJumpGateRepository,
	marketPriceRepo *persistence.GormMarketPriceRepository,
) {
	logger := common.LoggerFromContext(ctx)

	systems, err := waypointRepo.ListKnownSystems(ctx)
	if err != nil {
		logger.Log("ERROR", "Failed to list systems for refresh", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	for _, systemSymbol := range systems {
		waypoints, err := loader.ListSystemWaypoints(ctx, systemSymbol)
		if err != nil {
			logger.Log("WARN", "System refresh failed", map[string]interface{}{
				"system": systemSymbol,
				"error":  err.Error(),
			})
			continue
		}
		if err := waypointRepo.SaveAll(ctx, waypoints); err != nil {
			logger.Log("WARN", "Failed to save refreshed waypoints", map[string]interface{}{
				"system": systemSymbol,
				"error":  err.Error(),
			})
			continue
		}

		for _, waypoint := range waypoints {
			if waypoint.IsJumpGate {
				connections, err := loader.GetJumpGateConnections(ctx, waypoint.Symbol)
				if err == nil {
					_ = jumpGateRepo.SaveConnections(ctx, waypoint.Symbol, connections)
				}
			}
			if waypoint.IsMarketplace {
				if price, err := loader.GetFuelPrice(ctx, waypoint.Symbol); err == nil && price > 0 {
					_ = marketPriceRepo.SavePrice(ctx, waypoint.Symbol, shared.FuelGoodSymbol, price, 0)
				}
			}
		}

		logger.Log("INFO", "System refreshed", map[string]interface{}{
			"system":    systemSymbol,
			"waypoints": len(waypoints),
		})
	}
}

// registerHandlers registers every command and query handler on the mediator
func registerHandlers(
	med common.Mediator,
	cfg *config.Config,
	shipRepo navigation.ShipRepository,
	shipControl navigation.ShipControl,
	waypointRepo navigation.WaypointRepository,
	jumpGateRepo navigation.JumpGateRepository,
	marketPriceRepo navigation.MarketPriceRepository,
	routeLogRepo navigation.RouteLogRepository,
	transactionRepo navigation.TransactionRepository,
	agentRepo navigation.AgentRepository,
	executor *appship.RouteExecutor,
) error {
	if err := common.RegisterHandler[*shipTypes.OrbitShipCommand](med,
		shipCommands.NewOrbitShipHandler(shipRepo, shipControl)); err != nil {
		return fmt.Errorf("failed to register OrbitShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.DockShipCommand](med,
		shipCommands.NewDockShipHandler(shipRepo, shipControl)); err != nil {
		return fmt.Errorf("failed to register DockShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.SetFlightModeCommand](med,
		shipCommands.NewSetFlightModeHandler(shipRepo, shipControl)); err != nil {
		return fmt.Errorf("failed to register SetFlightMode handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.RefuelShipCommand](med,
		shipCommands.NewRefuelShipHandler(shipRepo, shipControl, transactionRepo, agentRepo, nil)); err != nil {
		return fmt.Errorf("failed to register RefuelShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.PurchaseCargoCommand](med,
		shipCommands.NewPurchaseCargoHandler(shipRepo, shipControl, transactionRepo, agentRepo, nil)); err != nil {
		return fmt.Errorf("failed to register PurchaseCargo handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.NavigateDirectCommand](med,
		shipCommands.NewNavigateDirectHandler(shipRepo, shipControl, routeLogRepo)); err != nil {
		return fmt.Errorf("failed to register NavigateDirect handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.WarpShipCommand](med,
		shipCommands.NewWarpShipHandler(shipRepo, shipControl, routeLogRepo)); err != nil {
		return fmt.Errorf("failed to register WarpShip handler: %w", err)
	}
	if err := common.RegisterHandler[*shipTypes.JumpShipCommand](med,
		shipCommands.NewJumpShipHandler(shipRepo, shipControl, jumpGateRepo, transactionRepo, agentRepo, nil)); err != nil {
		return fmt.Errorf("failed to register JumpShip handler: %w", err)
	}

	pathfinder := routing.NewPathfinderWithHeuristic(routing.NewRouteCache(), cfg.Routing.HeuristicFactor)
	assembler := navigation.NewRouteAssembler(nil)

	if err := common.RegisterHandler[*appnav.SearchRouteQuery](med,
		appnav.NewSearchRouteHandler(shipRepo, waypointRepo, jumpGateRepo, marketPriceRepo, pathfinder, assembler)); err != nil {
		return fmt.Errorf("failed to register SearchRoute handler: %w", err)
	}
	if err := common.RegisterHandler[*appnav.NavigateRouteCommand](med,
		appnav.NewNavigateRouteHandler(med, shipRepo, executor)); err != nil {
		return fmt.Errorf("failed to register NavigateRoute handler: %w", err)
	}
	if err := common.RegisterHandler[*appnav.GetRouteProgressQuery](med,
		appnav.NewGetRouteProgressHandler(shipRepo)); err != nil {
		return fmt.Errorf("failed to register GetRouteProgress handler: %w", err)
	}

	return nil
}
