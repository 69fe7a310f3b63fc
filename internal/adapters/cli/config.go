package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starnav-go/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage configuration settings",
		Long: `Manage starnav configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SN_* prefix)
2. Config file (config.yaml)
3. Default values

User preferences (default player) are stored in ~/.starnav/config.json

Examples:
  starnav config show
  starnav config set-player --agent ENDURANCE
  starnav config set-player --player-id 1
  starnav config clear-player`,
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetPlayerCommand())
	cmd.AddCommand(newConfigClearPlayerCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Printf("Warning: Failed to load config: %v\n", err)
				fmt.Println("Using default configuration.")
				cfg = config.LoadConfigOrDefault(configPath)
			}

			userConfigHandler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			userCfg, err := userConfigHandler.Load()
			if err != nil {
				fmt.Printf("Warning: Failed to load user config: %v\n\n", err)
				userCfg = &config.UserConfig{}
			}

			fmt.Println("Starnav Configuration")
			fmt.Println("=====================")

			fmt.Println("User Preferences:")
			fmt.Printf("  Config file:      %s\n", userConfigHandler.GetConfigPath())
			if userCfg.DefaultPlayerID != nil {
				fmt.Printf("  Default Player:   ID=%d\n", *userCfg.DefaultPlayerID)
			} else if userCfg.DefaultAgent != "" {
				fmt.Printf("  Default Player:   Agent=%s\n", userCfg.DefaultAgent)
			} else {
				fmt.Printf("  Default Player:   (not set)\n")
			}

			fmt.Println("\nDatabase:")
			fmt.Printf("  Type:             %s\n", cfg.Database.Type)
			if cfg.Database.URL != "" {
				fmt.Printf("  URL:              %s\n", maskPassword(cfg.Database.URL))
			} else if cfg.Database.Type == "sqlite" {
				fmt.Printf("  Path:             %s\n", cfg.Database.Path)
			} else {
				fmt.Printf("  Host:             %s\n", cfg.Database.Host)
				fmt.Printf("  Port:             %d\n", cfg.Database.Port)
				fmt.Printf("  Database:         %s\n", cfg.Database.Name)
				fmt.Printf("  User:             %s\n", cfg.Database.User)
			}
			fmt.Printf("  Max Connections:  %d\n", cfg.Database.Pool.MaxOpen)

			fmt.Println("\nGame API:")
			fmt.Printf("  Base URL:         %s\n", cfg.API.BaseURL)
			fmt.Printf("  Timeout:          %s\n", cfg.API.Timeout)
			fmt.Printf("  Rate Limit:       %d req/s (burst: %d)\n",
				cfg.API.RateLimit.Requests, cfg.API.RateLimit.Burst)
			fmt.Printf("  Max Retries:      %d\n", cfg.API.Retry.MaxAttempts)

			fmt.Println("\nRouting:")
			fmt.Printf("  Heuristic Factor: %.2f\n", cfg.Routing.HeuristicFactor)
			fmt.Printf("  Default Modes:    %s\n", strings.Join(cfg.Routing.DefaultModes, ", "))
			fmt.Printf("  Only Markets:     %t\n", cfg.Routing.OnlyMarkets)

			fmt.Println("\nDaemon:")
			fmt.Printf("  PID File:         %s\n", cfg.Daemon.PIDFile)
			fmt.Printf("  Shutdown Timeout: %s\n", cfg.Daemon.ShutdownTimeout)
			fmt.Printf("  Sync Interval:    %s\n", cfg.Daemon.SyncInterval)

			fmt.Println("\nMetrics:")
			fmt.Printf("  Enabled:          %t\n", cfg.Metrics.Enabled)
			if cfg.Metrics.Enabled {
				fmt.Printf("  Endpoint:         http://%s:%d%s\n",
					cfg.Metrics.Host, cfg.Metrics.Port, cfg.Metrics.Path)
			}

			fmt.Println("\nLogging:")
			fmt.Printf("  Level:            %s\n", cfg.Logging.Level)
			fmt.Printf("  Format:           %s\n", cfg.Logging.Format)
			fmt.Printf("  Output:           %s\n", cfg.Logging.Output)

			return nil
		},
	}

	return cmd
}

// newConfigSetPlayerCommand creates the config set-player subcommand
func newConfigSetPlayerCommand() *cobra.Command {
	var (
		setPlayerID int
		setAgent    string
	)

	cmd := &cobra.Command{
		Use:   "set-player",
		Short: "Set the default player for CLI commands",
		RunE: func(cmd *cobra.Command, args []string) error {
			if setPlayerID <= 0 && setAgent == "" {
				return fmt.Errorf("either --player-id or --agent is required")
			}

			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}

			if setPlayerID > 0 {
				if err := handler.SetDefaultPlayer(setPlayerID); err != nil {
					return fmt.Errorf("failed to save default player: %w", err)
				}
				fmt.Printf("Default player set to ID=%d\n", setPlayerID)
				return nil
			}

			if err := handler.SetDefaultAgent(setAgent); err != nil {
				return fmt.Errorf("failed to save default agent: %w", err)
			}
			fmt.Printf("Default player set to Agent=%s\n", setAgent)
			return nil
		},
	}

	cmd.Flags().IntVar(&setPlayerID, "player-id", 0, "Default player ID")
	cmd.Flags().StringVar(&setAgent, "agent", "", "Default agent symbol")

	return cmd
}

// newConfigClearPlayerCommand creates the config clear-player subcommand
func newConfigClearPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear-player",
		Short: "Clear the default player",
		RunE: func(cmd *cobra.Command, args []string) error {
			handler, err := config.NewUserConfigHandler()
			if err != nil {
				return fmt.Errorf("failed to create user config handler: %w", err)
			}
			if err := handler.ClearDefaultPlayer(); err != nil {
				return fmt.Errorf("failed to clear default player: %w", err)
			}
			fmt.Println("Default player cleared")
			return nil
		},
	}

	return cmd
}
