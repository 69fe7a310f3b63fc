package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath  string
	playerID    int
	agentSymbol string
	verbose     bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "starnav",
		Short: "Starnav CLI - Plan and drive ship routes",
		Long: `Starnav plans fuel-aware routes across the waypoint graph and drives
ships along them against the remote game API.

Examples:
  starnav sync X1-GZ7 --agent ENDURANCE
  starnav route plan --ship ENDURANCE-1 --destination X1-GZ7-B1
  starnav route go --ship ENDURANCE-1 --destination X1-GZ7-B1
  starnav route progress --ship ENDURANCE-1
  starnav ship status --ship ENDURANCE-1`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: search ., ./configs, /etc/starnav)")
	rootCmd.PersistentFlags().IntVar(&playerID, "player-id", 0,
		"Player ID (required if agent not specified)")
	rootCmd.PersistentFlags().StringVar(&agentSymbol, "agent", "",
		"Agent symbol (alternative to player-id)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")

	// Add command groups
	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewPlayerCommand())
	rootCmd.AddCommand(NewShipCommand())
	rootCmd.AddCommand(NewRouteCommand())
	rootCmd.AddCommand(NewSyncCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
