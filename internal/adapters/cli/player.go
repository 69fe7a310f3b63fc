package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starnav-go/internal/adapters/persistence"
	"github.com/andrescamacho/starnav-go/internal/domain/player"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/config"
	"github.com/andrescamacho/starnav-go/internal/infrastructure/database"
)

// NewPlayerCommand creates the player command with subcommands
func NewPlayerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "player",
		Short: "Manage registered players",
		Long: `Manage the players (agents) whose ships this engine drives.

Each player carries the API token that authenticates its remote calls.

Examples:
  starnav player add --id 1 --agent ENDURANCE --token <token>
  starnav player show --agent ENDURANCE`,
	}

	cmd.AddCommand(newPlayerAddCommand())
	cmd.AddCommand(newPlayerShowCommand())

	return cmd
}

// newPlayerAddCommand creates the player add subcommand
func newPlayerAddCommand() *cobra.Command {
	var (
		id    int
		agent string
		token string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Register a player",
		RunE: func(cmd *cobra.Command, args []string) error {
			if agent == "" {
				return fmt.Errorf("--agent flag is required")
			}
			if token == "" {
				return fmt.Errorf("--token flag is required")
			}

			playerIdent, err := shared.NewPlayerID(id)
			if err != nil {
				return fmt.Errorf("--id flag is required: %w", err)
			}

			// Player registration happens before any player exists, so
			// it cannot use the shared runtime's player resolution.
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			db, err := database.NewConnection(&cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() { _ = database.Close(db) }()

			if err := database.AutoMigrate(db); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}

			repo := persistence.NewGormPlayerRepository(db, nil)
			if err := repo.Add(cmd.Context(), player.NewPlayer(playerIdent, agent, token)); err != nil {
				return fmt.Errorf("failed to add player: %w", err)
			}

			fmt.Printf("Player %d (%s) registered\n", playerIdent.Value(), agent)
			return nil
		},
	}

	cmd.Flags().IntVar(&id, "id", 0, "Player ID (required)")
	cmd.Flags().StringVar(&agent, "agent", "", "Agent symbol (required)")
	cmd.Flags().StringVar(&token, "token", "", "API token (required)")

	return cmd
}

// newPlayerShowCommand creates the player show subcommand
func newPlayerShowCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the resolved player",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Printf("Player %d\n", current.ID.Value())
			fmt.Printf("  Agent:    %s\n", current.AgentSymbol)
			fmt.Printf("  Credits:  %d\n", current.Credits)
			fmt.Printf("  Token:    %s\n", maskToken(current.Token))
			return nil
		},
	}

	return cmd
}

// maskToken shows just enough of a token to identify it
func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "..." + token[len(token)-4:]
}
