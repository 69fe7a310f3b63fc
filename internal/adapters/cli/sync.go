package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// NewSyncCommand creates the sync command
func NewSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync <system>",
		Short: "Sync a system's waypoints into the local database",
		Long: `Fetch a system's waypoints from the remote API and store them
locally: coordinates, traits, jump-gate adjacency and the current fuel
price at each marketplace.

Route planning runs entirely against this local copy, so a system must
be synced before ships can be routed through it.

Examples:
  starnav sync X1-GZ7 --agent ENDURANCE`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			systemSymbol := args[0]

			ctx := cmd.Context()
			rt, _, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Printf("Syncing system %s...\n", systemSymbol)

			waypoints, err := rt.loader.ListSystemWaypoints(ctx, systemSymbol)
			if err != nil {
				return fmt.Errorf("failed to list system waypoints: %w", err)
			}
			if err := rt.waypointRepo.SaveAll(ctx, waypoints); err != nil {
				return fmt.Errorf("failed to save waypoints: %w", err)
			}

			gates := 0
			markets := 0
			for _, waypoint := range waypoints {
				if waypoint.IsJumpGate {
					connections, err := rt.loader.GetJumpGateConnections(ctx, waypoint.Symbol)
					if err != nil {
						fmt.Printf("  warning: jump gate %s: %v\n", waypoint.Symbol, err)
						continue
					}
					if err := rt.jumpGateRepo.SaveConnections(ctx, waypoint.Symbol, connections); err != nil {
						return fmt.Errorf("failed to save jump connections: %w", err)
					}
					gates++
				}

				if waypoint.IsMarketplace {
					price, err := rt.loader.GetFuelPrice(ctx, waypoint.Symbol)
					if err != nil {
						fmt.Printf("  warning: market %s: %v\n", waypoint.Symbol, err)
						continue
					}
					if price > 0 {
						if err := rt.marketPriceRepo.SavePrice(ctx, waypoint.Symbol, shared.FuelGoodSymbol, price, 0); err != nil {
							return fmt.Errorf("failed to save fuel price: %w", err)
						}
						markets++
					}
				}
			}

			fmt.Printf("Synced %d waypoints, %d jump gates, %d fuel prices\n",
				len(waypoints), gates, markets)
			return nil
		},
	}

	return cmd
}
