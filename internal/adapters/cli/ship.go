package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	shipTypes "github.com/andrescamacho/starnav-go/internal/application/ship/types"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// NewShipCommand creates the ship command with subcommands
func NewShipCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ship",
		Short: "Inspect and control ships",
		Long: `Inspect a ship's live navigation state and issue atomic commands.

Examples:
  starnav ship status --ship ENDURANCE-1
  starnav ship dock --ship ENDURANCE-1
  starnav ship orbit --ship ENDURANCE-1
  starnav ship refuel --ship ENDURANCE-1
  starnav ship mode --ship ENDURANCE-1 --mode DRIFT
  starnav ship transactions --ship ENDURANCE-1`,
	}

	cmd.AddCommand(newShipStatusCommand())
	cmd.AddCommand(newShipDockCommand())
	cmd.AddCommand(newShipOrbitCommand())
	cmd.AddCommand(newShipRefuelCommand())
	cmd.AddCommand(newShipModeCommand())
	cmd.AddCommand(newShipTransactionsCommand())

	return cmd
}

// newShipStatusCommand creates the ship status subcommand
func newShipStatusCommand() *cobra.Command {
	var shipSymbol string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show a ship's live navigation state",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}

			ctx := cmd.Context()
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			ship, err := rt.shipRepo.FindBySymbol(ctx, shipSymbol, current.ID)
			if err != nil {
				return fmt.Errorf("failed to load ship: %w", err)
			}

			fmt.Printf("Ship %s (player %s)\n", ship.ShipSymbol(), current.AgentSymbol)
			fmt.Printf("  Location:     %s\n", ship.CurrentLocation().Symbol)
			fmt.Printf("  Status:       %s\n", ship.NavStatus())
			fmt.Printf("  Flight mode:  %s\n", ship.FlightMode().Name())
			fmt.Printf("  Fuel:         %d/%d\n", ship.Fuel().Current, ship.FuelCapacity())
			fmt.Printf("  Cargo:        %d/%d (fuel in hold: %d)\n",
				ship.Cargo().Units, ship.CargoCapacity(), ship.CargoFuelUnits())
			fmt.Printf("  Engine speed: %d\n", ship.EngineSpeed())
			fmt.Printf("  Jump drive:   %t\n", ship.HasJumpDrive())

			if arrival := ship.ArrivalTime(); arrival != nil {
				fmt.Printf("  Arrival:      %s\n", arrival.Time().Format(time.RFC3339))
			}
			if cooldown := ship.CooldownExpiration(); cooldown != nil {
				fmt.Printf("  Cooldown:     until %s\n", cooldown.Format(time.RFC3339))
			}
			if progress := ship.RouteProgress(); progress != nil {
				fmt.Printf("  Route:        %s -> %s (ETA %s)\n",
					progress.Origin, progress.Destination, progress.ETA.Format(time.RFC3339))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")

	return cmd
}

// newShipDockCommand creates the ship dock subcommand
func newShipDockCommand() *cobra.Command {
	var shipSymbol string

	cmd := &cobra.Command{
		Use:   "dock",
		Short: "Dock a ship at its current waypoint",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}

			ctx := common.WithLogger(cmd.Context(), common.NewConsoleLogger(verbose))
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(ctx, &shipTypes.DockShipCommand{
				ShipSymbol: shipSymbol,
				PlayerID:   current.ID,
			})
			if err != nil {
				return fmt.Errorf("dock failed: %w", err)
			}

			result := response.(*shipTypes.DockShipResponse)
			fmt.Printf("%s: %s\n", shipSymbol, result.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")

	return cmd
}

// newShipOrbitCommand creates the ship orbit subcommand
func newShipOrbitCommand() *cobra.Command {
	var shipSymbol string

	cmd := &cobra.Command{
		Use:   "orbit",
		Short: "Move a ship from docked to orbit",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}

			ctx := common.WithLogger(cmd.Context(), common.NewConsoleLogger(verbose))
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(ctx, &shipTypes.OrbitShipCommand{
				ShipSymbol: shipSymbol,
				PlayerID:   current.ID,
			})
			if err != nil {
				return fmt.Errorf("orbit failed: %w", err)
			}

			result := response.(*shipTypes.OrbitShipResponse)
			fmt.Printf("%s: %s\n", shipSymbol, result.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")

	return cmd
}

// newShipRefuelCommand creates the ship refuel subcommand
func newShipRefuelCommand() *cobra.Command {
	var (
		shipSymbol string
		units      int
		fromCargo  bool
	)

	cmd := &cobra.Command{
		Use:   "refuel",
		Short: "Refuel a ship's tank",
		Long: `Refuel a ship's tank at a marketplace, or transfer fuel held in
the cargo hold into the tank with --from-cargo.

Examples:
  starnav ship refuel --ship ENDURANCE-1
  starnav ship refuel --ship ENDURANCE-1 --units 200
  starnav ship refuel --ship ENDURANCE-1 --from-cargo --units 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}

			ctx := common.WithLogger(cmd.Context(), common.NewConsoleLogger(verbose))
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(ctx, &shipTypes.RefuelShipCommand{
				ShipSymbol: shipSymbol,
				PlayerID:   current.ID,
				Units:      units,
				FromCargo:  fromCargo,
			})
			if err != nil {
				return fmt.Errorf("refuel failed: %w", err)
			}

			result := response.(*shipTypes.RefuelShipResponse)
			fmt.Printf("%s: %s, fuel %d/%d (%d added, %d credits)\n",
				shipSymbol, result.Status, result.CurrentFuel, result.FuelCapacity,
				result.FuelAdded, result.CreditsCost)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")
	cmd.Flags().IntVar(&units, "units", 0, "Units to add (0 = fill the tank)")
	cmd.Flags().BoolVar(&fromCargo, "from-cargo", false, "Transfer fuel from the cargo hold instead of buying")

	return cmd
}

// newShipModeCommand creates the ship mode subcommand
func newShipModeCommand() *cobra.Command {
	var (
		shipSymbol string
		modeName   string
	)

	cmd := &cobra.Command{
		Use:   "mode",
		Short: "Set a ship's flight mode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}
			if modeName == "" {
				return fmt.Errorf("--mode flag is required")
			}

			mode, err := shared.ParseFlightMode(modeName)
			if err != nil {
				return fmt.Errorf("invalid flight mode %q: %w", modeName, err)
			}

			ctx := common.WithLogger(cmd.Context(), common.NewConsoleLogger(verbose))
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(ctx, &shipTypes.SetFlightModeCommand{
				ShipSymbol: shipSymbol,
				Mode:       mode,
				PlayerID:   current.ID,
			})
			if err != nil {
				return fmt.Errorf("set flight mode failed: %w", err)
			}

			result := response.(*shipTypes.SetFlightModeResponse)
			fmt.Printf("%s: %s (%s)\n", shipSymbol, result.Status, result.Mode.Name())
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")
	cmd.Flags().StringVar(&modeName, "mode", "", "Flight mode: BURN, CRUISE, STEALTH or DRIFT (required)")

	return cmd
}

// newShipTransactionsCommand creates the ship transactions subcommand
func newShipTransactionsCommand() *cobra.Command {
	var (
		shipSymbol string
		limit      int
	)

	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List a ship's recorded market transactions",
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}

			ctx := cmd.Context()
			rt, _, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			transactions, err := rt.transactionRepo.ListByShip(ctx, shipSymbol, limit)
			if err != nil {
				return fmt.Errorf("failed to list transactions: %w", err)
			}
			if len(transactions) == 0 {
				fmt.Printf("No transactions recorded for %s\n", shipSymbol)
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "WHEN\tWAYPOINT\tTYPE\tGOOD\tUNITS\tPRICE\tTOTAL")
			for _, transaction := range transactions {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%d\t%d\n",
					transaction.Timestamp.Format(time.RFC3339),
					transaction.WaypointSymbol,
					transaction.TransactionType,
					transaction.GoodSymbol,
					transaction.Units,
					transaction.PricePerUnit,
					transaction.TotalPrice,
				)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum transactions to show (0 = all)")

	return cmd
}
