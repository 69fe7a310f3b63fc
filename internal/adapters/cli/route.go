package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starnav-go/internal/application/common"
	appnav "github.com/andrescamacho/starnav-go/internal/application/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// NewRouteCommand creates the route command with subcommands
func NewRouteCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "route",
		Short: "Plan and execute ship routes",
		Long: `Plan fuel-aware routes across the waypoint graph and drive ships
along them.

Examples:
  starnav route plan --ship ENDURANCE-1 --destination X1-GZ7-B1
  starnav route plan --ship ENDURANCE-1 --destination X1-GZ7-B1 --modes CRUISE
  starnav route go --ship ENDURANCE-1 --destination X1-GZ7-B1
  starnav route progress --ship ENDURANCE-1
  starnav route legs <route-id>`,
	}

	cmd.AddCommand(newRoutePlanCommand())
	cmd.AddCommand(newRouteGoCommand())
	cmd.AddCommand(newRouteProgressCommand())
	cmd.AddCommand(newRouteLegsCommand())

	return cmd
}

// newRoutePlanCommand creates the route plan subcommand
func newRoutePlanCommand() *cobra.Command {
	var (
		shipSymbol  string
		destination string
		modeNames   []string
		onlyMarkets bool
	)

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a route without executing it",
		Long: `Plan a route from the ship's current position to a destination
waypoint and print its legs, refuel stops and totals.

Planning reads the ship's live state from the API but issues no
movement calls.

Examples:
  starnav route plan --ship ENDURANCE-1 --destination X1-GZ7-B1
  starnav route plan --ship ENDURANCE-1 --destination X1-GZ7-B1 --only-markets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}
			if destination == "" {
				return fmt.Errorf("--destination flag is required")
			}

			modes, err := parseModes(modeNames)
			if err != nil {
				return err
			}

			ctx := common.WithLogger(cmd.Context(), common.NewConsoleLogger(verbose))
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			response, err := rt.mediator.Send(ctx, &appnav.SearchRouteQuery{
				ShipSymbol:  shipSymbol,
				PlayerID:    current.ID,
				Destination: destination,
				Modes:       modes,
				OnlyMarkets: onlyMarkets,
			})
			if err != nil {
				return fmt.Errorf("route planning failed: %w", err)
			}

			result := response.(*appnav.SearchRouteResponse)
			printRoute(result.Route)
			if result.CreditsEstimated {
				fmt.Printf("Estimated fuel spend:  %d credits\n", result.EstimatedCredits)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination waypoint symbol (required)")
	cmd.Flags().StringSliceVar(&modeNames, "modes", nil, "Flight modes to consider (default BURN,CRUISE,DRIFT)")
	cmd.Flags().BoolVar(&onlyMarkets, "only-markets", false, "Restrict intermediate stops to marketplaces")

	return cmd
}

// newRouteGoCommand creates the route go subcommand
func newRouteGoCommand() *cobra.Command {
	var (
		shipSymbol  string
		destination string
		modeNames   []string
		onlyMarkets bool
	)

	cmd := &cobra.Command{
		Use:   "go",
		Short: "Plan a route and drive the ship along it",
		Long: `Plan a route and execute it leg by leg: refuel stops, mode
switches, orbit, movement calls and arrival waits. Blocks until the
route completes or fails.

Examples:
  starnav route go --ship ENDURANCE-1 --destination X1-GZ7-B1
  starnav route go --ship ENDURANCE-1 --destination X1-GZ7-B1 --modes CRUISE --only-markets`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if shipSymbol == "" {
				return fmt.Errorf("--ship flag is required")
			}
			if destination == "" {
				return fmt.Errorf("--destination flag is required")
			}

			modes, err := parseModes(modeNames)
			if err != nil {
				return err
			}

			ctx := common.WithLogger(cmd.Context(), common.NewConsoleLogger(verbose))
			rt, current, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			fmt.Printf("Navigating %s to %s...\n", shipSymbol, destination)

			response, err := rt.mediator.Send(ctx, &appnav.NavigateRouteCommand{
				ShipSymbol:  shipSymbol,
				PlayerID:    current.ID,
				Destination: destination,
				Modes:       modes,
				OnlyMarkets: onlyMarkets,
			})
			if err != nil {
				return fmt.Errorf("navigation failed: %w", err)
			}

			result := response.(*appnav.NavigateRouteResponse)
			fmt.Println("Route finished")
			fmt.Printf("  Route ID:       %s\n", result.RouteID)
			fmt.Printf("  Origin:         %s\n", result.Origin)
			fmt.Printf("  Destination:    %s\n", result.Destination)
			fmt.Printf("  Legs:           %d\n", result.Legs)
			fmt.Printf("  Fuel consumed:  %d\n", result.FuelConsumed)
			fmt.Printf("  Status:         %s\n", result.Status)
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")
	cmd.Flags().StringVar(&destination, "destination", "", "Destination waypoint symbol (required)")
	cmd.Flags().StringSliceVar(&modeNames, "modes", nil, "Flight modes to consider (default BURN,CRUISE,DRIFT)")
	cmd.Flags().BoolVar(&onlyMarkets, "only-markets", false, "Restrict intermediate stops to marketplaces")

	return cmd
}

// newRouteProgressCommand creates the route progress subcommand
func newRouteProgressCommand() *cobra.Command {
	var shipSymbol string

	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show a ship's in-progress route",
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

			response, err := rt.mediator.Send(ctx, &appnav.GetRouteProgressQuery{
				ShipSymbol: shipSymbol,
				PlayerID:   current.ID,
			})
			if err != nil {
				return fmt.Errorf("failed to get route progress: %w", err)
			}

			result := response.(*appnav.GetRouteProgressResponse)
			if result.Progress == nil {
				fmt.Printf("%s has no route in progress\n", shipSymbol)
				return nil
			}

			progress := result.Progress
			fmt.Printf("Route %s\n", progress.RouteID)
			fmt.Printf("  Origin:       %s\n", progress.Origin)
			fmt.Printf("  Destination:  %s\n", progress.Destination)
			fmt.Printf("  Fuel cost:    %d\n", progress.FuelCost)
			fmt.Printf("  Started:      %s\n", progress.StartedAt.Format(time.RFC3339))
			fmt.Printf("  ETA:          %s\n", progress.ETA.Format(time.RFC3339))
			return nil
		},
	}

	cmd.Flags().StringVar(&shipSymbol, "ship", "", "Ship symbol (required)")

	return cmd
}

// newRouteLegsCommand creates the route legs subcommand
func newRouteLegsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "legs <route-id>",
		Short: "Show the executed legs of a route",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, _, err := openRuntime(ctx)
			if err != nil {
				return err
			}
			defer rt.Close()

			records, err := rt.routeLogRepo.ListByRoute(ctx, args[0])
			if err != nil {
				return fmt.Errorf("failed to list route legs: %w", err)
			}
			if len(records) == 0 {
				fmt.Printf("No executed legs recorded for route %s\n", args[0])
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "#\tFROM\tTO\tKIND\tMODE\tDIST\tFUEL\tDEPARTED\tTRAVEL")
			for i, record := range records {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.1f\t%d\t%s\t%s\n",
					i+1,
					record.FromWaypoint,
					record.ToWaypoint,
					record.ConnectionKind,
					record.FlightMode,
					record.Distance,
					record.FuelConsumed,
					record.DepartedAt.Format(time.RFC3339),
					formatSeconds(record.TravelSeconds),
				)
			}
			return w.Flush()
		},
	}

	return cmd
}

// printRoute renders a planned route's legs and totals
func printRoute(route *navigation.Route) {
	if route.IsEmpty() {
		fmt.Println("Ship is already at the destination")
		return
	}

	fmt.Printf("Route %s: %s -> %s\n\n",
		route.RouteID(), route.Origin().Symbol, route.Destination().Symbol)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tFROM\tTO\tKIND\tMODE\tDIST\tFUEL\tTIME\tREFUEL")
	for i, conn := range route.Connections() {
		modeName := "-"
		if moded, ok := conn.(interface{ Mode() shared.FlightMode }); ok {
			modeName = moded.Mode().Name()
		}

		refuelNote := "-"
		if refuel := conn.Refuel(); refuel != nil && refuel.FuelRequired > 0 {
			refuelNote = fmt.Sprintf("%d needed", refuel.FuelRequired)
			if refuel.StartIsMarket {
				refuelNote += " (market)"
			}
		}

		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%.1f\t%d\t%s\t%s\n",
			i+1,
			conn.Start().Symbol,
			conn.End().Symbol,
			conn.Kind(),
			modeName,
			conn.Distance(),
			conn.FuelCost(),
			formatSeconds(conn.TravelTime()),
			refuelNote,
		)
	}
	_ = w.Flush()

	fmt.Printf("\nTotals: %.1f distance, %d fuel, %s travel time\n",
		route.TotalDistance(), route.TotalFuelCost(), formatSeconds(route.TotalTravelTime()))
	fmt.Printf("Estimated arrival: %s\n", route.EstimatedArrival().Format(time.RFC3339))
}
