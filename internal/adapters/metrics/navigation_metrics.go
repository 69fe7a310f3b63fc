package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

// NavigationMetricsCollector handles all navigation and fuel-related metrics
type NavigationMetricsCollector struct {
	// Route metrics
	routesTotal           *prometheus.CounterVec
	routeDuration         *prometheus.HistogramVec
	routeDistanceTraveled *prometheus.CounterVec
	routeFuelConsumed     *prometheus.CounterVec
	routeLegsCompleted    *prometheus.CounterVec

	// Fuel metrics
	fuelPurchased  *prometheus.CounterVec
	fuelConsumed   *prometheus.CounterVec
	fuelEfficiency *prometheus.HistogramVec
}

// NewNavigationMetricsCollector creates a new navigation metrics collector
func NewNavigationMetricsCollector() *NavigationMetricsCollector {
	return &NavigationMetricsCollector{
		// Route completions/failures counter
		routesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "routes_total",
				Help:      "Total number of route lifecycle events by status",
			},
			[]string{"player_id", "status"},
		),

		// Route execution duration histogram
		routeDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_duration_seconds",
				Help:      "Route execution duration distribution",
				Buckets:   []float64{10, 30, 60, 120, 300, 600, 1200, 1800},
			},
			[]string{"player_id", "status"},
		),

		// Total distance traveled counter
		routeDistanceTraveled: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_distance_traveled_total",
				Help:      "Total distance traveled across all routes",
			},
			[]string{"player_id"},
		),

		// Total fuel consumed by routes counter
		routeFuelConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_fuel_consumed_total",
				Help:      "Total fuel consumed by route execution",
			},
			[]string{"player_id"},
		),

		// Route legs completed counter
		routeLegsCompleted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "route_legs_completed_total",
				Help:      "Total number of route legs completed",
			},
			[]string{"player_id"},
		),

		// Fuel purchases counter
		fuelPurchased: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fuel_purchased_units_total",
				Help:      "Total units of fuel purchased",
			},
			[]string{"player_id", "waypoint"},
		),

		// Fuel consumption by flight mode counter
		fuelConsumed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fuel_consumed_units_total",
				Help:      "Total units of fuel consumed by flight mode",
			},
			[]string{"player_id", "flight_mode"},
		),

		// Fuel efficiency histogram
		fuelEfficiency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "fuel_efficiency_ratio",
				Help:      "Fuel efficiency distribution (distance per fuel unit)",
				Buckets:   []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 20.0},
			},
			[]string{"player_id"},
		),
	}
}

// Register registers all navigation metrics with the Prometheus registry
func (c *NavigationMetricsCollector) Register() error {
	if Registry == nil {
		return nil // Metrics not enabled
	}

	metrics := []prometheus.Collector{
		c.routesTotal,
		c.routeDuration,
		c.routeDistanceTraveled,
		c.routeFuelConsumed,
		c.routeLegsCompleted,
		c.fuelPurchased,
		c.fuelConsumed,
		c.fuelEfficiency,
	}

	for _, metric := range metrics {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordRouteCompletion records a route completion event
func (c *NavigationMetricsCollector) RecordRouteCompletion(
	playerID int,
	status navigation.RouteStatus,
	duration float64,
	distance int,
	fuelConsumed int,
) {
	playerIDStr := strconv.Itoa(playerID)
	statusStr := string(status)

	c.routesTotal.WithLabelValues(playerIDStr, statusStr).Inc()

	// Record duration (only for completed/failed routes)
	if status == navigation.RouteStatusCompleted || status == navigation.RouteStatusFailed {
		c.routeDuration.WithLabelValues(playerIDStr, statusStr).Observe(duration)
	}

	// Record distance and fuel (only for completed routes)
	if status == navigation.RouteStatusCompleted {
		c.routeDistanceTraveled.WithLabelValues(playerIDStr).Add(float64(distance))
		c.routeFuelConsumed.WithLabelValues(playerIDStr).Add(float64(fuelConsumed))
	}
}

// RecordLegCompletion records a route leg completion
func (c *NavigationMetricsCollector) RecordLegCompletion(
	playerID int,
	distance int,
	fuelRequired int,
) {
	playerIDStr := strconv.Itoa(playerID)

	c.routeLegsCompleted.WithLabelValues(playerIDStr).Inc()

	if fuelRequired > 0 {
		efficiency := float64(distance) / float64(fuelRequired)
		c.fuelEfficiency.WithLabelValues(playerIDStr).Observe(efficiency)
	}
}

// RecordFuelPurchase records a fuel purchase event
func (c *NavigationMetricsCollector) RecordFuelPurchase(
	playerID int,
	waypoint string,
	units int,
) {
	c.fuelPurchased.WithLabelValues(strconv.Itoa(playerID), waypoint).Add(float64(units))
}

// RecordFuelConsumption records fuel consumption
func (c *NavigationMetricsCollector) RecordFuelConsumption(
	playerID int,
	flightMode shared.FlightMode,
	units int,
) {
	c.fuelConsumed.WithLabelValues(strconv.Itoa(playerID), flightMode.Name()).Add(float64(units))
}
