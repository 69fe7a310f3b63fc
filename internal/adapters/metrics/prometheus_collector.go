package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/starnav-go/internal/domain/navigation"
	"github.com/andrescamacho/starnav-go/internal/domain/shared"
)

const (
	// Namespace for all metrics
	namespace = "starnav"
	// Subsystem for daemon metrics
	subsystem = "daemon"
)

var (
	// Registry is the global Prometheus registry for all metrics
	Registry *prometheus.Registry

	// globalNavigationCollector is the singleton navigation metrics collector
	// Set by SetGlobalNavigationCollector() when metrics are enabled
	globalNavigationCollector NavigationMetricsRecorder

	// globalAPICollector is the singleton API metrics collector
	globalAPICollector APIMetricsRecorder
)

// NavigationMetricsRecorder defines the interface for recording navigation metrics
type NavigationMetricsRecorder interface {
	RecordRouteCompletion(playerID int, status navigation.RouteStatus, duration float64, distance int, fuelConsumed int)
	RecordLegCompletion(playerID int, distance int, fuelRequired int)
	RecordFuelPurchase(playerID int, waypoint string, units int)
	RecordFuelConsumption(playerID int, flightMode shared.FlightMode, units int)
}

// APIMetricsRecorder defines the interface for recording remote API metrics
type APIMetricsRecorder interface {
	RecordAPIRequest(method, endpoint string, statusCode int, duration float64)
	RecordAPIRetry(method, endpoint, reason string)
	RecordRateLimitWait(method, endpoint string, waitSeconds float64)
}

// InitRegistry initializes the Prometheus registry
// Should be called once at application startup if metrics are enabled
func InitRegistry() {
	Registry = prometheus.NewRegistry()
}

// GetRegistry returns the global Prometheus registry
// Returns nil if metrics are not initialized
func GetRegistry() *prometheus.Registry {
	return Registry
}

// IsEnabled returns true if metrics collection is enabled
func IsEnabled() bool {
	return Registry != nil
}

// SetGlobalNavigationCollector sets the global navigation metrics collector
func SetGlobalNavigationCollector(collector NavigationMetricsRecorder) {
	globalNavigationCollector = collector
}

// SetGlobalAPICollector sets the global API metrics collector
func SetGlobalAPICollector(collector APIMetricsRecorder) {
	globalAPICollector = collector
}

// RecordRouteCompletion records a route completion event globally
func RecordRouteCompletion(playerID int, status navigation.RouteStatus, duration float64, distance int, fuelConsumed int) {
	if globalNavigationCollector != nil {
		globalNavigationCollector.RecordRouteCompletion(playerID, status, duration, distance, fuelConsumed)
	}
}

// RecordLegCompletion records a route leg completion event globally
func RecordLegCompletion(playerID int, distance int, fuelRequired int) {
	if globalNavigationCollector != nil {
		globalNavigationCollector.RecordLegCompletion(playerID, distance, fuelRequired)
	}
}

// RecordFuelPurchase records a fuel purchase event globally
func RecordFuelPurchase(playerID int, waypoint string, units int) {
	if globalNavigationCollector != nil {
		globalNavigationCollector.RecordFuelPurchase(playerID, waypoint, units)
	}
}

// RecordFuelConsumption records a fuel consumption event globally
func RecordFuelConsumption(playerID int, flightMode shared.FlightMode, units int) {
	if globalNavigationCollector != nil {
		globalNavigationCollector.RecordFuelConsumption(playerID, flightMode, units)
	}
}

// RecordAPIRequest records a remote API request globally
func RecordAPIRequest(method, endpoint string, statusCode int, duration float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRequest(method, endpoint, statusCode, duration)
	}
}

// RecordAPIRetry records a remote API retry globally
func RecordAPIRetry(method, endpoint, reason string) {
	if globalAPICollector != nil {
		globalAPICollector.RecordAPIRetry(method, endpoint, reason)
	}
}

// RecordRateLimitWait records time spent waiting on the rate limiter globally
func RecordRateLimitWait(method, endpoint string, waitSeconds float64) {
	if globalAPICollector != nil {
		globalAPICollector.RecordRateLimitWait(method, endpoint, waitSeconds)
	}
}
