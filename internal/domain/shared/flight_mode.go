package shared

import (
	"fmt"
	"math"
)

// FlightMode represents a selectable movement profile trading speed
// against fuel consumption.
type FlightMode int

const (
	FlightModeCruise FlightMode = iota
	FlightModeDrift
	FlightModeBurn
	FlightModeStealth
)

// DispatchOverheadSeconds is the fixed per-leg overhead the game adds to
// every travel time regardless of distance or mode.
const DispatchOverheadSeconds = 15

type flightModeConfig struct {
	Name string

	// SearchMultiplier weights geometric distance when the pathfinder
	// scores candidate edges. Must stay >= the A* heuristic factor so the
	// heuristic remains a lower bound.
	SearchMultiplier float64

	// FuelRate converts distance into tank fuel units.
	FuelRate float64

	// TimeMultiplier converts distance into seconds (divided by engine speed).
	TimeMultiplier float64
}

var flightModeConfigs = map[FlightMode]flightModeConfig{
	FlightModeBurn:    {"BURN", 0.5, 2.0, 15},
	FlightModeCruise:  {"CRUISE", 1.0, 1.0, 31},
	FlightModeStealth: {"STEALTH", 2.0, 1.0, 50},
	FlightModeDrift:   {"DRIFT", 10.0, 0.003, 155},
}

// Name returns the mode name as used by the remote API
func (f FlightMode) Name() string {
	if config, ok := flightModeConfigs[f]; ok {
		return config.Name
	}
	return "UNKNOWN"
}

func (f FlightMode) String() string {
	return f.Name()
}

// SearchMultiplier returns the cost weight applied per distance unit
// during path search.
func (f FlightMode) SearchMultiplier() float64 {
	return flightModeConfigs[f].SearchMultiplier
}

// Radius returns the usable search radius for a given fuel amount.
//
// Burn can only cover half the tank per hop, Cruise the full tank (with a
// zero-capacity tank meaning an unlimited-range craft), and Drift is always
// unbounded since it burns almost nothing. Stealth behaves like Cruise for
// range purposes.
func (f FlightMode) Radius(fuel int) float64 {
	switch f {
	case FlightModeBurn:
		return float64(fuel) / 2
	case FlightModeCruise, FlightModeStealth:
		if fuel == 0 {
			return math.Inf(1)
		}
		return float64(fuel)
	case FlightModeDrift:
		return math.Inf(1)
	default:
		return 0
	}
}

// FuelCost calculates tank fuel consumed for a leg of the given distance.
// Every non-zero move costs at least one unit.
func (f FlightMode) FuelCost(distance float64) int {
	if distance == 0 {
		return 0
	}
	cost := distance * flightModeConfigs[f].FuelRate
	if cost < 1 {
		return 1
	}
	return int(math.Ceil(cost))
}

// TravelTime calculates travel time in seconds for the given distance and
// engine speed, rounded to the nearest second plus the fixed dispatch
// overhead.
func (f FlightMode) TravelTime(distance float64, engineSpeed int) int {
	if distance == 0 {
		return 0
	}
	if engineSpeed < 1 {
		engineSpeed = 1
	}
	seconds := (distance * flightModeConfigs[f].TimeMultiplier) / float64(engineSpeed)
	return int(math.Round(seconds)) + DispatchOverheadSeconds
}

// IsValidFlightModeName checks if a mode name string is valid
func IsValidFlightModeName(modeName string) bool {
	for _, config := range flightModeConfigs {
		if config.Name == modeName {
			return true
		}
	}
	return false
}

// ParseFlightMode parses a flight mode name string into a FlightMode
func ParseFlightMode(modeName string) (FlightMode, error) {
	for mode, config := range flightModeConfigs {
		if config.Name == modeName {
			return mode, nil
		}
	}
	return FlightModeCruise, fmt.Errorf("invalid flight mode: %s", modeName)
}
