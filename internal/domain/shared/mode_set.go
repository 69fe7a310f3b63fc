package shared

import "strings"

// ModeSet restricts which flight modes a path search may use.
// The order is significant only for cache key derivation.
type ModeSet []FlightMode

// DefaultModeSet covers the modes a standard freighter alternates between.
func DefaultModeSet() ModeSet {
	return ModeSet{FlightModeBurn, FlightModeCruise, FlightModeDrift}
}

// CruiseOnly is the mode set used by zero-capacity probes which cannot
// benefit from Burn and never need Drift.
func CruiseOnly() ModeSet {
	return ModeSet{FlightModeCruise}
}

// Contains reports whether the set includes the given mode.
func (m ModeSet) Contains(mode FlightMode) bool {
	for _, candidate := range m {
		if candidate == mode {
			return true
		}
	}
	return false
}

// Key returns a canonical string form usable as part of a cache key.
func (m ModeSet) Key() string {
	names := make([]string, len(m))
	for i, mode := range m {
		names[i] = mode.Name()
	}
	return strings.Join(names, "+")
}

func (m ModeSet) String() string {
	return m.Key()
}
