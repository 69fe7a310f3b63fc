package shared

import (
	"fmt"
	"strings"
	"time"
)

// ArrivalTime wraps the ISO8601 arrival timestamp returned by the remote
// API for an in-transit ship. The executed record's own timestamps are
// authoritative, so this value object is the single place that parses them.
type ArrivalTime struct {
	at time.Time
}

// NewArrivalTime parses an ISO8601 timestamp (both "Z" and "+00:00"
// suffixes appear in API responses).
func NewArrivalTime(timestamp string) (*ArrivalTime, error) {
	if timestamp == "" {
		return nil, fmt.Errorf("arrival time timestamp cannot be empty")
	}

	normalized := strings.Replace(timestamp, "Z", "+00:00", 1)
	at, err := time.Parse(time.RFC3339, normalized)
	if err != nil {
		return nil, fmt.Errorf("invalid arrival time format: %w", err)
	}

	return &ArrivalTime{at: at.UTC()}, nil
}

// NewArrivalTimeFrom wraps an already-parsed time.
func NewArrivalTimeFrom(t time.Time) *ArrivalTime {
	return &ArrivalTime{at: t.UTC()}
}

// Time returns the arrival instant.
func (a *ArrivalTime) Time() time.Time {
	return a.at
}

// WaitDuration returns how long to wait from now until arrival, floored
// at zero for arrivals already in the past.
func (a *ArrivalTime) WaitDuration(clock Clock) time.Duration {
	remaining := a.at.Sub(clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// HasArrived checks if the arrival time is in the past
func (a *ArrivalTime) HasArrived(clock Clock) bool {
	return a.WaitDuration(clock) == 0
}

func (a *ArrivalTime) String() string {
	return fmt.Sprintf("ArrivalTime(%s)", a.at.Format(time.RFC3339))
}
