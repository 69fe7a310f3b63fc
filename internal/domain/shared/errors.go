package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Planning errors

// WaypointNotFoundError indicates a search referenced a waypoint absent
// from the supplied graph snapshot.
type WaypointNotFoundError struct {
	*DomainError
	Symbol string
}

func NewWaypointNotFoundError(symbol string) *WaypointNotFoundError {
	return &WaypointNotFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("waypoint %s not found in graph", symbol)},
		Symbol:      symbol,
	}
}

// NoRouteFoundError indicates the search frontier emptied before reaching
// the destination.
type NoRouteFoundError struct {
	*DomainError
	Start string
	End   string
}

func NewNoRouteFoundError(start, end string) *NoRouteFoundError {
	return &NoRouteFoundError{
		DomainError: &DomainError{Message: fmt.Sprintf("no route found from %s to %s", start, end)},
		Start:       start,
		End:         end,
	}
}

// NoJumpConnectionError indicates a jump leg was requested between two
// waypoints with no entry in the supplied jump-gate adjacency.
type NoJumpConnectionError struct {
	*DomainError
	From string
	To   string
}

func NewNoJumpConnectionError(from, to string) *NoJumpConnectionError {
	return &NoJumpConnectionError{
		DomainError: &DomainError{Message: fmt.Sprintf("no jump connection from %s to %s", from, to)},
		From:        from,
		To:          to,
	}
}

// UnsupportedConnectionError indicates a connection type cannot be used in
// the requested context (e.g. monetary estimation of a jump leg, which
// depends on an external antimatter price feed).
type UnsupportedConnectionError struct {
	*DomainError
}

func NewUnsupportedConnectionError(message string) *UnsupportedConnectionError {
	return &UnsupportedConnectionError{DomainError: &DomainError{Message: message}}
}

// Execution errors

// PositionMismatchError signals desynchronization between the caller's
// assumed ship position and the route leg about to execute. Callers must
// resynchronize state before retrying; the executor never retries this.
type PositionMismatchError struct {
	*DomainError
	Expected string
	Actual   string
}

func NewPositionMismatchError(expected, actual string) *PositionMismatchError {
	return &PositionMismatchError{
		DomainError: &DomainError{Message: fmt.Sprintf("ship at %s but route leg starts at %s", actual, expected)},
		Expected:    expected,
		Actual:      actual,
	}
}

// RemoteAPIError wraps a domain or transport failure from the remote game API.
type RemoteAPIError struct {
	*DomainError
	Operation string
	Cause     error
}

func NewRemoteAPIError(operation string, cause error) *RemoteAPIError {
	return &RemoteAPIError{
		DomainError: &DomainError{Message: fmt.Sprintf("remote API %s failed: %v", operation, cause)},
		Operation:   operation,
		Cause:       cause,
	}
}

func (e *RemoteAPIError) Unwrap() error {
	return e.Cause
}

// RestockShortfallError reports cargo fuel below the forecast need at a
// non-marketplace leg. Non-fatal: execution proceeds on tank fuel and the
// shortfall is surfaced as a warning.
type RestockShortfallError struct {
	*DomainError
	Waypoint string
	Needed   int
	Held     int
}

func NewRestockShortfallError(waypoint string, needed, held int) *RestockShortfallError {
	return &RestockShortfallError{
		DomainError: &DomainError{Message: fmt.Sprintf(
			"cargo fuel shortfall at %s: need %d, holding %d", waypoint, needed, held)},
		Waypoint: waypoint,
		Needed:   needed,
		Held:     held,
	}
}

// Ship errors

type ShipError struct {
	*DomainError
}

func NewShipError(message string) *ShipError {
	return &ShipError{DomainError: &DomainError{Message: message}}
}

type InvalidNavStatusError struct {
	*ShipError
}

func NewInvalidNavStatusError(message string) *InvalidNavStatusError {
	return &InvalidNavStatusError{ShipError: NewShipError(message)}
}

type InsufficientFuelError struct {
	*ShipError
	Required  int
	Available int
}

func NewInsufficientFuelError(required, available int) *InsufficientFuelError {
	return &InsufficientFuelError{
		ShipError: NewShipError(fmt.Sprintf("insufficient fuel: need %d, have %d", required, available)),
		Required:  required,
		Available: available,
	}
}

type InvalidShipDataError struct {
	*ShipError
}

func NewInvalidShipDataError(message string) *InvalidShipDataError {
	return &InvalidShipDataError{ShipError: NewShipError(message)}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
