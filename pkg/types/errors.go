package types

import (
	"errors"
	"fmt"
	"strings"
)

// Engine error taxonomy. Quote and order-building failures are terminal to
// the caller; watcher-side failures are non-fatal and logged.
var (
	ErrRouteUnavailable      = errors.New("no route between the requested chains or tokens")
	ErrTokenUnsupported      = errors.New("token not supported by the venue")
	ErrInsufficientLiquidity = errors.New("insufficient liquidity for the requested amount")
	ErrAmountTooSmall        = errors.New("amount is below the venue minimum")
	ErrVenueUnavailable      = errors.New("venue unavailable")
	ErrSubmissionFailed      = errors.New("order submission failed")
)

// VenueError preserves the venue's original message alongside the
// classified sentinel, so callers can both branch and display.
type VenueError struct {
	Kind    error
	Message string
}

func (e *VenueError) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Message)
}

func (e *VenueError) Is(target error) bool {
	return errors.Is(e.Kind, target)
}

func (e *VenueError) Unwrap() error {
	return e.Kind
}

// ClassifyVenueError maps a raw venue message to the engine taxonomy.
// Unrecognized messages come back wrapped as ErrVenueUnavailable with the
// original text intact.
func ClassifyVenueError(message string) error {
	m := strings.ToLower(message)
	switch {
	case strings.Contains(m, "insufficient liquidity"):
		return &VenueError{Kind: ErrInsufficientLiquidity, Message: message}
	case strings.Contains(m, "amount is too small"), strings.Contains(m, "min amount"):
		return &VenueError{Kind: ErrAmountTooSmall, Message: message}
	case strings.Contains(m, "token not supported"), strings.Contains(m, "cannot find token"):
		return &VenueError{Kind: ErrTokenUnsupported, Message: message}
	case strings.Contains(m, "no route"), strings.Contains(m, "route not found"), strings.Contains(m, "cannot swap"):
		return &VenueError{Kind: ErrRouteUnavailable, Message: message}
	default:
		return &VenueError{Kind: ErrVenueUnavailable, Message: message}
	}
}

// IsFeeOnTransferError reports whether a venue rejection is the
// fee-on-transfer token class, which triggers the raw-swap fallback.
func IsFeeOnTransferError(err error) bool {
	if err == nil {
		return false
	}
	m := strings.ToLower(err.Error())
	return strings.Contains(m, "fee on transfer") || strings.Contains(m, "fot token")
}
