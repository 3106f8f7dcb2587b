package types

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyVenueError(t *testing.T) {
	cases := []struct {
		message string
		want    error
	}{
		{"Insufficient liquidity for this trade", ErrInsufficientLiquidity},
		{"amount is too small", ErrAmountTooSmall},
		{"min amount not met", ErrAmountTooSmall},
		{"token not supported", ErrTokenUnsupported},
		{"Cannot find token 0x123", ErrTokenUnsupported},
		{"No route found between chains", ErrRouteUnavailable},
		{"route not found", ErrRouteUnavailable},
		{"connection refused", ErrVenueUnavailable},
		{"status 502: bad gateway", ErrVenueUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.message, func(t *testing.T) {
			err := ClassifyVenueError(tc.message)
			assert.ErrorIs(t, err, tc.want)
			assert.Contains(t, err.Error(), tc.message, "original venue text must be preserved")
		})
	}
}

func TestVenueError_Unwrap(t *testing.T) {
	err := ClassifyVenueError("insufficient liquidity")
	wrapped := fmt.Errorf("refresh quote: %w", err)
	require.ErrorIs(t, wrapped, ErrInsufficientLiquidity)

	var venueErr *VenueError
	require.True(t, errors.As(wrapped, &venueErr))
	assert.Equal(t, "insufficient liquidity", venueErr.Message)
}

func TestIsFeeOnTransferError(t *testing.T) {
	assert.True(t, IsFeeOnTransferError(errors.New("Token is a fee on transfer token")))
	assert.True(t, IsFeeOnTransferError(ClassifyVenueError("FoT token is not supported")))
	assert.False(t, IsFeeOnTransferError(errors.New("insufficient liquidity")))
	assert.False(t, IsFeeOnTransferError(nil))
}

func TestOrderStatus_IsTerminal(t *testing.T) {
	assert.True(t, StatusExecuted.IsTerminal())
	assert.True(t, StatusExpired.IsTerminal())
	assert.True(t, StatusRefunded.IsTerminal())
	assert.False(t, StatusCreated.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusSubmitted.IsTerminal())
}

func TestRouteFor(t *testing.T) {
	assert.Equal(t, RouteSameChain, RouteFor(&SwapRequest{SourceChainID: 1, DestChainID: 1}))
	assert.Equal(t, RouteCrossChain, RouteFor(&SwapRequest{SourceChainID: 1, DestChainID: 8453}))
}
