// Package router decides which settlement venue serves a swap request and
// normalizes venue quotes into one shape.
package router

import (
	"context"
	"fmt"
	"math/big"
	"sort"

	"go.uber.org/zap"

	"fusion-swap/pkg/client"
	"fusion-swap/pkg/types"
)

// ChainRegistry is the explicit set of supported chains, validated at
// construction. No clients are discovered lazily per call.
type ChainRegistry struct {
	chains map[int64]string
}

// NewChainRegistry builds a registry from chain id to chain name. At
// least one chain is required.
func NewChainRegistry(chains map[int64]string) (*ChainRegistry, error) {
	if len(chains) == 0 {
		return nil, fmt.Errorf("chain registry is empty: configure at least one chain")
	}
	for id, name := range chains {
		if id <= 0 {
			return nil, fmt.Errorf("invalid chain id %d", id)
		}
		if name == "" {
			return nil, fmt.Errorf("chain %d has no name", id)
		}
	}
	copied := make(map[int64]string, len(chains))
	for id, name := range chains {
		copied[id] = name
	}
	return &ChainRegistry{chains: copied}, nil
}

// Supports reports whether the chain id has a configured venue.
func (r *ChainRegistry) Supports(chainID int64) bool {
	_, ok := r.chains[chainID]
	return ok
}

// Name returns the configured name for a chain id.
func (r *ChainRegistry) Name(chainID int64) string {
	return r.chains[chainID]
}

// ChainIDs returns the supported chain ids in ascending order.
func (r *ChainRegistry) ChainIDs() []int64 {
	ids := make([]int64, 0, len(r.chains))
	for id := range r.chains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// Router dispatches swap requests to the same-chain or cross-chain venue
// based solely on the request's chain ids.
type Router struct {
	registry   *ChainRegistry
	sameChain  client.SameChainVenue
	crossChain client.CrossChainVenue
	log        *zap.Logger
}

// New constructs a Router. Both venue clients and the registry are
// required; a missing collaborator fails fast at startup.
func New(registry *ChainRegistry, sameChain client.SameChainVenue, crossChain client.CrossChainVenue, log *zap.Logger) (*Router, error) {
	if registry == nil {
		return nil, fmt.Errorf("chain registry is required")
	}
	if sameChain == nil {
		return nil, fmt.Errorf("same-chain venue client is required")
	}
	if crossChain == nil {
		return nil, fmt.Errorf("cross-chain venue client is required")
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Router{
		registry:   registry,
		sameChain:  sameChain,
		crossChain: crossChain,
		log:        log.Named("router"),
	}, nil
}

// Registry exposes the validated chain registry.
func (r *Router) Registry() *ChainRegistry {
	return r.registry
}

// GetQuote validates the request, picks the venue by route, and returns a
// normalized quote. A fee-on-transfer rejection from the same-chain
// aggregation endpoint is retried once, silently, via the raw swap
// endpoint; nothing else is retried.
func (r *Router) GetQuote(ctx context.Context, req *types.SwapRequest) (*types.Quote, error) {
	if err := r.ValidateRequest(req); err != nil {
		return nil, err
	}

	if types.RouteFor(req) == types.RouteCrossChain {
		return r.crossChain.Quote(ctx, req)
	}

	quote, err := r.sameChain.Quote(ctx, req)
	if err == nil {
		return quote, nil
	}
	if !types.IsFeeOnTransferError(err) {
		return nil, err
	}

	r.log.Info("aggregator rejected fee-on-transfer token, falling back to raw swap",
		zap.Int64("chainId", req.SourceChainID),
		zap.String("srcToken", req.SourceToken))
	return r.sameChain.RawQuote(ctx, req)
}

// ValidateRequest checks the request against input constraints and the
// chain registry.
func (r *Router) ValidateRequest(req *types.SwapRequest) error {
	if req == nil {
		return fmt.Errorf("nil swap request")
	}
	if req.SourceToken == "" || req.DestToken == "" {
		return fmt.Errorf("source and destination tokens are required")
	}
	if !r.registry.Supports(req.SourceChainID) {
		return fmt.Errorf("%w: source chain %d is not configured", types.ErrRouteUnavailable, req.SourceChainID)
	}
	if !r.registry.Supports(req.DestChainID) {
		return fmt.Errorf("%w: destination chain %d is not configured", types.ErrRouteUnavailable, req.DestChainID)
	}
	if err := validateAmount(req.SourceAmount); err != nil {
		return err
	}
	return nil
}

// validateAmount enforces a positive integer string in the token's
// smallest unit.
func validateAmount(amount string) error {
	if amount == "" {
		return fmt.Errorf("source amount is required")
	}
	value, ok := new(big.Int).SetString(amount, 10)
	if !ok {
		return fmt.Errorf("source amount %q is not an integer in the token's smallest unit", amount)
	}
	if value.Sign() <= 0 {
		return fmt.Errorf("source amount must be positive, got %q", amount)
	}
	return nil
}
