// Package executor builds and submits orders and tracks cross-chain
// settlement to a terminal state.
package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"fusion-swap/pkg/client"
	"fusion-swap/pkg/hashlock"
	"fusion-swap/pkg/router"
	"fusion-swap/pkg/types"
)

const (
	// DefaultWatchInterval is the settlement watcher's sleep between
	// iterations. Must stay longer than the venue clients' per-request
	// timeout so iterations cannot stack.
	DefaultWatchInterval = 15 * time.Second

	// DefaultMaxWatchIterations bounds each watcher's lifetime
	// (120 * 15s = 30 minutes of monitoring).
	DefaultMaxWatchIterations = 120
)

// Signer is the opaque signing capability. Key custody is external.
type Signer interface {
	Address() string
	SignPayload(payload []byte) (string, error)
}

// TxSender broadcasts same-chain swap call data and returns the
// settlement transaction hash.
type TxSender interface {
	SendCallData(ctx context.Context, chainID int64, call *client.SwapCallData) (string, error)
}

// Executor places orders on the venue chosen by the router and detaches
// a settlement watcher for cross-chain orders.
type Executor struct {
	router     *router.Router
	sameChain  client.SameChainVenue
	crossChain client.CrossChainVenue
	signer     Signer
	sender     TxSender
	watchers   *Registry
	log        *zap.Logger

	watchInterval      time.Duration
	maxWatchIterations int

	// onStatus, when set, receives the order hash and status each time a
	// watcher observes a change. Persistence is the caller's concern.
	onStatus func(orderHash string, status types.OrderStatus)
}

// Options configures an Executor.
type Options struct {
	Router     *router.Router
	SameChain  client.SameChainVenue
	CrossChain client.CrossChainVenue
	Signer     Signer
	Sender     TxSender
	Logger     *zap.Logger

	WatchInterval      time.Duration
	MaxWatchIterations int
	OnStatus           func(orderHash string, status types.OrderStatus)
}

// New constructs an Executor. Router, venues and signer are required;
// the tx sender is only needed for same-chain orders.
func New(opts Options) (*Executor, error) {
	if opts.Router == nil {
		return nil, fmt.Errorf("router is required")
	}
	if opts.SameChain == nil || opts.CrossChain == nil {
		return nil, fmt.Errorf("both venue clients are required")
	}
	if opts.Signer == nil {
		return nil, fmt.Errorf("signer is required")
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	interval := opts.WatchInterval
	if interval <= 0 {
		interval = DefaultWatchInterval
	}
	maxIterations := opts.MaxWatchIterations
	if maxIterations <= 0 {
		maxIterations = DefaultMaxWatchIterations
	}
	return &Executor{
		router:             opts.Router,
		sameChain:          opts.SameChain,
		crossChain:         opts.CrossChain,
		signer:             opts.Signer,
		sender:             opts.Sender,
		watchers:           NewRegistry(),
		log:                log.Named("executor"),
		watchInterval:      interval,
		maxWatchIterations: maxIterations,
		onStatus:           opts.OnStatus,
	}, nil
}

// Watchers exposes the settlement watcher registry, so callers can wait
// for or shut down in-flight watchers.
func (e *Executor) Watchers() *Registry {
	return e.watchers
}

// PlaceOrder builds and submits an order for the request's route and
// returns as soon as submission is acknowledged. Cross-chain settlement
// continues in a detached watcher.
func (e *Executor) PlaceOrder(ctx context.Context, req *types.SwapRequest) (*types.Order, error) {
	if err := e.router.ValidateRequest(req); err != nil {
		return nil, err
	}
	if req.WalletAddress == "" {
		req.WalletAddress = e.signer.Address()
	}

	if types.RouteFor(req) == types.RouteSameChain {
		return e.placeSameChain(ctx, req)
	}
	return e.placeCrossChain(ctx, req)
}

// placeSameChain asks the venue to build the swap transaction, then signs
// and broadcasts it. The venue prices at build time, so no separate
// quote call is reused. A fee-on-transfer rejection falls back to the
// raw swap endpoint exactly once, as in the quote path.
func (e *Executor) placeSameChain(ctx context.Context, req *types.SwapRequest) (*types.Order, error) {
	if e.sender == nil {
		return nil, fmt.Errorf("no transaction sender configured for same-chain orders")
	}

	call, err := e.sameChain.BuildSwap(ctx, req)
	if err != nil {
		if !types.IsFeeOnTransferError(err) {
			return nil, fmt.Errorf("build swap: %w", err)
		}
		e.log.Info("aggregator rejected fee-on-transfer token, building via raw swap",
			zap.Int64("chainId", req.SourceChainID),
			zap.String("srcToken", req.SourceToken))
		call, err = e.sameChain.BuildRawSwap(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("build raw swap: %w", err)
		}
	}

	txHash, err := e.sender.SendCallData(ctx, req.SourceChainID, call)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrSubmissionFailed, err)
	}

	order := &types.Order{
		ID:            uuid.NewString(),
		TxHash:        txHash,
		Route:         types.RouteSameChain,
		WalletAddress: req.WalletAddress,
		Status:        types.StatusPending,
		CreatedAt:     time.Now().UTC(),
	}
	e.log.Info("same-chain order submitted",
		zap.String("orderId", order.ID),
		zap.String("txHash", txHash))
	return order, nil
}

// placeCrossChain re-fetches a fresh quote (the preset's secretsCount may
// have changed since the caller's quote), builds the hash lock, signs and
// submits the order, and detaches a settlement watcher.
func (e *Executor) placeCrossChain(ctx context.Context, req *types.SwapRequest) (*types.Order, error) {
	quote, err := e.router.GetQuote(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("refresh quote: %w", err)
	}

	lock, err := hashlock.BuildHashLock(quote.SecretsCount)
	if err != nil {
		return nil, err
	}

	signature, err := e.signOrder(req, quote, lock)
	if err != nil {
		return nil, err
	}

	orderHash, err := e.crossChain.SubmitOrder(ctx, &client.OrderSubmission{
		Request:      req,
		Quote:        quote,
		HashLock:     lock.HashLockHex(),
		SecretHashes: lock.SecretHashesHex(),
		Signature:    signature,
	})
	if err != nil {
		return nil, fmt.Errorf("submit order: %w", err)
	}

	order := &types.Order{
		ID:            uuid.NewString(),
		OrderHash:     orderHash,
		Route:         types.RouteCrossChain,
		HashLock:      lock.HashLockHex(),
		SecretHashes:  lock.SecretHashesHex(),
		WalletAddress: req.WalletAddress,
		Status:        types.StatusSubmitted,
		CreatedAt:     time.Now().UTC(),
	}
	e.log.Info("cross-chain order submitted",
		zap.String("orderHash", orderHash),
		zap.Int("secretsCount", quote.SecretsCount))

	e.watchers.Start(&Watcher{
		venue:         e.crossChain,
		orderHash:     orderHash,
		secrets:       lock.Secrets,
		interval:      e.watchInterval,
		maxIterations: e.maxWatchIterations,
		onStatus:      e.onStatus,
		log:           e.log.Named("watcher").With(zap.String("orderHash", orderHash)),
	})
	return order, nil
}

// signOrder signs a canonical rendering of the order's commitment.
func (e *Executor) signOrder(req *types.SwapRequest, quote *types.Quote, lock *hashlock.Lock) (string, error) {
	payload := fmt.Sprintf("%d:%d:%s:%s:%s:%s",
		req.SourceChainID, req.DestChainID,
		req.SourceToken, req.DestToken,
		quote.SourceAmount, lock.HashLockHex())
	signature, err := e.signer.SignPayload([]byte(payload))
	if err != nil {
		return "", fmt.Errorf("sign order: %w", err)
	}
	return signature, nil
}
