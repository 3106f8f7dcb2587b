package executor

import (
	"context"
	"time"

	"go.uber.org/zap"

	"fusion-swap/pkg/client"
	"fusion-swap/pkg/hashlock"
	"fusion-swap/pkg/types"
)

// Watcher tracks one cross-chain order to a terminal state. Each watcher
// owns exactly one order's secrets and shares no mutable state with
// other watchers, so no locking is needed inside the loop.
type Watcher struct {
	venue         client.CrossChainVenue
	orderHash     string
	secrets       []hashlock.Secret
	interval      time.Duration
	maxIterations int
	onStatus      func(orderHash string, status types.OrderStatus)
	log           *zap.Logger
}

// Watch polls the venue until the order reaches a terminal state, the
// iteration budget runs out, or ctx is cancelled. Returns the last
// observed status; empty if no terminal state was observed.
//
// Per iteration: disclose secrets for fills the venue reports ready,
// then check order status. Secrets are only ever released for reported
// indices; premature disclosure would let a counterparty claim funds
// without completing its side.
func (w *Watcher) Watch(ctx context.Context) types.OrderStatus {
	disclosed := make(map[int]bool, len(w.secrets))

	for i := 0; i < w.maxIterations; i++ {
		w.discloseReady(ctx, disclosed)

		status, err := w.venue.OrderStatus(ctx, w.orderHash)
		if err != nil {
			// Transient venue failure: keep polling.
			w.log.Warn("order status check failed", zap.Error(err))
		} else {
			if w.onStatus != nil {
				w.onStatus(w.orderHash, status)
			}
			if status.IsTerminal() {
				w.log.Info("order reached terminal state", zap.String("status", string(status)))
				return status
			}
		}

		select {
		case <-ctx.Done():
			w.log.Info("watcher cancelled")
			return ""
		case <-time.After(w.interval):
		}
	}

	// Monitoring budget exhausted. The order may still settle on-chain
	// without this process observing it, so this is not a failure.
	w.log.Warn("watcher timed out without observing a terminal state",
		zap.Int("iterations", w.maxIterations))
	return ""
}

// discloseReady releases secrets for every fill index the venue reports
// ready. A failed disclosure is logged and left for the next iteration;
// other indices still proceed.
func (w *Watcher) discloseReady(ctx context.Context, disclosed map[int]bool) {
	fills, err := w.venue.ReadyFills(ctx, w.orderHash)
	if err != nil {
		w.log.Warn("ready fills check failed", zap.Error(err))
		return
	}

	for _, fill := range fills {
		if disclosed[fill.Idx] {
			continue
		}
		if fill.Idx < 0 || fill.Idx >= len(w.secrets) {
			w.log.Warn("venue reported fill index outside secret range", zap.Int("idx", fill.Idx))
			continue
		}
		if err := w.venue.DiscloseSecret(ctx, w.orderHash, w.secrets[fill.Idx].Hex()); err != nil {
			w.log.Warn("secret disclosure failed", zap.Int("idx", fill.Idx), zap.Error(err))
			continue
		}
		disclosed[fill.Idx] = true
		w.log.Info("secret disclosed", zap.Int("idx", fill.Idx))
	}
}
