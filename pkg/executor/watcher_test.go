package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"fusion-swap/pkg/hashlock"
	"fusion-swap/pkg/types"
)

func newTestWatcher(t *testing.T, venue *fakeCrossChain, secretsCount, maxIterations int) *Watcher {
	t.Helper()
	lock, err := hashlock.BuildHashLock(secretsCount)
	require.NoError(t, err)
	return &Watcher{
		venue:         venue,
		orderHash:     "0xwatched",
		secrets:       lock.Secrets,
		interval:      time.Millisecond,
		maxIterations: maxIterations,
		log:           zap.NewNop(),
	}
}

func TestWatch_StopsOnTerminalStatus(t *testing.T) {
	venue := &fakeCrossChain{
		statusPlan: []types.OrderStatus{types.StatusPending, types.StatusPending, types.StatusExecuted},
		readyPlan:  [][]types.ReadyFill{nil, {{Idx: 0}}},
	}
	w := newTestWatcher(t, venue, 2, 50)

	status := w.Watch(context.Background())
	assert.Equal(t, types.StatusExecuted, status)

	statusCalls, disclosed := venue.snapshot()
	assert.Equal(t, 3, statusCalls, "watcher must stop within exactly 3 iterations")
	require.Len(t, disclosed, 1, "only the ready index may be disclosed")
	assert.Equal(t, w.secrets[0].Hex(), disclosed[0])
}

func TestWatch_NeverDisclosesUnreportedIndices(t *testing.T) {
	venue := &fakeCrossChain{
		statusPlan: []types.OrderStatus{types.StatusExecuted},
	}
	w := newTestWatcher(t, venue, 4, 50)

	w.Watch(context.Background())
	_, disclosed := venue.snapshot()
	assert.Empty(t, disclosed, "no fills were reported ready")
}

func TestWatch_TimeoutIsMonitoringOnly(t *testing.T) {
	venue := &fakeCrossChain{} // always Pending
	w := newTestWatcher(t, venue, 1, 3)

	status := w.Watch(context.Background())
	assert.Empty(t, status, "timeout must not produce a terminal status")

	statusCalls, _ := venue.snapshot()
	assert.Equal(t, 3, statusCalls, "iteration budget is a hard cap")
}

func TestWatch_DisclosureFailureDoesNotAbort(t *testing.T) {
	venue := &fakeCrossChain{
		statusPlan: []types.OrderStatus{types.StatusPending, types.StatusExecuted},
	}
	w := newTestWatcher(t, venue, 2, 50)
	venue.readyPlan = [][]types.ReadyFill{{{Idx: 0}, {Idx: 1}}}
	venue.discloseErr = map[string]error{
		w.secrets[0].Hex(): errors.New("escrow not funded yet"),
	}

	status := w.Watch(context.Background())
	assert.Equal(t, types.StatusExecuted, status)

	_, disclosed := venue.snapshot()
	require.Len(t, disclosed, 1, "the other index must still be disclosed")
	assert.Equal(t, w.secrets[1].Hex(), disclosed[0])
}

func TestWatch_DisclosesEachIndexOnce(t *testing.T) {
	venue := &fakeCrossChain{
		statusPlan: []types.OrderStatus{
			types.StatusPending, types.StatusPending, types.StatusExecuted,
		},
		readyPlan: [][]types.ReadyFill{{{Idx: 0}}, {{Idx: 0}, {Idx: 1}}},
	}
	w := newTestWatcher(t, venue, 2, 50)

	w.Watch(context.Background())
	_, disclosed := venue.snapshot()
	assert.Equal(t, []string{w.secrets[0].Hex(), w.secrets[1].Hex()}, disclosed)
}

func TestWatch_IgnoresOutOfRangeIndices(t *testing.T) {
	venue := &fakeCrossChain{
		statusPlan: []types.OrderStatus{types.StatusExecuted},
		readyPlan:  [][]types.ReadyFill{{{Idx: 5}, {Idx: -1}}},
	}
	w := newTestWatcher(t, venue, 1, 50)

	w.Watch(context.Background())
	_, disclosed := venue.snapshot()
	assert.Empty(t, disclosed)
}

func TestWatch_CancelStopsLoop(t *testing.T) {
	venue := &fakeCrossChain{} // never terminal
	w := newTestWatcher(t, venue, 1, 1_000_000)
	w.interval = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan types.OrderStatus, 1)
	go func() { done <- w.Watch(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case status := <-done:
		assert.Empty(t, status)
	case <-time.After(time.Second):
		t.Fatal("watcher did not stop after cancellation")
	}
}

func TestRegistry_SupervisesWatchers(t *testing.T) {
	venue := &fakeCrossChain{} // never terminal
	w := newTestWatcher(t, venue, 1, 1_000_000)
	w.interval = 5 * time.Millisecond

	registry := NewRegistry()
	registry.Start(w)
	assert.Equal(t, []string{"0xwatched"}, registry.Active())

	// Duplicate start for the same order hash is a no-op.
	registry.Start(w)
	assert.Len(t, registry.Active(), 1)

	registry.Cancel("0xwatched")
	registry.Wait()
	assert.Empty(t, registry.Active())
}

func TestRegistry_ShutdownCancelsAll(t *testing.T) {
	registry := NewRegistry()
	for _, hash := range []string{"0xa", "0xb", "0xc"} {
		venue := &fakeCrossChain{}
		w := newTestWatcher(t, venue, 1, 1_000_000)
		w.orderHash = hash
		w.interval = 5 * time.Millisecond
		registry.Start(w)
	}
	assert.Len(t, registry.Active(), 3)

	finished := make(chan struct{})
	go func() {
		registry.Shutdown()
		close(finished)
	}()

	select {
	case <-finished:
		assert.Empty(t, registry.Active())
	case <-time.After(2 * time.Second):
		t.Fatal("shutdown did not complete")
	}
}

func TestRegistry_RemovesWatcherOnTerminalStatus(t *testing.T) {
	venue := &fakeCrossChain{statusPlan: []types.OrderStatus{types.StatusRefunded}}
	w := newTestWatcher(t, venue, 1, 50)

	registry := NewRegistry()
	registry.Start(w)
	registry.Wait()
	assert.Empty(t, registry.Active())
}
