package executor

import (
	"context"
	"sync"
)

// Registry supervises detached settlement watchers, keyed by order hash.
// It gives fire-and-forget watchers an explicit cancel path so loops do
// not accumulate across the process lifetime.
type Registry struct {
	mu       sync.Mutex
	watchers map[string]context.CancelFunc
	wg       sync.WaitGroup
}

// NewRegistry creates an empty watcher registry.
func NewRegistry() *Registry {
	return &Registry{watchers: make(map[string]context.CancelFunc)}
}

// Start runs the watcher in a supervised goroutine. The watcher is
// deregistered when it stops, whether by terminal status, timeout, or
// cancellation. Starting a second watcher for the same order hash is a
// no-op.
func (r *Registry) Start(w *Watcher) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.watchers[w.orderHash]; exists {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.watchers[w.orderHash] = cancel
	r.wg.Add(1)

	go func() {
		defer r.wg.Done()
		defer r.remove(w.orderHash)
		w.Watch(ctx)
	}()
}

// Cancel stops the watcher for an order, if one is running.
func (r *Registry) Cancel(orderHash string) {
	r.mu.Lock()
	cancel, ok := r.watchers[orderHash]
	r.mu.Unlock()
	if ok {
		cancel()
	}
}

// Active returns the order hashes with a running watcher.
func (r *Registry) Active() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	hashes := make([]string, 0, len(r.watchers))
	for hash := range r.watchers {
		hashes = append(hashes, hash)
	}
	return hashes
}

// Wait blocks until every running watcher has stopped.
func (r *Registry) Wait() {
	r.wg.Wait()
}

// Shutdown cancels all watchers and waits for them to stop. Called on
// process shutdown.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	for _, cancel := range r.watchers {
		cancel()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Registry) remove(orderHash string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cancel, ok := r.watchers[orderHash]; ok {
		cancel()
		delete(r.watchers, orderHash)
	}
}
