package jobs

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/gagliardetto/solana-go"
	"suburbia-skate.backend/internal/infrastructure/blockchain"
)

// BalanceWatcher polls a wallet's lamport balance on a fixed interval and
// reports changes. Used to observe an airdrop landing without holding an
// RPC subscription open.
type BalanceWatcher struct {
	chain    blockchain.Client
	interval time.Duration
	stop     chan struct{}
	stopOnce sync.Once
}

func NewBalanceWatcher(chain blockchain.Client, interval time.Duration) *BalanceWatcher {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &BalanceWatcher{
		chain:    chain,
		interval: interval,
		stop:     make(chan struct{}),
	}
}

// Watch emits the balance whenever it changes, starting with the current
// value. The channel closes when the context is cancelled or Stop is called.
func (w *BalanceWatcher) Watch(ctx context.Context, addr solana.PublicKey) <-chan uint64 {
	out := make(chan uint64, 1)

	go func() {
		defer close(out)

		last, known := w.poll(ctx, addr, 0, false)
		if known {
			out <- last
		}

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-w.stop:
				return
			case <-ticker.C:
				var changed bool
				if last, changed = w.poll(ctx, addr, last, known); changed {
					known = true
					out <- last
				}
			}
		}
	}()

	return out
}

// WaitForLamports blocks until the address holds at least min lamports or
// the context is cancelled.
func (w *BalanceWatcher) WaitForLamports(ctx context.Context, addr solana.PublicKey, min uint64) (uint64, error) {
	for balance := range w.Watch(ctx, addr) {
		if balance >= min {
			return balance, nil
		}
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return 0, errors.New("balance watch stopped")
}

// Stop terminates all active watches. Safe to call more than once.
func (w *BalanceWatcher) Stop() {
	w.stopOnce.Do(func() { close(w.stop) })
}

// poll returns the new balance and whether it differs from the last seen one
func (w *BalanceWatcher) poll(ctx context.Context, addr solana.PublicKey, last uint64, known bool) (uint64, bool) {
	balance, err := w.chain.Balance(ctx, addr)
	if err != nil {
		if ctx.Err() == nil {
			log.Printf("❌ Error polling balance for %s: %v", addr, err)
		}
		return last, false
	}
	if known && balance == last {
		return last, false
	}
	return balance, true
}
