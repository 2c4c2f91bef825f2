package app

import (
	"context"
	"log"
	"time"

	"github.com/five82/stockroom/internal/inventory"
	"github.com/five82/stockroom/internal/state"
)

const (
	defaultPollInterval = 2 * time.Second
	maxBackoff          = 30 * time.Second
)

// StockLister is the slice of inventory.API the poller needs.
type StockLister interface {
	ListStock(ctx context.Context, opts inventory.ListOptions) (*inventory.ItemList, error)
}

// StartPoller launches a background goroutine that refreshes the store,
// backing off while the inventory API is failing. It returns immediately.
func StartPoller(ctx context.Context, store *state.Store, client StockLister, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	go func() {
		for {
			refresh(ctx, store, client)
			wait := calculateBackoff(store.Snapshot().ConsecutiveFailures, interval)
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return
			case <-timer.C:
			}
		}
	}()
}

// calculateBackoff doubles the interval per consecutive failure, capped at
// maxBackoff.
func calculateBackoff(failures int, interval time.Duration) time.Duration {
	if failures <= 0 {
		return interval
	}
	wait := interval
	for i := 0; i < failures; i++ {
		wait *= 2
		if wait >= maxBackoff {
			return maxBackoff
		}
	}
	return wait
}

func refresh(ctx context.Context, store *state.Store, client StockLister) {
	list, err := client.ListStock(ctx, inventory.ListOptions{})
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		log.Printf("stock poll failed: %v", err)
	}
	store.Update(list, err)
}
