package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/stockroom/internal/inventory"
)

// Snapshot represents the latest stock page available to the UI.
type Snapshot struct {
	Items               []inventory.Item
	Total               int // server-side count, may exceed len(Items)
	HasStock            bool
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
}

// IsOffline returns true when the API has been unreachable for multiple polls.
func (s Snapshot) IsOffline() bool {
	return s.ConsecutiveFailures >= 2
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored snapshot. When err is non-nil the previous data is
// kept but the error is recorded for visibility.
func (s *Store) Update(list *inventory.ItemList, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}

	if list != nil {
		s.snapshot.Items = cloneItems(list.Items)
		s.snapshot.Total = list.Count
		s.snapshot.HasStock = true
	} else {
		s.snapshot.Items = nil
		s.snapshot.Total = 0
		s.snapshot.HasStock = false
	}
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
}

// Snapshot returns a copy of the current snapshot.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	snap.Items = cloneItems(s.snapshot.Items)
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}

func cloneItems(items []inventory.Item) []inventory.Item {
	if len(items) == 0 {
		return nil
	}
	dup := make([]inventory.Item, len(items))
	copy(dup, items)
	return dup
}
