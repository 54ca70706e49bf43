package httpapi

import (
	"sync"
	"sync/atomic"
)

type SyncStatus struct {
	LastRunAt string `json:"last_run_at"`
	LastOkAt  string `json:"last_ok_at"`
	LastError string `json:"last_error"`
	LastAdded int    `json:"last_added"`
	Running   bool   `json:"running"`
}

// StatusVal is the shared sync status. Reads are lock-free snapshots;
// writers go through Update so the poller and /sync/run cannot overwrite
// each other's fields.
type StatusVal struct {
	mu sync.Mutex
	v  atomic.Value // stores SyncStatus
}

func (s *StatusVal) Load() SyncStatus {
	if st, ok := s.v.Load().(SyncStatus); ok {
		return st
	}
	return SyncStatus{}
}

// Update applies fn to the current status under the write lock and stores
// the result, returning the stored value.
func (s *StatusVal) Update(fn func(SyncStatus) SyncStatus) SyncStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := fn(s.Load())
	s.v.Store(st)
	return st
}
