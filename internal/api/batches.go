package api

import (
	"sync"

	"github.com/clearledger/blogen/internal/importer"
)

// batchRegistry holds the trackers for batches started by this
// process. Entries live for the lifetime of the server; editorial
// batch volume is tiny.
type batchRegistry struct {
	mu      sync.RWMutex
	batches map[string]*importer.Tracker
}

func newBatchRegistry() *batchRegistry {
	return &batchRegistry{batches: make(map[string]*importer.Tracker)}
}

func (r *batchRegistry) add(t *importer.Tracker) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.batches[t.ID()] = t
}

func (r *batchRegistry) get(id string) (*importer.Tracker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.batches[id]
	return t, ok
}
