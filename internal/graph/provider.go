package graph

import (
	"sync/atomic"
)

// Provider publishes the current graph snapshot to concurrent readers and
// supports live reload: a rebuilt Store is swapped in atomically while
// in-flight requests keep reading their stale-but-consistent snapshot.
type Provider struct {
	current atomic.Pointer[Store]
}

// NewProvider creates a provider publishing an initial store.
func NewProvider(store *Store) *Provider {
	p := &Provider{}
	p.current.Store(store)
	return p
}

// Current returns the currently published snapshot.
func (p *Provider) Current() *Store {
	return p.current.Load()
}

// Publish atomically replaces the served snapshot.
func (p *Provider) Publish(store *Store) {
	p.current.Store(store)
}
