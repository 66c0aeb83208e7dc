package index

import "sync/atomic"

// Handle is an atomically swappable reference to a VectorStore.
//
// The store itself is immutable; when the catalog is rebuilt by the
// embedding job, the owner loads a complete new store and publishes it
// with Swap. Readers never observe a partially built store.
type Handle struct {
	store atomic.Pointer[VectorStore]
}

// NewHandle creates a handle publishing the given store. A nil store is
// allowed; Load then returns nil until a store is published.
func NewHandle(store *VectorStore) *Handle {
	h := &Handle{}
	if store != nil {
		h.store.Store(store)
	}
	return h
}

// Load returns the currently published store, or nil if none has been
// published yet.
func (h *Handle) Load() *VectorStore {
	return h.store.Load()
}

// Swap publishes a new store and returns the previous one.
func (h *Handle) Swap(store *VectorStore) *VectorStore {
	return h.store.Swap(store)
}
