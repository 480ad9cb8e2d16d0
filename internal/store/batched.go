package store

import "sync"

// BatchedStore buffers function inserts in memory using fake (negative)
// IDs. It implements DataStore so extraction workers can write to it
// without knowing whether they're hitting SQLite or an in-memory buffer.
//
// Thread safety: the mutex protects fake ID allocation and slice appends.
type BatchedStore struct {
	mu sync.Mutex

	Functions []Function

	nextFakeID int64 // starts at -1, decrements
}

// Compile-time check: *BatchedStore satisfies DataStore.
var _ DataStore = (*BatchedStore)(nil)

// NewBatchedStore creates an empty BatchedStore.
func NewBatchedStore() *BatchedStore {
	return &BatchedStore{nextFakeID: -1}
}

func (b *BatchedStore) InsertFunction(fn *Function) (int64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fakeID := b.nextFakeID
	b.nextFakeID--
	fn.ID = fakeID
	b.Functions = append(b.Functions, *fn)
	return fakeID, nil
}
