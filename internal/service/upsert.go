package service

import (
	"errors"
	"sync"

	"storefront/internal/repository"
)

// KeyedStore is the minimal persistence surface the upsert coordinator
// needs: lookup by natural key plus insert and update. Get must return
// repository.ErrNotFound on a miss.
type KeyedStore[K comparable, R any] interface {
	Get(key K) (*R, error)
	Insert(rec *R) error
	Update(rec *R) error
}

// Upserter implements the shared find-or-create pattern used by the user,
// store, and item resources. Writes to the same key are serialized within
// the process; concurrent creates from other processes still fall through
// to the store's unique constraints.
type Upserter[K comparable, R any] struct {
	store KeyedStore[K, R]
	keys  *keyMutex[K]
}

func NewUpserter[K comparable, R any](store KeyedStore[K, R]) *Upserter[K, R] {
	return &Upserter[K, R]{store: store, keys: newKeyMutex[K]()}
}

// Put looks the record up by key and applies the change in place, creating
// the record when the lookup misses. A miss on the update path is not an
// error; it redirects to the create path. The returned bool reports whether
// the create branch ran.
func (u *Upserter[K, R]) Put(key K, create func() *R, apply func(*R)) (*R, bool, error) {
	unlock := u.keys.lock(key)
	defer unlock()

	rec, err := u.store.Get(key)
	switch {
	case err == nil:
		apply(rec)
		if err := u.store.Update(rec); err != nil {
			return nil, false, err
		}
		return rec, false, nil
	case errors.Is(err, repository.ErrNotFound):
		rec = create()
		if err := u.store.Insert(rec); err != nil {
			return nil, false, err
		}
		return rec, true, nil
	default:
		return nil, false, err
	}
}

// keyMutex hands out one mutex per key. Entries are retained for the
// process lifetime, same as the blocklist.
type keyMutex[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*sync.Mutex
}

func newKeyMutex[K comparable]() *keyMutex[K] {
	return &keyMutex[K]{locks: make(map[K]*sync.Mutex)}
}

func (m *keyMutex[K]) lock(key K) func() {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()

	l.Lock()
	return l.Unlock
}
