package service

import "sync"

// Blocklist is the process-wide registry of revoked token ids. It is owned
// by main and handed to the access guard by reference; entries live until
// the process exits. Revoking the same jti twice is a no-op.
type Blocklist struct {
	mu      sync.RWMutex
	revoked map[string]struct{}
}

func NewBlocklist() *Blocklist {
	return &Blocklist{revoked: make(map[string]struct{})}
}

func (b *Blocklist) Revoke(jti string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = struct{}{}
}

func (b *Blocklist) IsRevoked(jti string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, ok := b.revoked[jti]
	return ok
}

func (b *Blocklist) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.revoked)
}
