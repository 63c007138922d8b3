package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value   []byte
	expires time.Time
}

// MemoryStore cache y lista de revocación en memoria del proceso. Las entradas vencidas se
// descartan al leerlas y en cada escritura.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string]entry{}, now: time.Now}
}

func (m *MemoryStore) get(key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok || !m.now().Before(e.expires) {
		return nil, false
	}
	return e.value, true
}

func (m *MemoryStore) set(key string, value []byte, expires time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	for k, e := range m.entries {
		if !now.Before(e.expires) {
			delete(m.entries, k)
		}
	}
	m.entries[key] = entry{value: value, expires: expires}
}

func (m *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := m.get(cachePrefix + key)
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	cp := append([]byte(nil), value...)
	m.set(cachePrefix+key, cp, m.now().Add(ttl))
	return nil
}

func (m *MemoryStore) Revoke(_ context.Context, jti string, until time.Time) error {
	if !m.now().Before(until) {
		return nil
	}
	m.set(revokedPrefix+jti, nil, until)
	return nil
}

func (m *MemoryStore) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := m.get(revokedPrefix + jti)
	return ok, nil
}
