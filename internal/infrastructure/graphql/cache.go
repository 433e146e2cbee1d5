package graphql

import (
	"context"
	"sync"
	"time"

	"github.com/mdaskas/customer-console/internal/domain/entity"
)

// ResponseCache almacena el objeto "data" de queries, etiquetado por tipo de entidad.
type ResponseCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, tags []entity.Type, data []byte) error
	Invalidate(ctx context.Context, tags ...entity.Type) error
}

type memoryEntry struct {
	data      []byte
	tags      []entity.Type
	expiresAt time.Time // cero = sin expiración
}

// MemoryCache caché en proceso (backend por defecto).
type MemoryCache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]memoryEntry
	byTag   map[entity.Type]map[string]struct{}
	now     func() time.Time
}

var _ ResponseCache = (*MemoryCache)(nil)

// NewMemoryCache construye la caché. ttl <= 0 deja las entradas hasta su invalidación.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		byTag:   make(map[entity.Type]map[string]struct{}),
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !m.expired(e) {
		return e.data, true, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	// Un Set concurrente pudo reemplazar la entrada entre ambos locks.
	if cur, ok := m.entries[key]; ok {
		if !m.expired(cur) {
			return cur.data, true, nil
		}
		m.removeLocked(key)
	}
	return nil, false, nil
}

func (m *MemoryCache) expired(e memoryEntry) bool {
	return !e.expiresAt.IsZero() && m.now().After(e.expiresAt)
}

func (m *MemoryCache) Set(_ context.Context, key string, tags []entity.Type, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{data: append([]byte(nil), data...), tags: tags}
	if m.ttl > 0 {
		e.expiresAt = m.now().Add(m.ttl)
	}
	m.entries[key] = e
	for _, t := range tags {
		keys, ok := m.byTag[t]
		if !ok {
			keys = make(map[string]struct{})
			m.byTag[t] = keys
		}
		keys[key] = struct{}{}
	}
	return nil
}

func (m *MemoryCache) Invalidate(_ context.Context, tags ...entity.Type) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range tags {
		for key := range m.byTag[t] {
			m.removeLocked(key)
		}
		delete(m.byTag, t)
	}
	return nil
}

// Len número de entradas vivas (incluye expiradas aún no purgadas).
func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.entries)
}

func (m *MemoryCache) removeLocked(key string) {
	e, ok := m.entries[key]
	if !ok {
		return
	}
	delete(m.entries, key)
	for _, t := range e.tags {
		if keys, ok := m.byTag[t]; ok {
			delete(keys, key)
		}
	}
}
