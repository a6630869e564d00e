package catalog

import "sync"

// MemoryStore is the fallback candidate source when the indexed store is
// unavailable or empty. Scans are capped; it is not a full catalog.
type MemoryStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

func (m *MemoryStore) Add(products ...Product) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.products = append(m.products, products...)
}

// Snapshot returns a copy of at most limit products, first-inserted first.
func (m *MemoryStore) Snapshot(limit int) []Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := len(m.products)
	if limit > 0 && n > limit {
		n = limit
	}
	out := make([]Product, n)
	copy(out, m.products[:n])
	return out
}

func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.products)
}
