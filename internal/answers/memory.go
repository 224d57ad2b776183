package answers

import (
	"context"
	"sync"

	"github.com/elektrokombinacija/nexus-checker/internal/core"
)

// MemoryStore keeps answers in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	books map[string]core.AnswerBook
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{books: make(map[string]core.AnswerBook)}
}

func (m *MemoryStore) Load(ctx context.Context, namespace string) (core.AnswerBook, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(core.AnswerBook, len(m.books[namespace]))
	for id, set := range m.books[namespace] {
		out[id] = set.Clone()
	}
	return out, nil
}

func (m *MemoryStore) Get(ctx context.Context, namespace, id string) (core.AnswerSet, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	set, ok := m.books[namespace][id]
	if !ok {
		return core.AnswerSet{}, ErrNotFound
	}
	return set.Clone(), nil
}

func (m *MemoryStore) Save(ctx context.Context, namespace, id string, set core.AnswerSet) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	book := m.books[namespace]
	if book == nil {
		book = make(core.AnswerBook)
		m.books[namespace] = book
	}
	book[id] = set.Clone()
	return nil
}

func (m *MemoryStore) Delete(ctx context.Context, namespace, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.books[namespace], id)
	return nil
}

func (m *MemoryStore) Close() error { return nil }
