package corpus

import "sync"

// MemStore is an in-memory [Store], used by tests where persistence to
// disk would only add noise.
type MemStore struct {
	mu      sync.Mutex
	entries map[int]*memEntry
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{entries: make(map[int]*memEntry)}
}

// Add registers entry idx with the given input and metadata, replacing
// any entry already registered under idx.
func (m *MemStore) Add(idx int, input Input, meta Metadata) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[idx] = &memEntry{input: input, meta: meta, hasMeta: true}
}

// AddWithoutMetadata registers entry idx with no novelty metadata
// attached, for exercising the "metadata not found" error path.
func (m *MemStore) AddWithoutMetadata(idx int, input Input) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[idx] = &memEntry{input: input}
}

// Entry implements [Store].
func (m *MemStore) Entry(idx int) (Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[idx]
	if !ok {
		return nil, ErrNotFound
	}

	return e, nil
}

type memEntry struct {
	mu      sync.Mutex
	input   Input
	meta    Metadata
	hasMeta bool
}

func (e *memEntry) LoadInput() (Input, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.input, nil
}

func (e *memEntry) StoreInput(in Input) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.input = in

	return nil
}

func (e *memEntry) Metadata() (Metadata, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.meta, e.hasMeta
}
