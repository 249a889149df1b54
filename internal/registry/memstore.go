package registry

// MemStore is an in-memory Store for sessions without persistence and
// for tests.
type MemStore struct {
	values map[string]string
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{values: make(map[string]string)}
}

// Get returns the value for key and whether it was present.
func (m *MemStore) Get(key string) (string, bool, error) {
	v, ok := m.values[key]
	return v, ok, nil
}

// Set writes the value for key.
func (m *MemStore) Set(key, value string) error {
	m.values[key] = value
	return nil
}
