// Package registry keeps the append-only, de-duplicated lists of saved
// client names and line item templates. State loads once at startup from
// a string key-value store and is written back on every successful
// addition; the registry never shrinks.
package registry

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/rezonia/invoice-studio/internal/model"
)

// Storage keys. Each holds a JSON-encoded array.
const (
	clientsKey = "savedClients"
	itemsKey   = "savedItems"
)

// Store is the string key-value persistence the registry is built on.
type Store interface {
	// Get returns the value for key and whether it was present.
	Get(key string) (string, bool, error)
	// Set writes the value for key.
	Set(key, value string) error
}

// Registry holds the loaded entries and writes through to the store.
// Callers may use it from concurrent goroutines.
type Registry struct {
	store  Store
	logger *zap.Logger

	mu      sync.Mutex
	clients []string
	items   []model.LineItem
}

// Load reads both lists from the store. Absent or malformed data yields
// an empty registry, never an error.
func Load(store Store, logger *zap.Logger) (*Registry, error) {
	r := &Registry{store: store, logger: logger}

	if raw, ok, err := store.Get(clientsKey); err != nil {
		return nil, fmt.Errorf("failed to load saved clients: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &r.clients); err != nil {
			logger.Warn("Discarding malformed saved clients", zap.Error(err))
			r.clients = nil
		}
	}

	if raw, ok, err := store.Get(itemsKey); err != nil {
		return nil, fmt.Errorf("failed to load saved items: %w", err)
	} else if ok {
		if err := json.Unmarshal([]byte(raw), &r.items); err != nil {
			logger.Warn("Discarding malformed saved items", zap.Error(err))
			r.items = nil
		}
	}

	logger.Info("Registry loaded",
		zap.Int("clients", len(r.clients)),
		zap.Int("item_templates", len(r.items)))
	return r, nil
}

// Clients returns the saved client names in insertion order.
func (r *Registry) Clients() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]string, len(r.clients))
	copy(out, r.clients)
	return out
}

// ItemTemplates returns the saved line item templates in insertion order.
func (r *Registry) ItemTemplates() []model.LineItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.LineItem, len(r.items))
	copy(out, r.items)
	return out
}

// TemplateByDescription finds a saved template by its description.
func (r *Registry) TemplateByDescription(description string) (model.LineItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.templateByDescription(description)
}

func (r *Registry) templateByDescription(description string) (model.LineItem, bool) {
	return lo.Find(r.items, func(it model.LineItem) bool {
		return it.Description == description
	})
}

// SaveClient appends a client name if it is non-empty and not already
// present, then persists the updated list.
func (r *Registry) SaveClient(name string) error {
	if name == "" {
		return model.ErrEmptyEntry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if lo.Contains(r.clients, name) {
		return model.ErrDuplicateEntry
	}

	updated := append(r.clients, name)
	if err := r.persist(clientsKey, updated); err != nil {
		return err
	}
	r.clients = updated
	return nil
}

// SaveItemTemplate appends an item template if its description is
// non-empty and no saved template shares it, then persists the list.
func (r *Registry) SaveItemTemplate(item model.LineItem) error {
	if item.Description == "" {
		return model.ErrEmptyEntry
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.templateByDescription(item.Description); exists {
		return model.ErrDuplicateEntry
	}

	updated := append(r.items, item)
	if err := r.persist(itemsKey, updated); err != nil {
		return err
	}
	r.items = updated
	return nil
}

func (r *Registry) persist(key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := r.store.Set(key, string(raw)); err != nil {
		return fmt.Errorf("failed to persist %s: %w", key, err)
	}
	return nil
}
