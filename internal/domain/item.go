package domain

import "sync"

// ItemRegistry tracks item IDs that have received at least one committed
// bid, in a thread-safe manner. Item content (title, image, tags) is owned
// by an external collaborator; this engine only needs the identifiers.
type ItemRegistry struct {
	mu    sync.RWMutex
	items map[string]bool
}

// NewItemRegistry creates an empty ItemRegistry.
func NewItemRegistry() *ItemRegistry {
	return &ItemRegistry{
		items: make(map[string]bool),
	}
}

// Register adds an item to the registry. Safe for concurrent use.
func (r *ItemRegistry) Register(itemID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[itemID] = true
}

// Exists returns true if the item has been registered. Safe for concurrent use.
func (r *ItemRegistry) Exists(itemID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.items[itemID]
}
