package recon

import (
	"fmt"
	"sync"
)

// Registry maps protocol identities to strategy factories, allowing
// negotiation-time dispatch by ProtocolID without hardcoding the variant set.
type Registry struct {
	mu        sync.Mutex
	factories map[ProtocolID]func() Strategy
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{factories: make(map[ProtocolID]func() Strategy)}
}

// Register adds a strategy factory for the given protocol identity.
// Registering the same identity twice is an error.
func (r *Registry) Register(id ProtocolID, factory func() Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[id]; ok {
		return fmt.Errorf("protocol %s already registered", id)
	}
	r.factories[id] = factory
	return nil
}

// New constructs a strategy for the given protocol identity.
func (r *Registry) New(id ProtocolID) (Strategy, error) {
	r.mu.Lock()
	factory, ok := r.factories[id]
	r.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("no strategy registered for protocol %s", id)
	}
	return factory(), nil
}

// IDs returns the registered protocol identities.
func (r *Registry) IDs() []ProtocolID {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]ProtocolID, 0, len(r.factories))
	for id := range r.factories {
		ids = append(ids, id)
	}
	return ids
}
