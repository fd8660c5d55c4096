package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores hosts by name, providing discovery and duplication
// safeguards. Commands use it to pick a toolkit from a flag.
type Registry struct {
	mu    sync.RWMutex
	hosts map[string]Host
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		hosts: make(map[string]Host),
	}
}

// Register adds a host by its Name(). Duplicate names return an error.
func (r *Registry) Register(host Host) error {
	if host == nil {
		return fmt.Errorf("render: host is required")
	}
	name := host.Name()
	if name == "" {
		return fmt.Errorf("render: host name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.hosts[name]; exists {
		return fmt.Errorf("render: host %q already registered", name)
	}

	r.hosts[name] = host
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(host Host) {
	if err := r.Register(host); err != nil {
		panic(err)
	}
}

// Get retrieves a host by name.
func (r *Registry) Get(name string) (Host, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	host, ok := r.hosts[name]
	if !ok {
		return nil, fmt.Errorf("render: host %q not found", name)
	}
	return host, nil
}

// List returns a sorted list of host names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.hosts))
	for name := range r.hosts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether a host is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.hosts[name]
	return ok
}
