package social

import (
	"fmt"
	"sort"
)

// Registry is the fixed set of configured providers. It is populated once at
// startup and read-only afterwards, so lookups need no locking.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{
		providers: make(map[string]Provider, len(providers)),
	}

	for _, p := range providers {
		if p != nil {
			r.providers[p.Name()] = p
		}
	}

	return r
}

// Get resolves a provider by tag.
func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	return p, nil
}

// Names lists registered provider tags in stable order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
