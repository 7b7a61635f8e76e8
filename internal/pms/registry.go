package pms

import (
	"sort"
	"strings"
)

// Registry resolves a vendor name to its adapter. Registration is static at
// startup; adding a vendor means registering one more adapter, nothing here
// changes.
type Registry struct {
	adapters map[string]Adapter
}

func NewRegistry(adapters ...Adapter) *Registry {
	r := &Registry{adapters: make(map[string]Adapter, len(adapters))}
	for _, a := range adapters {
		r.Register(a)
	}
	return r
}

func (r *Registry) Register(a Adapter) {
	r.adapters[registryKey(a.Name())] = a
}

// Resolve returns the adapter registered for the vendor name. A vendor with
// no adapter yields ok=false, not an error; the caller decides whether that
// is a 404 or a configuration bug.
func (r *Registry) Resolve(vendor string) (Adapter, bool) {
	a, ok := r.adapters[registryKey(vendor)]
	return a, ok
}

// All returns every registered adapter in stable name order, e.g. for the
// daily pull.
func (r *Registry) All() []Adapter {
	out := make([]Adapter, 0, len(r.adapters))
	for _, a := range r.adapters {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// registryKey folds "mews", "MEWS" and "Mews" onto one lookup key.
func registryKey(vendor string) string {
	return strings.ToLower(strings.TrimSpace(vendor))
}
