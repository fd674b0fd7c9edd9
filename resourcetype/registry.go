package resourcetype

import "fmt"

// Registry holds every ResourceType a server.Core will dispatch
// against, keyed by name, generalized from dwardin-scim/server.go's
// Server.ResourceTypes slice into a lookup table the way
// schema.Registry generalized dwardin-scim's scattered schema access.
type Registry struct {
	byName     map[string]ResourceType
	byEndpoint map[string]string
	order      []string
}

// NewRegistry returns an empty ResourceType registry.
func NewRegistry() *Registry {
	return &Registry{byName: map[string]ResourceType{}, byEndpoint: map[string]string{}}
}

// Register validates and adds a ResourceType. Fails on a duplicate
// name or endpoint, or a structurally invalid ResourceType.
func (r *Registry) Register(t ResourceType) error {
	if err := t.validate(); err != nil {
		return err
	}
	if _, exists := r.byName[t.Name]; exists {
		return fmt.Errorf("resourcetype: name %q is already registered", t.Name)
	}
	if owner, exists := r.byEndpoint[t.Endpoint]; exists {
		return fmt.Errorf("resourcetype: endpoint %q already registered to %q", t.Endpoint, owner)
	}
	r.byName[t.Name] = t
	r.byEndpoint[t.Endpoint] = t.Name
	r.order = append(r.order, t.Name)
	return nil
}

// Get looks up a ResourceType by name.
func (r *Registry) Get(name string) (ResourceType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// ByEndpoint looks up a ResourceType by its HTTP-addressable endpoint.
func (r *Registry) ByEndpoint(endpoint string) (ResourceType, bool) {
	name, ok := r.byEndpoint[endpoint]
	if !ok {
		return ResourceType{}, false
	}
	t, ok := r.byName[name]
	return t, ok
}

// All returns every registered ResourceType in registration order.
func (r *Registry) All() []ResourceType {
	out := make([]ResourceType, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
