package server

import (
	"github.com/rs/zerolog"

	"github.com/scimforge/core/provider"
	"github.com/scimforge/core/resourcetype"
	"github.com/scimforge/core/schema"
)

const (
	defaultStartIndex = 1
	defaultCount      = 100
)

// Core is a fully wired SCIM processing engine: a schema registry, a
// resource-type registry, one storage provider per resource type, and
// a service provider config, constructed with functional options so a
// caller builds a working instance in one step (spec §9 Design Notes
// "construct a fully-initialized registry/server in one step").
//
// Grounded on dwardin-scim/server.go's Server struct (Config/Prefix/
// ResourceTypes fields kept in spirit); Prefix is dropped since it is
// an HTTP routing concern, and ResourceTypes becomes a proper registry
// instead of a flat slice walked linearly on every request.
type Core struct {
	schemas       *schema.Registry
	resourceTypes *resourcetype.Registry
	providers     map[string]provider.StorageProvider
	config        schema.ServiceProviderConfig
	logger        zerolog.Logger
	defaultCount  int
}

// Option configures a Core under construction. The stdlib-only
// functional-option builder (no CLI/executable surface exists for
// this library, so a flag/env parser has no caller) is justified in
// DESIGN.md.
type Option func(*Core)

// WithResourceType registers a resource type bound to the
// StorageProvider that will serve it.
func WithResourceType(rt resourcetype.ResourceType, p provider.StorageProvider) Option {
	return func(c *Core) {
		if err := c.resourceTypes.Register(rt); err != nil {
			panic(err)
		}
		for _, s := range append([]schema.Schema{rt.Schema}, extensionSchemas(rt)...) {
			_ = c.schemas.Register(s)
		}
		c.providers[rt.Name] = p
	}
}

func extensionSchemas(rt resourcetype.ResourceType) []schema.Schema {
	out := make([]schema.Schema, 0, len(rt.SchemaExtensions))
	for _, e := range rt.SchemaExtensions {
		out = append(out, e.Schema)
	}
	return out
}

// WithLogger attaches structured logging (SPEC_FULL.md AMBIENT STACK),
// mirroring niiniyare-ruun's pkg/logger zerolog wiring.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Core) { c.logger = l }
}

// WithDefaultCount overrides the server-enforced pagination ceiling
// (spec §4.7, generalized from dwardin-scim/server.go's fallbackCount).
func WithDefaultCount(n int) Option {
	return func(c *Core) { c.defaultCount = n }
}

// NewCore builds a ready-to-dispatch Core. Schemas are frozen once
// construction completes (spec §3 "Lifecycles": schemas are
// registered at initialization, then the registry is frozen").
func NewCore(opts ...Option) *Core {
	c := &Core{
		schemas:       schema.NewRegistry(),
		resourceTypes: resourcetype.NewRegistry(),
		providers:     map[string]provider.StorageProvider{},
		defaultCount:  defaultCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.schemas.Freeze()

	supportsConditional := false
	for _, p := range c.providers {
		if p.SupportsConditional() {
			supportsConditional = true
			break
		}
	}
	c.config = schema.DefaultServiceProviderConfig(supportsConditional)
	return c
}

// ServiceProviderConfig returns the capability document (spec §6),
// consumed by the discovery package.
func (c *Core) ServiceProviderConfig() schema.ServiceProviderConfig {
	return c.config
}

// Schemas exposes the frozen schema registry to the discovery
// package.
func (c *Core) Schemas() *schema.Registry {
	return c.schemas
}

// ResourceTypes exposes the resource-type registry to the discovery
// package.
func (c *Core) ResourceTypes() *resourcetype.Registry {
	return c.resourceTypes
}
