package server

import (
	"github.com/scimforge/core/discovery"
	"github.com/scimforge/core/scimerr"
)

// dispatchDiscovery answers GetSchemas/GetSchema directly from the
// registries, bypassing resource-type/tenant resolution entirely —
// discovery documents are not scoped to a tenant (spec §4.8).
func (c *Core) dispatchDiscovery(req Request) Response {
	switch req.Kind {
	case OpGetSchemas:
		schemas := discovery.Schemas(c.schemas)
		out := make([]interface{}, len(schemas))
		for i, s := range schemas {
			out[i] = s
		}
		return Response{Status: 200, Schemas: out}
	case OpGetSchema:
		s, ok := discovery.Schema(c.schemas, req.ID)
		if !ok {
			return errResponse(scimerr.NotFoundError("Schema", req.ID))
		}
		return Response{Status: 200, Schemas: []interface{}{s}}
	default:
		return errResponse(scimerr.InternalError("unrecognized discovery operation kind"))
	}
}

// ResourceTypesDocument and ServiceProviderConfigDocument are exposed
// for callers that want the remaining two discovery documents without
// routing through Dispatch, since they (like GetSchemas) carry no
// resource-type or tenant scope of their own.
func (c *Core) ResourceTypesDocument() []interface{} {
	rts := discovery.ResourceTypes(c.resourceTypes)
	out := make([]interface{}, len(rts))
	for i, rt := range rts {
		out[i] = rt
	}
	return out
}

func (c *Core) ServiceProviderConfigDocument() map[string]interface{} {
	return discovery.ServiceProviderConfigDocument(c.config)
}
