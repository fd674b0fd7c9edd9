// Package discovery implements the Discovery Surface (spec §4.8): pure
// projections over a schema.Registry and a resourcetype.Registry for
// the three read-only discovery documents SCIM clients use to learn a
// deployment's capabilities — /Schemas, /ResourceTypes, and
// /ServiceProviderConfig.
//
// Grounded on dwardin-scim/server.go's getSchema/getSchemas (the walk
// over resource types is replaced by a read of schema.Registry, which
// already rejects duplicate URNs at registration) and its
// schemasHandler/resourceTypesHandler/serviceProviderConfigHandler
// trio of read-only projections; the net/http response-writing half of
// those handlers is dropped in favor of returning plain Go values, the
// same "core never writes a wire response" boundary server.Dispatch
// holds to.
package discovery

import (
	"github.com/scimforge/core/resourcetype"
	"github.com/scimforge/core/schema"
)

// Schemas returns every schema in the registry (the preloaded core
// schemas plus any registered since), in registration order — the
// /Schemas document body.
func Schemas(reg *schema.Registry) []schema.Schema {
	return reg.All()
}

// Schema looks up a single schema by URN — the /Schemas/{urn}
// document.
func Schema(reg *schema.Registry, urn string) (schema.Schema, bool) {
	return reg.Get(urn)
}

// ResourceTypes returns every registered resource type — the
// /ResourceTypes document body.
func ResourceTypes(reg *resourcetype.Registry) []resourcetype.ResourceType {
	return reg.All()
}

// ResourceType looks up a single resource type by name — the
// /ResourceTypes/{name} document.
func ResourceType(reg *resourcetype.Registry, name string) (resourcetype.ResourceType, bool) {
	return reg.Get(name)
}

// ServiceProviderConfigDocument renders the capability document (spec
// §6) as the RFC 7643 §5 wire shape, schemas envelope included.
func ServiceProviderConfigDocument(cfg schema.ServiceProviderConfig) map[string]interface{} {
	return map[string]interface{}{
		"schemas": []string{"urn:ietf:params:scim:schemas:core:2.0:ServiceProviderConfig"},
		"patch": map[string]bool{
			"supported": cfg.Patch,
		},
		"bulk": map[string]interface{}{
			"supported": cfg.Bulk,
		},
		"filter": map[string]interface{}{
			"supported": cfg.Filter,
		},
		"changePassword": map[string]bool{
			"supported": cfg.ChangePassword,
		},
		"sort": map[string]bool{
			"supported": cfg.Sort,
		},
		"etag": map[string]bool{
			"supported": cfg.ETag,
		},
	}
}
