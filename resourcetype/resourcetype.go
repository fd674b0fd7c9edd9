// Package resourcetype implements spec §3/§4.4's ResourceType binding:
// the name, base schema, schema extensions, and permitted-operations
// set a server.Core dispatches a request against.
//
// Grounded on dwardin-scim/resource_type.go's ResourceType/SchemaExtension
// (field names and the getRaw projection are kept); the PATCH-path
// validation half of that file (validateOperationValue/validatePatch,
// built on github.com/scim2/filter-parser/v2 and
// github.com/elimity-com/scim/internal/filter) is dropped, since PATCH
// filter-expression parsing is out of scope (see DESIGN.md).
package resourcetype

import (
	"encoding/json"
	"fmt"

	"github.com/scimforge/core/optional"
	"github.com/scimforge/core/schema"
)

// Operation names one of the five permitted operations spec §3 lists
// for a ResourceType's permitted-operations set.
type Operation string

const (
	OperationCreate Operation = "create"
	OperationGet    Operation = "get"
	OperationUpdate Operation = "update"
	OperationDelete Operation = "delete"
	OperationList   Operation = "list"
)

// SchemaExtension is one of the resource type's schema extensions
// (spec §3 "zero or more extension URNs"), kept from
// dwardin-scim/resource_type.go's SchemaExtension verbatim in shape.
type SchemaExtension struct {
	Schema   schema.Schema
	Required bool
}

// ResourceType binds a name, endpoint, base schema, and extensions to
// the set of operations a server.Core will route to it (spec §3
// "ResourceType").
//
// Grounded on dwardin-scim/resource_type.go's ResourceType struct; the
// Handler field is dropped in favor of the decoupled
// provider.StorageProvider the server package dispatches through
// directly (spec §4.4 keeps resource-type binding and storage access
// as separate concerns, unlike the teacher's single ResourceHandler).
type ResourceType struct {
	ID               optional.String
	Name             string
	Description      optional.String
	Endpoint         string
	Schema           schema.Schema
	SchemaExtensions []SchemaExtension

	// Permitted restricts which operations this resource type answers
	// to (spec §3). A nil/empty set means all five are permitted.
	Permitted map[Operation]bool
}

// Allows reports whether op is permitted for this resource type.
func (t ResourceType) Allows(op Operation) bool {
	if len(t.Permitted) == 0 {
		return true
	}
	return t.Permitted[op]
}

// RequiredExtensionURNs returns the URNs of every schema extension
// marked Required, the set validation.Context.RequiredExtensions
// needs to enforce failure class MissingRequiredExtension.
func (t ResourceType) RequiredExtensionURNs() []string {
	var out []string
	for _, e := range t.SchemaExtensions {
		if e.Required {
			out = append(out, e.Schema.ID)
		}
	}
	return out
}

// WithCommonAttributes returns the resource type's base schema plus
// the externalId common attribute, the same projection
// dwardin-scim/resource_type.go's schemaWithCommon produced.
func (t ResourceType) WithCommonAttributes() schema.Schema {
	return t.Schema.WithCommonAttributes()
}

// rawView renders the ResourceType the way RFC 7643 §6 discovery
// documents do, generalized from dwardin-scim/resource_type.go's
// getRaw/getRawSchemaExtensions.
func (t ResourceType) rawView() map[string]interface{} {
	return map[string]interface{}{
		"schemas":          []string{"urn:ietf:params:scim:schemas:core:2.0:ResourceType"},
		"id":               t.ID.Value(),
		"name":             t.Name,
		"description":      t.Description.Value(),
		"endpoint":         t.Endpoint,
		"schema":           t.Schema.ID,
		"schemaExtensions": t.rawSchemaExtensions(),
	}
}

func (t ResourceType) rawSchemaExtensions() []map[string]interface{} {
	exts := make([]map[string]interface{}, 0, len(t.SchemaExtensions))
	for _, e := range t.SchemaExtensions {
		exts = append(exts, map[string]interface{}{
			"schema":   e.Schema.ID,
			"required": e.Required,
		})
	}
	return exts
}

// MarshalJSON renders the discovery document form.
func (t ResourceType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.rawView())
}

// validate checks the structural invariants spec §4.1/§4.4 require at
// registration: a non-empty name and endpoint, and a base schema with
// a non-empty ID. The base schema's own attributes are not checked
// here.
func (t ResourceType) validate() error {
	if t.Name == "" {
		return fmt.Errorf("resourcetype: name must not be empty")
	}
	if t.Endpoint == "" {
		return fmt.Errorf("resourcetype: %q: endpoint must not be empty", t.Name)
	}
	if t.Schema.ID == "" {
		return fmt.Errorf("resourcetype: %q: base schema must be set", t.Name)
	}
	return nil
}
