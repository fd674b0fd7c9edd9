// Package resource holds the canonical in-memory representation of a
// SCIM resource (spec §4.2): a JSON-object-shaped value plus typed
// accessors for id, meta, and version.
package resource

import (
	"encoding/json"
	"time"

	"github.com/scimforge/core/schema"
)

// Meta carries the server-owned metadata block of spec §3.
type Meta struct {
	ResourceType string `json:"resourceType,omitempty"`
	Created      string `json:"created,omitempty"`
	LastModified string `json:"lastModified,omitempty"`
	Location     string `json:"location,omitempty"`
	// Version is the weak-ETag-rendered token, e.g. `W/"abc123"`, or
	// empty when the provider does not support conditional operations.
	Version string `json:"version,omitempty"`
}

// Resource is the canonical JSON-shaped value carried between the
// validation pipeline, the provider, and the operation handler.
//
// Grounded on dwardin-scim/resource_type.go's use of
// map[string]interface{} as the wire-level resource shape (the
// teacher never introduced a dedicated Resource type — ResourceType.validate
// works directly on map[string]interface{}); Resource wraps that map
// with the typed accessors spec §4.2 requires while keeping the
// underlying representation a plain JSON object so it still
// round-trips byte-for-byte through encoding/json.
type Resource struct {
	attributes map[string]interface{}
}

// New wraps a decoded JSON object as a Resource. The caller must have
// already decoded with json.Number semantics if exact integer/decimal
// fidelity matters (the validation package accepts json.Number values
// as well as float64 and int).
func New(attributes map[string]interface{}) Resource {
	if attributes == nil {
		attributes = map[string]interface{}{}
	}
	return Resource{attributes: attributes}
}

// Raw returns the underlying JSON object. Callers must not mutate it
// except through the typed setters below, to keep id/meta invariants
// intact.
func (r Resource) Raw() map[string]interface{} {
	return r.attributes
}

// MarshalJSON renders the resource as its underlying JSON object.
func (r Resource) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.attributes)
}

// UnmarshalJSON decodes into the underlying JSON object.
func (r *Resource) UnmarshalJSON(data []byte) error {
	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	r.attributes = m
	return nil
}

// Schemas returns the declared "schemas" URNs, in order, or nil if
// absent or malformed.
func (r Resource) Schemas() []string {
	raw, ok := r.attributes["schemas"].([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// ID returns the resource's server-assigned id, or "" if absent.
func (r Resource) ID() string {
	id, _ := r.attributes["id"].(string)
	return id
}

// SetID sets the id field. Only the provider calls this (spec §4.2
// "The provider owns those fields").
func (r Resource) SetID(id string) {
	r.attributes["id"] = id
}

// ExternalID returns the externalId field, or "" if absent.
func (r Resource) ExternalID() string {
	id, _ := r.attributes["externalId"].(string)
	return id
}

// Meta decodes the meta block into a typed Meta value.
func (r Resource) Meta() Meta {
	raw, ok := r.attributes["meta"].(map[string]interface{})
	if !ok {
		return Meta{}
	}
	m := Meta{}
	if v, ok := raw["resourceType"].(string); ok {
		m.ResourceType = v
	}
	if v, ok := raw["created"].(string); ok {
		m.Created = v
	}
	if v, ok := raw["lastModified"].(string); ok {
		m.LastModified = v
	}
	if v, ok := raw["location"].(string); ok {
		m.Location = v
	}
	if v, ok := raw["version"].(string); ok {
		m.Version = v
	}
	return m
}

// SetMeta installs the meta block wholesale. Only the provider calls
// this.
func (r Resource) SetMeta(m Meta) {
	raw := map[string]interface{}{}
	if m.ResourceType != "" {
		raw["resourceType"] = m.ResourceType
	}
	if m.Created != "" {
		raw["created"] = m.Created
	}
	if m.LastModified != "" {
		raw["lastModified"] = m.LastModified
	}
	if m.Location != "" {
		raw["location"] = m.Location
	}
	if m.Version != "" {
		raw["version"] = m.Version
	}
	r.attributes["meta"] = raw
}

// SetLastModified updates meta.lastModified and meta.version in
// place, the mutation every successful update performs (spec §3
// "Versions ... invalidated by any successful mutation").
func (r Resource) SetLastModified(t time.Time, version string) {
	m := r.Meta()
	m.LastModified = t.UTC().Format(time.RFC3339)
	m.Version = version
	r.SetMeta(m)
}

// Clone returns a deep-enough copy suitable for handing to a caller
// without risking aliasing the provider's stored state (spec §8
// round-trip property: a returned Resource must not let the caller
// mutate the provider's copy).
func (r Resource) Clone() Resource {
	return Resource{attributes: deepCopyMap(r.attributes)}
}

// StripNonReturnable returns a copy of r with every writeOnly
// attribute and every returned=never attribute removed, recursing
// into Complex (including multi-valued Complex) sub-attributes. This
// is the wire payload contract's mandatory response-shaping step
// (spec §6 "writeOnly attributes MUST be stripped from all responses;
// returned=never attributes MUST be stripped") and spec §4.3 phase
// 6's equivalent rule; schemas should list the resource type's base
// schema (with common attributes applied) plus any schema extensions
// present on the resource.
func StripNonReturnable(r Resource, schemas ...schema.Schema) Resource {
	out := r.Clone()
	for _, s := range schemas {
		stripAttributes(out.attributes, s.Attributes)
	}
	return out
}

func stripAttributes(m map[string]interface{}, defs schema.Attributes) {
	for k, v := range m {
		def, ok := defs.ByName(k)
		if !ok {
			continue
		}
		if def.Mutability() == schema.MutabilityWriteOnly || def.Returned() == schema.ReturnedNever {
			delete(m, k)
			continue
		}
		if def.Type() != schema.TypeComplex {
			continue
		}
		if def.MultiValued() {
			arr, ok := v.([]interface{})
			if !ok {
				continue
			}
			for _, e := range arr {
				if em, ok := e.(map[string]interface{}); ok {
					stripAttributes(em, def.SubAttributes())
				}
			}
			continue
		}
		if vm, ok := v.(map[string]interface{}); ok {
			stripAttributes(vm, def.SubAttributes())
		}
	}
}

func deepCopyMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return deepCopyMap(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, e := range t {
			out[i] = deepCopyValue(e)
		}
		return out
	default:
		return v
	}
}
