package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/scimforge/core/optional"
)

// Core schema URNs (spec §6: "the core-provided User, Group ... ship
// with the library"), kept at the same constant names the teacher
// used in dwardin-scim/schema/schema.go.
const (
	UserSchema       = "urn:ietf:params:scim:schemas:core:2.0:User"
	GroupSchema      = "urn:ietf:params:scim:schemas:core:2.0:Group"
	EnterpriseSchema = "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User"
)

// CommonAttributeExternalID is injected into every resource type's
// schema by WithCommonAttributes, mirroring dwardin-scim/resource_type.go's
// schemaWithCommon.
const CommonAttributeExternalID = "externalId"

// urnPattern matches the RFC 7643 §3.1 URN-ish identifiers SCIM uses
// for schema and attribute URIs: "urn:" followed by colon-separated
// non-empty segments.
var urnPattern = regexp.MustCompile(`^urn:[A-Za-z0-9][A-Za-z0-9-]*(:[A-Za-z0-9.~*'()+,=@;$_!-]+)+$`)

// IsWellFormedURN reports whether uri is a syntactically valid SCIM
// schema URN (spec §4.1 validation-at-registration rule, also reused
// by validation phase 1).
func IsWellFormedURN(uri string) bool {
	return urnPattern.MatchString(uri)
}

// Schema is a collection of attribute definitions describing an
// entire or partial resource (spec §3 "Schema").
type Schema struct {
	ID          string
	Name        optional.String
	Description optional.String
	Attributes  Attributes
}

// MarshalJSON renders the schema the way RFC 7643 §7 documents do,
// the same shape as dwardin-scim/schema/schema.go's ToMap/MarshalJSON.
func (s Schema) MarshalJSON() ([]byte, error) {
	attrs := make([]map[string]interface{}, len(s.Attributes))
	for i, a := range s.Attributes {
		attrs[i] = a.rawView()
	}
	return json.Marshal(map[string]interface{}{
		"id":          s.ID,
		"name":        s.Name.Value(),
		"description": s.Description.Value(),
		"attributes":  attrs,
	})
}

// WithCommonAttributes returns a copy of s with the externalId common
// attribute appended, generalized from the teacher's schemaWithCommon.
func (s Schema) WithCommonAttributes() Schema {
	if _, ok := s.Attributes.ByName(CommonAttributeExternalID); ok {
		return s
	}
	cp := s
	cp.Attributes = append(Attributes{}, s.Attributes...)
	cp.Attributes = append(cp.Attributes, NewSimpleAttribute(SimpleParams{
		Name:       CommonAttributeExternalID,
		Type:       TypeString,
		CaseExact:  true,
		Mutability: MutabilityReadWrite,
		Uniqueness: UniquenessNone,
	}))
	return cp
}

// validateStructure enforces spec §4.1's registration-time checks:
// well-formed URN, unique attribute names, no Complex sub-attributes
// (the last is already enforced by NewComplexAttribute, but re-checked
// here defensively since a Schema can in principle be built by hand).
func (s Schema) validateStructure() error {
	if !IsWellFormedURN(s.ID) {
		return fmt.Errorf("schema: id %q is not a well-formed URN", s.ID)
	}
	seen := map[string]string{}
	for _, a := range s.Attributes {
		lower := strings.ToLower(a.name)
		if orig, ok := seen[lower]; ok {
			return fmt.Errorf("schema %q: duplicate attribute name %q (also %q)", s.ID, a.name, orig)
		}
		seen[lower] = a.name
		for _, sub := range a.subAttributes {
			if sub.typ == TypeComplex {
				return fmt.Errorf("schema %q: sub-attribute %q of %q must not be complex", s.ID, sub.name, a.name)
			}
		}
	}
	return nil
}
