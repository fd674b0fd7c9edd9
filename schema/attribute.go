package schema

import (
	"fmt"
	"strings"

	"github.com/scimforge/core/optional"
)

// AttributeDefinition describes a single schema attribute: its shape,
// write policy, and (for Complex attributes) its sub-attributes.
//
// Unexported fields plus getters mirror the teacher's CoreAttribute
// (dwardin-scim/schema/core.go); unlike the teacher, AttributeDefinition
// carries no validate() method of its own — validation is a separate
// component (spec §4.3, the validation package) that reads these
// getters rather than owning per-attribute logic.
type AttributeDefinition struct {
	name            string
	description     optional.String
	typ             AttributeDataType
	multiValued     bool
	required        bool
	caseExact       bool
	mutability      Mutability
	returned        Returned
	uniqueness      Uniqueness
	canonicalValues []string
	referenceTypes  []ReferenceType
	subAttributes   Attributes
}

// Attributes is an ordered list of AttributeDefinitions.
type Attributes []AttributeDefinition

// ByName performs a case-insensitive lookup, mirroring
// dwardin-scim/schema/schema.go's Attributes.ContainsAttribute.
func (as Attributes) ByName(name string) (AttributeDefinition, bool) {
	for _, a := range as {
		if strings.EqualFold(a.name, name) {
			return a, true
		}
	}
	return AttributeDefinition{}, false
}

func (a AttributeDefinition) Name() string                    { return a.name }
func (a AttributeDefinition) Description() string              { return a.description.Value() }
func (a AttributeDefinition) Type() AttributeDataType           { return a.typ }
func (a AttributeDefinition) MultiValued() bool                 { return a.multiValued }
func (a AttributeDefinition) Required() bool                    { return a.required }
func (a AttributeDefinition) CaseExact() bool                   { return a.caseExact }
func (a AttributeDefinition) Mutability() Mutability            { return a.mutability }
func (a AttributeDefinition) Returned() Returned                { return a.returned }
func (a AttributeDefinition) Uniqueness() Uniqueness             { return a.uniqueness }
func (a AttributeDefinition) CanonicalValues() []string         { return a.canonicalValues }
func (a AttributeDefinition) ReferenceTypes() []ReferenceType    { return a.referenceTypes }
func (a AttributeDefinition) SubAttributes() Attributes         { return a.subAttributes }
func (a AttributeDefinition) HasSubAttributes() bool {
	return a.typ == TypeComplex && len(a.subAttributes) != 0
}

// SimpleParams configures a non-Complex AttributeDefinition.
type SimpleParams struct {
	Name            string
	Description     optional.String
	Type            AttributeDataType
	MultiValued     bool
	Required        bool
	CaseExact       bool
	Mutability      Mutability
	Returned        Returned
	Uniqueness      Uniqueness
	CanonicalValues []string
	ReferenceTypes  []ReferenceType
}

// ComplexParams configures a Complex AttributeDefinition.
type ComplexParams struct {
	Name          string
	Description   optional.String
	MultiValued   bool
	Required      bool
	Mutability    Mutability
	Returned      Returned
	SubAttributes []SimpleParams
}

func checkAttributeName(name string) {
	if strings.TrimSpace(name) == "" {
		panic("schema: attribute name must not be empty")
	}
}

// NewSimpleAttribute builds a non-Complex AttributeDefinition.
// Panics if Type is TypeComplex — use NewComplexAttribute instead
// (spec §3 invariant: exactly one of {scalar type, Complex with
// sub-attributes} describes the attribute's shape).
func NewSimpleAttribute(p SimpleParams) AttributeDefinition {
	checkAttributeName(p.Name)
	if p.Type == TypeComplex {
		panic(fmt.Sprintf("schema: attribute %q: use NewComplexAttribute for complex types", p.Name))
	}
	return AttributeDefinition{
		name:            p.Name,
		description:     p.Description,
		typ:             p.Type,
		multiValued:     p.MultiValued,
		required:        p.Required,
		caseExact:       p.CaseExact,
		mutability:      p.Mutability,
		returned:        p.Returned,
		uniqueness:      p.Uniqueness,
		canonicalValues: p.CanonicalValues,
		referenceTypes:  p.ReferenceTypes,
	}
}

// NewComplexAttribute builds a Complex AttributeDefinition. Panics if
// a sub-attribute name is duplicated, or if a sub-attribute is itself
// Complex (spec §3: "sub-attributes must not themselves be Complex").
func NewComplexAttribute(p ComplexParams) AttributeDefinition {
	checkAttributeName(p.Name)

	seen := map[string]int{}
	sub := make(Attributes, 0, len(p.SubAttributes))
	for i, s := range p.SubAttributes {
		if s.Type == TypeComplex {
			panic(fmt.Sprintf("schema: attribute %q: sub-attribute %q must not be complex", p.Name, s.Name))
		}
		lower := strings.ToLower(s.Name)
		if j, ok := seen[lower]; ok {
			panic(fmt.Sprintf("schema: attribute %q: duplicate sub-attribute name %q (positions %d and %d)", p.Name, s.Name, i, j))
		}
		seen[lower] = i
		sub = append(sub, NewSimpleAttribute(s))
	}

	return AttributeDefinition{
		name:          p.Name,
		description:   p.Description,
		typ:           TypeComplex,
		multiValued:   p.MultiValued,
		required:      p.Required,
		mutability:    p.Mutability,
		returned:      p.Returned,
		subAttributes: sub,
	}
}

// rawView is the JSON-document shape for a single attribute,
// generalized from dwardin-scim/schema/core.go's getRawAttributes.
func (a AttributeDefinition) rawView() map[string]interface{} {
	view := map[string]interface{}{
		"name":        a.name,
		"type":        a.typ,
		"multiValued": a.multiValued,
		"description": a.description.Value(),
		"required":    a.required,
		"mutability":  a.mutability,
		"returned":    a.returned,
	}
	if a.typ != TypeComplex && a.typ != TypeBoolean {
		view["caseExact"] = a.caseExact
		view["uniqueness"] = a.uniqueness
	}
	if len(a.canonicalValues) > 0 {
		view["canonicalValues"] = a.canonicalValues
	}
	if len(a.referenceTypes) > 0 {
		view["referenceTypes"] = a.referenceTypes
	}
	if len(a.subAttributes) > 0 {
		sub := make([]map[string]interface{}, len(a.subAttributes))
		for i, s := range a.subAttributes {
			sub[i] = s.rawView()
		}
		view["subAttributes"] = sub
	}
	return view
}
