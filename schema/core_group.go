package schema

import "github.com/scimforge/core/optional"

// CoreGroup returns the RFC 7643 §4.2 Group schema.
func CoreGroup() Schema {
	return Schema{
		ID:          GroupSchema,
		Name:        optional.NewString("Group"),
		Description: optional.NewString("Group"),
		Attributes: Attributes{
			NewSimpleAttribute(SimpleParams{
				Name:       "displayName",
				Type:       TypeString,
				Required:   true,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewComplexAttribute(ComplexParams{
				Name:        "members",
				MultiValued: true,
				Mutability:  MutabilityReadWrite,
				Returned:    ReturnedDefault,
				SubAttributes: []SimpleParams{
					{Name: "value", Type: TypeString, Mutability: MutabilityImmutable},
					{Name: "display", Type: TypeString, Mutability: MutabilityImmutable},
					{
						Name: "$ref", Type: TypeReference, Mutability: MutabilityImmutable,
						ReferenceTypes: []ReferenceType{"User", "Group"},
					},
					{Name: "type", Type: TypeString, Mutability: MutabilityImmutable, CanonicalValues: []string{"User", "Group"}},
				},
			}),
		},
	}
}

// CoreEnterpriseUser returns the RFC 7643 §4.3 Enterprise User
// extension schema.
func CoreEnterpriseUser() Schema {
	return Schema{
		ID:          EnterpriseSchema,
		Name:        optional.NewString("EnterpriseUser"),
		Description: optional.NewString("Enterprise User"),
		Attributes: Attributes{
			NewSimpleAttribute(SimpleParams{Name: "employeeNumber", Type: TypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault}),
			NewSimpleAttribute(SimpleParams{Name: "costCenter", Type: TypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault}),
			NewSimpleAttribute(SimpleParams{Name: "organization", Type: TypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault}),
			NewSimpleAttribute(SimpleParams{Name: "division", Type: TypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault}),
			NewSimpleAttribute(SimpleParams{Name: "department", Type: TypeString, Mutability: MutabilityReadWrite, Returned: ReturnedDefault}),
			NewComplexAttribute(ComplexParams{
				Name:       "manager",
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
				SubAttributes: []SimpleParams{
					{Name: "value", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "$ref", Type: TypeReference, Mutability: MutabilityReadWrite, ReferenceTypes: []ReferenceType{"User"}},
					{Name: "displayName", Type: TypeString, Mutability: MutabilityReadOnly},
				},
			}),
		},
	}
}
