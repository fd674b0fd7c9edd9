package schema

import "github.com/scimforge/core/optional"

// CoreUser returns the RFC 7643 §4.1 User schema. Attribute shapes
// are generalized from the attribute definitions implied by
// dwardin-scim/schema/core.go's builder API (SimpleCoreAttribute /
// ComplexCoreAttribute), rebuilt here against NewSimpleAttribute /
// NewComplexAttribute for the full User attribute set RFC 7643 names.
func CoreUser() Schema {
	return Schema{
		ID:          UserSchema,
		Name:        optional.NewString("User"),
		Description: optional.NewString("User Account"),
		Attributes: Attributes{
			NewSimpleAttribute(SimpleParams{
				Name:       "userName",
				Type:       TypeString,
				Required:   true,
				CaseExact:  false,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
				Uniqueness: UniquenessServer,
			}),
			NewComplexAttribute(ComplexParams{
				Name:       "name",
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
				SubAttributes: []SimpleParams{
					{Name: "formatted", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "familyName", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "givenName", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "middleName", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "honorificPrefix", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "honorificSuffix", Type: TypeString, Mutability: MutabilityReadWrite},
				},
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "displayName",
				Type:       TypeString,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "nickName",
				Type:       TypeString,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "profileUrl",
				Type:       TypeReference,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
				ReferenceTypes: []ReferenceType{"external"},
			}),
			NewSimpleAttribute(SimpleParams{
				Name:            "title",
				Type:            TypeString,
				Mutability:      MutabilityReadWrite,
				Returned:        ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "userType",
				Type:       TypeString,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "preferredLanguage",
				Type:       TypeString,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "locale",
				Type:       TypeString,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "timezone",
				Type:       TypeString,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "active",
				Type:       TypeBoolean,
				Mutability: MutabilityReadWrite,
				Returned:   ReturnedDefault,
			}),
			NewSimpleAttribute(SimpleParams{
				Name:       "password",
				Type:       TypeString,
				Mutability: MutabilityWriteOnly,
				Returned:   ReturnedNever,
			}),
			NewComplexAttribute(ComplexParams{
				Name:        "emails",
				MultiValued: true,
				Mutability:  MutabilityReadWrite,
				Returned:    ReturnedDefault,
				SubAttributes: []SimpleParams{
					{Name: "value", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "display", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "type", Type: TypeString, Mutability: MutabilityReadWrite, CanonicalValues: []string{"work", "home", "other"}},
					{Name: "primary", Type: TypeBoolean, Mutability: MutabilityReadWrite},
				},
			}),
			NewComplexAttribute(ComplexParams{
				Name:        "phoneNumbers",
				MultiValued: true,
				Mutability:  MutabilityReadWrite,
				Returned:    ReturnedDefault,
				SubAttributes: []SimpleParams{
					{Name: "value", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "display", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "type", Type: TypeString, Mutability: MutabilityReadWrite, CanonicalValues: []string{"work", "home", "mobile", "fax", "pager", "other"}},
					{Name: "primary", Type: TypeBoolean, Mutability: MutabilityReadWrite},
				},
			}),
			NewComplexAttribute(ComplexParams{
				Name:        "addresses",
				MultiValued: true,
				Mutability:  MutabilityReadWrite,
				Returned:    ReturnedDefault,
				SubAttributes: []SimpleParams{
					{Name: "formatted", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "streetAddress", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "locality", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "region", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "postalCode", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "country", Type: TypeString, Mutability: MutabilityReadWrite},
					{Name: "type", Type: TypeString, Mutability: MutabilityReadWrite, CanonicalValues: []string{"work", "home", "other"}},
				},
			}),
			NewComplexAttribute(ComplexParams{
				Name:        "groups",
				MultiValued: true,
				Mutability:  MutabilityReadOnly,
				Returned:    ReturnedDefault,
				SubAttributes: []SimpleParams{
					{Name: "value", Type: TypeString, Mutability: MutabilityReadOnly},
					{Name: "display", Type: TypeString, Mutability: MutabilityReadOnly},
					{Name: "type", Type: TypeString, Mutability: MutabilityReadOnly, CanonicalValues: []string{"direct", "indirect"}},
				},
			}),
		},
	}
}
