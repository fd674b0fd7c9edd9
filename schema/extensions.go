package schema

// extensionBases records, for known extension schemas, which base
// resource schema they extend (spec §3 Resource invariant: "schemas
// ... exactly one base-resource URN plus zero or more extension URNs
// compatible with that base"). Custom extensions registered at
// initialization should be declared compatible via
// RegisterExtensionBase.
var extensionBases = map[string]string{
	EnterpriseSchema: UserSchema,
}

// RegisterExtensionBase declares that the extension schema identified
// by urn is only compatible with the given base schema URN. Used for
// custom extensions registered alongside the core schemas.
func RegisterExtensionBase(extensionURN, baseURN string) {
	extensionBases[extensionURN] = baseURN
}

// ExtensionBaseFor reports the base schema URN a known extension
// requires, if any.
func ExtensionBaseFor(urn string) (string, bool) {
	base, ok := extensionBases[urn]
	return base, ok
}

// knownBaseSchemas are the resource-type-defining (non-extension)
// schemas shipped with the library.
var knownBaseSchemas = map[string]bool{
	UserSchema:  true,
	GroupSchema: true,
}

// RegisterBaseSchema declares urn as a base (non-extension) resource
// schema, for custom resource types registered at initialization.
func RegisterBaseSchema(urn string) {
	knownBaseSchemas[urn] = true
}

// IsBaseSchema reports whether urn is a registered base resource
// schema (as opposed to an extension).
func IsBaseSchema(urn string) bool {
	return knownBaseSchemas[urn]
}
