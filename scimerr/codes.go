package scimerr

// Code is a machine-readable discriminator for every failure the core
// can produce. Codes 1-52 are the validation cascade's failure
// classes (spec §4.3); codes above that range are the broader
// request-handling categories of spec §7.
type Code int

const (
	// Phase 1 — Schema Structure (1-8).
	MissingSchemas Code = iota + 1
	EmptySchemas
	InvalidSchemaURI
	UnknownSchemaURI
	DuplicateSchemaURI
	MissingBaseSchema
	ExtensionWithoutBase
	MissingRequiredExtension

	// Phase 2 — Common Attributes (9-21).
	MissingID
	EmptyID
	InvalidIDFormat
	ClientProvidedID
	EmptyExternalID
	MissingMeta
	InvalidMetaStructure
	InvalidMetaResourceType
	ClientProvidedMeta
	InvalidCreatedTimestamp
	InvalidLastModifiedTimestamp
	LastModifiedBeforeCreated
	InvalidMetaVersionFormat

	// Phase 3 — Data Types (22-32).
	InvalidStringType
	InvalidBooleanType
	IntegerOutOfRange
	InvalidIntegerType
	InvalidDecimalFormat
	InvalidDateTimeFormat
	InvalidBinaryEncoding
	InvalidReferenceURI
	InvalidReferenceType
	// UnresolvableReference is reserved for the class-31 slot but is
	// never emitted by the validation pipeline: dereferencing a
	// reference target to confirm it exists requires access to the
	// full resource graph, which only a transport or provider has —
	// see validation/attribute.go's checkReferenceType doc comment.
	UnresolvableReference
	UnknownAttributeForSchema

	// Phase 4 — Multi-valued Shape (33-38).
	MultiValuedNotArray
	SingleValuedIsArray
	MultiplePrimaryValues
	ElementNotFlatObject
	MissingRequiredElementAttribute
	InvalidCanonicalValue

	// Phase 5 — Complex Attributes (39-43).
	// SubAttributeTypeMismatch is reserved for the class-39 slot but is
	// not emitted by the validation pipeline: validateComplex dispatches
	// every sub-attribute's value through the same validateSingular
	// per-type switch a top-level attribute goes through, so a
	// sub-attribute's type mismatch already raises the exact phase-3
	// code for its declared type (InvalidStringType, InvalidBooleanType,
	// and so on) rather than a separate, less specific phase-5 class —
	// see validation/attribute.go's validateComplex.
	SubAttributeTypeMismatch
	NestedComplexAttribute
	UnknownSubAttribute
	MissingRequiredSubAttribute
	InvalidComplexContainer

	// Phase 6 — Attribute Characteristics (44-52).
	CaseExactMismatch
	ReadOnlyAttributeModified
	ImmutableAttributeModified
	// WriteOnlyAttributeInResponse is reserved for the class-47 slot
	// but is not emitted by the validation pipeline: writeOnly
	// attributes are stripped from every response before it is built
	// (resource.StripNonReturnable, called from
	// server.storedToResource), so the condition this code names can
	// never actually reach a caller.
	WriteOnlyAttributeInResponse
	UniquenessViolationServer
	UniquenessViolationGlobal
	// CanonicalValueCaseMismatch is reserved for the class-50 slot in the
	// taxonomy but is not emitted by the validation pipeline: canonical
	// values are enforced byte-exact, so any case difference is an
	// InvalidCanonicalValue rather than a distinct case-mismatch class.
	CanonicalValueCaseMismatch
	UndeclaredAttribute
	// ReturnedNeverAttributePresent is reserved for the class-52 slot
	// but is not emitted by the validation pipeline for the same
	// reason as WriteOnlyAttributeInResponse above: returned=never
	// attributes are stripped by resource.StripNonReturnable before
	// any Response is built.
	ReturnedNeverAttributePresent
)

// Request-handling categories outside the 52-class validation
// taxonomy (spec §7).
const (
	VersionConflict Code = iota + 100
	NotFound
	UnsupportedResourceType
	UnsupportedOperation
	PermissionDenied
	ProviderFailure
	InternalInvariant
)

var codeNames = map[Code]string{
	MissingSchemas:                   "MissingSchemas",
	EmptySchemas:                     "EmptySchemas",
	InvalidSchemaURI:                 "InvalidSchemaUri",
	UnknownSchemaURI:                 "UnknownSchemaUri",
	DuplicateSchemaURI:               "DuplicateSchemaUri",
	MissingBaseSchema:                "MissingBaseSchema",
	ExtensionWithoutBase:             "ExtensionWithoutBase",
	MissingRequiredExtension:         "MissingRequiredExtension",
	MissingID:                        "MissingId",
	EmptyID:                          "EmptyId",
	InvalidIDFormat:                  "InvalidIdFormat",
	ClientProvidedID:                 "ClientProvidedId",
	EmptyExternalID:                  "EmptyExternalId",
	MissingMeta:                      "MissingMeta",
	InvalidMetaStructure:             "InvalidMetaStructure",
	InvalidMetaResourceType:          "InvalidMetaResourceType",
	ClientProvidedMeta:               "ClientProvidedMeta",
	InvalidCreatedTimestamp:          "InvalidCreatedTimestamp",
	InvalidLastModifiedTimestamp:     "InvalidLastModifiedTimestamp",
	LastModifiedBeforeCreated:        "LastModifiedBeforeCreated",
	InvalidMetaVersionFormat:         "InvalidMetaVersionFormat",
	InvalidStringType:                "InvalidStringType",
	InvalidBooleanType:               "InvalidBooleanType",
	IntegerOutOfRange:                "IntegerOutOfRange",
	InvalidIntegerType:               "InvalidIntegerType",
	InvalidDecimalFormat:             "InvalidDecimalFormat",
	InvalidDateTimeFormat:            "InvalidDateTimeFormat",
	InvalidBinaryEncoding:            "InvalidBinaryEncoding",
	InvalidReferenceURI:              "InvalidReferenceUri",
	InvalidReferenceType:             "InvalidReferenceType",
	UnresolvableReference:            "UnresolvableReference",
	UnknownAttributeForSchema:        "UnknownAttributeForSchema",
	MultiValuedNotArray:              "MultiValuedNotArray",
	SingleValuedIsArray:              "SingleValuedIsArray",
	MultiplePrimaryValues:            "MultiplePrimaryValues",
	ElementNotFlatObject:             "ElementNotFlatObject",
	MissingRequiredElementAttribute:  "MissingRequiredElementAttribute",
	InvalidCanonicalValue:            "InvalidCanonicalValue",
	SubAttributeTypeMismatch:         "SubAttributeTypeMismatch",
	NestedComplexAttribute:           "NestedComplexAttribute",
	UnknownSubAttribute:              "UnknownSubAttribute",
	MissingRequiredSubAttribute:      "MissingRequiredSubAttribute",
	InvalidComplexContainer:          "InvalidComplexContainer",
	CaseExactMismatch:                "CaseExactMismatch",
	ReadOnlyAttributeModified:        "ReadOnlyAttributeModified",
	ImmutableAttributeModified:       "ImmutableAttributeModified",
	WriteOnlyAttributeInResponse:     "WriteOnlyAttributeInResponse",
	UniquenessViolationServer:        "UniquenessViolationServer",
	UniquenessViolationGlobal:        "UniquenessViolationGlobal",
	CanonicalValueCaseMismatch:       "CanonicalValueCaseMismatch",
	UndeclaredAttribute:              "UndeclaredAttribute",
	ReturnedNeverAttributePresent:    "ReturnedNeverAttributePresent",
	VersionConflict:                  "VersionConflict",
	NotFound:                         "NotFound",
	UnsupportedResourceType:          "UnsupportedResourceType",
	UnsupportedOperation:             "UnsupportedOperation",
	PermissionDenied:                 "PermissionDenied",
	ProviderFailure:                  "ProviderFailure",
	InternalInvariant:                "InternalInvariant",
}

// String renders the code's symbolic name, falling back to
// "UnknownCode" for anything unregistered (should not happen for a
// code this package produced itself).
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "UnknownCode"
}

// IsValidationFailure reports whether c is one of the 52 validation
// cascade classes (as opposed to a handler-level category).
func (c Code) IsValidationFailure() bool {
	return c >= MissingSchemas && c <= ReturnedNeverAttributePresent
}
