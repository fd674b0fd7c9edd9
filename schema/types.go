package schema

// AttributeDataType enumerates the scalar/complex shapes an
// AttributeDefinition can declare (spec §3).
type AttributeDataType int

const (
	TypeString AttributeDataType = iota
	TypeBoolean
	TypeInteger
	TypeDecimal
	TypeDateTime
	TypeBinary
	TypeReference
	TypeComplex
)

func (t AttributeDataType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeBoolean:
		return "boolean"
	case TypeInteger:
		return "integer"
	case TypeDecimal:
		return "decimal"
	case TypeDateTime:
		return "dateTime"
	case TypeBinary:
		return "binary"
	case TypeReference:
		return "reference"
	case TypeComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// MarshalJSON renders the type the way RFC 7643 §7 schema documents do.
func (t AttributeDataType) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.String() + `"`), nil
}

// Mutability is the attribute write policy (spec GLOSSARY).
type Mutability int

const (
	MutabilityReadWrite Mutability = iota
	MutabilityReadOnly
	MutabilityImmutable
	MutabilityWriteOnly
)

func (m Mutability) String() string {
	switch m {
	case MutabilityReadOnly:
		return "readOnly"
	case MutabilityImmutable:
		return "immutable"
	case MutabilityWriteOnly:
		return "writeOnly"
	default:
		return "readWrite"
	}
}

func (m Mutability) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// Returned is the attribute read policy (spec GLOSSARY).
type Returned int

const (
	ReturnedAlways Returned = iota
	ReturnedDefault
	ReturnedRequest
	ReturnedNever
)

func (r Returned) String() string {
	switch r {
	case ReturnedAlways:
		return "always"
	case ReturnedRequest:
		return "request"
	case ReturnedNever:
		return "never"
	default:
		return "default"
	}
}

func (r Returned) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// Uniqueness is the attribute uniqueness scope (spec GLOSSARY).
type Uniqueness int

const (
	UniquenessNone Uniqueness = iota
	UniquenessServer
	UniquenessGlobal
)

func (u Uniqueness) String() string {
	switch u {
	case UniquenessServer:
		return "server"
	case UniquenessGlobal:
		return "global"
	default:
		return "none"
	}
}

func (u Uniqueness) MarshalJSON() ([]byte, error) {
	return []byte(`"` + u.String() + `"`), nil
}

// ReferenceType tags what kind of resource a Reference attribute
// points at, e.g. "User", "Group", "external", "uri".
type ReferenceType string
