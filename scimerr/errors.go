// Package scimerr is the structured error vocabulary for the SCIM
// core: the 52-class validation taxonomy of the validation cascade
// plus the broader handler-level categories (not found, version
// conflict, permission denied, provider failure, internal invariant).
//
// Modeled after the teacher's flat error-literal style
// (github.com/elimity-com/scim/errors.ScimError), extended with the
// structured attribute/expected/actual payload the validation cascade
// needs to report precisely which value failed and why.
package scimerr

import "fmt"

// Error is the single error type the core ever returns. Callers
// switch on Code rather than string-matching Detail.
type Error struct {
	Code Code
	// Status is an HTTP-flavored status hint a transport may use
	// when mapping this error to a wire envelope (spec §6). The core
	// itself never writes HTTP responses.
	Status int
	Detail string

	// Attribute is the dotted path of the offending attribute, e.g.
	// "emails.type" (spec §4.3 "Complex-attribute path reporting").
	// Empty for errors not tied to a single attribute.
	Attribute string
	// Value is the offending value, when relevant. It is filled in
	// without regard to the attribute's mutability or returned
	// policy, so a rejected writeOnly value (e.g. password) is carried
	// here as well.
	Value interface{}
	// Expected/Actual hold type or allowed-set mismatches, e.g.
	// Expected="integer" Actual="string", or
	// Expected=[]string{"work","home","other"} Actual="WORK".
	Expected interface{}
	Actual   interface{}

	// Current is populated only for VersionConflict: the version
	// the provider currently has on file, for client-side refresh.
	Current interface{}
	// wrapped holds a provider error being propagated, for
	// ProviderFailure; returned by Unwrap so callers can
	// errors.As/errors.Is through it.
	wrapped error
}

func (e *Error) Error() string {
	if e.Attribute != "" {
		return fmt.Sprintf("%s: %s (attribute %q)", e.Code, e.Detail, e.Attribute)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Detail)
}

// Unwrap exposes a wrapped provider error for errors.As/errors.Is.
func (e *Error) Unwrap() error {
	return e.wrapped
}

// New constructs a bare Error for the given code. The 52 validation
// classes are built as Error literals at their failure sites; New and
// the constructors below serve the handler-level categories.
func New(code Code, status int, detail string) *Error {
	return &Error{Code: code, Status: status, Detail: detail}
}

// WithAttribute returns a copy of e carrying the given attribute path.
func (e *Error) WithAttribute(path string) *Error {
	cp := *e
	cp.Attribute = path
	return &cp
}

// NotFoundError signals that the requested resource does not exist
// in the provider.
func NotFoundError(resourceType, id string) *Error {
	return New(NotFound, 404, fmt.Sprintf("%s %s not found", resourceType, id))
}

// VersionConflictError signals a failed conditional operation.
func VersionConflictError(expected, current interface{}) *Error {
	return &Error{
		Code:    VersionConflict,
		Status:  409,
		Detail:  "expected version does not match current version",
		Expected: expected,
		Actual:   current,
		Current:  current,
	}
}

// PermissionDeniedError signals a tenant permission rejected the
// operation before any provider or validation work ran.
func PermissionDeniedError(detail string) *Error {
	return New(PermissionDenied, 403, detail)
}

// UnsupportedResourceTypeError signals the resource type named in the
// request is not registered.
func UnsupportedResourceTypeError(name string) *Error {
	return New(UnsupportedResourceType, 404, fmt.Sprintf("resource type %q is not registered", name))
}

// UnsupportedOperationError signals the operation is not in the
// resource type's permitted set.
func UnsupportedOperationError(op, resourceType string) *Error {
	return New(UnsupportedOperation, 501, fmt.Sprintf("operation %q is not permitted for resource type %q", op, resourceType))
}

// ProviderFailureError wraps an opaque storage-backend failure,
// propagating its message unchanged (spec §7 "Propagation").
func ProviderFailureError(err error) *Error {
	return &Error{
		Code:    ProviderFailure,
		Status:  502,
		Detail:  err.Error(),
		wrapped: err,
	}
}

// InternalError signals a core invariant was violated — a bug, never
// a response to ill-formed caller input (spec §7 "Fatal conditions").
func InternalError(detail string) *Error {
	return New(InternalInvariant, 500, detail)
}
