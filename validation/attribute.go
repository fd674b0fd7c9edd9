package validation

import (
	"encoding/json"
	"net/url"
	"reflect"
	"strings"

	"github.com/scimforge/core/schema"
	"github.com/scimforge/core/scimerr"
)

// validateAttribute runs phases 3-6 for a single top-level attribute
// value: multi-valued shape (phase 4), per-type checks (phase 3,
// recursing into phase 5 for Complex), and mutability/case/canonical
// characteristics (phase 6).
func validateAttribute(def schema.AttributeDefinition, path string, value interface{}, ctx Context) (interface{}, *scimerr.Error) {
	if err := checkMutability(def, path, value, ctx); err != nil {
		return nil, err
	}
	if def.Mutability() == schema.MutabilityReadOnly {
		// readOnly is rejected above if present; unreachable value
		// present at this point only when absent, nothing to do.
		return value, nil
	}

	if value == nil {
		if def.Required() {
			return nil, &scimerr.Error{Code: scimerr.MissingRequiredSubAttribute, Status: 400, Detail: "required attribute is absent", Attribute: path}
		}
		return nil, nil
	}

	if !def.MultiValued() {
		if isArray(value) {
			return nil, &scimerr.Error{Code: scimerr.SingleValuedIsArray, Status: 400, Detail: "single-valued attribute must not be an array", Attribute: path}
		}
		return validateSingular(def, path, value, ctx)
	}

	arr, ok := value.([]interface{})
	if !ok {
		return nil, &scimerr.Error{Code: scimerr.MultiValuedNotArray, Status: 400, Detail: "multi-valued attribute must be an array", Attribute: path}
	}
	if def.Required() && len(arr) == 0 {
		return nil, &scimerr.Error{Code: scimerr.MissingRequiredElementAttribute, Status: 400, Detail: "multi-valued attribute must not be empty", Attribute: path}
	}

	primaryCount := 0
	out := make([]interface{}, len(arr))
	for i, elem := range arr {
		if def.Type() == schema.TypeComplex && !isFlatObject(elem) {
			return nil, &scimerr.Error{Code: scimerr.ElementNotFlatObject, Status: 400, Detail: "multi-valued complex element must be a flat object", Attribute: path, Value: elem}
		}
		validated, err := validateSingular(def, path, elem, ctx)
		if err != nil {
			return nil, err
		}
		if m, ok := validated.(map[string]interface{}); ok {
			if p, ok := m["primary"].(bool); ok && p {
				primaryCount++
			}
		}
		out[i] = validated
	}
	if primaryCount > 1 {
		return nil, &scimerr.Error{Code: scimerr.MultiplePrimaryValues, Status: 400, Detail: "at most one element may have primary=true", Attribute: path}
	}

	return out, nil
}

func isArray(v interface{}) bool {
	_, ok := v.([]interface{})
	return ok
}

// isFlatObject implements phase 4's "nested object structure of each
// element must be flat" rule (spec §4.3 phase 4, and the type
// invariant "multi-valued complex attributes are arrays of flat
// objects"): a non-map element defers to phase 5's
// InvalidComplexContainer check, but a map element may not itself
// carry a nested map or array value, since no sub-attribute is ever
// declared Complex or multi-valued.
func isFlatObject(v interface{}) bool {
	m, ok := v.(map[string]interface{})
	if !ok {
		return true
	}
	for _, sv := range m {
		switch sv.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
	}
	return true
}

// validateSingular implements phase 3 (Data Types) and, for Complex
// attributes, delegates into phase 5 (Complex Attributes); it also
// applies the phase 6 canonical-value and caseExact checks since both
// are per-value, not per-container.
func validateSingular(def schema.AttributeDefinition, path string, value interface{}, ctx Context) (interface{}, *scimerr.Error) {
	if def.Type() == schema.TypeComplex {
		return validateComplex(def, path, value, ctx)
	}

	switch def.Type() {
	case schema.TypeString:
		s, ok := value.(string)
		if !ok {
			return nil, &scimerr.Error{Code: scimerr.InvalidStringType, Status: 400, Detail: "value must be a string", Attribute: path, Value: value}
		}
		if err := checkCanonicalAndCase(def, path, s); err != nil {
			return nil, err
		}
		return s, nil

	case schema.TypeBoolean:
		b, ok := value.(bool)
		if !ok {
			return nil, &scimerr.Error{Code: scimerr.InvalidBooleanType, Status: 400, Detail: "value must be a boolean literal", Attribute: path, Value: value}
		}
		return b, nil

	case schema.TypeInteger:
		n, ok := asNumber(value)
		if !ok {
			return nil, &scimerr.Error{Code: scimerr.InvalidIntegerType, Status: 400, Detail: "value must be an integer", Attribute: path, Value: value}
		}
		i, err := n.Int64()
		if err != nil {
			return nil, &scimerr.Error{Code: scimerr.InvalidIntegerType, Status: 400, Detail: "value must be an integer", Attribute: path, Value: value}
		}
		if i < -2147483648 || i > 2147483647 {
			return nil, &scimerr.Error{Code: scimerr.IntegerOutOfRange, Status: 400, Detail: "integer must fit in a signed 32-bit range", Attribute: path, Value: i}
		}
		return i, nil

	case schema.TypeDecimal:
		n, ok := asNumber(value)
		if !ok {
			return nil, &scimerr.Error{Code: scimerr.InvalidDecimalFormat, Status: 400, Detail: "value must be a decimal number", Attribute: path, Value: value}
		}
		f, err := n.Float64()
		if err != nil {
			return nil, &scimerr.Error{Code: scimerr.InvalidDecimalFormat, Status: 400, Detail: "value must be a decimal number", Attribute: path, Value: value}
		}
		return f, nil

	case schema.TypeDateTime:
		s, ok := value.(string)
		if !ok || !isValidDateTime(s) {
			return nil, &scimerr.Error{Code: scimerr.InvalidDateTimeFormat, Status: 400, Detail: "value must be an RFC 3339 datetime", Attribute: path, Value: value}
		}
		return s, nil

	case schema.TypeBinary:
		s, ok := value.(string)
		if !ok || !isValidBase64(s) {
			return nil, &scimerr.Error{Code: scimerr.InvalidBinaryEncoding, Status: 400, Detail: "value must be base64-encoded", Attribute: path, Value: value}
		}
		return s, nil

	case schema.TypeReference:
		s, ok := value.(string)
		if !ok || !isValidReferenceURI(s) {
			return nil, &scimerr.Error{Code: scimerr.InvalidReferenceURI, Status: 400, Detail: "value must be a URI-shaped reference", Attribute: path, Value: value}
		}
		if err := checkReferenceType(def, path, s); err != nil {
			return nil, err
		}
		// UnresolvableReference (phase 3, class 31) requires dereferencing
		// the target resource, which only a transport or provider with
		// access to the full resource graph can do; the pipeline itself
		// has no such access and stops at the shape/tag checks above.
		return s, nil

	default:
		return nil, &scimerr.Error{Code: scimerr.InvalidStringType, Status: 400, Detail: "unrecognized attribute type", Attribute: path}
	}
}

// checkReferenceType implements the phase 3 "reference-type tag" check
// (spec §4.3 phase 3): an absolute reference must match one of the
// attribute's declared referenceTypes — either the literal "external"
// tag, or a same-server resource-type name appearing in the URI's
// path. A relative reference is always accepted at this layer: same-
// server path resolution depends on routing the pipeline has no
// access to, so it defers to the same UnresolvableReference boundary
// as referential integrity.
func checkReferenceType(def schema.AttributeDefinition, path, value string) *scimerr.Error {
	types := def.ReferenceTypes()
	if len(types) == 0 {
		return nil
	}

	u, err := url.Parse(value)
	if err != nil || !u.IsAbs() {
		return nil
	}

	for _, t := range types {
		if t == "external" {
			return nil
		}
		if strings.Contains(strings.ToLower(u.Path), strings.ToLower(string(t))) {
			return nil
		}
	}
	return &scimerr.Error{Code: scimerr.InvalidReferenceType, Status: 400, Detail: "absolute reference does not match any declared reference type", Attribute: path, Value: value, Expected: types}
}

// asNumber accepts json.Number (the decoder must be configured with
// UseNumber, as dwardin-scim/resource_type.go's unmarshal does) or a
// float64/int fallback for values constructed in-process.
func asNumber(value interface{}) (json.Number, bool) {
	switch v := value.(type) {
	case json.Number:
		return v, true
	case float64:
		return json.Number(trimFloat(v)), true
	case int:
		return json.Number(trimFloat(float64(v))), true
	default:
		return "", false
	}
}

func trimFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

// checkCanonicalAndCase implements the phase 6 canonical-value and
// caseExact rules (spec §4.3 "Canonical values vs. case exactness":
// "canonical-value choice is enforced exactly regardless of
// caseExact ... caseExact=false does not loosen canonical-value
// matching"). A canonical-valued attribute rejects anything but a
// byte-exact match, case differences included (spec §8 scenario 5:
// "WORK" against allowed={"work","home","other"} is
// InvalidCanonicalValue, not a distinct case-mismatch class — see
// DESIGN.md Open Question decisions). Independent of canonical
// values, a caseExact=true plain string attribute rejects mixed-case
// values (spec §8 testable property).
func checkCanonicalAndCase(def schema.AttributeDefinition, path, value string) *scimerr.Error {
	if cv := def.CanonicalValues(); len(cv) > 0 {
		for _, allowed := range cv {
			if value == allowed {
				return nil
			}
		}
		return &scimerr.Error{Code: scimerr.InvalidCanonicalValue, Status: 400, Detail: "value is not one of the attribute's canonical values", Attribute: path, Value: value, Expected: cv}
	}

	if def.CaseExact() && hasMixedCase(value) {
		return &scimerr.Error{Code: scimerr.CaseExactMismatch, Status: 400, Detail: "case-exact attribute value must not mix case", Attribute: path, Value: value}
	}
	return nil
}

func hasMixedCase(s string) bool {
	var hasUpper, hasLower bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		}
		if hasUpper && hasLower {
			return true
		}
	}
	return false
}

// validateComplex implements phase 5: sub-attribute type checks, no
// nested Complex (already structurally impossible per
// schema.NewComplexAttribute, re-asserted here defensively), unknown
// sub-attributes rejected, required sub-attributes present, and the
// container itself must be an object.
func validateComplex(def schema.AttributeDefinition, path string, value interface{}, ctx Context) (interface{}, *scimerr.Error) {
	obj, ok := value.(map[string]interface{})
	if !ok {
		return nil, &scimerr.Error{Code: scimerr.InvalidComplexContainer, Status: 400, Detail: "complex attribute must be an object", Attribute: path, Value: value}
	}

	out := map[string]interface{}{}
	for k, v := range obj {
		sub, found := def.SubAttributes().ByName(k)
		if !found {
			return nil, &scimerr.Error{Code: scimerr.UnknownSubAttribute, Status: 400, Detail: "sub-attribute is not declared", Attribute: path + "." + k}
		}
		if sub.Type() == schema.TypeComplex {
			return nil, &scimerr.Error{Code: scimerr.NestedComplexAttribute, Status: 400, Detail: "sub-attribute must not itself be complex", Attribute: path + "." + k}
		}
		if err := checkMutability(sub, path+"."+sub.Name(), v, ctx); err != nil {
			return nil, err
		}
		validated, err := validateSingular(sub, path+"."+sub.Name(), v, ctx)
		if err != nil {
			return nil, err
		}
		out[sub.Name()] = validated
	}

	for _, sub := range def.SubAttributes() {
		if sub.Required() {
			if _, present := out[sub.Name()]; !present {
				return nil, &scimerr.Error{Code: scimerr.MissingRequiredSubAttribute, Status: 400, Detail: "required sub-attribute is absent", Attribute: path + "." + sub.Name()}
			}
		}
	}

	return out, nil
}

// checkMutability implements the mutability half of phase 6:
// readOnly attributes may never be written by a client; immutable
// attributes may only be set on Create (an Update that changes an
// already-set immutable value is rejected).
func checkMutability(def schema.AttributeDefinition, path string, value interface{}, ctx Context) *scimerr.Error {
	if value == nil {
		return nil
	}

	if def.Mutability() == schema.MutabilityReadOnly {
		return &scimerr.Error{Code: scimerr.ReadOnlyAttributeModified, Status: 400, Detail: "readOnly attribute may not be written by the client", Attribute: path}
	}

	if def.Mutability() == schema.MutabilityImmutable && ctx.Operation == OperationUpdate {
		prev := previousValue(ctx.Previous, path)
		if prev != nil && !reflect.DeepEqual(normalizeNumbers(prev), normalizeNumbers(value)) {
			return &scimerr.Error{Code: scimerr.ImmutableAttributeModified, Status: 400, Detail: "immutable attribute may only be set on create", Attribute: path, Expected: prev, Actual: value}
		}
	}

	return nil
}

// previousValue looks up a dotted path in the previously stored
// resource representation.
func previousValue(previous map[string]interface{}, path string) interface{} {
	if previous == nil {
		return nil
	}
	segments := strings.Split(path, ".")
	var cur interface{} = previous
	for _, seg := range segments {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return nil
		}
		cur, ok = m[seg]
		if !ok {
			return nil
		}
	}
	return cur
}

// normalizeNumbers collapses json.Number/float64/int to float64 so
// DeepEqual comparisons between freshly-decoded and previously-stored
// representations aren't defeated by incidental numeric type
// differences.
func normalizeNumbers(v interface{}) interface{} {
	switch t := v.(type) {
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return v
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))
		for k, v := range t {
			out[k] = normalizeNumbers(v)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, v := range t {
			out[i] = normalizeNumbers(v)
		}
		return out
	default:
		return v
	}
}
