// Package version implements the RFC 7232 weak-ETag versioning layer
// (spec §4.5/§6): an opaque byte sequence compared by equality and
// rendered at the transport boundary as `W/"<opaque>"`.
//
// No teacher code exists for this layer (dwardin-scim's elimity-com/scim
// fork never implemented ETags), so this package is new code written
// in the teacher's texture: a small value type with a custom
// MarshalJSON, the same shape as dwardin-scim/list_response.go.
package version

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Version is an opaque version token. Two Versions are equal exactly
// when their underlying bytes match (spec §3 "Version").
type Version struct {
	opaque string
}

// New wraps an opaque token produced by a provider (or by Hash
// below). Backends may use any scheme — sequence numbers, UUIDs,
// content hashes — versions are treated as opaque (spec §9 "Version
// scheme independence").
func New(opaque string) Version {
	return Version{opaque: opaque}
}

// IsZero reports whether this is the unset Version (no version
// information available, e.g. the provider doesn't support
// conditional operations).
func (v Version) IsZero() bool {
	return v.opaque == ""
}

// Equal implements spec §8's "Version comparison must be reflexive,
// symmetric, and transitive": byte-for-byte equality of the opaque
// body, independent of the `W/` rendering.
func (v Version) Equal(other Version) bool {
	return v.opaque == other.opaque
}

// String renders v as a weak ETag: `W/"<opaque>"` (spec §6).
func (v Version) String() string {
	if v.IsZero() {
		return ""
	}
	return fmt.Sprintf(`W/"%s"`, v.opaque)
}

// MarshalJSON renders the weak-ETag string form.
func (v Version) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.String())
}

// Parse reads a weak ETag of the form `W/"<opaque>"` back into a
// Version (spec §8: "Weak-ETag rendering must round-trip through
// parse/render"). The `W/` prefix is syntactic sugar (spec §6); a bare
// quoted token is also accepted for leniency.
func Parse(raw string) (Version, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "W/")
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return Version{}, fmt.Errorf("version: %q is not a well-formed weak ETag", raw)
	}
	return Version{opaque: s[1 : len(s)-1]}, nil
}

// Hash computes the library's reference version scheme (spec §4.5
// "recommended default"): a deterministic hash over the canonical
// serialization of the resource, the tenant, the resource type, and a
// monotonic nonce (the caller supplies the last-modified timestamp or
// an incrementing counter as nonce). Backends are free to substitute
// any other opaque scheme.
func Hash(canonicalJSON []byte, tenant, resourceType, nonce string) Version {
	h := sha256.New()
	h.Write([]byte(tenant))
	h.Write([]byte{0})
	h.Write([]byte(resourceType))
	h.Write([]byte{0})
	h.Write([]byte(nonce))
	h.Write([]byte{0})
	h.Write(canonicalJSON)
	return Version{opaque: hex.EncodeToString(h.Sum(nil))}
}
