package schema

import (
	"fmt"
	"strings"
)

// Registry is the schema engine (spec §4.1): a mapping from schema URN
// to Schema, always containing the SCIM core User and Group schemas,
// frozen once Freeze is called.
//
// Grounded on dwardin-scim/server.go's Server.getSchema/getSchemas
// (which walked a []ResourceType to find schemas by ID) generalized
// into a real lookup table, since the teacher has no registry type of
// its own — schemas lived scattered across ResourceType values.
type Registry struct {
	schemas map[string]Schema
	order   []string
	frozen  bool
}

// NewRegistry returns a Registry pre-loaded with the core User, Group,
// and EnterpriseUser schemas (spec §6).
func NewRegistry() *Registry {
	r := &Registry{schemas: map[string]Schema{}}
	for _, s := range []Schema{CoreUser(), CoreGroup(), CoreEnterpriseUser()} {
		if err := r.Register(s); err != nil {
			panic(fmt.Sprintf("schema: failed to register built-in schema %q: %v", s.ID, err))
		}
	}
	return r
}

// Register adds a schema to the registry. Fails if the URN is already
// present, the registry is frozen, or the schema fails structural
// validation (spec §4.1 "Validation at registration").
func (r *Registry) Register(s Schema) error {
	if r.frozen {
		return fmt.Errorf("schema: registry is frozen, cannot register %q", s.ID)
	}
	if _, exists := r.schemas[s.ID]; exists {
		return fmt.Errorf("schema: urn %q is already registered", s.ID)
	}
	if err := s.validateStructure(); err != nil {
		return err
	}
	r.schemas[s.ID] = s
	r.order = append(r.order, s.ID)
	return nil
}

// Freeze marks the registry immutable; additional schemas are
// registered only at initialization (spec §3 "Lifecycles").
func (r *Registry) Freeze() {
	r.frozen = true
}

// Get performs a read-only lookup by URN.
func (r *Registry) Get(urn string) (Schema, bool) {
	s, ok := r.schemas[urn]
	return s, ok
}

// All returns every registered schema in registration order.
func (r *Registry) All() []Schema {
	out := make([]Schema, 0, len(r.order))
	for _, urn := range r.order {
		out = append(out, r.schemas[urn])
	}
	return out
}

// ResolveAttribute implements spec §4.1's resolve_attribute: given a
// resource's declared schemas and a dotted attribute path (optionally
// prefixed with a full extension URN, e.g.
// "urn:ietf:params:scim:schemas:extension:enterprise:2.0:User:manager"),
// returns the governing AttributeDefinition.
func (r *Registry) ResolveAttribute(schemaURNs []string, path string) (AttributeDefinition, error) {
	urn, rest := splitURNPrefixedPath(path)

	candidates := schemaURNs
	if urn != "" {
		candidates = []string{urn}
	}

	segments := strings.Split(rest, ".")
	if len(segments) == 0 || segments[0] == "" {
		return AttributeDefinition{}, fmt.Errorf("schema: empty attribute path")
	}

	for _, su := range candidates {
		s, ok := r.schemas[su]
		if !ok {
			continue
		}
		attr, ok := s.Attributes.ByName(segments[0])
		if !ok {
			continue
		}
		if len(segments) == 1 {
			return attr, nil
		}
		sub, ok := attr.SubAttributes().ByName(segments[1])
		if !ok {
			return AttributeDefinition{}, unknownAttributeErr(su, path)
		}
		return sub, nil
	}
	return AttributeDefinition{}, unknownAttributeErr(strings.Join(schemaURNs, ","), path)
}

// KnownAnywhere reports whether path names a real attribute in some
// schema registered in r, independent of whether that schema is among
// the caller-supplied candidates ResolveAttribute was scoped to. It
// lets a caller distinguish a genuinely unknown attribute name from
// one that exists but belongs to a schema the resource didn't declare
// (spec §4.3 phase 3's "Schema Engine yields its AttributeDefinition"
// failing outright, vs. phase 6's "attributes not declared in any of
// the resource's declared schemas are rejected").
func (r *Registry) KnownAnywhere(path string) bool {
	urn, rest := splitURNPrefixedPath(path)
	segments := strings.Split(rest, ".")
	if len(segments) == 0 || segments[0] == "" {
		return false
	}

	search := r.order
	if urn != "" {
		if _, ok := r.schemas[urn]; !ok {
			return false
		}
		search = []string{urn}
	}

	for _, su := range search {
		attr, ok := r.schemas[su].Attributes.ByName(segments[0])
		if !ok {
			continue
		}
		if len(segments) == 1 {
			return true
		}
		if _, ok := attr.SubAttributes().ByName(segments[1]); ok {
			return true
		}
	}
	return false
}

func unknownAttributeErr(schemaURNs, path string) error {
	return fmt.Errorf("schema: %w: path %q not declared in schemas [%s]", errUnknownAttributeForSchema, path, schemaURNs)
}

var errUnknownAttributeForSchema = fmt.Errorf("unknown attribute for schema")

// splitURNPrefixedPath separates a full-URN-qualified path (the
// attribute path is everything after the last ':' once the prefix
// itself parses as a well-formed URN) from a plain dotted path.
func splitURNPrefixedPath(path string) (urn, rest string) {
	idx := strings.LastIndex(path, ":")
	if idx < 0 {
		return "", path
	}
	prefix, tail := path[:idx], path[idx+1:]
	if IsWellFormedURN(prefix) {
		return prefix, tail
	}
	return "", path
}
