// Package tenant implements the multi-tenant isolation and permission
// layer of spec §3/§4.6: an immutable (tenant, client, isolation,
// permissions) tuple constructed outside the core and consumed as
// opaque authority.
package tenant

// Isolation is the tenant's isolation level (spec §3 "TenantContext").
// It is informational at the permissions layer — honoring it is the
// provider's job (spec §4.6).
type Isolation int

const (
	IsolationStandard Isolation = iota
	IsolationStrict
	IsolationShared
)

func (i Isolation) String() string {
	switch i {
	case IsolationStrict:
		return "strict"
	case IsolationShared:
		return "shared"
	default:
		return "standard"
	}
}

// DefaultTenantID names the implicit namespace used when a request
// carries no TenantContext (spec §3 "RequestContext").
const DefaultTenantID = "default"

// Permissions are per-operation booleans plus optional per-resource-type
// caps (spec §4.6).
type Permissions struct {
	Create bool
	Read   bool
	Update bool
	Delete bool
	List   bool

	// MaxResources, when non-nil, caps the number of resources of a
	// given type this tenant may hold. Enforcement against the
	// current count is the provider's responsibility; this is the
	// declared cap the handler can surface to callers.
	MaxResources map[string]int
}

// AllowAll returns a Permissions value with every operation allowed
// and no resource caps — the default for the implicit tenant.
func AllowAll() Permissions {
	return Permissions{Create: true, Read: true, Update: true, Delete: true, List: true}
}

// Context is the immutable tuple spec §3 calls TenantContext.
// Constructed once outside the core (e.g. by an authentication
// middleware) and passed by value thereafter.
type Context struct {
	TenantID    string
	ClientID    string
	Isolation   Isolation
	Permissions Permissions
}

// Default returns the implicit tenant context used when a request
// carries none (spec §3 "RequestContext ... If absent, operations
// execute in an implicit 'default' tenant namespace").
func Default() Context {
	return Context{TenantID: DefaultTenantID, Permissions: AllowAll()}
}

// Allows reports whether this tenant may perform the named operation.
// op is one of "create", "read", "update", "delete", "list".
func (c Context) Allows(op string) bool {
	switch op {
	case "create":
		return c.Permissions.Create
	case "read":
		return c.Permissions.Read
	case "update":
		return c.Permissions.Update
	case "delete":
		return c.Permissions.Delete
	case "list":
		return c.Permissions.List
	default:
		return false
	}
}
