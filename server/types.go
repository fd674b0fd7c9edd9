// Package server implements the Operation Handler (spec §4.7): a
// transport-independent Request/Response dispatcher that wires the
// Schema Engine, Validation Pipeline, Tenant Context, and Storage
// Provider together behind a single Dispatch call.
//
// Grounded on dwardin-scim/server.go's Server/ServeHTTP (the dispatch
// switch, the per-resource-type routing table, and the
// parseRequestParams pagination-bounds logic are kept); the HTTP
// transport itself (net/http request/response, URL routing,
// errorHandler writing to http.ResponseWriter) is dropped since a
// transport-agnostic core must not depend on net/http (spec §4.7
// "specified abstractly in this core"). See DESIGN.md.
package server

import (
	"github.com/scimforge/core/provider"
	"github.com/scimforge/core/resource"
	"github.com/scimforge/core/resourcetype"
	"github.com/scimforge/core/schema"
	"github.com/scimforge/core/scimerr"
	"github.com/scimforge/core/tenant"
	"github.com/scimforge/core/version"
)

// OperationKind is the Request's operation kind (spec §4.7 "Create |
// Get | Update | Delete | List | Search | GetSchemas | GetSchema |
// Exists").
type OperationKind int

const (
	OpCreate OperationKind = iota
	OpGet
	OpUpdate
	OpDelete
	OpList
	OpSearch
	OpGetSchemas
	OpGetSchema
	OpExists
)

func (k OperationKind) String() string {
	switch k {
	case OpCreate:
		return "create"
	case OpGet:
		return "get"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	case OpList:
		return "list"
	case OpSearch:
		return "search"
	case OpGetSchemas:
		return "getSchemas"
	case OpGetSchema:
		return "getSchema"
	case OpExists:
		return "exists"
	default:
		return "unknown"
	}
}

// ListParams bounds a List/Search request (spec §4.7 "optional query
// ... pagination cursors — specified abstractly in this core"),
// generalized from dwardin-scim/server.go's ListRequestParams.
type ListParams struct {
	StartIndex int
	Count      int
}

// Request is the Operation Handler's transport-independent request
// shape (spec §4.7 "Request shape").
type Request struct {
	Kind         OperationKind
	ResourceType string
	ID           string
	Data         map[string]interface{}
	Pagination   ListParams
	RequestCtx   tenant.RequestContext

	// ExpectedVersion, when non-nil, asks Update/Delete to degrade to
	// unconditional semantics only when the provider can't support
	// conditional operations at all (spec §4.7 "fall back ...
	// losing conflict detection").
	ExpectedVersion *version.Version
}

// Response is the Operation Handler's transport-independent response
// shape. Exactly one of Resource/Resources/Err is meaningful,
// depending on Kind.
type Response struct {
	Status int
	Err    *scimerr.Error

	Resource *resource.Resource

	Resources    []resource.Resource
	TotalResults int
	ItemsPerPage int
	StartIndex   int

	// Conditional reports whether this mutation ran under version
	// enforcement, so callers can tell a degraded (non-conditional)
	// success from a verified one (spec §4.7 "the response must
	// reflect this ... only on non-conditional paths").
	Conditional bool

	Exists bool

	Schemas      []interface{}
	ResourceType interface{}
	Config       interface{}
}

func errResponse(err *scimerr.Error) Response {
	return Response{Status: err.Status, Err: err}
}

// storedToResource renders a provider's stored record into the
// response shape: it stamps the provider-owned version into meta,
// then strips every writeOnly and returned=never attribute the
// resource type's schema and extensions declare (spec §6 "Wire
// payload contract"), so no caller of Dispatch can ever observe one
// of those fields, regardless of which handler produced the Response.
func storedToResource(rt resourcetype.ResourceType, s provider.Stored) resource.Resource {
	r := s.Resource
	meta := r.Meta()
	meta.Version = s.Version.String()
	r.SetMeta(meta)

	schemas := make([]schema.Schema, 0, 1+len(rt.SchemaExtensions))
	schemas = append(schemas, rt.WithCommonAttributes())
	for _, ext := range rt.SchemaExtensions {
		schemas = append(schemas, ext.Schema)
	}
	return resource.StripNonReturnable(r, schemas...)
}
