package server

import (
	"context"

	"github.com/scimforge/core/provider"
	"github.com/scimforge/core/resource"
	"github.com/scimforge/core/resourcetype"
	"github.com/scimforge/core/scimerr"
	"github.com/scimforge/core/tenant"
	"github.com/scimforge/core/validation"
	"github.com/scimforge/core/version"
)

// Dispatch routes req to the handler its Kind names and returns a
// Response (spec §4.7 "Responsibilities per kind"). This is the
// in-process analogue of dwardin-scim/server.go's ServeHTTP, with the
// HTTP routing table replaced by a direct switch on OperationKind.
func (c *Core) Dispatch(ctx context.Context, req Request) Response {
	log := c.logger.With().Str("op", req.Kind.String()).Str("resourceType", req.ResourceType).Logger()
	log.Debug().Msg("dispatch")

	switch req.Kind {
	case OpGetSchemas, OpGetSchema:
		return c.dispatchDiscovery(req)
	}

	tnt := req.RequestCtx.EffectiveTenant()
	rt, ok := c.resourceTypes.Get(req.ResourceType)
	if !ok {
		return errResponse(scimerr.UnsupportedResourceTypeError(req.ResourceType))
	}

	opName, rtOp, tenantOp := permissionFor(req.Kind)
	if tenantOp != "" {
		if !rt.Allows(resourcetype.Operation(rtOp)) {
			return errResponse(scimerr.UnsupportedOperationError(opName, req.ResourceType))
		}
		if !tnt.Allows(tenantOp) {
			return errResponse(scimerr.PermissionDeniedError("tenant does not permit " + opName))
		}
	}

	p, ok := c.providers[req.ResourceType]
	if !ok {
		return errResponse(scimerr.UnsupportedResourceTypeError(req.ResourceType))
	}

	switch req.Kind {
	case OpCreate:
		return c.dispatchCreate(ctx, tnt, rt, p, req)
	case OpGet:
		return c.dispatchGet(ctx, tnt, rt, p, req)
	case OpExists:
		return c.dispatchExists(ctx, tnt, p, req)
	case OpUpdate:
		return c.dispatchUpdate(ctx, tnt, rt, p, req)
	case OpDelete:
		return c.dispatchDelete(ctx, tnt, p, req)
	case OpList, OpSearch:
		return c.dispatchList(ctx, tnt, rt, p, req)
	default:
		return errResponse(scimerr.InternalError("unrecognized operation kind"))
	}
}

// permissionFor maps an OperationKind to the name used in error
// messages, its resourcetype.Operation, and its tenant.Context.Allows
// name. Discovery kinds never reach this (handled in Dispatch before
// a resource type is resolved).
func permissionFor(k OperationKind) (name string, rtOp string, tenantOp string) {
	switch k {
	case OpCreate:
		return "create", "create", "create"
	case OpGet, OpExists:
		return "get", "get", "read"
	case OpUpdate:
		return "update", "update", "update"
	case OpDelete:
		return "delete", "delete", "delete"
	case OpList, OpSearch:
		return "list", "list", "list"
	default:
		return "", "", ""
	}
}

func (c *Core) dispatchCreate(ctx context.Context, tnt tenant.Context, rt resourcetype.ResourceType, p provider.StorageProvider, req Request) Response {
	res, verr := validation.Validate(c.schemas, req.Data, validation.Context{
		Operation:          validation.OperationCreate,
		BaseSchema:         rt.Schema.ID,
		RequiredExtensions: rt.RequiredExtensionURNs(),
	})
	if verr != nil {
		return errResponse(verr)
	}
	if uerr := c.checkUniqueness(ctx, tnt, rt, p, req.ResourceType, res.Raw(), ""); uerr != nil {
		return errResponse(uerr)
	}

	stored, err := p.Create(ctx, tnt, req.ResourceType, res.Raw())
	if err != nil {
		return errResponse(scimerr.ProviderFailureError(err))
	}
	out := storedToResource(rt, stored)
	return Response{Status: 201, Resource: &out}
}

func (c *Core) dispatchGet(ctx context.Context, tnt tenant.Context, rt resourcetype.ResourceType, p provider.StorageProvider, req Request) Response {
	stored, found, err := p.Get(ctx, tnt, req.ResourceType, req.ID)
	if err != nil {
		return errResponse(scimerr.ProviderFailureError(err))
	}
	if !found {
		return errResponse(scimerr.NotFoundError(req.ResourceType, req.ID))
	}
	out := storedToResource(rt, stored)
	return Response{Status: 200, Resource: &out}
}

func (c *Core) dispatchExists(ctx context.Context, tnt tenant.Context, p provider.StorageProvider, req Request) Response {
	_, found, err := p.Get(ctx, tnt, req.ResourceType, req.ID)
	if err != nil {
		return errResponse(scimerr.ProviderFailureError(err))
	}
	return Response{Status: 200, Exists: found}
}

func (c *Core) dispatchUpdate(ctx context.Context, tnt tenant.Context, rt resourcetype.ResourceType, p provider.StorageProvider, req Request) Response {
	current, found, err := p.Get(ctx, tnt, req.ResourceType, req.ID)
	if err != nil {
		return errResponse(scimerr.ProviderFailureError(err))
	}
	if !found {
		return errResponse(scimerr.NotFoundError(req.ResourceType, req.ID))
	}

	candidate := req.Data
	if candidate == nil {
		candidate = map[string]interface{}{}
	}
	candidate["id"] = req.ID

	res, verr := validation.Validate(c.schemas, candidate, validation.Context{
		Operation:          validation.OperationUpdate,
		BaseSchema:         rt.Schema.ID,
		RequiredExtensions: rt.RequiredExtensionURNs(),
		Previous:           current.Resource.Raw(),
	})
	if verr != nil {
		return errResponse(verr)
	}
	if uerr := c.checkUniqueness(ctx, tnt, rt, p, req.ResourceType, res.Raw(), req.ID); uerr != nil {
		return errResponse(uerr)
	}

	// Conditional enforcement degrades to unconditional only when the
	// provider can't support it at all (spec §4.7).
	var expected *version.Version
	conditional := p.SupportsConditional()
	if conditional && req.ExpectedVersion != nil {
		expected = req.ExpectedVersion
	}

	result, err := p.UpdateConditional(ctx, tnt, req.ResourceType, req.ID, res.Raw(), expected)
	if err != nil {
		return errResponse(scimerr.ProviderFailureError(err))
	}

	switch result.Kind {
	case provider.ResultNotFound:
		return errResponse(scimerr.NotFoundError(req.ResourceType, req.ID))
	case provider.ResultVersionMismatch:
		return errResponse(scimerr.VersionConflictError(result.Expected.String(), result.Current.String()))
	default:
		out := storedToResource(rt, result.Value)
		resp := Response{Status: 200, Resource: &out, Conditional: conditional && expected != nil}
		return resp
	}
}

func (c *Core) dispatchDelete(ctx context.Context, tnt tenant.Context, p provider.StorageProvider, req Request) Response {
	var expected *version.Version
	conditional := p.SupportsConditional()
	if conditional && req.ExpectedVersion != nil {
		expected = req.ExpectedVersion
	}

	result, err := p.DeleteConditional(ctx, tnt, req.ResourceType, req.ID, expected)
	if err != nil {
		return errResponse(scimerr.ProviderFailureError(err))
	}
	switch result.Kind {
	case provider.ResultNotFound:
		return errResponse(scimerr.NotFoundError(req.ResourceType, req.ID))
	case provider.ResultVersionMismatch:
		return errResponse(scimerr.VersionConflictError(result.Expected.String(), result.Current.String()))
	default:
		return Response{Status: 204, Conditional: conditional && expected != nil}
	}
}

func (c *Core) dispatchList(ctx context.Context, tnt tenant.Context, rt resourcetype.ResourceType, p provider.StorageProvider, req Request) Response {
	count := req.Pagination.Count
	if count <= 0 || count > c.defaultCount {
		count = c.defaultCount
	}
	startIndex := req.Pagination.StartIndex
	if startIndex < 1 {
		startIndex = defaultStartIndex
	}

	var all []resource.Resource
	total := 0
	err := p.List(ctx, tnt, req.ResourceType, func(s provider.Stored) bool {
		total++
		if total >= startIndex && len(all) < count {
			all = append(all, storedToResource(rt, s))
		}
		return true
	})
	if err != nil {
		return errResponse(scimerr.ProviderFailureError(err))
	}

	return Response{
		Status:       200,
		Resources:    all,
		TotalResults: total,
		ItemsPerPage: len(all),
		StartIndex:   startIndex,
	}
}
