package server_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/scimforge/core/provider"
	"github.com/scimforge/core/resourcetype"
	"github.com/scimforge/core/schema"
	"github.com/scimforge/core/scimerr"
	"github.com/scimforge/core/server"
	"github.com/scimforge/core/tenant"
	"github.com/scimforge/core/version"
)

// DispatchSuite exercises the Operation Handler's full request
// lifecycle end to end (spec §4.7), the way dwardin-scim tests
// ServeHTTP against an in-memory ResourceHandler.
type DispatchSuite struct {
	suite.Suite
	core *server.Core
	rt   resourcetype.ResourceType
}

func (s *DispatchSuite) SetupTest() {
	s.rt = resourcetype.ResourceType{
		Name:     "User",
		Endpoint: "/Users",
		Schema:   schema.CoreUser(),
	}
	s.core = server.NewCore(
		server.WithResourceType(s.rt, provider.NewMemoryStore()),
	)
}

func (s *DispatchSuite) ctxFor(t tenant.Context) tenant.RequestContext {
	return tenant.RequestContext{RequestID: "req-1", Tenant: &t}
}

func (s *DispatchSuite) defaultCtx() tenant.RequestContext {
	return s.ctxFor(tenant.Context{TenantID: "acme", Permissions: tenant.AllowAll()})
}

func (s *DispatchSuite) create(userName string) server.Response {
	return s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpCreate,
		ResourceType: "User",
		Data:         map[string]interface{}{"schemas": []interface{}{schema.UserSchema}, "userName": userName},
		RequestCtx:   s.defaultCtx(),
	})
}

func (s *DispatchSuite) TestCreateThenGet() {
	created := s.create("jdoe")
	s.Require().Nil(created.Err)
	s.Require().Equal(201, created.Status)
	s.Require().NotNil(created.Resource)
	id := created.Resource.ID()
	s.Require().NotEmpty(id)

	got := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpGet,
		ResourceType: "User",
		ID:           id,
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().Nil(got.Err)
	s.Require().Equal("jdoe", got.Resource.Raw()["userName"])
}

func (s *DispatchSuite) TestPasswordStrippedFromCreateAndGetResponse() {
	created := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpCreate,
		ResourceType: "User",
		Data: map[string]interface{}{
			"schemas":  []interface{}{schema.UserSchema},
			"userName": "jdoe",
			"password": "hunter2",
		},
		RequestCtx: s.defaultCtx(),
	})
	s.Require().Nil(created.Err)
	s.Require().NotNil(created.Resource)
	s.Require().NotContains(created.Resource.Raw(), "password")
	id := created.Resource.ID()

	got := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpGet,
		ResourceType: "User",
		ID:           id,
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().Nil(got.Err)
	s.Require().NotContains(got.Resource.Raw(), "password")
}

func (s *DispatchSuite) TestCreateRejectsDuplicateUserNameWithinTenant() {
	first := s.create("jdoe")
	s.Require().Nil(first.Err)

	second := s.create("jdoe")
	s.Require().NotNil(second.Err)
	s.Require().Equal(scimerr.UniquenessViolationServer, second.Err.Code)
	s.Require().Equal("userName", second.Err.Attribute)
}

func (s *DispatchSuite) TestUpdateRejectsDuplicateUserNameAcrossResources() {
	first := s.create("jdoe")
	s.Require().Nil(first.Err)
	second := s.create("asmith")
	s.Require().Nil(second.Err)

	updated := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpUpdate,
		ResourceType: "User",
		ID:           second.Resource.ID(),
		Data:         map[string]interface{}{"schemas": []interface{}{schema.UserSchema}, "userName": "jdoe", "meta": map[string]interface{}{}},
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().NotNil(updated.Err)
	s.Require().Equal(scimerr.UniquenessViolationServer, updated.Err.Code)
}

func (s *DispatchSuite) TestUpdateAllowsReassertingOwnUserName() {
	created := s.create("jdoe")
	s.Require().Nil(created.Err)

	updated := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpUpdate,
		ResourceType: "User",
		ID:           created.Resource.ID(),
		Data:         map[string]interface{}{"schemas": []interface{}{schema.UserSchema}, "userName": "jdoe", "active": true, "meta": map[string]interface{}{}},
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().Nil(updated.Err)
}

func (s *DispatchSuite) TestGetMissingReturns404() {
	got := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpGet,
		ResourceType: "User",
		ID:           "missing",
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().NotNil(got.Err)
	s.Require().Equal(scimerr.NotFound, got.Err.Code)
	s.Require().Equal(404, got.Status)
}

func (s *DispatchSuite) TestUpdateConditionalSuccessThenConflict() {
	created := s.create("jdoe")
	s.Require().Nil(created.Err)
	id := created.Resource.ID()
	v, err := version.Parse(created.Resource.Meta().Version)
	s.Require().NoError(err)

	updated := s.core.Dispatch(context.Background(), server.Request{
		Kind:            server.OpUpdate,
		ResourceType:    "User",
		ID:              id,
		Data:            map[string]interface{}{"schemas": []interface{}{schema.UserSchema}, "userName": "jdoe2", "meta": map[string]interface{}{}},
		RequestCtx:      s.defaultCtx(),
		ExpectedVersion: &v,
	})
	s.Require().Nil(updated.Err)
	s.Require().True(updated.Conditional)
	s.Require().Equal("jdoe2", updated.Resource.Raw()["userName"])

	conflict := s.core.Dispatch(context.Background(), server.Request{
		Kind:            server.OpUpdate,
		ResourceType:    "User",
		ID:              id,
		Data:            map[string]interface{}{"schemas": []interface{}{schema.UserSchema}, "userName": "jdoe3", "meta": map[string]interface{}{}},
		RequestCtx:      s.defaultCtx(),
		ExpectedVersion: &v,
	})
	s.Require().NotNil(conflict.Err)
	s.Require().Equal(scimerr.VersionConflict, conflict.Err.Code)
}

func (s *DispatchSuite) TestDeleteThenGetMisses() {
	created := s.create("jdoe")
	id := created.Resource.ID()

	deleted := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpDelete,
		ResourceType: "User",
		ID:           id,
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().Nil(deleted.Err)
	s.Require().Equal(204, deleted.Status)

	got := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpGet,
		ResourceType: "User",
		ID:           id,
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().NotNil(got.Err)
	s.Require().Equal(scimerr.NotFound, got.Err.Code)
}

func (s *DispatchSuite) TestListReturnsCreatedResources() {
	s.create("jdoe")
	s.create("asmith")

	listed := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpList,
		ResourceType: "User",
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().Nil(listed.Err)
	s.Require().Equal(2, listed.TotalResults)
	s.Require().Len(listed.Resources, 2)
}

func (s *DispatchSuite) TestCrossTenantIsolation() {
	created := s.create("jdoe")
	id := created.Resource.ID()

	other := s.ctxFor(tenant.Context{TenantID: "widgets", Permissions: tenant.AllowAll()})
	got := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpGet,
		ResourceType: "User",
		ID:           id,
		RequestCtx:   other,
	})
	s.Require().NotNil(got.Err)
	s.Require().Equal(scimerr.NotFound, got.Err.Code)
}

func (s *DispatchSuite) TestTenantPermissionDenied() {
	readOnly := s.ctxFor(tenant.Context{
		TenantID:    "acme",
		Permissions: tenant.Permissions{Read: true, List: true},
	})
	resp := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpCreate,
		ResourceType: "User",
		Data:         map[string]interface{}{"userName": "jdoe"},
		RequestCtx:   readOnly,
	})
	s.Require().NotNil(resp.Err)
	s.Require().Equal(scimerr.PermissionDenied, resp.Err.Code)
}

func (s *DispatchSuite) TestResourceTypePermissionDenied() {
	restricted := resourcetype.ResourceType{
		Name:      "Group",
		Endpoint:  "/Groups",
		Schema:    schema.CoreGroup(),
		Permitted: map[resourcetype.Operation]bool{resourcetype.OperationGet: true},
	}
	core := server.NewCore(
		server.WithResourceType(restricted, provider.NewMemoryStore()),
	)
	resp := core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpCreate,
		ResourceType: "Group",
		Data:         map[string]interface{}{"displayName": "Admins"},
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().NotNil(resp.Err)
	s.Require().Equal(scimerr.UnsupportedOperation, resp.Err.Code)

	exists := core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpExists,
		ResourceType: "Group",
		ID:           "whatever",
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().Nil(exists.Err, "Get/Exists must still resolve against the resourcetype vocabulary, not the tenant one")
}

func (s *DispatchSuite) TestUnknownResourceType() {
	resp := s.core.Dispatch(context.Background(), server.Request{
		Kind:         server.OpGet,
		ResourceType: "Device",
		ID:           "1",
		RequestCtx:   s.defaultCtx(),
	})
	s.Require().NotNil(resp.Err)
	s.Require().Equal(scimerr.UnsupportedResourceType, resp.Err.Code)
}

func (s *DispatchSuite) TestDiscoveryDocuments() {
	resp := s.core.Dispatch(context.Background(), server.Request{Kind: server.OpGetSchemas})
	s.Require().Nil(resp.Err)
	s.Require().NotEmpty(resp.Schemas)

	single := s.core.Dispatch(context.Background(), server.Request{Kind: server.OpGetSchema, ID: schema.UserSchema})
	s.Require().Nil(single.Err)

	missing := s.core.Dispatch(context.Background(), server.Request{Kind: server.OpGetSchema, ID: "urn:example:nope"})
	s.Require().NotNil(missing.Err)
	s.Require().Equal(scimerr.NotFound, missing.Err.Code)
}

func TestDispatchSuite(t *testing.T) {
	suite.Run(t, new(DispatchSuite))
}
