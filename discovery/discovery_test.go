package discovery_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scimforge/core/discovery"
	"github.com/scimforge/core/resourcetype"
	"github.com/scimforge/core/schema"
)

func TestSchemasReturnsPreloadedCoreSchemas(t *testing.T) {
	reg := schema.NewRegistry()
	schemas := discovery.Schemas(reg)
	var found bool
	for _, s := range schemas {
		if s.ID == schema.UserSchema {
			found = true
		}
	}
	require.True(t, found)
}

func TestSchemaLooksUpByURN(t *testing.T) {
	reg := schema.NewRegistry()
	s, ok := discovery.Schema(reg, schema.GroupSchema)
	require.True(t, ok)
	require.Equal(t, schema.GroupSchema, s.ID)

	_, ok = discovery.Schema(reg, "urn:example:nope")
	require.False(t, ok)
}

func TestResourceTypesAndResourceType(t *testing.T) {
	reg := resourcetype.NewRegistry()
	require.NoError(t, reg.Register(resourcetype.ResourceType{
		Name: "User", Endpoint: "/Users", Schema: schema.CoreUser(),
	}))

	all := discovery.ResourceTypes(reg)
	require.Len(t, all, 1)

	rt, ok := discovery.ResourceType(reg, "User")
	require.True(t, ok)
	require.Equal(t, "/Users", rt.Endpoint)

	_, ok = discovery.ResourceType(reg, "Device")
	require.False(t, ok)
}

func TestServiceProviderConfigDocumentWireShape(t *testing.T) {
	cfg := schema.DefaultServiceProviderConfig(true)
	doc := discovery.ServiceProviderConfigDocument(cfg)

	etag, ok := doc["etag"].(map[string]bool)
	require.True(t, ok)
	require.True(t, etag["supported"])

	patch, ok := doc["patch"].(map[string]bool)
	require.True(t, ok)
	require.False(t, patch["supported"])
}
