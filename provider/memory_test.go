package provider_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scimforge/core/provider"
	"github.com/scimforge/core/tenant"
	"github.com/scimforge/core/version"
)

func acme() tenant.Context {
	return tenant.Context{TenantID: "acme", Permissions: tenant.AllowAll()}
}

func widgets() tenant.Context {
	return tenant.Context{TenantID: "widgets", Permissions: tenant.AllowAll()}
}

func TestCreateThenGetRoundTrips(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, acme(), "User", map[string]interface{}{
		"userName": "jdoe",
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.Resource.ID())
	require.False(t, created.Version.IsZero())

	got, found, err := store.Get(ctx, acme(), "User", created.Resource.ID())
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "jdoe", got.Resource.Raw()["userName"])
	require.True(t, created.Version.Equal(got.Version))
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	store := provider.NewMemoryStore()
	_, found, err := store.Get(context.Background(), acme(), "User", "does-not-exist")
	require.NoError(t, err)
	require.False(t, found)
}

func TestUpdateConditionalSucceedsWithMatchingVersion(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
	require.NoError(t, err)

	result, err := store.UpdateConditional(ctx, acme(), "User", created.Resource.ID(), map[string]interface{}{
		"userName": "jdoe2",
	}, &created.Version)
	require.NoError(t, err)
	require.Equal(t, provider.ResultSuccess, result.Kind)
	require.Equal(t, "jdoe2", result.Value.Resource.Raw()["userName"])
	require.False(t, result.Value.Version.Equal(created.Version), "update must mint a fresh version")
}

func TestUpdateConditionalConflictsOnStaleVersion(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
	require.NoError(t, err)

	stale := version.Hash([]byte("stale"), "acme", "User", "0")
	result, err := store.UpdateConditional(ctx, acme(), "User", created.Resource.ID(), map[string]interface{}{
		"userName": "jdoe2",
	}, &stale)
	require.NoError(t, err)
	require.Equal(t, provider.ResultVersionMismatch, result.Kind)
	require.True(t, stale.Equal(result.Expected))
	require.True(t, created.Version.Equal(result.Current))
}

func TestUpdateConditionalOnMissingIDReturnsNotFound(t *testing.T) {
	store := provider.NewMemoryStore()
	result, err := store.UpdateConditional(context.Background(), acme(), "User", "ghost", map[string]interface{}{}, nil)
	require.NoError(t, err)
	require.Equal(t, provider.ResultNotFound, result.Kind)
}

func TestDeleteConditionalSucceedsThenGetMisses(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
	require.NoError(t, err)

	result, err := store.DeleteConditional(ctx, acme(), "User", created.Resource.ID(), &created.Version)
	require.NoError(t, err)
	require.Equal(t, provider.ResultSuccess, result.Kind)

	_, found, err := store.Get(ctx, acme(), "User", created.Resource.ID())
	require.NoError(t, err)
	require.False(t, found)
}

func TestTenantsAreIsolated(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
	require.NoError(t, err)

	_, found, err := store.Get(ctx, widgets(), "User", created.Resource.ID())
	require.NoError(t, err)
	require.False(t, found, "a resource created under one tenant must not be visible under another")

	count := 0
	err = store.List(ctx, widgets(), "User", func(provider.Stored) bool {
		count++
		return true
	})
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func TestListStopsEarlyWhenYieldReturnsFalse(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
		require.NoError(t, err)
	}

	seen := 0
	err := store.List(ctx, acme(), "User", func(provider.Stored) bool {
		seen++
		return seen < 2
	})
	require.NoError(t, err)
	require.Equal(t, 2, seen)
}

func TestCheckUniqueDetectsCollisionWithinTenant(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
	require.NoError(t, err)

	collides, err := store.CheckUnique(ctx, acme(), "User", "userName", "jdoe", "", false)
	require.NoError(t, err)
	require.True(t, collides)

	clear, err := store.CheckUnique(ctx, acme(), "User", "userName", "nobody", "", false)
	require.NoError(t, err)
	require.False(t, clear)
}

func TestCheckUniqueExcludesOwnID(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	created, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
	require.NoError(t, err)

	collides, err := store.CheckUnique(ctx, acme(), "User", "userName", "jdoe", created.Resource.ID(), false)
	require.NoError(t, err)
	require.False(t, collides, "a resource must not collide with itself")
}

func TestCheckUniqueGlobalScopeCrossesTenants(t *testing.T) {
	store := provider.NewMemoryStore()
	ctx := context.Background()

	_, err := store.Create(ctx, acme(), "User", map[string]interface{}{"userName": "jdoe"})
	require.NoError(t, err)

	withinOther, err := store.CheckUnique(ctx, widgets(), "User", "userName", "jdoe", "", false)
	require.NoError(t, err)
	require.False(t, withinOther, "server-scoped uniqueness must not see across tenants")

	global, err := store.CheckUnique(ctx, widgets(), "User", "userName", "jdoe", "", true)
	require.NoError(t, err)
	require.True(t, global, "global-scoped uniqueness must see across tenants")
}

func TestSupportsConditionalIsTrue(t *testing.T) {
	store := provider.NewMemoryStore()
	require.True(t, store.SupportsConditional())
}
