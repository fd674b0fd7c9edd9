package version_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scimforge/core/version"
)

func TestStringRendersWeakETag(t *testing.T) {
	v := version.New("abc123")
	require.Equal(t, `W/"abc123"`, v.String())
}

func TestZeroVersionRendersEmpty(t *testing.T) {
	var v version.Version
	require.True(t, v.IsZero())
	require.Equal(t, "", v.String())
}

func TestEqualIsByteExact(t *testing.T) {
	a := version.New("abc")
	b := version.New("abc")
	c := version.New("xyz")
	require.True(t, a.Equal(b))
	require.False(t, a.Equal(c))
}

func TestParseRoundTrip(t *testing.T) {
	v := version.New("deadbeef")
	parsed, err := version.Parse(v.String())
	require.NoError(t, err)
	require.True(t, v.Equal(parsed))
}

func TestParseAcceptsBareQuotedForm(t *testing.T) {
	parsed, err := version.Parse(`"deadbeef"`)
	require.NoError(t, err)
	require.True(t, version.New("deadbeef").Equal(parsed))
}

func TestParseRejectsMalformed(t *testing.T) {
	_, err := version.Parse("not-a-version")
	require.Error(t, err)
}

func TestHashIsDeterministic(t *testing.T) {
	body := []byte(`{"userName":"jdoe"}`)
	a := version.Hash(body, "tenant-a", "User", "1")
	b := version.Hash(body, "tenant-a", "User", "1")
	require.True(t, a.Equal(b))
}

func TestHashVariesWithNonceAndTenant(t *testing.T) {
	body := []byte(`{"userName":"jdoe"}`)
	base := version.Hash(body, "tenant-a", "User", "1")

	differentNonce := version.Hash(body, "tenant-a", "User", "2")
	require.False(t, base.Equal(differentNonce))

	differentTenant := version.Hash(body, "tenant-b", "User", "1")
	require.False(t, base.Equal(differentTenant))
}
