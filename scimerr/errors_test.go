package scimerr_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scimforge/core/scimerr"
)

func TestErrorIncludesAttributeWhenSet(t *testing.T) {
	e := scimerr.New(scimerr.MissingSchemas, 400, "schemas is required")
	require.NotContains(t, e.Error(), "attribute")

	withAttr := e.WithAttribute("emails.type")
	require.Contains(t, withAttr.Error(), `"emails.type"`)
	require.Equal(t, "", e.Attribute, "WithAttribute must not mutate the receiver")
}

func TestProviderFailureErrorUnwraps(t *testing.T) {
	cause := errors.New("connection refused")
	e := scimerr.ProviderFailureError(cause)
	require.Equal(t, scimerr.ProviderFailure, e.Code)
	require.True(t, errors.Is(e, cause))
}

func TestVersionConflictErrorCarriesExpectedAndCurrent(t *testing.T) {
	e := scimerr.VersionConflictError(`W/"v1"`, `W/"v2"`)
	require.Equal(t, scimerr.VersionConflict, e.Code)
	require.Equal(t, 409, e.Status)
	require.Equal(t, `W/"v1"`, e.Expected)
	require.Equal(t, `W/"v2"`, e.Current)
}

func TestNotFoundErrorMessageIncludesIdentifiers(t *testing.T) {
	e := scimerr.NotFoundError("User", "1234")
	require.Equal(t, scimerr.NotFound, e.Code)
	require.Equal(t, 404, e.Status)
	require.Contains(t, e.Detail, "User")
	require.Contains(t, e.Detail, "1234")
}

func TestUnsupportedOperationErrorMessage(t *testing.T) {
	e := scimerr.UnsupportedOperationError("create", "Group")
	require.Equal(t, scimerr.UnsupportedOperation, e.Code)
	require.Contains(t, e.Detail, "create")
	require.Contains(t, e.Detail, "Group")
}

func TestCodeStringMatchesName(t *testing.T) {
	require.Equal(t, "InvalidCanonicalValue", scimerr.InvalidCanonicalValue.String())
	require.Equal(t, "VersionConflict", scimerr.VersionConflict.String())
}
