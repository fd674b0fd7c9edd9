package server

import (
	"encoding/json"

	"github.com/scimforge/core/resource"
)

// ListResponse is the RFC 7644 §3.4.2 query-response envelope,
// generalized from dwardin-scim/list_response.go's listResponse to
// wrap the typed []resource.Resource a Response carries instead of an
// untyped interface{}.
type ListResponse struct {
	TotalResults int
	ItemsPerPage int
	StartIndex   int
	Resources    []resource.Resource
}

// FromResponse builds the envelope for a List/Search Response.
func FromResponse(r Response) ListResponse {
	return ListResponse{
		TotalResults: r.TotalResults,
		ItemsPerPage: r.ItemsPerPage,
		StartIndex:   r.StartIndex,
		Resources:    r.Resources,
	}
}

func (l ListResponse) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Schemas      []string    `json:"schemas,omitempty"`
		TotalResults int         `json:"totalResults,omitempty"`
		ItemsPerPage int         `json:"itemsPerPage,omitempty"`
		StartIndex   int         `json:"startIndex,omitempty"`
		Resources    interface{} `json:"Resources,omitempty"`
	}{
		Schemas:      []string{"urn:ietf:params:scim:api:messages:2.0:ListResponse"},
		TotalResults: l.TotalResults,
		ItemsPerPage: l.ItemsPerPage,
		StartIndex:   l.StartIndex,
		Resources:    l.Resources,
	})
}
