package schema

// ServiceProviderConfig is the static capability document spec §6
// requires: "the defaults are: patch=false, bulk=false, filter=false,
// changePassword=false, sort=false, etag=true (when the bound provider
// supports conditional operations)."
type ServiceProviderConfig struct {
	Patch           bool `json:"patch"`
	Bulk            bool `json:"bulk"`
	Filter          bool `json:"filter"`
	ChangePassword  bool `json:"changePassword"`
	Sort            bool `json:"sort"`
	ETag            bool `json:"etag"`
}

// DefaultServiceProviderConfig returns the capability document spec §6
// mandates as the library default. ETag reflects whether the bound
// provider advertises conditional-operation support (spec §4.5
// supports_conditional); everything else is false because filter
// parsing, bulk, patch path expressions and sort are explicit
// Non-goals (spec §1).
func DefaultServiceProviderConfig(conditionalSupported bool) ServiceProviderConfig {
	return ServiceProviderConfig{
		Patch:          false,
		Bulk:           false,
		Filter:         false,
		ChangePassword: false,
		Sort:           false,
		ETag:           conditionalSupported,
	}
}
