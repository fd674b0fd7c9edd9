// Package provider defines the storage capability interface (spec
// §4.5) and the Versioned Resource Provider contract the core
// dispatches through: CRUD plus optional conditional CRUD, keyed by
// (tenant, type, id).
package provider

import (
	"context"

	"github.com/scimforge/core/resource"
	"github.com/scimforge/core/tenant"
	"github.com/scimforge/core/version"
)

// Stored pairs a Resource with the version describing it.
type Stored struct {
	Resource resource.Resource
	Version  version.Version
}

// ResultKind discriminates the ConditionalResult sum type (spec §3).
type ResultKind int

const (
	ResultSuccess ResultKind = iota
	ResultVersionMismatch
	ResultNotFound
)

// ConditionalResult is the sum type spec §3 calls
// ConditionalResult<T>: Success(T) | VersionMismatch{expected,current} | NotFound.
type ConditionalResult struct {
	Kind     ResultKind
	Value    Stored
	Expected version.Version
	Current  version.Version
}

func Success(v Stored) ConditionalResult {
	return ConditionalResult{Kind: ResultSuccess, Value: v}
}

func VersionMismatch(expected, current version.Version) ConditionalResult {
	return ConditionalResult{Kind: ResultVersionMismatch, Expected: expected, Current: current}
}

func NotFound() ConditionalResult {
	return ConditionalResult{Kind: ResultNotFound}
}

// StorageProvider is the capability interface a storage backend must
// satisfy (spec §4.5). Every method is a suspension point (spec §5).
type StorageProvider interface {
	Create(ctx context.Context, tnt tenant.Context, resourceType string, data map[string]interface{}) (Stored, error)
	Get(ctx context.Context, tnt tenant.Context, resourceType, id string) (Stored, bool, error)
	// List is lazy and finite; implementations stream through the
	// yield callback and stop early if it returns false.
	List(ctx context.Context, tnt tenant.Context, resourceType string, yield func(Stored) bool) error
	UpdateConditional(ctx context.Context, tnt tenant.Context, resourceType, id string, data map[string]interface{}, expected *version.Version) (ConditionalResult, error)
	DeleteConditional(ctx context.Context, tnt tenant.Context, resourceType, id string, expected *version.Version) (ConditionalResult, error)
	SupportsConditional() bool
}

// UniquenessChecker is an optional capability (spec §9 Open Question
// resolution): a provider that can answer "does any other resource of
// this type in this tenant (or, when global is set, in any tenant)
// already have this value for this attribute?" so the validation
// cascade's phase 6 uniqueness classes (UniquenessViolationServer/
// Global) can be enforced. Unlike SupportsConditional, which every
// StorageProvider implements, it is detected via type assertion.
type UniquenessChecker interface {
	CheckUnique(ctx context.Context, tnt tenant.Context, resourceType, attributePath string, value interface{}, excludeID string, global bool) (bool, error)
}
