package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/scimforge/core/resource"
	"github.com/scimforge/core/tenant"
	"github.com/scimforge/core/version"
)

// tenantStore holds every resource type's resources for a single
// tenant, guarded by its own lock so that mutations in one tenant
// never block another (spec §9 "production providers should shard by
// tenant").
type tenantStore struct {
	mu      sync.RWMutex
	byType  map[string]map[string]Stored
	nonceCt int64
}

func newTenantStore() *tenantStore {
	return &tenantStore{byType: map[string]map[string]Stored{}}
}

// MemoryStore is the library's reference in-memory StorageProvider
// (spec §4.5/§9): a tenant-keyed map, a per-tenant write guard ("the
// reference in-memory provider takes a tenant-global write guard for
// each mutation"), google/uuid id assignment, and the reference
// content-hash version scheme.
//
// Grounded on spec §4.5/§9 directly — the teacher
// (dwardin-scim/elimity-com/scim fork) has no storage abstraction of
// its own, delegating entirely to a caller-supplied ResourceHandler
// with no version contract, so this is new code written in the
// teacher's texture (a flat struct wrapping a lock-protected map, the
// same shape dwardin-scim/server.go's Server wraps a []ResourceType).
type MemoryStore struct {
	mu      sync.RWMutex
	tenants map[string]*tenantStore
	clock   func() time.Time
	logger  *zerolog.Logger
}

// NewMemoryStore returns a ready-to-use reference provider.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		tenants: map[string]*tenantStore{},
		clock:   time.Now,
	}
}

// WithLogger attaches a zerolog.Logger for ambient operation logging
// (SPEC_FULL.md "AMBIENT STACK"). Nil-safe: logging is skipped if
// never set.
func (m *MemoryStore) WithLogger(l zerolog.Logger) *MemoryStore {
	m.logger = &l
	return m
}

func (m *MemoryStore) log(event, tnt, resourceType, id string) {
	if m.logger == nil {
		return
	}
	m.logger.Debug().
		Str("event", event).
		Str("tenant", tnt).
		Str("resourceType", resourceType).
		Str("id", id).
		Msg("memory provider")
}

func (m *MemoryStore) storeFor(tnt string) *tenantStore {
	m.mu.Lock()
	defer m.mu.Unlock()
	ts, ok := m.tenants[tnt]
	if !ok {
		ts = newTenantStore()
		m.tenants[tnt] = ts
	}
	return ts
}

func canonicalJSON(data map[string]interface{}) []byte {
	// encoding/json sorts map[string]interface{} keys
	// lexicographically, giving a deterministic serialization
	// suitable for content hashing without a separate canonicalizer.
	b, _ := json.Marshal(data)
	return b
}

func (ts *tenantStore) nextNonce() string {
	ts.nonceCt++
	return strconv.FormatInt(ts.nonceCt, 10)
}

// Create assigns a server-side id and a fresh version (spec §4.5
// create).
func (m *MemoryStore) Create(ctx context.Context, tnt tenant.Context, resourceType string, data map[string]interface{}) (Stored, error) {
	ts := m.storeFor(tnt.TenantID)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	id := uuid.NewString()
	now := m.clock().UTC().Format(time.RFC3339)

	data["id"] = id
	data["meta"] = map[string]interface{}{
		"resourceType": resourceType,
		"created":      now,
		"lastModified": now,
	}

	v := version.Hash(canonicalJSON(data), tnt.TenantID, resourceType, ts.nextNonce())
	meta := data["meta"].(map[string]interface{})
	meta["version"] = v.String()

	res := resource.New(data).Clone()

	if ts.byType[resourceType] == nil {
		ts.byType[resourceType] = map[string]Stored{}
	}
	ts.byType[resourceType][id] = Stored{Resource: res, Version: v}
	m.log("create", tnt.TenantID, resourceType, id)
	return Stored{Resource: res.Clone(), Version: v}, nil
}

// Get reads through to the stored representation (spec §4.5 get).
func (m *MemoryStore) Get(ctx context.Context, tnt tenant.Context, resourceType, id string) (Stored, bool, error) {
	ts := m.storeFor(tnt.TenantID)
	ts.mu.RLock()
	defer ts.mu.RUnlock()

	byID, ok := ts.byType[resourceType]
	if !ok {
		return Stored{}, false, nil
	}
	s, ok := byID[id]
	if !ok {
		return Stored{}, false, nil
	}
	return Stored{Resource: s.Resource.Clone(), Version: s.Version}, true, nil
}

// List streams every resource of resourceType under tnt, stopping
// early if yield returns false (spec §4.5 "lazy, finite, not
// restartable").
func (m *MemoryStore) List(ctx context.Context, tnt tenant.Context, resourceType string, yield func(Stored) bool) error {
	ts := m.storeFor(tnt.TenantID)
	ts.mu.RLock()
	snapshot := make([]Stored, 0, len(ts.byType[resourceType]))
	for _, s := range ts.byType[resourceType] {
		snapshot = append(snapshot, Stored{Resource: s.Resource.Clone(), Version: s.Version})
	}
	ts.mu.RUnlock()

	for _, s := range snapshot {
		if !yield(s) {
			return nil
		}
	}
	return nil
}

// UpdateConditional validates the version and installs the new state
// under a single serialized decision (spec §4.5 "Atomicity").
func (m *MemoryStore) UpdateConditional(ctx context.Context, tnt tenant.Context, resourceType, id string, data map[string]interface{}, expected *version.Version) (ConditionalResult, error) {
	ts := m.storeFor(tnt.TenantID)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	byID := ts.byType[resourceType]
	current, ok := byID[id]
	if !ok {
		return NotFound(), nil
	}

	if expected != nil && !expected.Equal(current.Version) {
		return VersionMismatch(*expected, current.Version), nil
	}

	now := m.clock().UTC().Format(time.RFC3339)
	data["id"] = id
	meta := map[string]interface{}{
		"resourceType": resourceType,
		"created":      current.Resource.Meta().Created,
		"lastModified": now,
	}
	data["meta"] = meta

	v := version.Hash(canonicalJSON(data), tnt.TenantID, resourceType, ts.nextNonce())
	meta["version"] = v.String()

	res := resource.New(data).Clone()
	byID[id] = Stored{Resource: res, Version: v}
	m.log("update", tnt.TenantID, resourceType, id)
	return Success(Stored{Resource: res.Clone(), Version: v}), nil
}

// DeleteConditional removes the resource under the same atomic
// decision as UpdateConditional.
func (m *MemoryStore) DeleteConditional(ctx context.Context, tnt tenant.Context, resourceType, id string, expected *version.Version) (ConditionalResult, error) {
	ts := m.storeFor(tnt.TenantID)
	ts.mu.Lock()
	defer ts.mu.Unlock()

	byID := ts.byType[resourceType]
	current, ok := byID[id]
	if !ok {
		return NotFound(), nil
	}
	if expected != nil && !expected.Equal(current.Version) {
		return VersionMismatch(*expected, current.Version), nil
	}
	delete(byID, id)
	m.log("delete", tnt.TenantID, resourceType, id)
	return Success(Stored{}), nil
}

// SupportsConditional always returns true: the reference provider's
// per-tenant lock makes every mutation a single serialized decision.
func (m *MemoryStore) SupportsConditional() bool {
	return true
}

// CheckUnique implements the optional UniquenessChecker capability
// (spec §9 Open Question resolution): a linear scan within the
// tenant (server scope) or across all tenants (global scope).
func (m *MemoryStore) CheckUnique(ctx context.Context, tnt tenant.Context, resourceType, attributePath string, value interface{}, excludeID string, global bool) (bool, error) {
	check := func(ts *tenantStore) bool {
		ts.mu.RLock()
		defer ts.mu.RUnlock()
		for id, s := range ts.byType[resourceType] {
			if id == excludeID {
				continue
			}
			if attributeEquals(s.Resource.Raw(), attributePath, value) {
				return true
			}
		}
		return false
	}

	if !global {
		return check(m.storeFor(tnt.TenantID)), nil
	}

	m.mu.RLock()
	all := make([]*tenantStore, 0, len(m.tenants))
	for _, ts := range m.tenants {
		all = append(all, ts)
	}
	m.mu.RUnlock()

	for _, ts := range all {
		if check(ts) {
			return true, nil
		}
	}
	return false, nil
}

func attributeEquals(data map[string]interface{}, path string, value interface{}) bool {
	segments := strings.Split(path, ".")
	var cur interface{} = data
	for _, seg := range segments {
		m, ok := cur.(map[string]interface{})
		if !ok {
			return false
		}
		cur, ok = m[seg]
		if !ok {
			return false
		}
	}
	return fmt.Sprint(cur) == fmt.Sprint(value)
}
