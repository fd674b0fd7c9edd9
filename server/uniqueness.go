package server

import (
	"context"

	"github.com/scimforge/core/provider"
	"github.com/scimforge/core/resourcetype"
	"github.com/scimforge/core/schema"
	"github.com/scimforge/core/scimerr"
	"github.com/scimforge/core/tenant"
)

// checkUniqueness implements the optional half of phase 6's uniqueness
// classes (spec §4.3, DESIGN.md Open Question decision #1): detects
// the provider's optional UniquenessChecker capability via type
// assertion and, only when the provider implements it, scans every
// single-valued attribute the resource type declares with a
// uniqueness scope against the already-validated candidate
// (multi-valued attributes are not checked). excludeID is the
// resource's own id on update, so it doesn't collide with itself.
func (c *Core) checkUniqueness(ctx context.Context, tnt tenant.Context, rt resourcetype.ResourceType, p provider.StorageProvider, resourceType string, data map[string]interface{}, excludeID string) *scimerr.Error {
	checker, ok := p.(provider.UniquenessChecker)
	if !ok {
		return nil
	}

	schemas := make([]schema.Schema, 0, 1+len(rt.SchemaExtensions))
	schemas = append(schemas, rt.WithCommonAttributes())
	for _, ext := range rt.SchemaExtensions {
		schemas = append(schemas, ext.Schema)
	}
	for _, s := range schemas {
		if err := checkUniqueAttributes(ctx, checker, tnt, resourceType, "", s.Attributes, data, excludeID); err != nil {
			return err
		}
	}
	return nil
}

func checkUniqueAttributes(ctx context.Context, checker provider.UniquenessChecker, tnt tenant.Context, resourceType, prefix string, defs schema.Attributes, data map[string]interface{}, excludeID string) *scimerr.Error {
	for _, def := range defs {
		v, present := data[def.Name()]
		if !present {
			continue
		}
		path := def.Name()
		if prefix != "" {
			path = prefix + "." + path
		}

		if def.Uniqueness() != schema.UniquenessNone && !def.MultiValued() {
			global := def.Uniqueness() == schema.UniquenessGlobal
			dup, err := checker.CheckUnique(ctx, tnt, resourceType, path, v, excludeID, global)
			if err != nil {
				return scimerr.ProviderFailureError(err)
			}
			if dup {
				code := scimerr.UniquenessViolationServer
				if global {
					code = scimerr.UniquenessViolationGlobal
				}
				return &scimerr.Error{Code: code, Status: 400, Detail: "value conflicts with an existing resource's attribute", Attribute: path, Value: v}
			}
		}

		if def.Type() == schema.TypeComplex && !def.MultiValued() {
			if vm, ok := v.(map[string]interface{}); ok {
				if err := checkUniqueAttributes(ctx, checker, tnt, resourceType, path, def.SubAttributes(), vm, excludeID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
