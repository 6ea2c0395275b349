package catalog

import (
	"strings"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductVariant is one sellable flavour of a product (e.g. size L)
type ProductVariant struct {
	shared.BaseEntity
	ProductID       uuid.UUID
	Name            string
	Value           string
	PriceAdjustment decimal.Decimal
}

// VariantSpec describes a requested variant. ID is set when the caller
// refers to an existing variant.
type VariantSpec struct {
	ID              *uuid.UUID
	Name            string
	Value           string
	PriceAdjustment decimal.Decimal
}

func (s VariantSpec) identity() string {
	return strings.ToLower(strings.TrimSpace(s.Name)) + "\x00" + strings.ToLower(strings.TrimSpace(s.Value))
}

func newVariant(productID uuid.UUID, spec VariantSpec) *ProductVariant {
	return &ProductVariant{
		BaseEntity:      shared.NewBaseEntity(),
		ProductID:       productID,
		Name:            strings.TrimSpace(spec.Name),
		Value:           strings.TrimSpace(spec.Value),
		PriceAdjustment: spec.PriceAdjustment,
	}
}

// sameIdentity reports whether spec names the same variant as v
func (v *ProductVariant) sameIdentity(spec VariantSpec) bool {
	return strings.TrimSpace(spec.Name) == v.Name && strings.TrimSpace(spec.Value) == v.Value
}

func validateVariantSpecs(specs []VariantSpec) error {
	seenIDs := make(map[uuid.UUID]struct{}, len(specs))
	seenIdentity := make(map[string]struct{}, len(specs))
	for _, s := range specs {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Value) == "" {
			return shared.NewValidationError("variant name and value are required")
		}
		if s.ID != nil {
			if _, dup := seenIDs[*s.ID]; dup {
				return shared.NewValidationError("variant %s listed twice", s.ID.String())
			}
			seenIDs[*s.ID] = struct{}{}
		}
		key := s.identity()
		if _, dup := seenIdentity[key]; dup {
			return shared.NewValidationError("duplicate variant %s: %s", s.Name, s.Value)
		}
		seenIdentity[key] = struct{}{}
	}
	return nil
}

// VariantPlan is the reconciliation of a product's variants with a requested set
type VariantPlan struct {
	// Retained keep their identity and their stock counters
	Retained []*ProductVariant
	// Changed keep their row but were renamed; their counters are regenerated
	Changed []*ProductVariant
	// Created are new variants that need fresh counters
	Created []*ProductVariant
	// Removed variants are deleted together with their counters
	Removed []uuid.UUID
}

// Regenerated returns the variants whose counters must be seeded from scratch
func (p VariantPlan) Regenerated() []*ProductVariant {
	out := make([]*ProductVariant, 0, len(p.Changed)+len(p.Created))
	out = append(out, p.Changed...)
	return append(out, p.Created...)
}

// PlanVariants diffs the current variants of p against specs. A spec with the
// ID of an existing variant and the same name and value retains it (only the
// price adjustment may change); same ID with a new name or value is a change;
// everything else is created. Existing variants not named are removed.
func (p *Product) PlanVariants(specs []VariantSpec) (VariantPlan, error) {
	if err := validateVariantSpecs(specs); err != nil {
		return VariantPlan{}, err
	}

	var plan VariantPlan
	kept := make(map[uuid.UUID]struct{}, len(specs))
	for _, spec := range specs {
		if spec.ID != nil {
			if existing, ok := p.FindVariant(*spec.ID); ok {
				kept[existing.ID] = struct{}{}
				updated := *existing
				updated.PriceAdjustment = spec.PriceAdjustment
				if existing.sameIdentity(spec) {
					plan.Retained = append(plan.Retained, &updated)
				} else {
					updated.Name = strings.TrimSpace(spec.Name)
					updated.Value = strings.TrimSpace(spec.Value)
					updated.Touch()
					plan.Changed = append(plan.Changed, &updated)
				}
				continue
			}
		}
		plan.Created = append(plan.Created, newVariant(p.ID, spec))
	}

	for _, v := range p.Variants {
		if _, ok := kept[v.ID]; !ok {
			plan.Removed = append(plan.Removed, v.ID)
		}
	}
	return plan, nil
}

// ApplyVariantPlan replaces the in-memory variant list with the planned one
func (p *Product) ApplyVariantPlan(plan VariantPlan) {
	variants := make([]ProductVariant, 0, len(plan.Retained)+len(plan.Changed)+len(plan.Created))
	for _, group := range [][]*ProductVariant{plan.Retained, plan.Changed, plan.Created} {
		for _, v := range group {
			variants = append(variants, *v)
		}
	}
	p.Variants = variants
}
