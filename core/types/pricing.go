// Package types - Pricing configuration and result types
package types

import (
	"github.com/shopspring/decimal"

	"jewel-pricing/internal/errors"
)

// DefaultGroupSize is the number of products processed concurrently
// per orchestrator group when the configuration does not override it.
const DefaultGroupSize = 5

// PurityEntry maps a purity tag (e.g. "18k") to its material-purity
// multiplier. Entries are held in a slice, not a map: when a variant
// title matches more than one purity tag, the first entry in this
// order wins, so the order is part of the pricing contract.
type PurityEntry struct {
	// Tag is the purity label matched against variant titles
	Tag string `json:"tag"`

	// Multiplier scales the base price per unit weight
	Multiplier decimal.Decimal `json:"multiplier"`
}

// PricingConfig is the operator-supplied input for a pricing run
type PricingConfig struct {
	// BasePricePerUnitWeight is the commodity rate (must be > 0)
	BasePricePerUnitWeight decimal.Decimal `json:"base_price_per_unit_weight"`

	// MakingChargePerUnitWeight is the labor surcharge per unit weight
	MakingChargePerUnitWeight decimal.Decimal `json:"making_charge_per_unit_weight"`

	// Purities is the purity tag table in tie-break order
	Purities []PurityEntry `json:"purities"`

	// DiscountFactors maps normalized discount tokens (e.g. "10%") to
	// the factor applied to the gem-cost portion of the price
	DiscountFactors map[string]decimal.Decimal `json:"discount_factors,omitempty"`

	// AllowedFinishTags gates which variants are eligible for repricing
	AllowedFinishTags []string `json:"allowed_finish_tags"`

	// GemUnitPrices maps gem type to its per-unit-weight price
	GemUnitPrices map[string]decimal.Decimal `json:"gem_unit_prices,omitempty"`

	// GroupSize bounds in-flight products per orchestrator group
	// (0 means DefaultGroupSize)
	GroupSize int `json:"group_size,omitempty"`
}

// Validate checks the configuration before a run. A non-positive base
// price fails the whole run before any product is touched.
func (c *PricingConfig) Validate() error {
	if !c.BasePricePerUnitWeight.IsPositive() {
		return errors.Newf(errors.TypeConfig,
			"base price per unit weight must be positive, got %s",
			c.BasePricePerUnitWeight)
	}
	if c.MakingChargePerUnitWeight.IsNegative() {
		return errors.Newf(errors.TypeConfig,
			"making charge per unit weight must not be negative, got %s",
			c.MakingChargePerUnitWeight)
	}
	seen := make(map[string]bool, len(c.Purities))
	for _, p := range c.Purities {
		if p.Tag == "" {
			return errors.New(errors.TypeConfig, "purity entry with empty tag")
		}
		if seen[p.Tag] {
			return errors.Newf(errors.TypeConfig, "duplicate purity tag %q", p.Tag)
		}
		seen[p.Tag] = true
	}
	return nil
}

// PurityMultiplier looks up the multiplier for a purity tag
func (c *PricingConfig) PurityMultiplier(tag string) (decimal.Decimal, bool) {
	for _, p := range c.Purities {
		if p.Tag == tag {
			return p.Multiplier, true
		}
	}
	return decimal.Zero, false
}

// EffectiveGroupSize returns the concurrency bound for a run
func (c *PricingConfig) EffectiveGroupSize() int {
	if c.GroupSize > 0 {
		return c.GroupSize
	}
	return DefaultGroupSize
}

// GemSelection is one resolved gem slot of a product. Derived per run,
// never stored. A selection is active iff Type is non-empty after
// trimming.
type GemSelection struct {
	// Type is the gem type, "" when the slot is unset
	Type string `json:"type,omitempty"`

	// Weight is the slot's weight magnitude
	Weight float64 `json:"weight"`
}

// Active reports whether this slot participates in gem-cost aggregation
func (g GemSelection) Active() bool {
	return g.Type != ""
}

// PriceResult is a computed price for one variant. Both monetary fields
// are fixed two-decimal strings: downstream systems consume text, not
// binary floats.
type PriceResult struct {
	// VariantID identifies the priced variant
	VariantID string `json:"variant_id"`

	// FinalPrice is the discounted sale price
	FinalPrice string `json:"final_price"`

	// CompareAtPrice is the undiscounted reference price
	// (always >= FinalPrice)
	CompareAtPrice string `json:"compare_at_price"`
}

// PricingOutcome is the aggregate result of a batch run
type PricingOutcome struct {
	// RunID identifies the run
	RunID string `json:"run_id"`

	// UpdatedVariants holds results in product order, variant order
	// within each product
	UpdatedVariants []PriceResult `json:"updated_variants"`

	// Trace is the ordered derivation log for every product attempted
	Trace []string `json:"trace,omitempty"`

	// PerProductError maps product ID to its captured failure
	PerProductError map[string]string `json:"per_product_error,omitempty"`
}

// Failed reports whether any product produced a captured error
func (o *PricingOutcome) Failed() bool {
	return len(o.PerProductError) > 0
}
