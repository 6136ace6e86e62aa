// Package gems - Gem cost aggregation
// A product carries up to three gem slots, each described by a pair of
// attributes: diamond_{i} (type) and diamond_weight_{i} (weight). The
// aggregator resolves the slots against the configured unit-price table
// and sums the embedded-component cost.
package gems

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"jewel-pricing/core/attr"
	"jewel-pricing/core/trace"
	"jewel-pricing/core/types"
)

// SlotCount is the number of gem slots per product
const SlotCount = 3

// Aggregate resolves the product's gem slots and returns the total gem
// cost together with the resolved selections. A slot is active iff its
// trimmed type is non-empty; an active slot whose type has no configured
// unit price contributes zero, not an error. One trace line records the
// product title and the computed total.
func Aggregate(p *types.Product, cfg *types.PricingConfig, rec *trace.Recorder) (decimal.Decimal, [SlotCount]types.GemSelection) {
	var selections [SlotCount]types.GemSelection
	total := decimal.Zero

	for i := 0; i < SlotCount; i++ {
		slot := i + 1
		rawType, _ := attr.Resolve(p.Attributes, fmt.Sprintf("diamond_%d", slot))
		weight := attr.ResolveNumeric(p.Attributes, fmt.Sprintf("diamond_weight_%d", slot), rec)

		sel := types.GemSelection{
			Type:   strings.TrimSpace(rawType),
			Weight: weight,
		}
		selections[i] = sel

		if !sel.Active() {
			continue
		}

		unitPrice, ok := cfg.GemUnitPrices[sel.Type]
		if !ok {
			rec.Eventf(trace.EventUnknownGemType, p.Title,
				"gem type %q has no configured unit price, slot %d contributes 0", sel.Type, slot)
			continue
		}
		total = total.Add(unitPrice.Mul(decimal.NewFromFloat(sel.Weight)))
	}

	rec.Linef("gem cost for %q: %s", p.Title, total.StringFixed(2))
	return total, selections
}
