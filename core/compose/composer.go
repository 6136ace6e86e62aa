// Package compose - Price composition
// Combines material cost, making charge and gem cost into a variant's
// final price and its undiscounted compare-at price. All arithmetic is
// exact decimal; both outputs serialize as fixed two-decimal strings.
package compose

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"jewel-pricing/core/trace"
	"jewel-pricing/core/types"
)

// discountPattern matches an integer immediately followed by a percent
// sign, tolerating intervening whitespace: "10%", "10 %".
var discountPattern = regexp.MustCompile(`(?i)\d+\s*%`)

// Compose derives the price result for one classified variant.
// The compare-at price always carries the undiscounted gem cost; a
// discount token in the title reduces only the gem-cost portion, and
// only when a factor is configured for the normalized token.
func Compose(v *types.Variant, purityTag string, weight float64, totalGemCost decimal.Decimal, cfg *types.PricingConfig, rec *trace.Recorder) types.PriceResult {
	multiplier, _ := cfg.PurityMultiplier(purityTag)
	w := decimal.NewFromFloat(weight)

	materialCost := cfg.BasePricePerUnitWeight.Mul(multiplier).Mul(w)

	makingCost := decimal.Zero
	if weight > 0 {
		makingCost = cfg.MakingChargePerUnitWeight.Mul(w)
	} else {
		rec.Eventf(trace.EventMissingWeight, v.Title, "variant has no weight, pricing gem cost only")
	}

	goldAndMaking := materialCost.Add(makingCost)
	compareAt := goldAndMaking.Add(totalGemCost)

	discountedGemCost := totalGemCost
	if token, ok := discountToken(v.Title); ok {
		if factor, configured := cfg.DiscountFactors[token]; configured {
			discountedGemCost = totalGemCost.Mul(factor)
		}
	}

	finalPrice := goldAndMaking.Add(discountedGemCost)

	result := types.PriceResult{
		VariantID:      v.ID,
		FinalPrice:     finalPrice.Round(2).StringFixed(2),
		CompareAtPrice: compareAt.Round(2).StringFixed(2),
	}

	rec.Linef("priced %q (%s): material %s + making %s + gems %s = %s (compare at %s)",
		v.Title, purityTag,
		materialCost.StringFixed(2), makingCost.StringFixed(2),
		discountedGemCost.StringFixed(2),
		result.FinalPrice, result.CompareAtPrice)

	return result
}

// discountToken scans a title for a discount marker and returns the
// normalized token ("10 %" becomes "10%")
func discountToken(title string) (string, bool) {
	match := discountPattern.FindString(title)
	if match == "" {
		return "", false
	}
	return strings.ReplaceAll(strings.ReplaceAll(match, " ", ""), "\t", ""), true
}
