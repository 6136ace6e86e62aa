// Package classify - Variant classification
// A variant is eligible for repricing only when it carries both a
// recognized finish tag and a recognized purity tag. The historical
// source of truth for both is the variant's free-text title; the
// Classifier interface isolates that fragility so ingestion can move
// to explicit structured attributes without touching the pricing math.
package classify

import (
	"strings"

	"jewel-pricing/core/attr"
	"jewel-pricing/core/types"
)

// Attribute keys consulted by the structured classifier
const (
	AttrPurityTag = "purity_tag"
	AttrFinishTag = "finish_tag"
)

// Classifier decides whether a variant qualifies for repricing and,
// if so, which purity tag applies
type Classifier interface {
	// Classify returns the matched purity tag, or ok=false when the
	// variant does not qualify
	Classify(v *types.Variant, cfg *types.PricingConfig) (purityTag string, ok bool)
}

// TitleClassifier matches finish and purity tags by case-insensitive
// substring containment against the variant title. When multiple purity
// tags appear in the title, the first entry in the configured purity
// order wins, regardless of position in the title.
type TitleClassifier struct{}

// Classify implements Classifier
func (TitleClassifier) Classify(v *types.Variant, cfg *types.PricingConfig) (string, bool) {
	title := strings.ToLower(v.Title)

	finishMatched := false
	for _, tag := range cfg.AllowedFinishTags {
		if tag != "" && strings.Contains(title, strings.ToLower(tag)) {
			finishMatched = true
			break
		}
	}
	if !finishMatched {
		return "", false
	}

	for _, p := range cfg.Purities {
		if strings.Contains(title, strings.ToLower(p.Tag)) {
			return p.Tag, true
		}
	}
	return "", false
}

// AttributeClassifier reads explicit purity_tag and finish_tag variant
// attributes, falling back to another classifier (normally a
// TitleClassifier) when the structured fields are absent or do not
// resolve against the configuration. This is the migration path away
// from title parsing.
type AttributeClassifier struct {
	// Fallback handles variants without usable structured attributes
	Fallback Classifier
}

// Classify implements Classifier
func (c AttributeClassifier) Classify(v *types.Variant, cfg *types.PricingConfig) (string, bool) {
	purity, hasPurity := attr.Resolve(v.Attributes, AttrPurityTag)
	finish, hasFinish := attr.Resolve(v.Attributes, AttrFinishTag)

	if hasPurity && hasFinish {
		purity = strings.TrimSpace(purity)
		finish = strings.TrimSpace(finish)
		if _, known := cfg.PurityMultiplier(purity); known && finishAllowed(finish, cfg) {
			return purity, true
		}
	}

	if c.Fallback != nil {
		return c.Fallback.Classify(v, cfg)
	}
	return "", false
}

// finishAllowed checks a structured finish tag against the allow list
func finishAllowed(finish string, cfg *types.PricingConfig) bool {
	for _, tag := range cfg.AllowedFinishTags {
		if strings.EqualFold(tag, finish) {
			return true
		}
	}
	return false
}
