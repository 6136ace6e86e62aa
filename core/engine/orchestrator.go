// Package engine - Batch pricing orchestrator
// Runs the per-product pipeline (gem aggregation, classification, price
// composition, catalog update) across a batch. Products are partitioned
// into fixed-size groups: groups run strictly in order, products within
// a group run concurrently, and a group fully completes (including its
// update calls) before the next one starts. This bounds concurrent load
// on the update collaborator while overlapping I/O within a group.
package engine

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"jewel-pricing/catalog"
	"jewel-pricing/core/attr"
	"jewel-pricing/core/classify"
	"jewel-pricing/core/compose"
	"jewel-pricing/core/gems"
	"jewel-pricing/core/trace"
	"jewel-pricing/core/types"
	"jewel-pricing/internal/errors"
	"jewel-pricing/internal/logging"
)

// WeightAttributeKey is the variant attribute holding the material weight
const WeightAttributeKey = "weight"

// GemCostAttributeKey is the product attribute the computed aggregate
// gem cost is written back to
const GemCostAttributeKey = "total_gem_cost"

// Orchestrator drives batch pricing runs
type Orchestrator struct {
	classifier classify.Classifier
	updater    catalog.Updater
	log        *zap.Logger
}

// New creates an orchestrator. A nil classifier defaults to title
// classification; a nil updater makes the run compute-only.
func New(classifier classify.Classifier, updater catalog.Updater, log *zap.Logger) *Orchestrator {
	if classifier == nil {
		classifier = classify.TitleClassifier{}
	}
	if log == nil {
		log = logging.Logger
	}
	return &Orchestrator{
		classifier: classifier,
		updater:    updater,
		log:        log,
	}
}

// productResult is one product's contribution, accumulated on a
// per-task recorder and merged after its group completes
type productResult struct {
	results []types.PriceResult
	rec     *trace.Recorder
	err     error
}

// Run prices the batch. An invalid configuration fails the whole run
// before any product is touched. Per-product failures (classification
// panic, collaborator rejection) are captured and the batch continues;
// the run reports failure iff at least one product failed, returning
// the partial outcome alongside the joined error.
func (o *Orchestrator) Run(ctx context.Context, products []types.Product, cfg *types.PricingConfig) (*types.PricingOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	outcome := &types.PricingOutcome{
		RunID:           uuid.NewString(),
		PerProductError: make(map[string]string),
	}

	groupSize := cfg.EffectiveGroupSize()
	o.log.Info("starting pricing run",
		zap.String("run_id", outcome.RunID),
		zap.Int("products", len(products)),
		zap.Int("group_size", groupSize))

	var failures []string

	for start := 0; start < len(products); start += groupSize {
		end := start + groupSize
		if end > len(products) {
			end = len(products)
		}
		group := products[start:end]

		results := make([]productResult, len(group))
		var wg sync.WaitGroup
		for i := range group {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				results[i] = o.processProduct(ctx, &group[i], cfg)
			}(i)
		}
		wg.Wait()

		// Merge per-task traces and results in batch order so output
		// is deterministic regardless of completion order.
		for i := range group {
			r := results[i]
			outcome.Trace = append(outcome.Trace, r.rec.Lines()...)
			if r.err != nil {
				msg := r.err.Error()
				outcome.PerProductError[group[i].ID] = msg
				failures = append(failures, group[i].ID+": "+msg)
				o.log.Warn("product failed",
					zap.String("run_id", outcome.RunID),
					zap.String("product_id", group[i].ID),
					zap.String("error", msg))
				continue
			}
			outcome.UpdatedVariants = append(outcome.UpdatedVariants, r.results...)
		}
	}

	if outcome.Failed() {
		return outcome, errors.Newf(errors.TypePricing,
			"pricing run %s failed for %d product(s): %s",
			outcome.RunID, len(failures), strings.Join(failures, "; "))
	}

	o.log.Info("pricing run complete",
		zap.String("run_id", outcome.RunID),
		zap.Int("updated_variants", len(outcome.UpdatedVariants)))
	return outcome, nil
}

// RunCatalog fetches the product snapshot from the catalog collaborator
// and prices it
func (o *Orchestrator) RunCatalog(ctx context.Context, fetcher catalog.Fetcher, cfg *types.PricingConfig) (*types.PricingOutcome, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	products, err := fetcher.FetchProducts(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.TypeInternal, "failed to fetch products", err)
	}
	return o.Run(ctx, products, cfg)
}

// processProduct runs one product's pipeline on its own recorder.
// Panics are converted to the product's terminal error.
func (o *Orchestrator) processProduct(ctx context.Context, p *types.Product, cfg *types.PricingConfig) (res productResult) {
	rec := trace.NewRecorder()
	res.rec = rec

	defer func() {
		if r := recover(); r != nil {
			res.results = nil
			res.err = errors.Newf(errors.TypeInternal, "pipeline panic: %v", r)
		}
	}()

	totalGemCost, _ := gems.Aggregate(p, cfg, rec)

	var updates []catalog.VariantPriceUpdate
	for i := range p.Variants {
		v := &p.Variants[i]
		purityTag, ok := o.classifier.Classify(v, cfg)
		if !ok {
			rec.Eventf(trace.EventSkippedVariant, p.Title,
				"variant %q matches no allowed finish and purity tags", v.Title)
			continue
		}

		weight := attr.ResolveNumeric(v.Attributes, WeightAttributeKey, rec)
		result := compose.Compose(v, purityTag, weight, totalGemCost, cfg, rec)
		res.results = append(res.results, result)
		updates = append(updates, catalog.VariantPriceUpdate{
			VariantID:      result.VariantID,
			Price:          result.FinalPrice,
			CompareAtPrice: result.CompareAtPrice,
		})
	}

	if len(updates) == 0 {
		rec.Linef("no qualifying variants for %q", p.Title)
		return res
	}

	if o.updater != nil {
		err := o.updater.UpdateProduct(ctx, catalog.ProductUpdate{
			ProductID:      p.ID,
			Variants:       updates,
			AttributeKey:   GemCostAttributeKey,
			AttributeValue: totalGemCost.StringFixed(2),
		})
		if err != nil {
			res.results = nil
			res.err = err
		}
	}
	return res
}
