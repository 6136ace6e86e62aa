package engine

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"

	"jewel-pricing/catalog"
	"jewel-pricing/core/types"
	"jewel-pricing/internal/errors"
)

func testConfig() *types.PricingConfig {
	return &types.PricingConfig{
		BasePricePerUnitWeight:    decimal.NewFromInt(8000),
		MakingChargePerUnitWeight: decimal.NewFromInt(1200),
		Purities: []types.PurityEntry{
			{Tag: "22k", Multiplier: decimal.NewFromFloat(0.925)},
			{Tag: "18k", Multiplier: decimal.NewFromFloat(0.76)},
		},
		DiscountFactors: map[string]decimal.Decimal{
			"10%": decimal.NewFromFloat(0.9),
		},
		AllowedFinishTags: []string{"yellow gold", "white gold"},
		GemUnitPrices: map[string]decimal.Decimal{
			"Round Solitaire 2ct+": decimal.NewFromInt(30000),
		},
	}
}

func testProduct(id, variantID string) types.Product {
	return types.Product{
		ID:    id,
		Title: "Ring " + id,
		Attributes: []types.AttributeRecord{
			{Namespace: types.NamespaceCustom, Key: "diamond_1", Value: "Round Solitaire 2ct+"},
			{Namespace: types.NamespaceCustom, Key: "diamond_weight_1", Value: "1"},
		},
		Variants: []types.Variant{
			{
				ID:    variantID,
				Title: "18k Yellow Gold 10% off",
				Attributes: []types.AttributeRecord{
					{Namespace: types.NamespaceCustom, Key: "weight", Value: "5"},
				},
			},
		},
	}
}

// TestRunSingleProduct tests the happy path end to end
func TestRunSingleProduct(t *testing.T) {
	store := catalog.NewMemoryStore([]types.Product{testProduct("p1", "v1")})
	orch := New(nil, store, nil)

	outcome, err := orch.Run(context.Background(), []types.Product{testProduct("p1", "v1")}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if outcome.RunID == "" {
		t.Error("expected a run id")
	}
	if len(outcome.UpdatedVariants) != 1 {
		t.Fatalf("expected 1 updated variant, got %d", len(outcome.UpdatedVariants))
	}

	// Gem cost 30000, discounted 27000; material 8000*0.76*5 = 30400;
	// making 6000; final 36400 + 27000 = 63400.
	r := outcome.UpdatedVariants[0]
	if r.VariantID != "v1" {
		t.Errorf("expected variant v1, got %s", r.VariantID)
	}
	if r.FinalPrice != "63400.00" || r.CompareAtPrice != "66400.00" {
		t.Errorf("unexpected prices %s / %s", r.FinalPrice, r.CompareAtPrice)
	}

	applied := store.Applied()
	if len(applied) != 1 {
		t.Fatalf("expected 1 applied update, got %d", len(applied))
	}
	if applied[0].AttributeKey != GemCostAttributeKey || applied[0].AttributeValue != "30000.00" {
		t.Errorf("expected gem cost attribute write, got %s=%s",
			applied[0].AttributeKey, applied[0].AttributeValue)
	}
}

// TestRunPartialBatchFailure tests that one rejected product does not
// abort the batch: products 1 and 3 succeed, product 2 is captured
func TestRunPartialBatchFailure(t *testing.T) {
	products := []types.Product{
		testProduct("p1", "v1"),
		testProduct("p2", "v2"),
		testProduct("p3", "v3"),
	}
	store := catalog.NewMemoryStore(products)
	store.FailProduct("p2", "compare at price is invalid")
	orch := New(nil, store, nil)

	outcome, err := orch.Run(context.Background(), products, testConfig())
	if err == nil {
		t.Fatal("expected run to report failure")
	}
	if outcome == nil {
		t.Fatal("expected partial outcome despite failure")
	}

	if len(outcome.PerProductError) != 1 {
		t.Fatalf("expected exactly 1 per-product error, got %d", len(outcome.PerProductError))
	}
	if _, ok := outcome.PerProductError["p2"]; !ok {
		t.Errorf("expected error captured for p2, got %v", outcome.PerProductError)
	}

	if len(outcome.UpdatedVariants) != 2 {
		t.Fatalf("expected 2 updated variants, got %d", len(outcome.UpdatedVariants))
	}
	if outcome.UpdatedVariants[0].VariantID != "v1" || outcome.UpdatedVariants[1].VariantID != "v3" {
		t.Errorf("unexpected variant order: %s, %s",
			outcome.UpdatedVariants[0].VariantID, outcome.UpdatedVariants[1].VariantID)
	}

	if !strings.Contains(err.Error(), "p2") {
		t.Errorf("expected failure message to name p2, got %q", err.Error())
	}
	if strings.Contains(err.Error(), "p1:") || strings.Contains(err.Error(), "p3:") {
		t.Errorf("expected failure message to name only p2, got %q", err.Error())
	}

	if len(outcome.Trace) == 0 {
		t.Error("expected partial trace to survive the failure")
	}
}

// TestRunInvalidConfigFailsFast tests that a non-positive base price
// fails before any product is touched
func TestRunInvalidConfigFailsFast(t *testing.T) {
	products := []types.Product{testProduct("p1", "v1")}
	store := catalog.NewMemoryStore(products)
	orch := New(nil, store, nil)

	cfg := testConfig()
	cfg.BasePricePerUnitWeight = decimal.Zero

	outcome, err := orch.Run(context.Background(), products, cfg)
	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !errors.IsType(err, errors.TypeConfig) {
		t.Errorf("expected config error, got %v", err)
	}
	if outcome != nil {
		t.Error("expected no outcome for invalid configuration")
	}
	if len(store.Applied()) != 0 {
		t.Error("expected no partial mutation on invalid configuration")
	}
}

// TestRunNoQualifyingVariants tests that a product with only
// non-qualifying variants yields no results and no error
func TestRunNoQualifyingVariants(t *testing.T) {
	product := types.Product{
		ID:    "p1",
		Title: "Platinum Band",
		Variants: []types.Variant{
			{ID: "v1", Title: "Platinum"},
		},
	}
	store := catalog.NewMemoryStore([]types.Product{product})
	orch := New(nil, store, nil)

	outcome, err := orch.Run(context.Background(), []types.Product{product}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.UpdatedVariants) != 0 {
		t.Errorf("expected no updated variants, got %d", len(outcome.UpdatedVariants))
	}
	if len(outcome.PerProductError) != 0 {
		t.Errorf("expected no per-product errors, got %v", outcome.PerProductError)
	}
	if len(store.Applied()) != 0 {
		t.Error("expected no update call for a product with no qualifying variants")
	}

	skipped := false
	for _, line := range outcome.Trace {
		if strings.Contains(line, "Platinum") {
			skipped = true
		}
	}
	if !skipped {
		t.Error("expected a skip trace line naming the product")
	}
}

// panicClassifier panics on every classification
type panicClassifier struct{}

func (panicClassifier) Classify(v *types.Variant, cfg *types.PricingConfig) (string, bool) {
	panic("classifier exploded")
}

// TestRunPipelinePanicCaptured tests that a panic inside a product's
// pipeline becomes that product's error and the batch continues
func TestRunPipelinePanicCaptured(t *testing.T) {
	products := []types.Product{testProduct("p1", "v1")}
	store := catalog.NewMemoryStore(products)
	orch := New(panicClassifier{}, store, nil)

	outcome, err := orch.Run(context.Background(), products, testConfig())
	if err == nil {
		t.Fatal("expected run to report failure")
	}
	if outcome == nil {
		t.Fatal("expected outcome despite panic")
	}
	msg, ok := outcome.PerProductError["p1"]
	if !ok {
		t.Fatalf("expected captured error for p1, got %v", outcome.PerProductError)
	}
	if !strings.Contains(msg, "classifier exploded") {
		t.Errorf("expected panic message in error, got %q", msg)
	}
}

// orderRecordingUpdater records the order update calls arrive in
type orderRecordingUpdater struct {
	mu    sync.Mutex
	order []string
}

func (u *orderRecordingUpdater) UpdateProduct(ctx context.Context, update catalog.ProductUpdate) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.order = append(u.order, update.ProductID)
	return nil
}

// TestRunGroupOrdering tests that with group size 1 update calls
// arrive strictly in batch order
func TestRunGroupOrdering(t *testing.T) {
	products := []types.Product{
		testProduct("p1", "v1"),
		testProduct("p2", "v2"),
		testProduct("p3", "v3"),
		testProduct("p4", "v4"),
	}
	updater := &orderRecordingUpdater{}
	orch := New(nil, updater, nil)

	cfg := testConfig()
	cfg.GroupSize = 1

	if _, err := orch.Run(context.Background(), products, cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []string{"p1", "p2", "p3", "p4"}
	if len(updater.order) != len(expected) {
		t.Fatalf("expected %d update calls, got %d", len(expected), len(updater.order))
	}
	for i, id := range expected {
		if updater.order[i] != id {
			t.Errorf("position %d: expected %s, got %s", i, id, updater.order[i])
		}
	}
}

// TestRunCatalog tests the fetch-then-run entry point
func TestRunCatalog(t *testing.T) {
	store := catalog.NewMemoryStore([]types.Product{testProduct("p1", "v1")})
	orch := New(nil, store, nil)

	outcome, err := orch.RunCatalog(context.Background(), store, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.UpdatedVariants) != 1 {
		t.Errorf("expected 1 updated variant, got %d", len(outcome.UpdatedVariants))
	}
}

// TestRunComputeOnly tests that a nil updater still yields results
func TestRunComputeOnly(t *testing.T) {
	orch := New(nil, nil, nil)

	outcome, err := orch.Run(context.Background(), []types.Product{testProduct("p1", "v1")}, testConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(outcome.UpdatedVariants) != 1 {
		t.Errorf("expected 1 result without an updater, got %d", len(outcome.UpdatedVariants))
	}
}
