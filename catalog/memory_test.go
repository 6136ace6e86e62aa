package catalog

import (
	"context"
	"testing"

	"jewel-pricing/core/types"
	"jewel-pricing/internal/errors"
)

func testProducts() []types.Product {
	return []types.Product{
		{
			ID:    "p1",
			Title: "Solitaire Ring",
			Variants: []types.Variant{
				{ID: "v1", Title: "18k Yellow Gold"},
			},
		},
		{ID: "p2", Title: "Plain Band"},
	}
}

// TestMemoryStoreFetch verifies fetching returns the seeded snapshot
func TestMemoryStoreFetch(t *testing.T) {
	store := NewMemoryStore(testProducts())

	products, err := store.FetchProducts(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].ID != "p1" || products[1].ID != "p2" {
		t.Errorf("unexpected product order: %s, %s", products[0].ID, products[1].ID)
	}
}

// TestMemoryStoreUpdate verifies updates are recorded and the
// attribute write lands on the product
func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryStore(testProducts())

	err := store.UpdateProduct(context.Background(), ProductUpdate{
		ProductID: "p1",
		Variants: []VariantPriceUpdate{
			{VariantID: "v1", Price: "63400.00", CompareAtPrice: "66400.00"},
		},
		AttributeKey:   "total_gem_cost",
		AttributeValue: "30000.00",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	applied := store.Applied()
	if len(applied) != 1 {
		t.Fatalf("expected 1 applied update, got %d", len(applied))
	}
	if applied[0].ProductID != "p1" {
		t.Errorf("expected update for p1, got %s", applied[0].ProductID)
	}

	products, _ := store.FetchProducts(context.Background())
	found := false
	for _, a := range products[0].Attributes {
		if a.Key == "total_gem_cost" && a.Value == "30000.00" && a.Namespace == types.NamespaceCustom {
			found = true
		}
	}
	if !found {
		t.Error("expected attribute write to land on the product")
	}
}

// TestMemoryStoreAttributeReplace verifies a repeated attribute write
// replaces the existing record instead of appending
func TestMemoryStoreAttributeReplace(t *testing.T) {
	store := NewMemoryStore(testProducts())
	ctx := context.Background()

	for _, value := range []string{"100.00", "200.00"} {
		err := store.UpdateProduct(ctx, ProductUpdate{
			ProductID:      "p1",
			Variants:       []VariantPriceUpdate{{VariantID: "v1", Price: "1.00", CompareAtPrice: "1.00"}},
			AttributeKey:   "total_gem_cost",
			AttributeValue: value,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	products, _ := store.FetchProducts(ctx)
	count := 0
	for _, a := range products[0].Attributes {
		if a.Key == "total_gem_cost" {
			count++
			if a.Value != "200.00" {
				t.Errorf("expected replaced value 200.00, got %s", a.Value)
			}
		}
	}
	if count != 1 {
		t.Errorf("expected exactly one total_gem_cost attribute, got %d", count)
	}
}

// TestMemoryStoreInjectedFailure verifies FailProduct surfaces as a
// validation error
func TestMemoryStoreInjectedFailure(t *testing.T) {
	store := NewMemoryStore(testProducts())
	store.FailProduct("p1", "price exceeds allowed maximum")

	err := store.UpdateProduct(context.Background(), ProductUpdate{ProductID: "p1"})
	if err == nil {
		t.Fatal("expected injected failure")
	}
	if !errors.IsType(err, errors.TypeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(store.Applied()) != 0 {
		t.Error("expected no applied updates after rejection")
	}
}

// TestMemoryStoreUnknownProduct verifies updating a missing product
// returns not found
func TestMemoryStoreUnknownProduct(t *testing.T) {
	store := NewMemoryStore(testProducts())

	err := store.UpdateProduct(context.Background(), ProductUpdate{ProductID: "ghost"})
	if err == nil {
		t.Fatal("expected error for unknown product")
	}
	if !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("expected not-found error, got %v", err)
	}
}
