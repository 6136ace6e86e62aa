// Package catalog - Catalog collaborator boundary
// The engine never talks to a real catalog backend; it depends on the
// narrow Fetcher and Updater interfaces defined here. Pagination,
// status filtering, retries and transport belong to implementations.
package catalog

import (
	"context"

	"jewel-pricing/core/types"
)

// VariantPriceUpdate is one variant's new price pair
type VariantPriceUpdate struct {
	// VariantID identifies the variant
	VariantID string `json:"variant_id"`

	// Price is the final sale price as a fixed two-decimal string
	Price string `json:"price"`

	// CompareAtPrice is the undiscounted reference price
	CompareAtPrice string `json:"compare_at_price"`
}

// ProductUpdate is the per-product write pushed back to the catalog:
// the variant price updates plus a single product attribute write
// (the computed aggregate gem cost).
type ProductUpdate struct {
	// ProductID identifies the product
	ProductID string `json:"product_id"`

	// Variants are the price updates for the product's variants
	Variants []VariantPriceUpdate `json:"variants"`

	// AttributeKey is the product attribute to write
	AttributeKey string `json:"attribute_key"`

	// AttributeValue is the value to write
	AttributeValue string `json:"attribute_value"`
}

// Fetcher supplies the product snapshot for a run
type Fetcher interface {
	// FetchProducts returns the products to reprice
	FetchProducts(ctx context.Context) ([]types.Product, error)
}

// Updater accepts per-product price updates. A returned error is a
// validation rejection for that product; the orchestrator records it
// and continues with the rest of the batch.
type Updater interface {
	// UpdateProduct applies one product's update
	UpdateProduct(ctx context.Context, update ProductUpdate) error
}

// Store combines both sides of the collaborator boundary
type Store interface {
	Fetcher
	Updater
}
