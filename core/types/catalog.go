// Package types - Catalog entity types
// These mirror the snapshot supplied by the external catalog collaborator.
// The engine treats all catalog data as read-only input; the only mutation
// target is the PriceResult set returned from a run.
package types

// NamespaceCustom is the attribute namespace the engine reads from.
// Records in any other namespace are invisible to attribute resolution.
const NamespaceCustom = "custom"

// AttributeRecord is a single key/value record attached to a product or
// variant. The value is an opaque string: it may be a bare numeric string
// or a JSON-encoded object such as {"value": 5, "unit": "GRAMS"}.
type AttributeRecord struct {
	// Namespace scopes the key (only NamespaceCustom is resolved)
	Namespace string `json:"namespace"`

	// Key is the attribute name
	Key string `json:"key"`

	// Value is the raw string value
	Value string `json:"value"`
}

// Variant is a sellable variation of a product
type Variant struct {
	// ID is the variant's opaque identifier
	ID string `json:"id"`

	// Title is free text; it doubles as the source of purity, finish
	// and discount classification (see classify)
	Title string `json:"title"`

	// Attributes are the variant-level attribute records in source order
	Attributes []AttributeRecord `json:"attributes,omitempty"`
}

// Product is a catalog product with its variants
type Product struct {
	// ID is the product's opaque identifier
	ID string `json:"id"`

	// Title is the display title
	Title string `json:"title"`

	// Attributes are the product-level attribute records in source order
	Attributes []AttributeRecord `json:"attributes,omitempty"`

	// Variants are the product's variants in source order
	Variants []Variant `json:"variants,omitempty"`
}
