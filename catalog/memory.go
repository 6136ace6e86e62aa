// Package catalog - In-memory catalog store
package catalog

import (
	"context"
	"sync"

	"jewel-pricing/core/types"
	"jewel-pricing/internal/errors"
)

// MemoryStore holds a product snapshot in memory and records the
// updates applied to it. It backs the CLI's file-driven runs and the
// API surface, and doubles as the orchestrator's test collaborator:
// per-product validation failures can be injected with FailProduct.
type MemoryStore struct {
	mu       sync.Mutex
	products []types.Product
	applied  []ProductUpdate
	failures map[string]string
}

// NewMemoryStore creates a store seeded with a product snapshot
func NewMemoryStore(products []types.Product) *MemoryStore {
	return &MemoryStore{
		products: products,
		failures: make(map[string]string),
	}
}

// FetchProducts implements Fetcher
func (s *MemoryStore) FetchProducts(ctx context.Context) ([]types.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]types.Product, len(s.products))
	copy(out, s.products)
	return out, nil
}

// UpdateProduct implements Updater. Injected failures are reported as
// validation errors; successful updates are recorded and the product's
// attribute write is applied to the held snapshot.
func (s *MemoryStore) UpdateProduct(ctx context.Context, update ProductUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if msg, ok := s.failures[update.ProductID]; ok {
		return errors.Validation(msg)
	}

	for i := range s.products {
		if s.products[i].ID != update.ProductID {
			continue
		}
		s.applyAttribute(&s.products[i], update.AttributeKey, update.AttributeValue)
		s.applied = append(s.applied, update)
		return nil
	}
	return errors.NotFound("product", update.ProductID)
}

// FailProduct injects a validation rejection for a product ID
func (s *MemoryStore) FailProduct(productID, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[productID] = message
}

// Applied returns the updates accepted so far
func (s *MemoryStore) Applied() []ProductUpdate {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]ProductUpdate, len(s.applied))
	copy(out, s.applied)
	return out
}

// applyAttribute writes or replaces one custom-namespace attribute
func (s *MemoryStore) applyAttribute(p *types.Product, key, value string) {
	if key == "" {
		return
	}
	for i := range p.Attributes {
		if p.Attributes[i].Key == key && p.Attributes[i].Namespace == types.NamespaceCustom {
			p.Attributes[i].Value = value
			return
		}
	}
	p.Attributes = append(p.Attributes, types.AttributeRecord{
		Namespace: types.NamespaceCustom,
		Key:       key,
		Value:     value,
	})
}
