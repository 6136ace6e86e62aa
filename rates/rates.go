// Package rates - Reference commodity rate input
// The base price per unit weight is driven by an external metal rate.
// Refresh cadence and transport are the provider's concern; the engine
// only sees the resolved decimal value.
package rates

import (
	"context"
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	"jewel-pricing/internal/errors"
)

// Source supplies the current reference rate
type Source interface {
	// Current returns the rate as a decimal quantity
	Current(ctx context.Context) (decimal.Decimal, error)
}

// StaticSource is a fixed operator-supplied rate
type StaticSource struct {
	rate decimal.Decimal
}

// NewStaticSource creates a source pinned to a rate
func NewStaticSource(rate decimal.Decimal) *StaticSource {
	return &StaticSource{rate: rate}
}

// Current implements Source
func (s *StaticSource) Current(ctx context.Context) (decimal.Decimal, error) {
	return s.rate, nil
}

// FileSource reads the rate from a JSON file of the form
// {"rate": 8000}. The file is re-read on every call so an external
// refresher can rewrite it between runs.
type FileSource struct {
	path string
}

// NewFileSource creates a file-backed rate source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Current implements Source
func (s *FileSource) Current(ctx context.Context) (decimal.Decimal, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.TypeNotFound, err, "failed to read rate file %s", s.path)
	}

	var payload struct {
		Rate json.Number `json:"rate"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return decimal.Zero, errors.Parsing("failed to parse rate file", err)
	}

	rate, err := decimal.NewFromString(payload.Rate.String())
	if err != nil {
		return decimal.Zero, errors.Parsing("invalid rate value", err)
	}
	return rate, nil
}
