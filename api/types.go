// Package api - Request and response types
package api

import "jewel-pricing/core/types"

// RepriceRequest is the input to POST /reprice: a product snapshot and
// the pricing configuration for the run
type RepriceRequest struct {
	// Products is the catalog snapshot to reprice
	Products []types.Product `json:"products"`

	// Config is the pricing configuration
	Config types.PricingConfig `json:"config"`

	// IncludeTrace includes the derivation trace in the response
	IncludeTrace bool `json:"include_trace,omitempty"`
}

// RepriceResponse is the output of POST /reprice
type RepriceResponse struct {
	// RequestID identifies this API request
	RequestID string `json:"request_id"`

	// Success is true iff no product produced a captured error
	Success bool `json:"success"`

	// Outcome is the run's aggregate result
	Outcome *types.PricingOutcome `json:"outcome,omitempty"`

	// Error is the joined failure message when Success is false
	Error string `json:"error,omitempty"`

	// Updates echoes the per-product updates the run applied
	Updates interface{} `json:"updates,omitempty"`

	// DurationMS is the run duration in milliseconds
	DurationMS int64 `json:"duration_ms"`
}

// ErrorResponse is the error envelope for rejected requests
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
