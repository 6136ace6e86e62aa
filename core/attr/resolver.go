// Package attr - Attribute resolution
// Attribute values arrive as opaque strings that hold either a bare
// number or a JSON object like {"value": 5, "unit": "GRAMS"}. The
// resolver normalizes both encodings to a magnitude and discards the
// unit; unit consistency is the caller's configuration contract.
// Numeric resolution never fails: anything unparsable becomes zero,
// recorded as a parse-failure event for auditability.
package attr

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"jewel-pricing/core/trace"
	"jewel-pricing/core/types"
)

// structuredValue is the JSON shape of a unit-tagged attribute value.
// The value field may itself arrive as a number or a numeric string.
type structuredValue struct {
	Value interface{} `json:"value"`
	Unit  string      `json:"unit"`
}

// Resolve finds the first record matching key in the custom namespace.
// The second return is false when no such record exists.
func Resolve(attrs []types.AttributeRecord, key string) (string, bool) {
	for _, a := range attrs {
		if a.Key == key && a.Namespace == types.NamespaceCustom {
			return a.Value, true
		}
	}
	return "", false
}

// ResolveNumeric resolves key to a float magnitude. Structured values
// contribute their "value" field; plain values are parsed directly.
// Parse failures resolve to 0 and are recorded on the recorder.
func ResolveNumeric(attrs []types.AttributeRecord, key string, rec *trace.Recorder) float64 {
	raw, ok := Resolve(attrs, key)
	if !ok {
		return 0
	}
	return parseMagnitude(raw, key, rec)
}

// parseMagnitude extracts a float from a raw attribute value
func parseMagnitude(raw, key string, rec *trace.Recorder) float64 {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0
	}

	candidate := trimmed
	if strings.HasPrefix(trimmed, "{") || strings.HasPrefix(trimmed, "[") {
		var sv structuredValue
		if err := json.Unmarshal([]byte(trimmed), &sv); err == nil && sv.Value != nil {
			switch v := sv.Value.(type) {
			case float64:
				return v
			case string:
				candidate = v
			}
		}
		// Decode failures fall through to parsing the raw string,
		// which then reports the parse failure below.
	}

	f, err := strconv.ParseFloat(strings.TrimSpace(candidate), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		rec.Eventf(trace.EventParseFailure, key, "unparsable numeric value %q, using 0", raw)
		return 0
	}
	return f
}
