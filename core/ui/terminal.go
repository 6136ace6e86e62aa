// Package ui - Terminal user interface
// Rich CLI output for pricing runs with colors and sections.
package ui

import (
	"fmt"
	"io"
	"os"

	"jewel-pricing/core/types"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out     io.Writer
	noColor bool
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:     out,
		noColor: noColor,
	}
}

// color applies color if enabled
func (w *Writer) color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

// Println writes a line with newline
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Println("")
	w.Println(w.color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Println("")
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Println(w.color(Green, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Println(w.color(Yellow, "⚠ ") + fmt.Sprintf(format, args...))
}

// Error prints an error
func (w *Writer) Error(format string, args ...interface{}) {
	w.Println(w.color(Red, "✗ ") + fmt.Sprintf(format, args...))
}

// Trace prints a dim derivation line
func (w *Writer) Trace(line string) {
	w.Println(w.color(Dim, "  "+line))
}

// RenderOutcome prints a pricing run's results
func (w *Writer) RenderOutcome(outcome *types.PricingOutcome, showTrace bool) {
	if showTrace {
		w.Header("Derivation Trace")
		for _, line := range outcome.Trace {
			w.Trace(line)
		}
	}

	w.Header("Updated Variants")
	if len(outcome.UpdatedVariants) == 0 {
		w.Println("  (none)")
	}
	for _, r := range outcome.UpdatedVariants {
		w.Println("  %-24s price %-14s compare at %s", r.VariantID, r.FinalPrice, r.CompareAtPrice)
	}

	if len(outcome.PerProductError) > 0 {
		w.Header("Failed Products")
		for id, msg := range outcome.PerProductError {
			w.Error("%s: %s", id, msg)
		}
		w.Println("")
		w.Warning("run %s finished with %d failed product(s)", outcome.RunID, len(outcome.PerProductError))
		return
	}

	w.Println("")
	w.Success("run %s updated %d variant(s)", outcome.RunID, len(outcome.UpdatedVariants))
}
