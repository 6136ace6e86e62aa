package trace

import (
	"strings"
	"testing"
)

// TestRecorderOrdering verifies lines and events keep append order
func TestRecorderOrdering(t *testing.T) {
	rec := NewRecorder()
	rec.Linef("first %d", 1)
	rec.Eventf(EventParseFailure, "weight", "bad value %q", "x")
	rec.Linef("second")

	lines := rec.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "first 1" {
		t.Errorf("unexpected first line %q", lines[0])
	}
	if !strings.Contains(lines[1], "parse_failure") || !strings.Contains(lines[1], "weight") {
		t.Errorf("expected rendered event line, got %q", lines[1])
	}
	if lines[2] != "second" {
		t.Errorf("unexpected last line %q", lines[2])
	}

	events := rec.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Kind != EventParseFailure || events[0].Subject != "weight" {
		t.Errorf("unexpected event %+v", events[0])
	}
}

// TestRecorderCount verifies per-kind counting
func TestRecorderCount(t *testing.T) {
	rec := NewRecorder()
	rec.Eventf(EventParseFailure, "a", "x")
	rec.Eventf(EventSkippedVariant, "b", "y")
	rec.Eventf(EventParseFailure, "c", "z")

	if n := rec.Count(EventParseFailure); n != 2 {
		t.Errorf("expected 2 parse failures, got %d", n)
	}
	if n := rec.Count(EventSkippedVariant); n != 1 {
		t.Errorf("expected 1 skipped variant, got %d", n)
	}
	if n := rec.Count(EventMissingWeight); n != 0 {
		t.Errorf("expected 0 missing weights, got %d", n)
	}
}

// TestRecorderMerge verifies merged recorders concatenate in order
func TestRecorderMerge(t *testing.T) {
	a := NewRecorder()
	a.Linef("a1")
	a.Eventf(EventSkippedVariant, "s", "skipped")

	b := NewRecorder()
	b.Linef("b1")

	merged := NewRecorder()
	merged.Merge(a)
	merged.Merge(b)
	merged.Merge(nil)

	lines := merged.Lines()
	if len(lines) != 3 {
		t.Fatalf("expected 3 merged lines, got %d", len(lines))
	}
	if lines[0] != "a1" || lines[2] != "b1" {
		t.Errorf("unexpected merge order %v", lines)
	}
	if n := merged.Count(EventSkippedVariant); n != 1 {
		t.Errorf("expected merged event count 1, got %d", n)
	}
}

// TestNilRecorderSafe verifies a nil recorder absorbs writes
func TestNilRecorderSafe(t *testing.T) {
	var rec *Recorder
	rec.Linef("ignored")
	rec.Eventf(EventParseFailure, "k", "ignored")
	if rec.Lines() != nil || rec.Events() != nil || rec.Count(EventParseFailure) != 0 {
		t.Error("expected nil recorder to stay empty")
	}
}
