package splitter

import (
	"strings"
	"testing"
)

func TestRecursiveSplitShortText(t *testing.T) {
	s := NewRecursiveSplitter(500, 100)

	spans := s.Split("short text")
	if len(spans) != 1 || spans[0] != "short text" {
		t.Errorf("expected single untouched span, got %v", spans)
	}
}

func TestRecursiveSplitEmpty(t *testing.T) {
	s := NewRecursiveSplitter(500, 100)

	if spans := s.Split("   "); spans != nil {
		t.Errorf("expected nil for blank text, got %v", spans)
	}
}

func TestRecursiveSplitRespectsSize(t *testing.T) {
	s := NewRecursiveSplitter(100, 20)

	var b strings.Builder
	for i := 0; i < 50; i++ {
		b.WriteString("some words in a paragraph here.\n\n")
	}

	spans := s.Split(b.String())
	if len(spans) < 10 {
		t.Fatalf("expected many spans, got %d", len(spans))
	}
	for i, span := range spans {
		if len(span) > 100 {
			t.Errorf("span %d exceeds size: %d chars", i, len(span))
		}
	}
}

func TestRecursiveSplitUnbreakableRun(t *testing.T) {
	s := NewRecursiveSplitter(500, 100)

	text := strings.Repeat("A", 1500)
	spans := s.Split(text)

	// Windows of 500 stepping by 400: [0,500) [400,900) [800,1300) [1200,1500).
	if len(spans) != 4 {
		t.Fatalf("expected 4 windows, got %d", len(spans))
	}
	for i, span := range spans[:3] {
		if len(span) != 500 {
			t.Errorf("window %d: expected 500 chars, got %d", i, len(span))
		}
	}
	if len(spans[3]) != 300 {
		t.Errorf("last window: expected 300 chars, got %d", len(spans[3]))
	}

	// Overlap: each window starts 400 chars after the previous one, so
	// consecutive windows share 100 chars.
	if spans[0][400:] != spans[1][:100] {
		t.Error("expected 100-char overlap between consecutive windows")
	}
}

func TestRecursiveSplitOverlapCarriesContext(t *testing.T) {
	s := NewRecursiveSplitter(50, 20)

	text := "alpha bravo charlie delta echo foxtrot golf hotel india juliett kilo lima"
	spans := s.Split(text)

	if len(spans) < 2 {
		t.Fatalf("expected multiple spans, got %v", spans)
	}
	// The start of span 1 must repeat words from the tail of span 0.
	head := strings.Fields(spans[1])
	if !strings.Contains(spans[0], head[0]) {
		t.Errorf("expected overlap between %q and %q", spans[0], spans[1])
	}
}
