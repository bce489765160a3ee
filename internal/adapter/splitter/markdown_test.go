package splitter

import (
	"strings"
	"testing"
)

func TestHeaderSplitBasic(t *testing.T) {
	s := NewHeaderSplitter()

	text := "# Title\nintro text\n\n## Section A\nbody a\n\n## Section B\nbody b"
	sections := s.Split(text)

	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}

	if !strings.HasPrefix(sections[0].Content, "# Title") {
		t.Errorf("header must stay attached to content: %q", sections[0].Content)
	}
	if sections[0].Metadata["H1"] != "Title" {
		t.Errorf("expected H1=Title, got %v", sections[0].Metadata)
	}
	if sections[1].Metadata["H1"] != "Title" || sections[1].Metadata["H2"] != "Section A" {
		t.Errorf("expected hierarchy H1+H2, got %v", sections[1].Metadata)
	}
	if sections[2].Metadata["H2"] != "Section B" {
		t.Errorf("expected H2=Section B, got %v", sections[2].Metadata)
	}
}

func TestHeaderSplitPreamble(t *testing.T) {
	s := NewHeaderSplitter()

	sections := s.Split("preamble before any header\n# First\ncontent")
	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Content != "preamble before any header" {
		t.Errorf("unexpected preamble content: %q", sections[0].Content)
	}
	if len(sections[0].Metadata) != 0 {
		t.Errorf("preamble must carry empty metadata, got %v", sections[0].Metadata)
	}
}

func TestHeaderSplitClearsDeeperLevels(t *testing.T) {
	s := NewHeaderSplitter()

	text := "# A\nx\n### Deep\ny\n## B\nz"
	sections := s.Split(text)

	last := sections[len(sections)-1]
	if _, ok := last.Metadata["H3"]; ok {
		t.Errorf("H3 must be cleared when a shallower header opens: %v", last.Metadata)
	}
	if last.Metadata["H2"] != "B" {
		t.Errorf("expected H2=B, got %v", last.Metadata)
	}
}

func TestHeaderSplitIgnoresFencedCode(t *testing.T) {
	s := NewHeaderSplitter()

	text := "# Real\nbefore\n```\n# not a header\n```\nafter"
	sections := s.Split(text)

	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if !strings.Contains(sections[0].Content, "# not a header") {
		t.Error("fenced line must stay in the section content")
	}
}

func TestHeaderSplitIgnoresDeepHeaders(t *testing.T) {
	s := NewHeaderSplitter()

	sections := s.Split("# Top\na\n#### Too deep\nb")
	if len(sections) != 1 {
		t.Fatalf("#### must not split; got %d sections", len(sections))
	}
}

func TestHeaderSplitEmpty(t *testing.T) {
	s := NewHeaderSplitter()

	if got := s.Split(""); got != nil {
		t.Errorf("expected nil for empty document, got %v", got)
	}
	if got := s.Split("\n\n  \n"); got != nil {
		t.Errorf("expected nil for blank document, got %v", got)
	}
}
