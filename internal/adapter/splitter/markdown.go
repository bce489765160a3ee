package splitter

import (
	"regexp"
	"strconv"
	"strings"

	"recall/internal/domain"
)

var headerRe = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)

// HeaderSplitter breaks markdown text at #/##/### boundaries, keeping each
// header line attached to the content that follows it. Section metadata
// records the active header hierarchy under the keys H1, H2, H3.
type HeaderSplitter struct{}

// NewHeaderSplitter creates a HeaderSplitter.
func NewHeaderSplitter() *HeaderSplitter {
	return &HeaderSplitter{}
}

// Split produces the ordered sequence of raw sections for a document.
// Content before the first header becomes a section with empty metadata.
// Lines inside ``` fences are never treated as headers.
func (s *HeaderSplitter) Split(text string) []domain.Section {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var (
		sections []domain.Section
		current  []string
		meta     = map[string]string{}
		active   = map[string]string{}
		inFence  bool
	)

	flush := func() {
		content := strings.TrimSpace(strings.Join(current, "\n"))
		if content != "" {
			sections = append(sections, domain.Section{Content: content, Metadata: meta})
		}
		current = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			current = append(current, line)
			continue
		}

		m := headerRe.FindStringSubmatch(line)
		if m == nil || inFence {
			current = append(current, line)
			continue
		}

		flush()

		level := len(m[1])
		for deeper := level + 1; deeper <= 3; deeper++ {
			delete(active, "H"+strconv.Itoa(deeper))
		}
		active["H"+strconv.Itoa(level)] = strings.TrimSpace(m[2])

		meta = copyMeta(active)
		current = append(current, line)
	}

	flush()
	return sections
}

func copyMeta(m map[string]string) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
