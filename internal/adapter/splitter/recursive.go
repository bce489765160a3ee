package splitter

import "strings"

// RecursiveSplitter splits text into fixed-size overlapping spans, preferring
// paragraph, then line, then word boundaries before cutting mid-word. It is
// used both for deriving child chunks and for subdividing oversized parents.
type RecursiveSplitter struct {
	chunkSize  int
	overlap    int
	separators []string
}

// NewRecursiveSplitter creates a splitter with the given target span size and
// overlap between consecutive spans, both in characters.
func NewRecursiveSplitter(chunkSize, overlap int) *RecursiveSplitter {
	if overlap >= chunkSize {
		overlap = chunkSize / 2
	}
	return &RecursiveSplitter{
		chunkSize:  chunkSize,
		overlap:    overlap,
		separators: []string{"\n\n", "\n", " ", ""},
	}
}

// Split splits text into spans no longer than the chunk size. A span can
// exceed the size only when it is a single unbreakable run, which the final
// character-window fallback prevents in practice.
func (s *RecursiveSplitter) Split(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.splitText(text, s.separators)
}

func (s *RecursiveSplitter) splitText(text string, separators []string) []string {
	if len(text) <= s.chunkSize {
		trimmed := strings.TrimSpace(text)
		if trimmed == "" {
			return nil
		}
		return []string{trimmed}
	}

	sep := ""
	var remaining []string
	for i, candidate := range separators {
		if candidate == "" || strings.Contains(text, candidate) {
			sep = candidate
			remaining = separators[i+1:]
			break
		}
	}

	if sep == "" {
		return s.splitByWindow(text)
	}

	pieces := strings.Split(text, sep)

	var chunks []string
	var pending []string

	for _, piece := range pieces {
		if len(piece) <= s.chunkSize {
			pending = append(pending, piece)
			continue
		}
		if len(pending) > 0 {
			chunks = append(chunks, s.mergePieces(pending, sep)...)
			pending = nil
		}
		chunks = append(chunks, s.splitText(piece, remaining)...)
	}
	if len(pending) > 0 {
		chunks = append(chunks, s.mergePieces(pending, sep)...)
	}

	return chunks
}

// mergePieces greedily packs pieces into spans of at most chunkSize, sliding
// a window that keeps up to overlap characters between consecutive spans.
func (s *RecursiveSplitter) mergePieces(pieces []string, sep string) []string {
	sepLen := len(sep)

	var spans []string
	var window []string
	total := 0

	join := func() {
		span := strings.TrimSpace(strings.Join(window, sep))
		if span != "" {
			spans = append(spans, span)
		}
	}

	for _, piece := range pieces {
		added := len(piece)
		if len(window) > 0 {
			added += sepLen
		}

		if total+added > s.chunkSize && len(window) > 0 {
			join()
			for total > s.overlap || (total+added > s.chunkSize && total > 0) {
				total -= len(window[0])
				if len(window) > 1 {
					total -= sepLen
				}
				window = window[1:]
				if len(window) == 0 {
					break
				}
			}
		}

		window = append(window, piece)
		total += len(piece)
		if len(window) > 1 {
			total += sepLen
		}
	}

	join()
	return spans
}

// splitByWindow is the last-resort cut for unbreakable runs: fixed windows of
// chunkSize characters stepping by chunkSize-overlap.
func (s *RecursiveSplitter) splitByWindow(text string) []string {
	runes := []rune(text)
	step := s.chunkSize - s.overlap
	if step <= 0 {
		step = s.chunkSize
	}

	var spans []string
	for start := 0; start < len(runes); start += step {
		end := start + s.chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		spans = append(spans, string(runes[start:end]))
		if end == len(runes) {
			break
		}
	}
	return spans
}
