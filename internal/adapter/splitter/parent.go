package splitter

import (
	"fmt"

	"recall/internal/domain"
)

// ParentSplitter turns one document's markdown into a bounded sequence of
// parent chunks and derives the overlapping child chunks indexed for search.
//
// Pipeline: header split -> merge small -> split large -> clean small
// residues -> assign IDs -> derive children. Every finalized parent except
// possibly the first and last of a document ends up with content length in
// [minParentSize, maxParentSize].
type ParentSplitter struct {
	header  *HeaderSplitter
	large   *RecursiveSplitter
	child   *RecursiveSplitter
	minSize int
	maxSize int
}

// NewParentSplitter creates a splitter with the given parent bounds and
// child span size/overlap, all in characters.
func NewParentSplitter(minParentSize, maxParentSize, childSize, childOverlap int) *ParentSplitter {
	return &ParentSplitter{
		header:  NewHeaderSplitter(),
		large:   NewRecursiveSplitter(maxParentSize, childOverlap),
		child:   NewRecursiveSplitter(childSize, childOverlap),
		minSize: minParentSize,
		maxSize: maxParentSize,
	}
}

// SplitDocument produces the finalized parent chunks and their children for
// one document. stem is the document's filename stem; parent IDs take the
// form "{stem}_parent_{i}" and source metadata is "{stem}.pdf". An empty
// document yields empty slices, not an error.
func (p *ParentSplitter) SplitDocument(stem, text string) ([]domain.ParentChunk, []domain.ChildChunk) {
	sections := p.header.Split(text)
	if len(sections) == 0 {
		return nil, nil
	}

	chunks := make([]domain.ParentChunk, 0, len(sections))
	for _, sec := range sections {
		chunks = append(chunks, domain.ParentChunk{
			Content:  sec.Content,
			Metadata: copyMeta(sec.Metadata),
		})
	}

	chunks = p.mergeSmall(chunks)
	chunks = p.splitLarge(chunks)
	chunks = p.cleanSmall(chunks)

	source := stem + ".pdf"
	var children []domain.ChildChunk

	for i := range chunks {
		parentID := fmt.Sprintf("%s_parent_%d", stem, i)
		chunks[i].ParentID = parentID
		if chunks[i].Metadata == nil {
			chunks[i].Metadata = map[string]string{}
		}
		chunks[i].Metadata["source"] = source
		chunks[i].Metadata["parent_id"] = parentID

		for _, span := range p.child.Split(chunks[i].Content) {
			children = append(children, domain.ChildChunk{
				Content:  span,
				ParentID: parentID,
				Source:   source,
			})
		}
	}

	return chunks, children
}

// mergeSmall accumulates consecutive sections until the buffer reaches the
// minimum parent size, then emits it. A leftover buffer at the end merges
// into the last emitted chunk, or becomes the sole chunk if none was emitted.
func (p *ParentSplitter) mergeSmall(chunks []domain.ParentChunk) []domain.ParentChunk {
	if len(chunks) == 0 {
		return nil
	}

	var merged []domain.ParentChunk
	var current *domain.ParentChunk

	for _, c := range chunks {
		if current == nil {
			cc := c
			cc.Metadata = copyMeta(c.Metadata)
			current = &cc
		} else {
			current.Content += "\n\n" + c.Content
			mergeMetaForward(current.Metadata, c.Metadata)
		}

		if len(current.Content) >= p.minSize {
			merged = append(merged, *current)
			current = nil
		}
	}

	if current != nil {
		if len(merged) > 0 {
			last := &merged[len(merged)-1]
			last.Content += "\n\n" + current.Content
			mergeMetaForward(last.Metadata, current.Metadata)
		} else {
			merged = append(merged, *current)
		}
	}

	return merged
}

// splitLarge subdivides any chunk above the maximum parent size, copying the
// chunk's metadata onto every resulting piece.
func (p *ParentSplitter) splitLarge(chunks []domain.ParentChunk) []domain.ParentChunk {
	var out []domain.ParentChunk

	for _, c := range chunks {
		if len(c.Content) <= p.maxSize {
			out = append(out, c)
			continue
		}
		for _, piece := range p.large.Split(c.Content) {
			out = append(out, domain.ParentChunk{
				Content:  piece,
				Metadata: copyMeta(c.Metadata),
			})
		}
	}

	return out
}

// cleanSmall is a second undersize pass: splitLarge can reintroduce small
// fragments after mergeSmall ran. An undersized chunk merges into its
// predecessor when one exists, otherwise it prepends into its successor.
// A sole undersized chunk is kept as-is. The merge direction decides which
// ordinal each surviving chunk gets, so it must not be simplified.
func (p *ParentSplitter) cleanSmall(chunks []domain.ParentChunk) []domain.ParentChunk {
	var cleaned []domain.ParentChunk

	for i := 0; i < len(chunks); i++ {
		c := chunks[i]
		if len(c.Content) >= p.minSize {
			cleaned = append(cleaned, c)
			continue
		}

		switch {
		case len(cleaned) > 0:
			last := &cleaned[len(cleaned)-1]
			last.Content += "\n\n" + c.Content
			mergeMetaForward(last.Metadata, c.Metadata)
		case i < len(chunks)-1:
			next := &chunks[i+1]
			next.Content = c.Content + "\n\n" + next.Content
			mergeMetaReverse(next.Metadata, c.Metadata)
		default:
			cleaned = append(cleaned, c)
		}
	}

	return cleaned
}

// mergeMetaForward folds src into dst; a key collision joins values as
// "existing -> incoming".
func mergeMetaForward(dst, src map[string]string) {
	for k, v := range src {
		if existing, ok := dst[k]; ok {
			dst[k] = existing + " -> " + v
		} else {
			dst[k] = v
		}
	}
}

// mergeMetaReverse folds src into dst with the join direction mirrored:
// "incoming -> existing". Used when an undersized chunk prepends into its
// successor.
func mergeMetaReverse(dst, src map[string]string) {
	for k, v := range src {
		if existing, ok := dst[k]; ok {
			dst[k] = v + " -> " + existing
		} else {
			dst[k] = v
		}
	}
}
