package usecase

import (
	"regexp"
	"strings"

	"recall/internal/domain"
	"recall/internal/port"
)

// Tools exposes the two retrieval primitives an agent or CLI composes:
// child chunk search (optionally scoped to source documents named in the
// query) and parent chunk expansion.
type Tools struct {
	index          port.ChildIndex
	parents        port.ParentStore
	scoreThreshold float64
}

func NewTools(index port.ChildIndex, parents port.ParentStore, scoreThreshold float64) *Tools {
	return &Tools{index: index, parents: parents, scoreThreshold: scoreThreshold}
}

// sourceClauseRe captures the last "in"/"from" clause of a query. The
// greedy prefix pins the match to the final occurrence, so "the meeting
// in March from project_kickoff pdf" scopes to project_kickoff.pdf.
var sourceClauseRe = regexp.MustCompile(`(?is)^(.*)\b(?:in|from)\b\s+(.+)$`)

var sourceSplitRe = regexp.MustCompile(`\s+and\s+|,|;`)

var trailingPunctRe = regexp.MustCompile(`[?.!]+$`)

// parseQuerySources extracts requested source documents from a query.
// It returns the query with the source clause removed plus the
// normalized source filenames. Queries with no "in"/"from" clause come
// back unchanged with no sources.
func parseQuerySources(query string) (string, []string) {
	m := sourceClauseRe.FindStringSubmatch(query)
	if m == nil {
		return query, nil
	}

	clause := strings.ToLower(strings.TrimSpace(m[2]))
	clause = strings.TrimSpace(trailingPunctRe.ReplaceAllString(clause, ""))

	var sources []string
	for _, part := range sourceSplitRe.Split(clause, -1) {
		part = strings.TrimSpace(part)
		part = strings.Trim(part, `"'`)
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasSuffix(part, ".pdf") {
			sources = append(sources, part)
			continue
		}
		tokens := strings.Fields(part)
		if len(tokens) >= 2 && tokens[len(tokens)-1] == "pdf" {
			// "attention_is_all_you_need pdf" names one file.
			sources = append(sources, strings.Join(tokens[:len(tokens)-1], "_")+".pdf")
			continue
		}
		sources = append(sources, strings.ReplaceAll(part, " ", "_")+".pdf")
	}

	if len(sources) == 0 {
		return query, nil
	}

	cleaned := strings.TrimSpace(m[1])
	return cleaned, sources
}

// SearchChildChunks returns the top k child chunks for a query. When
// the query names source documents, candidates are drawn from a wider
// unthresholded search, filtered by source, and deduplicated by parent.
// Any failure yields an empty result, never an error, so an agent loop
// can always continue.
func (t *Tools) SearchChildChunks(query string, k int) []domain.ChildResult {
	if k <= 0 {
		k = 5
	}

	cleaned, requested := parseQuerySources(query)

	if len(requested) == 0 {
		hits, err := t.index.Search(cleaned, k, t.scoreThreshold)
		if err != nil {
			return []domain.ChildResult{}
		}
		return toResults(hits)
	}

	searchK := k * 5
	if searchK < 20 {
		searchK = 20
	}
	candidates, err := t.index.Search(cleaned, searchK, 0.0)
	if err != nil {
		return []domain.ChildResult{}
	}

	reqExact := make(map[string]bool, len(requested))
	reqNoExt := make(map[string]bool, len(requested))
	for _, s := range requested {
		s = strings.ToLower(strings.TrimSpace(s))
		reqExact[s] = true
		reqNoExt[strings.TrimSuffix(s, ".pdf")] = true
	}

	results := []domain.ChildResult{}
	seen := make(map[string]bool)
	for _, c := range candidates {
		if c.Source == "" {
			continue
		}
		// Merged chunks carry joined sources like "a.pdf -> b.pdf";
		// the first segment identifies the primary document.
		primary := strings.ToLower(strings.TrimSpace(strings.Split(c.Source, "->")[0]))
		if !reqExact[primary] && !reqNoExt[strings.TrimSuffix(primary, ".pdf")] {
			continue
		}

		key := c.ParentID
		if key == "" {
			key = c.Source
		}
		if key == "" {
			key = truncate(c.Content, 64)
		}
		if seen[key] {
			continue
		}
		seen[key] = true

		results = append(results, domain.ChildResult{
			Content:  c.Content,
			ParentID: c.ParentID,
			Source:   c.Source,
		})
		if len(results) >= k {
			break
		}
	}

	return results
}

// RetrieveParentChunks expands child hits into their full parent chunks.
// IDs are deduplicated and sorted; unknown IDs are skipped.
func (t *Tools) RetrieveParentChunks(parentIDs []string) ([]domain.ParentRecord, error) {
	return t.parents.GetMany(parentIDs)
}

func toResults(hits []domain.ScoredChild) []domain.ChildResult {
	out := make([]domain.ChildResult, 0, len(hits))
	for _, h := range hits {
		out = append(out, domain.ChildResult{
			Content:  h.Content,
			ParentID: h.ParentID,
			Source:   h.Source,
		})
	}
	return out
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
