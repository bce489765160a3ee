package usecase

import (
	"fmt"
	"sort"
	"strings"

	"recall/internal/domain"
	"recall/internal/port"
)

const askSystemPrompt = `You are an assistant answering questions about meeting documents.
Answer using ONLY the provided context. Cite the source file of each fact.
If the context does not contain the answer, say so plainly.`

// Answer is the outcome of one question, including the retrieval trail
// so callers can show where the answer came from.
type Answer struct {
	Text    string
	Hits    []domain.ChildResult
	Parents []domain.ParentRecord
	Sources []string
}

// Asker answers questions by retrieving child chunks, expanding them to
// their parent chunks and handing the assembled context to a language
// model.
type Asker struct {
	tools *Tools
	model port.LLM
	topK  int
}

func NewAsker(tools *Tools, model port.LLM, topK int) *Asker {
	if topK <= 0 {
		topK = 5
	}
	return &Asker{tools: tools, model: model, topK: topK}
}

// Ask runs the retrieve-expand-generate loop for one question.
func (a *Asker) Ask(question string) (*Answer, error) {
	hits := a.tools.SearchChildChunks(question, a.topK)
	if len(hits) == 0 {
		return &Answer{Text: "No relevant information found in the indexed documents."}, nil
	}

	ids := make([]string, 0, len(hits))
	for _, h := range hits {
		if h.ParentID != "" {
			ids = append(ids, h.ParentID)
		}
	}
	parents, err := a.tools.RetrieveParentChunks(ids)
	if err != nil {
		return nil, fmt.Errorf("expand parents: %w", err)
	}

	var ctx strings.Builder
	sources := map[string]bool{}
	for _, p := range parents {
		src := p.Metadata["source"]
		if src != "" {
			sources[src] = true
		}
		fmt.Fprintf(&ctx, "[source: %s]\n%s\n\n", src, p.Content)
	}
	// Fall back to the raw child hits if every parent lookup missed.
	if len(parents) == 0 {
		for _, h := range hits {
			sources[h.Source] = true
			fmt.Fprintf(&ctx, "[source: %s]\n%s\n\n", h.Source, h.Content)
		}
	}

	prompt := fmt.Sprintf("Context:\n%s\nQuestion: %s", ctx.String(), question)
	text, err := a.model.GenerateWithSystem(askSystemPrompt, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	srcList := make([]string, 0, len(sources))
	for s := range sources {
		srcList = append(srcList, s)
	}
	sort.Strings(srcList)

	return &Answer{Text: text, Hits: hits, Parents: parents, Sources: srcList}, nil
}
