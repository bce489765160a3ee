package embedding

import (
	"recall/internal/adapter/analyzer"
	"recall/internal/domain"
)

// BM25SparseEncoder produces sparse term-weight vectors. Document-side
// weights use BM25 term-frequency saturation; query-side terms weigh 1.
// IDF is left to the fused cosine normalization since the encoder sees one
// document at a time.
type BM25SparseEncoder struct {
	tokenizer *analyzer.Tokenizer
	k1        float64
	b         float64
	avgDocLen float64
}

// NewBM25SparseEncoder creates a sparse encoder with standard BM25 constants.
func NewBM25SparseEncoder(tokenizer *analyzer.Tokenizer) *BM25SparseEncoder {
	return &BM25SparseEncoder{
		tokenizer: tokenizer,
		k1:        1.2,
		b:         0.75,
		avgDocLen: 256,
	}
}

// EncodeDocument encodes a child chunk's content.
func (e *BM25SparseEncoder) EncodeDocument(text string) domain.SparseVector {
	tokens := e.tokenizer.Tokenize(text)
	if len(tokens) == 0 {
		return domain.SparseVector{}
	}

	tf := make(map[string]int, len(tokens))
	for _, tok := range tokens {
		tf[tok]++
	}

	dl := float64(len(tokens))
	vec := make(domain.SparseVector, len(tf))
	for term, count := range tf {
		f := float64(count)
		vec[term] = float32(f * (e.k1 + 1) / (f + e.k1*(1-e.b+e.b*dl/e.avgDocLen)))
	}

	return vec
}

// EncodeQuery encodes a query string. Each distinct term weighs 1.
func (e *BM25SparseEncoder) EncodeQuery(text string) domain.SparseVector {
	tokens := e.tokenizer.Tokenize(text)
	vec := make(domain.SparseVector, len(tokens))
	for _, tok := range tokens {
		vec[tok] = 1
	}
	return vec
}
