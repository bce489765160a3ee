package domain

// Section is one header-delimited slice of a markdown document, produced by
// the header splitter before any merging. The header line itself stays in
// Content; Metadata holds the active header hierarchy (H1/H2/H3 -> title).
type Section struct {
	Content  string
	Metadata map[string]string
}

// ParentChunk is a size-bounded unit of a document used for context
// expansion at query time. Metadata carries at least "source" and
// "parent_id" once IDs are assigned.
type ParentChunk struct {
	ParentID string
	Content  string
	Metadata map[string]string
}

// ChildChunk is a small sub-span of one ParentChunk, the unit actually
// indexed and searched. ParentID is a back-reference, not ownership.
type ChildChunk struct {
	Content  string
	ParentID string
	Source   string
}

// ScoredChild is a search hit from the child index.
type ScoredChild struct {
	Content  string
	ParentID string
	Source   string
	Score    float64
}

// ChildResult is the query-tool view of a search hit.
type ChildResult struct {
	Content  string `json:"content"`
	ParentID string `json:"parent_id"`
	Source   string `json:"source"`
}

// ParentRecord is a parent chunk as read back from the parent store.
type ParentRecord struct {
	Content  string            `json:"content"`
	ParentID string            `json:"parent_id"`
	Metadata map[string]string `json:"metadata"`
}

// SparseVector is a lexical term-weight vector paired with the dense
// embedding in the hybrid index.
type SparseVector map[string]float32

// SpeakerProfile is one enrolled voice profile. The embedding comes from the
// external speaker-verification model; this package only stores it.
type SpeakerProfile struct {
	Name       string    `json:"name"`
	Embedding  []float32 `json:"embedding"`
	EnrolledAt int64     `json:"enrolled_at"`
}
