package domain

// Engine identifiers used in query responses.
const (
	EngineEDUE = "edue"
	EngineRAG  = "rag"
)

// QueryResult is the answer produced by the deterministic engine for a
// single question. A result with Confidence == SentinelConfidence and
// no pages is the canonical "no answer found" sentinel, not a
// legitimately weak match.
type QueryResult struct {
	Answer     string  `json:"answer"`
	Confidence float64 `json:"confidence"`
	Pages      []int   `json:"pages"`
}

// SentinelConfidence marks the fixed no-evidence response.
const SentinelConfidence = 0.05

// NoAnswerText is the canonical answer body of the sentinel response.
const NoAnswerText = "Information is not available."

// NoAnswerResult returns the sentinel response.
func NoAnswerResult() QueryResult {
	return QueryResult{
		Answer:     NoAnswerText,
		Confidence: SentinelConfidence,
		Pages:      []int{},
	}
}

// IsNoAnswer reports whether a result is the sentinel response.
func (r QueryResult) IsNoAnswer() bool {
	return r.Confidence == SentinelConfidence && len(r.Pages) == 0
}

// EngineResult wraps a QueryResult with the engine that produced it,
// mirroring the single-engine query API shape.
type EngineResult struct {
	Engine   string      `json:"engine"`
	Question string      `json:"question"`
	Result   QueryResult `json:"result"`
}

// RAGSource is one retrieval hit backing a generated answer.
type RAGSource struct {
	Source string  `json:"source"`
	Page   int     `json:"page"`
	Score  float64 `json:"score"`
}

// RAGConfidence is the coarse confidence label of the generative
// engine: "high" when at least one source clears the retrieval score
// threshold, "low" otherwise.
type RAGConfidence string

const (
	RAGConfidenceLow  RAGConfidence = "low"
	RAGConfidenceHigh RAGConfidence = "high"
)

// RAGAnswer is the secondary engine's response.
type RAGAnswer struct {
	Query      string        `json:"query"`
	Answer     string        `json:"answer"`
	Confidence RAGConfidence `json:"confidence"`
	Sources    []RAGSource   `json:"sources"`
}

// CalibratedConfidence is the banded, explainable confidence produced
// from a raw engine score plus corroboration signals.
type CalibratedConfidence struct {
	RawScore        float64 `json:"raw_score"`
	CalibratedScore float64 `json:"calibrated_score"`
	Band            string  `json:"band"`
	PageSupport     int     `json:"page_support"`
	Explanation     string  `json:"explanation"`
}

// Composition records which engine supplied which part of a merged
// answer. FactsSource is always "edue"; ExplanationSource is "rag" or
// "none".
type Composition struct {
	FactsSource       string `json:"facts_source"`
	ExplanationSource string `json:"explanation_source"`
}

// MergedAnswer combines the authoritative deterministic answer with an
// optional generative explanation block.
type MergedAnswer struct {
	FinalAnswer string      `json:"final_answer"`
	Confidence  float64     `json:"confidence"`
	Pages       []int       `json:"pages"`
	Composition Composition `json:"composition"`
}

// RetrievedChunk is a scored vector-search hit.
type RetrievedChunk struct {
	DocumentID string  `json:"document_id"`
	Filename   string  `json:"filename"`
	Page       int     `json:"page"`
	ChunkIndex int     `json:"chunk_index"`
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
}

// SearchFilter narrows vector search to a single document when set.
type SearchFilter struct {
	DocumentID string
}

// HybridResult is the terminal output of the hybrid orchestrator.
// RAG is nil when the secondary engine was skipped or failed; the two
// cases are distinguished by SecondaryConsulted and SecondaryFailed.
// Explanation is the ordered audit trace of the steps actually taken.
type HybridResult struct {
	Query         string               `json:"query"`
	PrimaryEngine string               `json:"primary_engine"`
	FinalAnswer   string               `json:"final_answer"`
	Confidence    CalibratedConfidence `json:"confidence"`
	Pages         []int                `json:"pages"`
	EDUE          QueryResult          `json:"edue"`
	RAG           *RAGAnswer           `json:"rag,omitempty"`
	Composition   Composition          `json:"composition"`
	Explanation   []string             `json:"explanation"`

	// SecondaryConsulted is true when the secondary engine was
	// invoked, regardless of outcome. SecondaryFailed is true only
	// when that invocation returned an error.
	SecondaryConsulted bool `json:"secondary_consulted"`
	SecondaryFailed    bool `json:"secondary_failed,omitempty"`
}
