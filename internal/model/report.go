package model

import "time"

// CaseInput aggregates every immutable input for one case analysis run.
// It is supplied by an external ingestion/persistence collaborator; the
// engine treats it as read-only.
type CaseInput struct {
	CaseID           string            `json:"case_id"`
	Baseline         Baseline          `json:"baseline"`
	Documents        []Document        `json:"documents,omitempty"`
	ClearanceRecords []ClearanceRecord `json:"clearance_records,omitempty"`
	Interviews       []Interview       `json:"interviews,omitempty"`
	Knowledge        *CaseKnowledge    `json:"knowledge,omitempty"`
}

// AnalysisMeta records how and when a report was produced
type AnalysisMeta struct {
	CaseID     string    `json:"case_id"`
	RunID      string    `json:"run_id"`             // Unique per analysis run
	Engine     string    `json:"engine"`             // "heuristic" or "llm"
	Provider   string    `json:"provider,omitempty"` // LLM provider when engine is "llm"
	Model      string    `json:"model,omitempty"`    // LLM model when engine is "llm"
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// AnalysisReport is the complete structured analysis for one case.
// The heuristic engine and the LLM path produce the same schema, so a
// downstream consumer cannot tell which one ran.
type AnalysisReport struct {
	Meta AnalysisMeta `json:"meta"`

	Events    []TimelineEvent `json:"events"`
	Conflicts []Conflict      `json:"conflicts"`

	Clearances ClearanceCaseSummary `json:"clearances"`

	Insights        []ExtractedInsight        `json:"insights"`
	CrossReferences []CrossReferenceResult    `json:"cross_references"`
	Profiles        []SuspectKnowledgeProfile `json:"profiles"`

	CriticalFindings []string `json:"critical_findings,omitempty"`
	Recommendations  []string `json:"recommendations,omitempty"`
}
