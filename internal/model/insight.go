package model

// InsightCategory classifies what kind of knowledge a statement reveals
type InsightCategory string

const (
	CategoryCrimeSceneDetail  InsightCategory = "crime_scene_detail"
	CategoryVictimState       InsightCategory = "victim_state"
	CategoryBodyKnowledge     InsightCategory = "body_knowledge"
	CategoryTimingDetail      InsightCategory = "timing_detail"
	CategoryLocationKnowledge InsightCategory = "location_knowledge"
	CategoryEvidenceKnowledge InsightCategory = "evidence_knowledge"
	CategoryWeaponKnowledge   InsightCategory = "weapon_knowledge"
	CategoryVictimMovement    InsightCategory = "victim_movement"
)

// SensitiveCategory reports whether detailed statements in this category are
// treated as a guilty-knowledge signal on their own
func (c InsightCategory) Sensitive() bool {
	switch c {
	case CategoryBodyKnowledge, CategoryWeaponKnowledge, CategoryVictimState:
		return true
	default:
		return false
	}
}

// ExtractedInsight is one typed claim extracted from an interview sentence
type ExtractedInsight struct {
	Speaker                  string          `json:"speaker"`
	Role                     string          `json:"role"`
	Type                     InsightCategory `json:"type"`
	Detail                   string          `json:"detail"`           // The factual detail, trimmed
	FullQuote                string          `json:"full_quote"`       // The complete source sentence
	Specificity              Specificity     `json:"specificity"`      // Points-based ordinal grade
	FlaggedAsGuiltyKnowledge bool            `json:"flagged_as_guilty_knowledge"`
	Reason                   string          `json:"reason,omitempty"` // Why the insight was flagged
	Confidence               float64         `json:"confidence"`       // 0..1
	InterviewDate            string          `json:"interview_date,omitempty"`
}

// KnowledgeIndicator is one guilty-knowledge signal raised by cross-referencing
type KnowledgeIndicator struct {
	Type        string   `json:"type"`        // before_discovery, unique_knowledge, unpublished_detail
	Severity    Severity `json:"severity"`    // high or critical
	Speaker     string   `json:"speaker"`     // Who the indicator names
	Description string   `json:"description"` // Human-readable explanation
}

// SpecificityInconsistency records the same detail being described at very
// different levels of precision by different speakers
type SpecificityInconsistency struct {
	Detail   string      `json:"detail"`   // Normalized detail string
	Speakers []string    `json:"speakers"` // The speakers at the extremes
	Highest  Specificity `json:"highest"`
	Lowest   Specificity `json:"lowest"`
}

// CrossReferenceResult groups all mentions of one normalized detail across
// speakers, with the indicators derived from the group
type CrossReferenceResult struct {
	Detail                  string                     `json:"detail"`   // Lower-cased, trimmed detail string
	Mentions                []ExtractedInsight         `json:"mentions"` // Every insight sharing the detail
	MatchesPublicKnowledge  bool                       `json:"matches_public_knowledge"`
	BeforeDiscoverySpeakers []string                   `json:"before_discovery_speakers,omitempty"`
	Indicators              []KnowledgeIndicator       `json:"indicators,omitempty"`
	Inconsistencies         []SpecificityInconsistency `json:"inconsistencies,omitempty"`
}

// SuspectKnowledgeProfile is the per-speaker aggregate over all their
// insights and every cross-reference indicator naming them
type SuspectKnowledgeProfile struct {
	Speaker          string                  `json:"speaker"`
	Role             string                  `json:"role"`
	TotalInsights    int                     `json:"total_insights"`
	SpecificInsights int                     `json:"specific_insights"` // specific or highly_specific
	FlaggedInsights  int                     `json:"flagged_insights"`
	CategoryCounts   map[InsightCategory]int `json:"category_counts,omitempty"`
	IndicatorCount   int                     `json:"indicator_count"`
	SuspicionScore   int                     `json:"suspicion_score"` // 0..100, closed-form
	TopConcerns      []string                `json:"top_concerns,omitempty"`
}
