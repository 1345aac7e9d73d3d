package model

// ClearanceMethod identifies how a suspect was ruled out. The set is closed:
// an unrecognized method is an input-shape violation, not a soft failure.
type ClearanceMethod string

const (
	MethodDNAExclusion         ClearanceMethod = "dna_exclusion"
	MethodFingerprintExclusion ClearanceMethod = "fingerprint_exclusion"
	MethodVideoEvidence        ClearanceMethod = "video_evidence"
	MethodDigitalForensics     ClearanceMethod = "digital_forensics"
	MethodVerifiedAlibi        ClearanceMethod = "verified_alibi"
	MethodPhoneRecords         ClearanceMethod = "phone_records"
	MethodWitnessCorroboration ClearanceMethod = "witness_corroboration"
	MethodStatementConsistency ClearanceMethod = "statement_consistency"
	MethodNoApparentMotive     ClearanceMethod = "no_apparent_motive"
	MethodPolygraphPassed      ClearanceMethod = "polygraph_passed"
	MethodCooperativeDemeanor  ClearanceMethod = "cooperative_demeanor"
)

// Reliability classifies how dependable a clearance method is
type Reliability string

const (
	ReliabilityLow    Reliability = "low"
	ReliabilityMedium Reliability = "medium"
	ReliabilityHigh   Reliability = "high"
)

// ScientificBasis classifies the scientific grounding of a method
type ScientificBasis string

const (
	BasisNone     ScientificBasis = "none"
	BasisWeak     ScientificBasis = "weak"
	BasisModerate ScientificBasis = "moderate"
	BasisStrong   ScientificBasis = "strong"
)

// AlibiWitness is one person supporting a suspect's alibi
type AlibiWitness struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`          // family, romantic, friend, coworker, stranger, ...
	Credibility  string `json:"credibility,omitempty"` // Investigator's assessment, free-form
}

// AlibiDetail is the structured account of a suspect's claimed whereabouts
type AlibiDetail struct {
	Claim               string         `json:"claim"`                          // What the suspect says they were doing
	Timeframe           string         `json:"timeframe,omitempty"`            // The window the alibi covers
	Witnesses           []AlibiWitness `json:"witnesses,omitempty"`            // Supporting witnesses
	DocumentaryEvidence []string       `json:"documentary_evidence,omitempty"` // Receipts, CCTV, phone records, ...
	Verification        string         `json:"verification"`                   // none, unknown, partial, full
	Contradictions      []string       `json:"contradictions,omitempty"`       // Evidence contradicting the alibi
}

// ClearanceRecord is the immutable input describing how a suspect was cleared
type ClearanceRecord struct {
	SuspectID              string            `json:"suspect_id"`
	SuspectName            string            `json:"suspect_name"`
	Methods                []ClearanceMethod `json:"methods"`                 // Ordered list of methods used
	Alibi                  *AlibiDetail      `json:"alibi,omitempty"`         // Optional structured alibi
	DocumentationAvailable bool              `json:"documentation_available"` // Whether the clearance file is documented
}

// RedFlag is a concern raised while evaluating a clearance
type RedFlag struct {
	Type        string   `json:"type"`        // polygraph_only, biased_witness, ...
	Severity    Severity `json:"severity"`    // medium, high, or critical
	Description string   `json:"description"` // Human-readable explanation
}

// ClearanceEvaluation is the derived, read-only view over a ClearanceRecord.
// It is recomputed fresh on every call and never cached or mutated.
type ClearanceEvaluation struct {
	SuspectID          string            `json:"suspect_id"`
	SuspectName        string            `json:"suspect_name"`
	StrengthScore      int               `json:"strength_score"`      // 0..100
	Strength           ClearanceStrength `json:"strength"`            // Ordinal label, downgraded on critical flags
	Urgency            Severity          `json:"urgency"`             // How urgently the clearance needs attention
	RedFlags           []RedFlag         `json:"red_flags,omitempty"`
	Recommendations    []string          `json:"recommendations,omitempty"`
	ShouldBeReexamined bool              `json:"should_be_reexamined"`
	Summary            string            `json:"summary"` // Fixed-template sentence per strength tier
}

// ClearanceCaseSummary aggregates all clearance evaluations for one case
type ClearanceCaseSummary struct {
	Evaluations           []ClearanceEvaluation `json:"evaluations"` // Sorted worst-first by score
	CriticalCount         int                   `json:"critical_count"`
	HighUrgencyCount      int                   `json:"high_urgency_count"`
	ReexaminationCount    int                   `json:"reexamination_count"`
	PrimaryRecommendation string                `json:"primary_recommendation"`
}
