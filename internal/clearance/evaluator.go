package clearance

import (
	"fmt"
	"math"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// Deductions applied against the accumulated method score when the alibi
// detail shows weaknesses
const (
	deductionBiasedWitnesses     = 20
	deductionUnverifiedAlibi     = 15
	deductionConflictingEvidence = 30
	deductionNoDocumentation     = 10
)

// Evaluate scores one clearance record. It is a pure function: the record is
// never mutated and the evaluation is rebuilt from scratch on every call.
// The only error is an unrecognized clearance method, which indicates a
// configuration or programming fault in the caller, not a transient failure.
func Evaluate(rec model.ClearanceRecord) (model.ClearanceEvaluation, error) {
	if len(rec.Methods) == 0 {
		return model.ClearanceEvaluation{}, fmt.Errorf("clearance record for %q lists no methods", rec.SuspectName)
	}

	totalScore := 0
	maxScore := 0
	hasPolygraph := false
	hasHighReliability := false
	hasDemeanor := false
	hasDNA := false

	for _, m := range rec.Methods {
		profile, ok := methodProfiles[m]
		if !ok {
			return model.ClearanceEvaluation{}, fmt.Errorf("unknown clearance method %q", m)
		}
		totalScore += profile.BaseScore
		maxScore += 100

		switch {
		case m == model.MethodPolygraphPassed:
			hasPolygraph = true
		case m == model.MethodCooperativeDemeanor:
			hasDemeanor = true
		}
		if m == model.MethodDNAExclusion {
			hasDNA = true
		}
		if isHighReliability(m) {
			hasHighReliability = true
		}
	}

	var flags []model.RedFlag

	if hasPolygraph && !hasHighReliability {
		flags = append(flags, model.RedFlag{
			Type:        "polygraph_only",
			Severity:    model.SeverityCritical,
			Description: "Clearance rests on a passed polygraph with no high-reliability corroborating method",
		})
	}
	if hasDemeanor {
		flags = append(flags, model.RedFlag{
			Type:        "behavior_based",
			Severity:    model.SeverityHigh,
			Description: "Cooperative demeanor was counted toward clearance; behavior is not evidence",
		})
	}

	if rec.Alibi != nil {
		if allWitnessesBiased(rec.Alibi.Witnesses) {
			totalScore -= deductionBiasedWitnesses
			flags = append(flags, model.RedFlag{
				Type:        "biased_witness",
				Severity:    model.SeverityHigh,
				Description: "Every alibi witness has a personal relationship with the suspect",
			})
		}
		if v := normalizeToken(rec.Alibi.Verification); v == "none" || v == "unknown" || v == "" {
			totalScore -= deductionUnverifiedAlibi
			flags = append(flags, model.RedFlag{
				Type:        "unverified_alibi",
				Severity:    model.SeverityHigh,
				Description: "The alibi was never verified by an investigator",
			})
		}
		if len(rec.Alibi.Contradictions) > 0 {
			totalScore -= deductionConflictingEvidence
			flags = append(flags, model.RedFlag{
				Type:        "conflicting_evidence",
				Severity:    model.SeverityCritical,
				Description: fmt.Sprintf("%d piece(s) of evidence contradict the alibi", len(rec.Alibi.Contradictions)),
			})
		}
		if len(rec.Alibi.DocumentaryEvidence) == 0 {
			totalScore -= deductionNoDocumentation
			flags = append(flags, model.RedFlag{
				Type:        "weak_documentation",
				Severity:    model.SeverityMedium,
				Description: "No documentary evidence supports the claimed alibi",
			})
		}
	}

	if !rec.DocumentationAvailable {
		flags = append(flags, model.RedFlag{
			Type:        "weak_documentation",
			Severity:    model.SeverityMedium,
			Description: "The clearance file itself is undocumented",
		})
	}

	if len(rec.Methods) == 1 && !isHighReliability(rec.Methods[0]) {
		flags = append(flags, model.RedFlag{
			Type:        "premature_clearance",
			Severity:    model.SeverityHigh,
			Description: "A single non-high-reliability method was the sole basis for clearance",
		})
	}

	score := clampScore(int(math.Round(100 * float64(totalScore) / float64(maxScore))))
	strength := strengthForScore(score)

	critical := hasCriticalFlag(flags)
	if critical {
		strength = strength.Downgrade()
	}

	reexamine := critical || strength.Rank() <= model.StrengthWeak.Rank()

	eval := model.ClearanceEvaluation{
		SuspectID:          rec.SuspectID,
		SuspectName:        rec.SuspectName,
		StrengthScore:      score,
		Strength:           strength,
		Urgency:            urgencyFor(strength, critical),
		RedFlags:           flags,
		Recommendations:    buildRecommendations(rec, flags, hasDNA),
		ShouldBeReexamined: reexamine,
		Summary:            summaryFor(rec.SuspectName, strength, score),
	}
	return eval, nil
}

// strengthForScore maps the numeric score onto the ordinal label via the
// fixed 80/60/40/20 thresholds
func strengthForScore(score int) model.ClearanceStrength {
	switch {
	case score >= 80:
		return model.StrengthStrong
	case score >= 60:
		return model.StrengthModerate
	case score >= 40:
		return model.StrengthWeak
	case score >= 20:
		return model.StrengthVeryWeak
	default:
		return model.StrengthUnreliable
	}
}

func urgencyFor(strength model.ClearanceStrength, critical bool) model.Severity {
	if critical {
		return model.SeverityCritical
	}
	switch strength {
	case model.StrengthStrong:
		return model.SeverityLow
	case model.StrengthModerate:
		return model.SeverityMedium
	default:
		return model.SeverityHigh
	}
}

// buildRecommendations emits follow-ups in a fixed priority order:
// polygraph-only, biased witnesses, missing DNA comparison, missing
// documentary evidence
func buildRecommendations(rec model.ClearanceRecord, flags []model.RedFlag, hasDNA bool) []string {
	var recs []string

	if hasFlag(flags, "polygraph_only") {
		recs = append(recs, fmt.Sprintf("Re-examine %s: a passed polygraph has no evidentiary value and must not be the sole basis for clearance", rec.SuspectName))
	}
	if hasFlag(flags, "biased_witness") {
		recs = append(recs, "Locate independent witnesses; every current alibi witness has a personal relationship with the suspect")
	}
	if !hasDNA {
		recs = append(recs, "Collect and compare DNA if biological material from the scene is available")
	}
	if rec.Alibi == nil || len(rec.Alibi.DocumentaryEvidence) == 0 {
		recs = append(recs, "Obtain documentary evidence (receipts, CCTV, phone or transaction records) covering the claimed timeframe")
	}

	return recs
}

// summaryFor produces the fixed-template summary sentence per strength tier
func summaryFor(name string, strength model.ClearanceStrength, score int) string {
	switch strength {
	case model.StrengthStrong:
		return fmt.Sprintf("The clearance of %s is strong (%d/100) and rests on reliable, scientifically grounded methods.", name, score)
	case model.StrengthModerate:
		return fmt.Sprintf("The clearance of %s is moderate (%d/100); the methods used are acceptable but leave room for doubt.", name, score)
	case model.StrengthWeak:
		return fmt.Sprintf("The clearance of %s is weak (%d/100) and should be revisited as resources allow.", name, score)
	case model.StrengthVeryWeak:
		return fmt.Sprintf("The clearance of %s is very weak (%d/100); re-examination is strongly advised.", name, score)
	default:
		return fmt.Sprintf("The clearance of %s is unreliable (%d/100) and must not be treated as an elimination.", name, score)
	}
}

func allWitnessesBiased(witnesses []model.AlibiWitness) bool {
	if len(witnesses) == 0 {
		return false
	}
	for _, w := range witnesses {
		if !isBiasedRelationship(w.Relationship) {
			return false
		}
	}
	return true
}

func hasCriticalFlag(flags []model.RedFlag) bool {
	for _, f := range flags {
		if f.Severity == model.SeverityCritical {
			return true
		}
	}
	return false
}

func hasFlag(flags []model.RedFlag, flagType string) bool {
	for _, f := range flags {
		if f.Type == flagType {
			return true
		}
	}
	return false
}

func clampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
