package clearance

import (
	"strings"
	"testing"

	"github.com/ndmitriev/caseline/internal/model"
)

func TestEvaluate_PolygraphOnly(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectID:   "s1",
		SuspectName: "Derek Olen",
		Methods:     []model.ClearanceMethod{model.MethodPolygraphPassed},
	}

	eval, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if eval.StrengthScore != 10 {
		t.Errorf("score = %d, want 10", eval.StrengthScore)
	}
	if eval.Strength != model.StrengthUnreliable {
		t.Errorf("strength = %s, want unreliable", eval.Strength)
	}
	if eval.Urgency != model.SeverityCritical {
		t.Errorf("urgency = %s, want critical", eval.Urgency)
	}
	if !eval.ShouldBeReexamined {
		t.Error("polygraph-only clearance must be re-examined")
	}

	if !hasFlag(eval.RedFlags, "polygraph_only") {
		t.Error("missing polygraph_only flag")
	}
	if !hasFlag(eval.RedFlags, "premature_clearance") {
		t.Error("a single low-reliability method should flag premature_clearance")
	}

	if len(eval.Recommendations) == 0 || !strings.Contains(eval.Recommendations[0], "Re-examine Derek Olen") {
		t.Errorf("recommendations = %v", eval.Recommendations)
	}
}

func TestEvaluate_StrongClearance(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectID:              "s2",
		SuspectName:            "Anna Voss",
		Methods:                []model.ClearanceMethod{model.MethodDNAExclusion, model.MethodVideoEvidence},
		DocumentationAvailable: true,
	}

	eval, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if eval.StrengthScore != 93 {
		t.Errorf("score = %d, want 93", eval.StrengthScore)
	}
	if eval.Strength != model.StrengthStrong {
		t.Errorf("strength = %s, want strong", eval.Strength)
	}
	if len(eval.RedFlags) != 0 {
		t.Errorf("expected no red flags, got %+v", eval.RedFlags)
	}
	if eval.Urgency != model.SeverityLow {
		t.Errorf("urgency = %s, want low", eval.Urgency)
	}
	if eval.ShouldBeReexamined {
		t.Error("strong clearance should not be re-examined")
	}
	if !strings.Contains(eval.Summary, "strong (93/100)") {
		t.Errorf("summary = %q", eval.Summary)
	}
}

func TestEvaluate_BiasedWitnessDeduction(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectID:   "s3",
		SuspectName: "Carl Webb",
		Methods:     []model.ClearanceMethod{model.MethodVerifiedAlibi},
		Alibi: &model.AlibiDetail{
			Claim:               "at home all evening",
			Witnesses:           []model.AlibiWitness{{Name: "M. Webb", Relationship: "Spouse"}},
			Verification:        "police interview",
			DocumentaryEvidence: []string{"phone location record"},
		},
		DocumentationAvailable: true,
	}

	eval, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if eval.StrengthScore != 60 {
		t.Errorf("score = %d, want 60 (80 base, -20 biased witnesses)", eval.StrengthScore)
	}
	if eval.Strength != model.StrengthModerate {
		t.Errorf("strength = %s, want moderate", eval.Strength)
	}
	if !hasFlag(eval.RedFlags, "biased_witness") {
		t.Error("missing biased_witness flag")
	}
	if eval.ShouldBeReexamined {
		t.Error("moderate strength without critical flags stands")
	}
}

func TestEvaluate_ConflictingEvidenceDowngrades(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectID:   "s4",
		SuspectName: "Gina Park",
		Methods:     []model.ClearanceMethod{model.MethodVerifiedAlibi},
		Alibi: &model.AlibiDetail{
			Witnesses:           []model.AlibiWitness{{Name: "T. Ruiz", Relationship: "coworker"}},
			Verification:        "police interview",
			DocumentaryEvidence: []string{"timesheet"},
			Contradictions:      []string{"CCTV places her two blocks away"},
		},
		DocumentationAvailable: true,
	}

	eval, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	if eval.StrengthScore != 50 {
		t.Errorf("score = %d, want 50 (80 base, -30 conflicting evidence)", eval.StrengthScore)
	}
	// The critical flag drops the tier from weak to very_weak.
	if eval.Strength != model.StrengthVeryWeak {
		t.Errorf("strength = %s, want very_weak", eval.Strength)
	}
	if eval.Urgency != model.SeverityCritical {
		t.Errorf("urgency = %s, want critical", eval.Urgency)
	}
	if !eval.ShouldBeReexamined {
		t.Error("conflicting evidence must force re-examination")
	}
}

func TestEvaluate_UnverifiedAndUndocumented(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectID:   "s5",
		SuspectName: "Leo Frane",
		Methods:     []model.ClearanceMethod{model.MethodPhoneRecords, model.MethodWitnessCorroboration},
		Alibi: &model.AlibiDetail{
			Witnesses:    []model.AlibiWitness{{Name: "P. Ostrow", Relationship: "neighbor"}},
			Verification: "none",
		},
		DocumentationAvailable: true,
	}

	eval, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}

	// (70+60-15-10)/200 rounds to 53.
	if eval.StrengthScore != 53 {
		t.Errorf("score = %d, want 53", eval.StrengthScore)
	}
	if eval.Strength != model.StrengthWeak {
		t.Errorf("strength = %s, want weak", eval.Strength)
	}
	if !hasFlag(eval.RedFlags, "unverified_alibi") {
		t.Error("missing unverified_alibi flag")
	}
	if !hasFlag(eval.RedFlags, "weak_documentation") {
		t.Error("missing weak_documentation flag")
	}
	if !eval.ShouldBeReexamined {
		t.Error("weak strength must trigger re-examination")
	}
}

func TestEvaluate_DemeanorFlagged(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectID:              "s6",
		SuspectName:            "Rita Doyle",
		Methods:                []model.ClearanceMethod{model.MethodDNAExclusion, model.MethodCooperativeDemeanor},
		DocumentationAvailable: true,
	}

	eval, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !hasFlag(eval.RedFlags, "behavior_based") {
		t.Error("counting demeanor toward clearance must be flagged")
	}
	if hasFlag(eval.RedFlags, "polygraph_only") {
		t.Error("no polygraph in the record")
	}
}

func TestEvaluate_UnknownMethod(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectName: "X",
		Methods:     []model.ClearanceMethod{"tarot_reading"},
	}

	if _, err := Evaluate(rec); err == nil || !strings.Contains(err.Error(), `unknown clearance method "tarot_reading"`) {
		t.Errorf("err = %v", err)
	}
}

func TestEvaluate_NoMethods(t *testing.T) {
	if _, err := Evaluate(model.ClearanceRecord{SuspectName: "X"}); err == nil {
		t.Error("record without methods must error")
	}
}

func TestEvaluate_Pure(t *testing.T) {
	rec := model.ClearanceRecord{
		SuspectID:              "s7",
		SuspectName:            "Anna Voss",
		Methods:                []model.ClearanceMethod{model.MethodDNAExclusion},
		DocumentationAvailable: true,
	}

	first, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	second, err := Evaluate(rec)
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if first.StrengthScore != second.StrengthScore || first.Strength != second.Strength {
		t.Errorf("repeated evaluation differs: %+v vs %+v", first, second)
	}
}

func TestAggregate_WorstFirstAndCounts(t *testing.T) {
	evals := []model.ClearanceEvaluation{
		{SuspectName: "Anna Voss", StrengthScore: 93, Strength: model.StrengthStrong, Urgency: model.SeverityLow},
		{SuspectName: "Derek Olen", StrengthScore: 10, Strength: model.StrengthUnreliable, Urgency: model.SeverityCritical,
			RedFlags: []model.RedFlag{{Type: "polygraph_only", Severity: model.SeverityCritical}}, ShouldBeReexamined: true},
		{SuspectName: "Leo Frane", StrengthScore: 53, Strength: model.StrengthWeak, Urgency: model.SeverityHigh, ShouldBeReexamined: true},
	}

	summary := Aggregate(evals)

	if summary.Evaluations[0].SuspectName != "Derek Olen" || summary.Evaluations[2].SuspectName != "Anna Voss" {
		t.Errorf("not worst-first: %s, %s, %s",
			summary.Evaluations[0].SuspectName, summary.Evaluations[1].SuspectName, summary.Evaluations[2].SuspectName)
	}
	if summary.CriticalCount != 1 || summary.HighUrgencyCount != 1 || summary.ReexaminationCount != 2 {
		t.Errorf("counts = critical %d, high %d, reexam %d", summary.CriticalCount, summary.HighUrgencyCount, summary.ReexaminationCount)
	}
	if !strings.Contains(summary.PrimaryRecommendation, "polygraph evidence alone") {
		t.Errorf("primary recommendation = %q", summary.PrimaryRecommendation)
	}
}

func TestAggregate_PrimaryRecommendationPriority(t *testing.T) {
	critical := []model.ClearanceEvaluation{
		{SuspectName: "A", StrengthScore: 40, Urgency: model.SeverityCritical, ShouldBeReexamined: true},
	}
	if s := Aggregate(critical); !strings.Contains(s.PrimaryRecommendation, "critical red flags") {
		t.Errorf("critical case: %q", s.PrimaryRecommendation)
	}

	weak := []model.ClearanceEvaluation{
		{SuspectName: "B", StrengthScore: 50, Urgency: model.SeverityHigh, ShouldBeReexamined: true},
	}
	if s := Aggregate(weak); !strings.Contains(s.PrimaryRecommendation, "warrant re-examination") {
		t.Errorf("weak case: %q", s.PrimaryRecommendation)
	}

	clean := []model.ClearanceEvaluation{
		{SuspectName: "C", StrengthScore: 93, Urgency: model.SeverityLow},
	}
	if s := Aggregate(clean); s.PrimaryRecommendation != "All suspect clearances rest on reliable methods; no re-examination is currently indicated" {
		t.Errorf("clean case: %q", s.PrimaryRecommendation)
	}
}

func TestMethodTable_Order(t *testing.T) {
	table := MethodTable()
	if len(table) != len(methodProfiles) {
		t.Fatalf("table has %d entries, profiles %d", len(table), len(methodProfiles))
	}
	if table[0].Method != model.MethodDNAExclusion || table[len(table)-1].Method != model.MethodCooperativeDemeanor {
		t.Errorf("unexpected ordering: first %s, last %s", table[0].Method, table[len(table)-1].Method)
	}
	for i := 1; i < len(table); i++ {
		if table[i].Profile.BaseScore > table[i-1].Profile.BaseScore {
			t.Errorf("base scores not non-increasing at %d: %s", i, table[i].Method)
		}
	}
}
