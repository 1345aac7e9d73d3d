package crossref

import (
	"strings"
	"testing"

	"github.com/ndmitriev/caseline/internal/model"
)

func TestBuildProfiles_SuspicionArithmetic(t *testing.T) {
	flagged := ins("Marcus Webb", "suspect", "the body was face down", model.SpecificitySpecific)
	flagged.Type = model.CategoryBodyKnowledge
	flagged.FlaggedAsGuiltyKnowledge = true

	insights := []model.ExtractedInsight{
		flagged,
		ins("Marcus Webb", "suspect", "she left at 21:30", model.SpecificityHighlySpecific),
		ins("Jess Monroe", "witness", "it was late", model.SpecificityGeneral),
	}
	results := []model.CrossReferenceResult{
		{Indicators: []model.KnowledgeIndicator{{Type: "unique_knowledge", Speaker: "Marcus Webb"}}},
	}

	profiles := BuildProfiles(insights, results, nil)
	if len(profiles) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(profiles))
	}

	// Most suspicious first.
	webb := profiles[0]
	if webb.Speaker != "Marcus Webb" {
		t.Fatalf("first profile = %s", webb.Speaker)
	}
	if webb.TotalInsights != 2 || webb.SpecificInsights != 2 || webb.FlaggedInsights != 1 || webb.IndicatorCount != 1 {
		t.Errorf("counts = %+v", webb)
	}
	// 20 suspect + 10 specific + 15 flagged + 10 indicator.
	if webb.SuspicionScore != 55 {
		t.Errorf("score = %d, want 55", webb.SuspicionScore)
	}
	if webb.CategoryCounts[model.CategoryBodyKnowledge] != 1 {
		t.Errorf("category counts = %v", webb.CategoryCounts)
	}

	monroe := profiles[1]
	if monroe.SuspicionScore != 0 {
		t.Errorf("witness with one general insight scored %d", monroe.SuspicionScore)
	}
}

func TestBuildProfiles_TermCaps(t *testing.T) {
	var insights []model.ExtractedInsight
	for i := 0; i < 5; i++ {
		in := ins("Ray Calder", "suspect", "detail", model.SpecificityHighlySpecific)
		in.Detail = in.Detail + strings.Repeat("x", i)
		in.FlaggedAsGuiltyKnowledge = true
		insights = append(insights, in)
	}

	var indicators []model.KnowledgeIndicator
	for i := 0; i < 6; i++ {
		indicators = append(indicators, model.KnowledgeIndicator{Type: "unpublished_detail", Speaker: "Ray Calder"})
	}
	results := []model.CrossReferenceResult{{Indicators: indicators}}

	profiles := BuildProfiles(insights, results, nil)
	// 20 + min(30, 25) + min(40, 75) + min(30, 60) = 20+25+40+30 = 100 capped.
	if got := profiles[0].SuspicionScore; got != 100 {
		t.Errorf("score = %d, want 100", got)
	}
}

func TestBuildProfiles_SuspectListFallback(t *testing.T) {
	insights := []model.ExtractedInsight{
		ins("Ray Calder", "", "the knife was found", model.SpecificitySpecific),
	}
	know := &model.CaseKnowledge{Suspects: []string{"ray calder"}}

	profiles := BuildProfiles(insights, nil, know)
	// 20 suspect (by case-insensitive list match) + 5 specific.
	if profiles[0].SuspicionScore != 25 {
		t.Errorf("score = %d, want 25", profiles[0].SuspicionScore)
	}
}

func TestBuildProfiles_MonotoneInFlags(t *testing.T) {
	base := []model.ExtractedInsight{
		ins("A", "suspect", "detail one", model.SpecificitySpecific),
	}
	flagged := ins("A", "suspect", "detail two", model.SpecificitySpecific)
	flagged.FlaggedAsGuiltyKnowledge = true

	without := BuildProfiles(base, nil, nil)[0].SuspicionScore
	with := BuildProfiles(append(base, flagged), nil, nil)[0].SuspicionScore
	if with <= without {
		t.Errorf("adding a flagged insight must not lower the score: %d -> %d", without, with)
	}
}

func TestTopConcerns_PriorityAndCap(t *testing.T) {
	p := model.SuspectKnowledgeProfile{
		FlaggedInsights:  2,
		IndicatorCount:   1,
		SpecificInsights: 4,
		CategoryCounts: map[model.InsightCategory]int{
			model.CategoryBodyKnowledge: 2,
		},
	}

	concerns := topConcerns(p)
	if len(concerns) != 3 {
		t.Fatalf("expected cap at 3 concerns, got %d: %v", len(concerns), concerns)
	}
	if !strings.Contains(concerns[0], "2 statement(s) flagged") {
		t.Errorf("first concern = %q", concerns[0])
	}
	if !strings.Contains(concerns[1], "1 cross-reference indicator(s)") {
		t.Errorf("second concern = %q", concerns[1])
	}
	if !strings.Contains(concerns[2], "4 specific statement(s)") {
		t.Errorf("third concern = %q", concerns[2])
	}
}

func TestCriticalFindings_Format(t *testing.T) {
	results := []model.CrossReferenceResult{
		{Indicators: []model.KnowledgeIndicator{
			{Type: "before_discovery", Severity: model.SeverityCritical, Speaker: "Ray Calder", Description: "Ray Calder mentioned \"knife\" on 2024-04-03, before it was discovered (2024-04-05)"},
			{Type: "unique_knowledge", Severity: model.SeverityHigh, Speaker: "Ray Calder", Description: "only mention"},
		}},
	}

	findings := CriticalFindings(results)
	if len(findings) != 1 {
		t.Fatalf("expected 1 critical finding, got %d", len(findings))
	}
	if !strings.HasPrefix(findings[0], "before_discovery: ") {
		t.Errorf("finding = %q", findings[0])
	}
}

func TestRecommendations(t *testing.T) {
	results := []model.CrossReferenceResult{
		{Indicators: []model.KnowledgeIndicator{
			{Type: "before_discovery", Severity: model.SeverityCritical, Speaker: "Ray Calder"},
			{Type: "unpublished_detail", Severity: model.SeverityCritical, Speaker: "Marcus Webb"},
		}},
	}
	profiles := []model.SuspectKnowledgeProfile{
		{Speaker: "Ray Calder", SuspicionScore: 72},
		{Speaker: "Jess Monroe", SuspicionScore: 15},
	}

	recs := Recommendations(results, profiles)
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d: %v", len(recs), recs)
	}
	if !strings.Contains(recs[0], "Marcus Webb, Ray Calder") {
		t.Errorf("critical-speaker recommendation = %q", recs[0])
	}
	if recs[1] != "Review every statement by Ray Calder (suspicion score 72/100)" {
		t.Errorf("profile recommendation = %q", recs[1])
	}
}

func TestRecommendations_Empty(t *testing.T) {
	if recs := Recommendations(nil, nil); len(recs) != 0 {
		t.Errorf("no inputs should produce no recommendations: %v", recs)
	}
}
