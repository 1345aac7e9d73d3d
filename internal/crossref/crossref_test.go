package crossref

import (
	"strings"
	"testing"

	"github.com/ndmitriev/caseline/internal/model"
)

func ins(speaker, role, detail string, spec model.Specificity) model.ExtractedInsight {
	return model.ExtractedInsight{
		Speaker:     speaker,
		Role:        role,
		Type:        model.CategoryEvidenceKnowledge,
		Detail:      detail,
		FullQuote:   detail,
		Specificity: spec,
		Confidence:  0.6,
	}
}

func TestCrossReference_GroupsByNormalizedDetail(t *testing.T) {
	insights := []model.ExtractedInsight{
		ins("Marcus Webb", "suspect", "The knife was in the drawer", model.SpecificitySpecific),
		ins("Jess Monroe", "witness", "  the knife was in the drawer ", model.SpecificitySpecific),
		ins("Dana Reyes", "witness", "She left around nine", model.SpecificityGeneral),
	}

	results := CrossReference(insights, nil)
	if len(results) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(results))
	}
	// Groups come back sorted by normalized detail.
	if results[0].Detail != "she left around nine" {
		t.Errorf("first group = %q", results[0].Detail)
	}
	if len(results[1].Mentions) != 2 {
		t.Errorf("knife group has %d mentions", len(results[1].Mentions))
	}
}

func TestCrossReference_BeforeDiscovery(t *testing.T) {
	know := &model.CaseKnowledge{
		Evidence: []model.EvidenceItem{{Description: "knife", DiscoveredOn: "2024-04-05"}},
	}

	early := ins("Marcus Webb", "suspect", "the knife was in the drawer", model.SpecificitySpecific)
	early.InterviewDate = "2024-04-03"
	late := ins("Jess Monroe", "witness", "the knife was in the drawer", model.SpecificitySpecific)
	late.InterviewDate = "2024-04-06"

	results := CrossReference([]model.ExtractedInsight{early, late}, know)
	if len(results) != 1 {
		t.Fatalf("expected 1 group, got %d", len(results))
	}

	r := results[0]
	if len(r.BeforeDiscoverySpeakers) != 1 || r.BeforeDiscoverySpeakers[0] != "Marcus Webb" {
		t.Errorf("before-discovery speakers = %v", r.BeforeDiscoverySpeakers)
	}

	var found bool
	for _, ind := range r.Indicators {
		if ind.Type == "before_discovery" {
			found = true
			if ind.Severity != model.SeverityCritical {
				t.Errorf("before_discovery severity = %s", ind.Severity)
			}
			if !strings.Contains(ind.Description, "before it was discovered (2024-04-05)") {
				t.Errorf("description = %q", ind.Description)
			}
		}
	}
	if !found {
		t.Error("missing before_discovery indicator")
	}
}

func TestCrossReference_UniqueKnowledge(t *testing.T) {
	solo := []model.ExtractedInsight{
		ins("Marcus Webb", "suspect", "the rope was cut with a serrated blade", model.SpecificitySpecific),
	}

	results := CrossReference(solo, nil)
	if len(results) != 1 || len(results[0].Indicators) != 1 {
		t.Fatalf("expected one unique_knowledge indicator, got %+v", results)
	}
	ind := results[0].Indicators[0]
	if ind.Type != "unique_knowledge" || ind.Severity != model.SeverityHigh || ind.Speaker != "Marcus Webb" {
		t.Errorf("indicator = %+v", ind)
	}
}

func TestCrossReference_SharedDetailNotUnique(t *testing.T) {
	shared := []model.ExtractedInsight{
		ins("Marcus Webb", "suspect", "the rope was cut", model.SpecificitySpecific),
		ins("Jess Monroe", "witness", "the rope was cut", model.SpecificitySpecific),
	}

	results := CrossReference(shared, nil)
	for _, ind := range results[0].Indicators {
		if ind.Type == "unique_knowledge" {
			t.Error("a detail shared by two speakers is not unique knowledge")
		}
	}
}

func TestCrossReference_WitnessSoloNotUnique(t *testing.T) {
	solo := []model.ExtractedInsight{
		ins("Jess Monroe", "witness", "the back door was open", model.SpecificitySpecific),
	}
	results := CrossReference(solo, &model.CaseKnowledge{Suspects: []string{"Marcus Webb"}})
	if len(results[0].Indicators) != 0 {
		t.Errorf("unique knowledge applies to suspects only: %+v", results[0].Indicators)
	}
}

func TestCrossReference_UnpublishedDetailSeverityByRole(t *testing.T) {
	suspect := ins("Marcus Webb", "suspect", "the body was face down", model.SpecificitySpecific)
	suspect.FlaggedAsGuiltyKnowledge = true
	suspect.Reason = "mentions a detail known only to the perpetrator"
	witness := ins("Jess Monroe", "witness", "the body was face down", model.SpecificitySpecific)
	witness.FlaggedAsGuiltyKnowledge = true
	witness.Reason = "unusually detailed statement in a sensitive category (weak signal; verify independently)"

	results := CrossReference([]model.ExtractedInsight{suspect, witness}, nil)

	bySpeaker := make(map[string]model.Severity)
	for _, ind := range results[0].Indicators {
		if ind.Type == "unpublished_detail" {
			bySpeaker[ind.Speaker] = ind.Severity
		}
	}
	if bySpeaker["Marcus Webb"] != model.SeverityCritical {
		t.Errorf("suspect severity = %s, want critical", bySpeaker["Marcus Webb"])
	}
	if bySpeaker["Jess Monroe"] != model.SeverityHigh {
		t.Errorf("witness severity = %s, want high", bySpeaker["Jess Monroe"])
	}
}

func TestCrossReference_MatchesPublicKnowledge(t *testing.T) {
	know := &model.CaseKnowledge{
		PublicFacts: []model.KnownFact{{Detail: "the knife was in the drawer", DisclosedOn: "2024-04-06"}},
	}
	insights := []model.ExtractedInsight{
		ins("Jess Monroe", "witness", "the knife was in the drawer", model.SpecificitySpecific),
		ins("Dana Reyes", "witness", "she left around nine", model.SpecificityGeneral),
	}

	results := CrossReference(insights, know)
	for _, r := range results {
		want := r.Detail == "the knife was in the drawer"
		if r.MatchesPublicKnowledge != want {
			t.Errorf("detail %q: MatchesPublicKnowledge = %v", r.Detail, r.MatchesPublicKnowledge)
		}
	}
}

func TestCrossReference_SpecificityInconsistency(t *testing.T) {
	mentions := []model.ExtractedInsight{
		ins("Marcus Webb", "suspect", "she was stabbed twice at 21:30", model.SpecificityHighlySpecific),
		ins("Jess Monroe", "witness", "she was stabbed twice at 21:30", model.SpecificityVague),
		ins("Dana Reyes", "witness", "she was stabbed twice at 21:30", model.SpecificitySpecific),
	}

	results := CrossReference(mentions, nil)
	if len(results[0].Inconsistencies) != 1 {
		t.Fatalf("expected 1 inconsistency, got %d", len(results[0].Inconsistencies))
	}
	inc := results[0].Inconsistencies[0]
	if inc.Highest != model.SpecificityHighlySpecific || inc.Lowest != model.SpecificityVague {
		t.Errorf("spread = %s..%s", inc.Lowest, inc.Highest)
	}
	if inc.Speakers[0] != "Marcus Webb" || inc.Speakers[1] != "Jess Monroe" {
		t.Errorf("speakers = %v", inc.Speakers)
	}
}

func TestCrossReference_NoInconsistencyWithinTightSpread(t *testing.T) {
	mentions := []model.ExtractedInsight{
		ins("Marcus Webb", "suspect", "the lock was broken", model.SpecificityHighlySpecific),
		ins("Jess Monroe", "witness", "the lock was broken", model.SpecificitySpecific),
	}
	results := CrossReference(mentions, nil)
	if len(results[0].Inconsistencies) != 0 {
		t.Errorf("specific vs highly_specific is not an inconsistency: %+v", results[0].Inconsistencies)
	}
}

func TestCrossReference_Deterministic(t *testing.T) {
	insights := []model.ExtractedInsight{
		ins("Marcus Webb", "suspect", "detail alpha", model.SpecificitySpecific),
		ins("Jess Monroe", "witness", "detail beta", model.SpecificityGeneral),
		ins("Dana Reyes", "witness", "detail gamma", model.SpecificitySpecific),
	}

	first := CrossReference(insights, nil)
	second := CrossReference(insights, nil)
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Detail != second[i].Detail {
			t.Errorf("group order differs at %d: %q vs %q", i, first[i].Detail, second[i].Detail)
		}
	}
}
