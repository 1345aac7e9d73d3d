// Demo program for guilty-knowledge cross-referencing.
// It runs the heuristic engine over an embedded sample case and prints
// every indicator, so the flagging behavior can be inspected end to end.
package main

import (
	"fmt"
	"strings"

	"github.com/ndmitriev/caseline/internal/crossref"
	"github.com/ndmitriev/caseline/internal/extract"
	"github.com/ndmitriev/caseline/internal/model"
)

func main() {
	fmt.Println("=== Guilty-Knowledge Cross-Reference Demo ===")
	fmt.Println()

	know := &model.CaseKnowledge{
		PublicFacts: []model.KnownFact{
			{Detail: "a body was found near the river trail", DisclosedOn: "2024-04-02"},
		},
		PerpetratorOnlyFacts: []string{
			"the victim's watch was missing",
		},
		Evidence: []model.EvidenceItem{
			{Description: "kitchen knife", DiscoveredOn: "2024-04-05"},
		},
		Suspects: []string{"Ray Calder"},
	}

	interviews := []model.Interview{
		{
			Speaker:  "Ray Calder",
			Role:     "suspect",
			Date:     "2024-04-03",
			FullText: "I heard she was stabbed with a kitchen knife. Everyone knows the body was found near the river trail. Someone told me the victim's watch was missing.",
		},
		{
			Speaker:  "Jess Monroe",
			Role:     "witness",
			Date:     "2024-04-06",
			FullText: "The news said something about a knife. The body was found near the river trail.",
		},
	}

	extractor := extract.NewInsightExtractor()
	var insights []model.ExtractedInsight
	for _, iv := range interviews {
		insights = append(insights, extractor.Extract(iv, know)...)
	}

	fmt.Printf("Extracted %d insights:\n", len(insights))
	for _, in := range insights {
		flag := " "
		if in.FlaggedAsGuiltyKnowledge {
			flag = "⚑"
		}
		fmt.Printf("  %s %-12s %-20s %-15s %q\n", flag, in.Speaker, in.Type, in.Specificity, in.Detail)
		if in.Reason != "" {
			fmt.Printf("      reason: %s\n", in.Reason)
		}
	}
	fmt.Println()

	results := crossref.CrossReference(insights, know)
	fmt.Printf("Cross-referenced into %d shared details:\n", len(results))
	for _, res := range results {
		fmt.Printf("  %q (%d mentions, public=%v)\n", res.Detail, len(res.Mentions), res.MatchesPublicKnowledge)
		for _, ind := range res.Indicators {
			fmt.Printf("    [%s/%s] %s: %s\n", ind.Type, ind.Severity, ind.Speaker, ind.Description)
		}
	}
	fmt.Println()

	profiles := crossref.BuildProfiles(insights, results, know)
	fmt.Println("Knowledge profiles (most suspicious first):")
	fmt.Println(strings.Repeat("-", 60))
	for _, p := range profiles {
		fmt.Printf("  %-12s role=%-8s insights=%d specific=%d flagged=%d suspicion=%d/100\n",
			p.Speaker, p.Role, p.TotalInsights, p.SpecificInsights, p.FlaggedInsights, p.SuspicionScore)
		for _, concern := range p.TopConcerns {
			fmt.Printf("      - %s\n", concern)
		}
	}
}
