package crossref

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// Suspicion score term weights and caps. The score is a closed-form,
// reproducible function of the speaker's insight counts and the indicators
// naming them; there is no probabilistic component.
const (
	suspectBaseWeight = 20

	specificWeight = 5
	specificCap    = 30

	flaggedWeight = 15
	flaggedCap    = 40

	indicatorWeight = 10
	indicatorCap    = 30

	maxConcerns = 3
)

// BuildProfiles derives a knowledge profile per speaker from their insights
// and from every cross-reference indicator that names them
func BuildProfiles(insights []model.ExtractedInsight, results []model.CrossReferenceResult, know *model.CaseKnowledge) []model.SuspectKnowledgeProfile {
	byIndicator := make(map[string]int)
	for _, r := range results {
		for _, ind := range r.Indicators {
			byIndicator[ind.Speaker]++
		}
	}

	bySpeaker := make(map[string][]model.ExtractedInsight)
	var order []string
	for _, in := range insights {
		if _, seen := bySpeaker[in.Speaker]; !seen {
			order = append(order, in.Speaker)
		}
		bySpeaker[in.Speaker] = append(bySpeaker[in.Speaker], in)
	}
	sort.Strings(order)

	profiles := make([]model.SuspectKnowledgeProfile, 0, len(order))
	for _, speaker := range order {
		profiles = append(profiles, buildProfile(speaker, bySpeaker[speaker], byIndicator[speaker], know))
	}

	// Most suspicious first
	sort.SliceStable(profiles, func(i, j int) bool {
		if profiles[i].SuspicionScore != profiles[j].SuspicionScore {
			return profiles[i].SuspicionScore > profiles[j].SuspicionScore
		}
		return profiles[i].Speaker < profiles[j].Speaker
	})

	return profiles
}

func buildProfile(speaker string, insights []model.ExtractedInsight, indicatorCount int, know *model.CaseKnowledge) model.SuspectKnowledgeProfile {
	profile := model.SuspectKnowledgeProfile{
		Speaker:        speaker,
		CategoryCounts: make(map[model.InsightCategory]int),
		IndicatorCount: indicatorCount,
	}

	for _, in := range insights {
		profile.Role = in.Role
		profile.TotalInsights++
		profile.CategoryCounts[in.Type]++
		if in.Specificity.Rank() >= model.SpecificitySpecific.Rank() {
			profile.SpecificInsights++
		}
		if in.FlaggedAsGuiltyKnowledge {
			profile.FlaggedInsights++
		}
	}

	profile.SuspicionScore = suspicionScore(profile, speakerIsSuspect(profile, know))
	profile.TopConcerns = topConcerns(profile)
	return profile
}

// suspicionScore is clamp(20*isSuspect + min(30, 5*specific) +
// min(40, 15*flagged) + min(30, 10*indicators), 0, 100)
func suspicionScore(p model.SuspectKnowledgeProfile, isSuspect bool) int {
	score := 0
	if isSuspect {
		score += suspectBaseWeight
	}
	score += capped(specificWeight*p.SpecificInsights, specificCap)
	score += capped(flaggedWeight*p.FlaggedInsights, flaggedCap)
	score += capped(indicatorWeight*p.IndicatorCount, indicatorCap)

	if score > 100 {
		return 100
	}
	if score < 0 {
		return 0
	}
	return score
}

// topConcerns emits up to three fixed-template concern strings, highest
// priority first
func topConcerns(p model.SuspectKnowledgeProfile) []string {
	var concerns []string

	if p.FlaggedInsights > 0 {
		concerns = append(concerns, fmt.Sprintf("%d statement(s) flagged as potential guilty knowledge", p.FlaggedInsights))
	}
	if p.IndicatorCount > 0 {
		concerns = append(concerns, fmt.Sprintf("named in %d cross-reference indicator(s)", p.IndicatorCount))
	}
	if p.SpecificInsights >= 3 {
		concerns = append(concerns, fmt.Sprintf("unusually detailed account: %d specific statement(s)", p.SpecificInsights))
	}
	if sensitive := sensitiveCategoryCount(p); sensitive > 0 {
		concerns = append(concerns, fmt.Sprintf("%d statement(s) about the body, the weapon, or the victim's state", sensitive))
	}

	if len(concerns) > maxConcerns {
		concerns = concerns[:maxConcerns]
	}
	return concerns
}

func sensitiveCategoryCount(p model.SuspectKnowledgeProfile) int {
	count := 0
	for cat, n := range p.CategoryCounts {
		if cat.Sensitive() {
			count += n
		}
	}
	return count
}

func speakerIsSuspect(p model.SuspectKnowledgeProfile, know *model.CaseKnowledge) bool {
	if strings.EqualFold(p.Role, "suspect") {
		return true
	}
	if know == nil {
		return false
	}
	for _, name := range know.Suspects {
		if strings.EqualFold(name, p.Speaker) {
			return true
		}
	}
	return false
}

func capped(value, cap int) int {
	if value > cap {
		return cap
	}
	return value
}
