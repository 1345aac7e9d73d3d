// Package crossref compares extracted insights across speakers, looking for
// guilty-knowledge indicators: details mentioned before discovery, details
// only one suspect knows, and details never released publicly.
package crossref

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// CrossReference groups every insight (across all speakers) by its
// normalized detail string and derives the per-group indicators. It is a
// pure function over whatever insights it is handed; nil case knowledge
// disables the knowledge-dependent checks.
func CrossReference(insights []model.ExtractedInsight, know *model.CaseKnowledge) []model.CrossReferenceResult {
	groups := make(map[string][]model.ExtractedInsight)
	var order []string
	for _, in := range insights {
		key := normalizeDetail(in.Detail)
		if key == "" {
			continue
		}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], in)
	}
	sort.Strings(order)

	results := make([]model.CrossReferenceResult, 0, len(order))
	for _, key := range order {
		results = append(results, buildResult(key, groups[key], know))
	}
	return results
}

func buildResult(detail string, mentions []model.ExtractedInsight, know *model.CaseKnowledge) model.CrossReferenceResult {
	result := model.CrossReferenceResult{
		Detail:   detail,
		Mentions: mentions,
	}

	if know != nil {
		result.MatchesPublicKnowledge = matchesPublicFact(detail, know.PublicFacts)

		// Every mention predating the discovery of a matching evidence item
		// is a critical indicator on its own
		if item, ok := matchingEvidence(detail, know.Evidence); ok {
			for _, m := range mentions {
				if m.InterviewDate != "" && item.DiscoveredOn != "" && m.InterviewDate < item.DiscoveredOn {
					result.BeforeDiscoverySpeakers = append(result.BeforeDiscoverySpeakers, m.Speaker)
					result.Indicators = append(result.Indicators, model.KnowledgeIndicator{
						Type:     "before_discovery",
						Severity: model.SeverityCritical,
						Speaker:  m.Speaker,
						Description: fmt.Sprintf("%s mentioned %q on %s, before it was discovered (%s)",
							m.Speaker, item.Description, m.InterviewDate, item.DiscoveredOn),
					})
				}
			}
		}
	}

	// A single mention from a single suspect is knowledge nobody else shares
	if len(mentions) == 1 && isSuspect(mentions[0], know) {
		result.Indicators = append(result.Indicators, model.KnowledgeIndicator{
			Type:     "unique_knowledge",
			Severity: model.SeverityHigh,
			Speaker:  mentions[0].Speaker,
			Description: fmt.Sprintf("Only %s mentioned this detail: %q",
				mentions[0].Speaker, truncateDetail(detail)),
		})
	}

	for _, m := range mentions {
		if !m.FlaggedAsGuiltyKnowledge {
			continue
		}
		severity := model.SeverityHigh
		if strings.EqualFold(m.Role, "suspect") {
			severity = model.SeverityCritical
		}
		result.Indicators = append(result.Indicators, model.KnowledgeIndicator{
			Type:     "unpublished_detail",
			Severity: severity,
			Speaker:  m.Speaker,
			Description: fmt.Sprintf("%s referenced an unpublished detail: %s",
				m.Speaker, m.Reason),
		})
	}

	if inc, ok := specificityInconsistency(detail, mentions); ok {
		result.Inconsistencies = append(result.Inconsistencies, inc)
	}

	return result
}

// specificityInconsistency fires when one group holds both a highly specific
// account and a vague or merely general one of the same detail
func specificityInconsistency(detail string, mentions []model.ExtractedInsight) (model.SpecificityInconsistency, bool) {
	var highest, lowest *model.ExtractedInsight
	for i := range mentions {
		m := &mentions[i]
		if highest == nil || m.Specificity.Rank() > highest.Specificity.Rank() {
			highest = m
		}
		if lowest == nil || m.Specificity.Rank() < lowest.Specificity.Rank() {
			lowest = m
		}
	}

	if highest == nil || lowest == nil {
		return model.SpecificityInconsistency{}, false
	}
	if highest.Specificity != model.SpecificityHighlySpecific {
		return model.SpecificityInconsistency{}, false
	}
	if lowest.Specificity.Rank() > model.SpecificityGeneral.Rank() {
		return model.SpecificityInconsistency{}, false
	}

	return model.SpecificityInconsistency{
		Detail:   detail,
		Speakers: []string{highest.Speaker, lowest.Speaker},
		Highest:  highest.Specificity,
		Lowest:   lowest.Specificity,
	}, true
}

func matchesPublicFact(detail string, facts []model.KnownFact) bool {
	for _, f := range facts {
		fact := strings.ToLower(strings.TrimSpace(f.Detail))
		if fact == "" {
			continue
		}
		if strings.Contains(detail, fact) || strings.Contains(fact, detail) {
			return true
		}
	}
	return false
}

func matchingEvidence(detail string, items []model.EvidenceItem) (model.EvidenceItem, bool) {
	for _, item := range items {
		desc := strings.ToLower(strings.TrimSpace(item.Description))
		if desc != "" && strings.Contains(detail, desc) {
			return item, true
		}
	}
	return model.EvidenceItem{}, false
}

// isSuspect checks the insight's recorded role first, then the case
// knowledge suspect list
func isSuspect(in model.ExtractedInsight, know *model.CaseKnowledge) bool {
	if strings.EqualFold(in.Role, "suspect") {
		return true
	}
	if know == nil {
		return false
	}
	for _, name := range know.Suspects {
		if strings.EqualFold(name, in.Speaker) {
			return true
		}
	}
	return false
}

func normalizeDetail(detail string) string {
	return strings.ToLower(strings.TrimSpace(detail))
}

func truncateDetail(detail string) string {
	if len(detail) <= 80 {
		return detail
	}
	return detail[:80] + "..."
}
