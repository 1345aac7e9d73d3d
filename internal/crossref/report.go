package crossref

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// suspicionReviewThreshold is the profile score above which a speaker gets
// an individual recommendation
const suspicionReviewThreshold = 60

// CriticalFindings collects every critical indicator across all
// cross-reference groups as a flat finding list
func CriticalFindings(results []model.CrossReferenceResult) []string {
	var findings []string
	for _, r := range results {
		for _, ind := range r.Indicators {
			if ind.Severity == model.SeverityCritical {
				findings = append(findings, fmt.Sprintf("%s: %s", ind.Type, ind.Description))
			}
		}
	}
	return findings
}

// Recommendations emits the priority-ordered follow-up list: first a single
// recommendation covering every speaker with a critical indicator, then one
// per profile whose suspicion score reaches the review threshold
func Recommendations(results []model.CrossReferenceResult, profiles []model.SuspectKnowledgeProfile) []string {
	var recs []string

	critical := make(map[string]bool)
	for _, r := range results {
		for _, ind := range r.Indicators {
			if ind.Severity == model.SeverityCritical {
				critical[ind.Speaker] = true
			}
		}
	}
	if len(critical) > 0 {
		speakers := make([]string, 0, len(critical))
		for s := range critical {
			speakers = append(speakers, s)
		}
		sort.Strings(speakers)
		recs = append(recs, fmt.Sprintf("Prioritize follow-up interviews with %s; their statements carry critical guilty-knowledge indicators", strings.Join(speakers, ", ")))
	}

	for _, p := range profiles {
		if p.SuspicionScore >= suspicionReviewThreshold {
			recs = append(recs, fmt.Sprintf("Review every statement by %s (suspicion score %d/100)", p.Speaker, p.SuspicionScore))
		}
	}

	return recs
}
