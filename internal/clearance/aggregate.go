package clearance

import (
	"fmt"
	"sort"

	"github.com/ndmitriev/caseline/internal/model"
)

// Aggregate builds the case-wide clearance summary: suspects sorted
// worst-first, urgency counts, and a single primary recommendation chosen by
// priority (polygraph-only > critical urgency > any re-examination needed >
// all reliable).
func Aggregate(evals []model.ClearanceEvaluation) model.ClearanceCaseSummary {
	sorted := append([]model.ClearanceEvaluation(nil), evals...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].StrengthScore != sorted[j].StrengthScore {
			return sorted[i].StrengthScore < sorted[j].StrengthScore
		}
		return sorted[i].SuspectName < sorted[j].SuspectName
	})

	summary := model.ClearanceCaseSummary{Evaluations: sorted}

	polygraphOnly := 0
	for _, e := range sorted {
		if hasFlag(e.RedFlags, "polygraph_only") {
			polygraphOnly++
		}
		switch e.Urgency {
		case model.SeverityCritical:
			summary.CriticalCount++
		case model.SeverityHigh:
			summary.HighUrgencyCount++
		}
		if e.ShouldBeReexamined {
			summary.ReexaminationCount++
		}
	}

	switch {
	case polygraphOnly > 0:
		summary.PrimaryRecommendation = fmt.Sprintf("%d suspect(s) were cleared on polygraph evidence alone; re-examine them before any other follow-up", polygraphOnly)
	case summary.CriticalCount > 0:
		summary.PrimaryRecommendation = fmt.Sprintf("%d clearance(s) carry critical red flags and need immediate re-examination", summary.CriticalCount)
	case summary.ReexaminationCount > 0:
		summary.PrimaryRecommendation = fmt.Sprintf("%d clearance(s) are weak enough to warrant re-examination as resources allow", summary.ReexaminationCount)
	default:
		summary.PrimaryRecommendation = "All suspect clearances rest on reliable methods; no re-examination is currently indicated"
	}

	return summary
}
