package pipeline

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ndmitriev/caseline/internal/model"
)

// Renderer writes analysis reports as JSON, Markdown, and console summaries
type Renderer struct {
	includeFooter bool
}

// NewRenderer creates a new renderer
func NewRenderer(includeFooter bool) *Renderer {
	return &Renderer{includeFooter: includeFooter}
}

// RenderJSON writes the report as indented JSON
func (r *Renderer) RenderJSON(report *model.AnalysisReport, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderMarkdown writes a human-readable case briefing
func (r *Renderer) RenderMarkdown(report *model.AnalysisReport, path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "# Case Analysis: %s\n\n", report.Meta.CaseID)
	fmt.Fprintf(&b, "- **Run**: %s\n", report.Meta.RunID)
	fmt.Fprintf(&b, "- **Engine**: %s\n", engineLabel(report.Meta))
	fmt.Fprintf(&b, "- **Analyzed**: %s\n\n", report.Meta.AnalyzedAt.Format("2006-01-02 15:04 UTC"))

	if len(report.CriticalFindings) > 0 {
		b.WriteString("## Critical Findings\n\n")
		for _, finding := range report.CriticalFindings {
			fmt.Fprintf(&b, "- ⚠️ %s\n", finding)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Timeline (%d events)\n\n", len(report.Events))
	if len(report.Events) > 0 {
		b.WriteString("| Date | Time | Location | Description | Persons | Confidence |\n")
		b.WriteString("|------|------|----------|-------------|---------|------------|\n")
		for _, ev := range report.Events {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %.2f |\n",
				orDash(ev.Date), orDash(ev.Time), orDash(ev.Location),
				mdEscape(ev.Description), orDash(strings.Join(ev.InvolvedPersons, ", ")), ev.Confidence)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "## Conflicts (%d)\n\n", len(report.Conflicts))
	for _, c := range report.Conflicts {
		fmt.Fprintf(&b, "### %s (%s)\n\n", c.Type, c.Severity)
		fmt.Fprintf(&b, "%s\n\n", c.Description)
		if c.Recommendation != "" {
			fmt.Fprintf(&b, "**Recommendation**: %s\n\n", c.Recommendation)
		}
	}

	fmt.Fprintf(&b, "## Suspect Clearances (%d evaluated)\n\n", len(report.Clearances.Evaluations))
	if report.Clearances.PrimaryRecommendation != "" {
		fmt.Fprintf(&b, "%s\n\n", report.Clearances.PrimaryRecommendation)
	}
	for _, eval := range report.Clearances.Evaluations {
		marker := ""
		if eval.ShouldBeReexamined {
			marker = " ⚠️"
		}
		fmt.Fprintf(&b, "- **%s**: %d/100 (%s)%s\n", eval.SuspectName, eval.StrengthScore, eval.Strength, marker)
		for _, flag := range eval.RedFlags {
			fmt.Fprintf(&b, "  - %s [%s]: %s\n", flag.Type, flag.Severity, flag.Description)
		}
	}
	b.WriteString("\n")

	flagged := 0
	for _, in := range report.Insights {
		if in.FlaggedAsGuiltyKnowledge {
			flagged++
		}
	}
	fmt.Fprintf(&b, "## Interview Insights (%d extracted, %d flagged)\n\n", len(report.Insights), flagged)
	for _, in := range report.Insights {
		if !in.FlaggedAsGuiltyKnowledge {
			continue
		}
		fmt.Fprintf(&b, "- **%s** (%s, %s): %s\n", in.Speaker, in.Type, in.Specificity, in.Reason)
	}
	b.WriteString("\n")

	if len(report.Profiles) > 0 {
		b.WriteString("## Knowledge Profiles\n\n")
		b.WriteString("| Speaker | Role | Insights | Specific | Flagged | Suspicion |\n")
		b.WriteString("|---------|------|----------|----------|---------|----------|\n")
		for _, p := range report.Profiles {
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %d/100 |\n",
				p.Speaker, orDash(p.Role), p.TotalInsights, p.SpecificInsights, p.FlaggedInsights, p.SuspicionScore)
		}
		b.WriteString("\n")
	}

	if len(report.Recommendations) > 0 {
		b.WriteString("## Recommendations\n\n")
		for i, rec := range report.Recommendations {
			fmt.Fprintf(&b, "%d. %s\n", i+1, rec)
		}
		b.WriteString("\n")
	}

	if r.includeFooter {
		b.WriteString("---\n\n")
		b.WriteString("*Generated by caseline. Heuristic findings are investigative leads, not conclusions; verify every flagged item independently.*\n")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	return nil
}

// RenderSummary prints a one-screen digest to stdout
func (r *Renderer) RenderSummary(report *model.AnalysisReport) {
	fmt.Printf("\nCase %s (%s engine)\n", report.Meta.CaseID, engineLabel(report.Meta))
	fmt.Printf("  Events: %d   Conflicts: %d   Insights: %d\n",
		len(report.Events), len(report.Conflicts), len(report.Insights))
	fmt.Printf("  Clearances: %d evaluated, %d need re-examination\n",
		len(report.Clearances.Evaluations), report.Clearances.ReexaminationCount)

	if len(report.CriticalFindings) > 0 {
		fmt.Printf("  Critical findings:\n")
		for _, finding := range report.CriticalFindings {
			fmt.Printf("    ⚠️  %s\n", finding)
		}
	}
	if report.Clearances.PrimaryRecommendation != "" {
		fmt.Printf("  %s\n", report.Clearances.PrimaryRecommendation)
	}
}

func engineLabel(meta model.AnalysisMeta) string {
	if meta.Engine == "llm" && meta.Provider != "" {
		return fmt.Sprintf("llm (%s/%s)", meta.Provider, meta.Model)
	}
	return meta.Engine
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
