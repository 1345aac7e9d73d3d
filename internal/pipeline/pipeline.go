package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndmitriev/caseline/internal/cache"
	"github.com/ndmitriev/caseline/internal/clearance"
	"github.com/ndmitriev/caseline/internal/conflict"
	"github.com/ndmitriev/caseline/internal/crossref"
	"github.com/ndmitriev/caseline/internal/extract"
	"github.com/ndmitriev/caseline/internal/llm"
	"github.com/ndmitriev/caseline/internal/model"
)

// Pipeline orchestrates a complete case analysis run. When an LLM provider
// is configured it is tried first; any provider or decoding error falls back
// to the heuristic engine, which produces the exact same report schema.
type Pipeline struct {
	timeline *extract.TimelineExtractor
	insights *extract.InsightExtractor
	analyst  *llm.Analyst // Optional model-backed path (nil if disabled)
	cache    cache.Cache  // Optional content-addressed report cache (nil if disabled)
	renderer *Renderer
	config   *model.Config
}

// NewPipeline creates a new pipeline with the given configuration
func NewPipeline(cfg *model.Config) *Pipeline {
	var analyst *llm.Analyst
	if cfg.LLM.Provider != "" {
		a, err := llm.NewAnalyst(llm.ConfigFromModel(cfg.LLM))
		if err != nil {
			fmt.Printf("Warning: Failed to initialize LLM provider: %v\n", err)
		} else {
			analyst = a
		}
	}

	var reportCache cache.Cache
	if cfg.Cache.Enabled {
		reportCache = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.Dir, cfg.Cache.DiskTTL)
	}

	return &Pipeline{
		timeline: extract.NewTimelineExtractor(),
		insights: extract.NewInsightExtractor(),
		analyst:  analyst,
		cache:    reportCache,
		renderer: NewRenderer(cfg.Output.IncludeFooter),
		config:   cfg,
	}
}

// Analyze produces a complete report for one case. Identical case material
// hits the cache and returns the previously computed report.
func (p *Pipeline) Analyze(ctx context.Context, input model.CaseInput) (*model.AnalysisReport, error) {
	key := cache.CacheKey(Fingerprint(input))

	if p.cache != nil {
		if data, found := p.cache.Get(key); found {
			var report model.AnalysisReport
			if err := json.Unmarshal(data, &report); err == nil {
				return &report, nil
			}
			// Corrupt entry, drop it and recompute
			_ = p.cache.Delete(key)
		}
	}

	report, err := p.analyzeOnce(ctx, input)
	if err != nil {
		return nil, err
	}

	if p.cache != nil {
		if data, err := json.Marshal(report); err == nil {
			_ = p.cache.Set(key, data, 0)
		}
	}

	return report, nil
}

// analyzeOnce runs the model-backed path when configured, falling back to
// the heuristic engine on any failure.
func (p *Pipeline) analyzeOnce(ctx context.Context, input model.CaseInput) (*model.AnalysisReport, error) {
	if p.analyst != nil {
		report, err := p.analyst.Analyze(ctx, input)
		if err == nil {
			stampMeta(report, input)
			return report, nil
		}
		fmt.Printf("Warning: LLM analysis failed, falling back to heuristic engine: %v\n", err)
	}

	report, err := p.heuristicReport(input)
	if err != nil {
		return nil, err
	}
	stampMeta(report, input)
	return report, nil
}

// heuristicReport runs the deterministic rule-based analysis. The only error
// it can return is a malformed clearance record; everything else degrades to
// a sparser report instead of failing.
func (p *Pipeline) heuristicReport(input model.CaseInput) (*model.AnalysisReport, error) {
	events := p.timeline.Extract(input.Documents, input.Baseline)
	conflicts := conflict.Detect(events)

	evals := make([]model.ClearanceEvaluation, 0, len(input.ClearanceRecords))
	for _, rec := range input.ClearanceRecords {
		eval, err := clearance.Evaluate(rec)
		if err != nil {
			return nil, fmt.Errorf("clearance record for %s: %w", rec.SuspectName, err)
		}
		evals = append(evals, eval)
	}
	summary := clearance.Aggregate(evals)

	insights := make([]model.ExtractedInsight, 0)
	for _, iv := range input.Interviews {
		insights = append(insights, p.insights.Extract(iv, input.Knowledge)...)
	}
	extract.SortInsights(insights)

	results := crossref.CrossReference(insights, input.Knowledge)
	profiles := crossref.BuildProfiles(insights, results, input.Knowledge)

	return &model.AnalysisReport{
		Meta: model.AnalysisMeta{
			Engine: "heuristic",
		},
		Events:           events,
		Conflicts:        conflicts,
		Clearances:       summary,
		Insights:         insights,
		CrossReferences:  results,
		Profiles:         profiles,
		CriticalFindings: crossref.CriticalFindings(results),
		Recommendations:  crossref.Recommendations(results, profiles),
	}, nil
}

// stampMeta fills the per-run fields every report carries regardless of
// which engine produced it.
func stampMeta(report *model.AnalysisReport, input model.CaseInput) {
	report.Meta.CaseID = input.CaseID
	report.Meta.RunID = uuid.NewString()
	report.Meta.AnalyzedAt = time.Now().UTC()
	if report.Meta.Engine == "" {
		report.Meta.Engine = "heuristic"
	}
}

// RenderReport renders the report to the specified outputs
func (p *Pipeline) RenderReport(report *model.AnalysisReport, jsonPath string, mdPath string, verbose bool) error {
	if jsonPath != "" {
		if err := p.renderer.RenderJSON(report, jsonPath); err != nil {
			return fmt.Errorf("render JSON: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote JSON: %s\n", jsonPath)
		}
	}

	if mdPath != "" {
		if err := p.renderer.RenderMarkdown(report, mdPath); err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		if verbose {
			fmt.Printf("✓ Wrote Markdown: %s\n", mdPath)
		}
	}

	p.renderer.RenderSummary(report)

	return nil
}
