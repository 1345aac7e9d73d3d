package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/time/rate"

	"github.com/ndmitriev/caseline/internal/model"
)

// Analyst wraps a Provider with rate limiting and strict schema decoding.
// It is the only way the rest of the program talks to a model: callers get
// back a fully decoded AnalysisReport or an error, never raw model text.
type Analyst struct {
	provider Provider
	config   Config
	limiter  *rate.Limiter
}

// NewAnalyst builds an Analyst from configuration. A nil Analyst with a nil
// error means no provider is configured and the caller should use the
// heuristic engine directly.
func NewAnalyst(config Config) (*Analyst, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	if provider == nil {
		return nil, nil
	}

	limiter := rate.NewLimiter(rate.Inf, 1)
	if config.RequestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Limit(config.RequestsPerMinute/60.0), 1)
	}

	return &Analyst{
		provider: provider,
		config:   config,
		limiter:  limiter,
	}, nil
}

// ProviderName returns the name of the underlying provider.
func (a *Analyst) ProviderName() string {
	return a.provider.Name()
}

// IsAvailable reports whether the underlying provider is reachable.
func (a *Analyst) IsAvailable(ctx context.Context) bool {
	return a.provider.IsAvailable(ctx)
}

// Analyze sends the case material to the model and decodes the response into
// the shared report schema. Decoding failures are returned as errors so the
// caller can fall back to the heuristic engine.
func (a *Analyst) Analyze(ctx context.Context, input model.CaseInput) (*model.AnalysisReport, error) {
	if err := a.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := a.provider.Analyze(ctx, AnalyzeRequest{Input: input})
	if err != nil {
		return nil, err
	}

	report, err := decodeReport(resp.Raw)
	if err != nil {
		return nil, fmt.Errorf("decode %s response: %w", a.provider.Name(), err)
	}

	report.Meta.CaseID = input.CaseID
	report.Meta.Engine = "llm"
	report.Meta.Provider = a.provider.Name()
	report.Meta.Model = resp.Model

	return report, nil
}

// decodeReport parses model output into an AnalysisReport. Models sometimes
// wrap JSON in markdown fences despite instructions, so fences are stripped
// before decoding.
func decodeReport(raw string) (*model.AnalysisReport, error) {
	text := stripFences(raw)
	if text == "" {
		return nil, fmt.Errorf("empty response")
	}

	var report model.AnalysisReport
	dec := json.NewDecoder(strings.NewReader(text))
	if err := dec.Decode(&report); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	// Required top-level arrays must decode to non-nil slices so the output
	// shape matches the heuristic engine exactly.
	if report.Events == nil {
		report.Events = []model.TimelineEvent{}
	}
	if report.Conflicts == nil {
		report.Conflicts = []model.Conflict{}
	}
	if report.Insights == nil {
		report.Insights = []model.ExtractedInsight{}
	}
	if report.CrossReferences == nil {
		report.CrossReferences = []model.CrossReferenceResult{}
	}
	if report.Profiles == nil {
		report.Profiles = []model.SuspectKnowledgeProfile{}
	}

	for i, ev := range report.Events {
		if ev.ID == "" {
			return nil, fmt.Errorf("event %d is missing an id", i)
		}
		if ev.Confidence < 0 || ev.Confidence > 1 {
			return nil, fmt.Errorf("event %q has confidence %v outside [0,1]", ev.ID, ev.Confidence)
		}
	}
	for i, ins := range report.Insights {
		if ins.Speaker == "" {
			return nil, fmt.Errorf("insight %d is missing a speaker", i)
		}
	}

	return &report, nil
}

// stripFences removes a surrounding markdown code fence if present.
func stripFences(raw string) string {
	text := strings.TrimSpace(raw)
	if !strings.HasPrefix(text, "```") {
		return text
	}

	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	return strings.TrimSpace(text)
}
