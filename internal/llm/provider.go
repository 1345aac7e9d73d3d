package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ndmitriev/caseline/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Analyze asks the model for a complete structured case analysis
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnalyzeRequest contains the input for model-backed analysis
type AnalyzeRequest struct {
	// Input is the complete case material
	Input model.CaseInput

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnalyzeResponse contains the model's raw output
type AnalyzeResponse struct {
	// Raw is the model's text output, expected to be a single JSON object
	Raw string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// RequestsPerMinute throttles API calls (0 disables throttling)
	RequestsPerMinute float64
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:          "", // Disabled by default
		Model:             "",
		Timeout:           60,
		MaxTokens:         4000,
		RequestsPerMinute: 20,
	}
}

// systemPrompt frames the model as a schema-bound analyst. The heuristic
// engine must be a drop-in substitute for this path, so the model is held to
// the exact same output schema.
const systemPrompt = "You are a case-analysis engine for investigators. You respond with a single JSON object and nothing else: no prose, no markdown fences, no commentary."

// BuildPrompt constructs the default analysis prompt. The case material is
// embedded as JSON so the model sees exactly what the heuristic engine sees.
func BuildPrompt(input model.CaseInput) string {
	material, err := json.MarshalIndent(input, "", "  ")
	if err != nil {
		material = []byte("{}")
	}

	return fmt.Sprintf(`Analyze the following case material and produce a single JSON object with these keys:

- "events": timeline events, each {"id","date","time","location","description","source","source_type","involved_persons","confidence"}
- "conflicts": scheduling contradictions, each {"type","severity","description","events","affected_persons","details","recommendation"}
- "clearances": {"evaluations","critical_count","high_urgency_count","reexamination_count","primary_recommendation"}
- "insights": typed interview claims, each {"speaker","role","type","detail","full_quote","specificity","flagged_as_guilty_knowledge","reason","confidence"}
- "cross_references": grouped mentions with guilty-knowledge indicators
- "profiles": per-speaker knowledge profiles with a "suspicion_score" 0..100
- "critical_findings": flat list of critical finding strings
- "recommendations": priority-ordered follow-up actions

Rules:
1. Dates are YYYY-MM-DD, times are 24-hour HH:MM.
2. Only reference persons, documents, and evidence present in the material.
3. If a section has no findings, emit an empty array for it.
4. Output the JSON object only.

Case material:
%s`, string(material))
}
