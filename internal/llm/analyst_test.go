package llm

import (
	"strings"
	"testing"

	"github.com/ndmitriev/caseline/internal/model"
)

func TestNewProvider_Unknown(t *testing.T) {
	_, err := NewProvider(Config{Provider: "bard"})
	if err == nil {
		t.Fatal("Expected error for unknown provider, got nil")
	}
	if !strings.Contains(err.Error(), "unknown LLM provider") {
		t.Errorf("Unexpected error message: %v", err)
	}
}

func TestNewProvider_Disabled(t *testing.T) {
	provider, err := NewProvider(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected nil error for empty provider, got %v", err)
	}
	if provider != nil {
		t.Error("Expected nil provider when disabled")
	}
}

func TestNewAnalyst_Disabled(t *testing.T) {
	analyst, err := NewAnalyst(Config{Provider: ""})
	if err != nil {
		t.Fatalf("Expected nil error, got %v", err)
	}
	if analyst != nil {
		t.Error("Expected nil analyst when no provider is configured")
	}
}

func TestDecodeReport_Valid(t *testing.T) {
	raw := `{
		"meta": {"case_id": "case-001"},
		"events": [{"id": "evt-0-0", "date": "2024-01-15", "description": "Meeting", "confidence": 0.7}],
		"conflicts": [],
		"clearances": {},
		"insights": [{"speaker": "Dana Reyes", "type": "location_knowledge", "detail": "near the loading dock", "specificity": "specific", "confidence": 0.6}],
		"cross_references": [],
		"profiles": []
	}`

	report, err := decodeReport(raw)
	if err != nil {
		t.Fatalf("decodeReport failed: %v", err)
	}
	if len(report.Events) != 1 || report.Events[0].ID != "evt-0-0" {
		t.Errorf("Events decoded incorrectly: %+v", report.Events)
	}
	if len(report.Insights) != 1 || report.Insights[0].Speaker != "Dana Reyes" {
		t.Errorf("Insights decoded incorrectly: %+v", report.Insights)
	}
}

func TestDecodeReport_FencedJSON(t *testing.T) {
	raw := "```json\n{\"meta\":{},\"events\":[],\"conflicts\":[],\"clearances\":{},\"insights\":[],\"cross_references\":[],\"profiles\":[]}\n```"

	report, err := decodeReport(raw)
	if err != nil {
		t.Fatalf("decodeReport failed on fenced JSON: %v", err)
	}
	if report.Events == nil || report.Insights == nil {
		t.Error("Expected empty slices, not nil, for required arrays")
	}
}

func TestDecodeReport_MissingArraysBecomeEmpty(t *testing.T) {
	report, err := decodeReport(`{"meta":{}}`)
	if err != nil {
		t.Fatalf("decodeReport failed: %v", err)
	}
	if report.Events == nil || report.Conflicts == nil || report.CrossReferences == nil || report.Profiles == nil {
		t.Error("Expected all required arrays to be non-nil after decoding")
	}
}

func TestDecodeReport_InvalidJSON(t *testing.T) {
	if _, err := decodeReport("not json at all"); err == nil {
		t.Fatal("Expected error for invalid JSON, got nil")
	}
	if _, err := decodeReport(""); err == nil {
		t.Fatal("Expected error for empty response, got nil")
	}
}

func TestDecodeReport_SchemaViolations(t *testing.T) {
	// Event without an ID
	_, err := decodeReport(`{"events":[{"date":"2024-01-15","confidence":0.5}]}`)
	if err == nil {
		t.Error("Expected error for event missing id, got nil")
	}

	// Confidence out of range
	_, err = decodeReport(`{"events":[{"id":"evt-1","confidence":1.5}]}`)
	if err == nil {
		t.Error("Expected error for confidence out of range, got nil")
	}

	// Insight without a speaker
	_, err = decodeReport(`{"insights":[{"detail":"something"}]}`)
	if err == nil {
		t.Error("Expected error for insight missing speaker, got nil")
	}
}

func TestBuildPrompt_EmbedsCaseMaterial(t *testing.T) {
	input := model.CaseInput{
		CaseID:   "case-042",
		Baseline: model.Baseline{Date: "2024-03-10"},
		Interviews: []model.Interview{
			{Speaker: "Morgan Hale", Role: "witness", Date: "2024-03-11", FullText: "I saw nothing."},
		},
	}

	prompt := BuildPrompt(input)

	for _, want := range []string{"case-042", "Morgan Hale", "events", "cross_references", "JSON"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt missing %q", want)
		}
	}
}
