package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ndmitriev/caseline/internal/model"
)

// LoadCaseFile reads one case file (YAML or JSON) into case material ready
// for analysis. HTML documents are reduced to visible text on load so the
// engine only ever sees plain text.
func LoadCaseFile(path string) (model.CaseInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.CaseInput{}, fmt.Errorf("read case file: %w", err)
	}

	format := formatForPath(path)
	input, err := Load(data, format)
	if err != nil {
		return model.CaseInput{}, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	if input.CaseID == "" {
		base := filepath.Base(path)
		input.CaseID = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return input, nil
}

// Load parses case material from raw bytes. Format is "yaml" or "json".
func Load(data []byte, format string) (model.CaseInput, error) {
	var input model.CaseInput

	switch format {
	case "yaml":
		// Round-trip through JSON so nested metadata decodes through the
		// same tagged-union path regardless of source format.
		var raw interface{}
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return input, fmt.Errorf("invalid YAML: %w", err)
		}
		jsonData, err := json.Marshal(raw)
		if err != nil {
			return input, fmt.Errorf("convert YAML: %w", err)
		}
		if err := json.Unmarshal(jsonData, &input); err != nil {
			return input, fmt.Errorf("decode case material: %w", err)
		}

	case "json":
		if err := json.Unmarshal(data, &input); err != nil {
			return input, fmt.Errorf("invalid JSON: %w", err)
		}

	default:
		return input, fmt.Errorf("unsupported format %q (want yaml or json)", format)
	}

	reduceHTMLDocuments(&input)
	return input, nil
}

// reduceHTMLDocuments replaces HTML document content with its visible text
func reduceHTMLDocuments(input *model.CaseInput) {
	for i, doc := range input.Documents {
		if isHTMLDocument(doc) {
			input.Documents[i].Content = VisibleText(doc.Content)
			input.Documents[i].Type = "html"
		}
	}
}

func isHTMLDocument(doc model.Document) bool {
	if strings.EqualFold(doc.Type, "html") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(doc.Filename))
	return ext == ".html" || ext == ".htm"
}

func formatForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".json":
		return "json"
	default:
		// Case files default to YAML, matching the documented layout
		return "yaml"
	}
}
