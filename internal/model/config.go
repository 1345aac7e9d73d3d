package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config is the complete runtime configuration tree
type Config struct {
	Output      OutputConfig      `yaml:"output" json:"output"`
	Cache       CacheConfig       `yaml:"cache" json:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" json:"concurrency"`
	LLM         LLMConfig         `yaml:"llm" json:"llm"`
	Store       StoreConfig       `yaml:"store" json:"store"`
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool   `yaml:"verbose" json:"verbose"`
	IncludeFooter bool   `yaml:"include_footer" json:"include_footer"`
	Dir           string `yaml:"dir" json:"dir"` // Default directory for rendered reports
}

// CacheConfig controls the content-addressed report cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" json:"enabled"`
	Dir       string        `yaml:"dir" json:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" json:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" json:"disk_ttl"`
}

// ConcurrencyConfig controls batch processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" json:"workers"`
}

// LLMConfig configures the optional model-backed analysis path.
// When Provider is empty the heuristic engine is the only path.
type LLMConfig struct {
	Provider          string  `yaml:"provider" json:"provider"` // openai, anthropic, ollama, or ""
	Model             string  `yaml:"model" json:"model"`
	APIKey            string  `yaml:"-" json:"-"` // Never written to config files
	BaseURL           string  `yaml:"base_url" json:"base_url"`
	Timeout           int     `yaml:"timeout" json:"timeout"` // Seconds per request
	MaxTokens         int     `yaml:"max_tokens" json:"max_tokens"`
	RequestsPerMinute float64 `yaml:"requests_per_minute" json:"requests_per_minute"`
}

// StoreConfig configures local report persistence
type StoreConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Path    string `yaml:"path" json:"path"` // SQLite database path
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	base := filepath.Join(home, ".caseline")

	return &Config{
		Output: OutputConfig{
			Verbose:       false,
			IncludeFooter: true,
			Dir:           "./caseline-reports",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(base, "cache"),
			MemoryTTL: 30 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Concurrency: ConcurrencyConfig{
			Workers: 4,
		},
		LLM: LLMConfig{
			Provider:          "", // Heuristic engine only by default
			Model:             "",
			Timeout:           60,
			MaxTokens:         4000,
			RequestsPerMinute: 20,
		},
		Store: StoreConfig{
			Enabled: true,
			Path:    filepath.Join(base, "reports.db"),
		},
	}
}
