package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndmitriev/caseline/internal/ingest"
	"github.com/ndmitriev/caseline/internal/model"
	"github.com/ndmitriev/caseline/internal/pipeline"
	"github.com/ndmitriev/caseline/internal/store"
)

var (
	outJSON     string
	outMD       string
	timeout     time.Duration
	noCache     bool
	noFooter    bool
	noStore     bool
	llmEnabled  bool
	llmProvider string
	llmModel    string
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <case-file>",
	Short: "Analyze a single case file and generate a structured report",
	Long: `Analyze reads one case file (YAML or JSON) and:
- Extracts a timeline of events from case documents
- Detects scheduling conflicts between events
- Scores each suspect clearance and flags weak ones
- Cross-references interview statements for guilty knowledge

Example:
  caseline analyze cases/warehouse-fire.yaml
  caseline analyze cases/warehouse-fire.yaml --json report.json --md report.md
  caseline analyze cases/warehouse-fire.yaml --llm --llm-provider openai`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	// Output flags
	analyzeCmd.Flags().StringVar(&outJSON, "json", "report.json", "output JSON path")
	analyzeCmd.Flags().StringVar(&outMD, "md", "", "output Markdown path (optional)")

	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "overall analysis timeout")
	analyzeCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the report cache (force re-analysis)")
	analyzeCmd.Flags().BoolVar(&noFooter, "no-footer", false, "disable footer in Markdown reports")
	analyzeCmd.Flags().BoolVar(&noStore, "no-store", false, "skip saving the run to local history")

	// LLM flags
	analyzeCmd.Flags().BoolVar(&llmEnabled, "llm", false, "enable model-backed analysis with heuristic fallback")
	analyzeCmd.Flags().StringVar(&llmProvider, "llm-provider", "openai", "LLM provider (openai, anthropic, ollama)")
	analyzeCmd.Flags().StringVar(&llmModel, "llm-model", "gpt-4o-mini", "LLM model name")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	path := args[0]
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Analyzing: %s\n", path)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", !noCache)
		fmt.Fprintln(os.Stderr)
	}

	// Build configuration from flags
	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = !noCache
	cfg.Output.Verbose = verbose
	cfg.Output.IncludeFooter = !noFooter
	cfg.Store.Enabled = cfg.Store.Enabled && !noStore

	if err := applyLLMConfig(cfg); err != nil {
		return err
	}

	input, err := ingest.LoadCaseFile(path)
	if err != nil {
		return err
	}

	p := pipeline.NewPipeline(cfg)

	report, err := p.Analyze(ctx, input)
	if err != nil {
		return fmt.Errorf("analyze failed: %w", err)
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "✓ Extracted %d timeline events\n", len(report.Events))
		fmt.Fprintf(os.Stderr, "✓ Detected %d conflicts\n", len(report.Conflicts))
		fmt.Fprintf(os.Stderr, "✓ Evaluated %d clearances\n", len(report.Clearances.Evaluations))
		fmt.Fprintf(os.Stderr, "✓ Extracted %d insights\n", len(report.Insights))
		fmt.Fprintln(os.Stderr)
	}

	if err := p.RenderReport(report, outJSON, outMD, verbose); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if cfg.Store.Enabled {
		if err := saveToHistory(ctx, cfg, report); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to save run history: %v\n", err)
		}
	}

	return nil
}

// applyLLMConfig wires LLM flags and environment keys into the config
func applyLLMConfig(cfg *model.Config) error {
	if !llmEnabled {
		cfg.LLM.Provider = ""
		return nil
	}

	cfg.LLM.Provider = llmProvider
	cfg.LLM.Model = llmModel

	switch llmProvider {
	case "openai":
		cfg.LLM.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY environment variable not set")
		}
	case "anthropic", "claude":
		cfg.LLM.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		if cfg.LLM.APIKey == "" {
			return fmt.Errorf("ANTHROPIC_API_KEY environment variable not set")
		}
	case "ollama":
		// Ollama doesn't need an API key
		if baseURL := os.Getenv("OLLAMA_BASE_URL"); baseURL != "" {
			cfg.LLM.BaseURL = baseURL
		}
	}

	return nil
}

// saveToHistory persists one run to the local report database
func saveToHistory(ctx context.Context, cfg *model.Config, report *model.AnalysisReport) error {
	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()

	return s.Save(ctx, report)
}
