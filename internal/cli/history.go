package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ndmitriev/caseline/internal/model"
	"github.com/ndmitriev/caseline/internal/store"
)

var (
	historyLimit int
	historyShow  string
)

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history [case-id]",
	Short: "List past analysis runs",
	Long: `List past analysis runs from the local report database, newest first.
Pass a case ID to filter to one case, or --show with a run ID to print
the complete stored report as JSON.

Example:
  caseline history
  caseline history warehouse-fire --limit 5
  caseline history --show 1b4e28ba-2fa1-11d2-883f-0016d3cca427`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum runs to list (0 for all)")
	historyCmd.Flags().StringVar(&historyShow, "show", "", "print the full report for one run ID")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	ctx := context.Background()

	s, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open run history: %w", err)
	}
	defer func() { _ = s.Close() }()

	if historyShow != "" {
		report, err := s.Get(ctx, historyShow)
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	caseID := ""
	if len(args) == 1 {
		caseID = args[0]
	}

	runs, err := s.List(ctx, caseID, historyLimit)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "No runs recorded yet.")
		return nil
	}

	fmt.Printf("%-36s %-20s %-10s %-17s %6s %6s %8s\n",
		"RUN", "CASE", "ENGINE", "ANALYZED", "EVENTS", "CONFL", "FLAGGED")
	for _, run := range runs {
		fmt.Printf("%-36s %-20s %-10s %-17s %6d %6d %8d\n",
			run.RunID, run.CaseID, run.Engine,
			run.AnalyzedAt.Format("2006-01-02 15:04"),
			run.EventCount, run.ConflictCount, run.FlaggedInsights)
	}

	return nil
}
