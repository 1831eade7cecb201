package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amrit/lexiq/internal/session"
)

var submitCmd = &cobra.Command{
	Use:   "submit <student> <module> <domain>",
	Short: "Ingest the graded results of a completed activity",
	Long: `Ingest the graded results of a completed activity attempt.

Results are read from the --results JSON file, an array of
{"item": "...", "correct": true|false} objects. Each outcome updates the
item's record, and the batch totals roll up into the module and domain
records atomically.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, moduleID, domain := args[0], args[1], args[2]
		resultsPath, _ := cmd.Flags().GetString("results")
		if resultsPath == "" {
			return fmt.Errorf("--results is required")
		}

		raw, err := os.ReadFile(resultsPath)
		if err != nil {
			return fmt.Errorf("read results file: %w", err)
		}
		var results []session.ItemResult
		if err := json.Unmarshal(raw, &results); err != nil {
			return fmt.Errorf("decode results file: %w", err)
		}

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		summary, err := svc.CompleteActivity(cmd.Context(), studentID, moduleID, domain, results)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	},
}

func init() {
	submitCmd.Flags().String("results", "", "Path to graded results JSON file")
}
