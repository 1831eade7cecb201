package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amrit/lexiq/internal/curriculum"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <student> <module>",
	Short: "Produce the tuning recommendation for an activity start",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, moduleID := args[0], args[1]
		activity, _ := cmd.Flags().GetString("activity")
		optional, _ := cmd.Flags().GetBool("optional")
		curriculumPath, _ := cmd.Flags().GetString("curriculum")

		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx := cmd.Context()

		// With a curriculum file the module's records are initialized
		// and the optional flag comes from its exercise list.
		if curriculumPath != "" {
			mod, err := curriculum.LoadFile(curriculumPath)
			if err != nil {
				return err
			}
			if mod.ID != moduleID {
				return fmt.Errorf("curriculum file defines module %q, not %q", mod.ID, moduleID)
			}
			if err := svc.StartSession(ctx, studentID, mod); err != nil {
				return err
			}
			optional = mod.IsOptional(activity)
		}

		rec, err := svc.StartActivity(ctx, studentID, moduleID, activity, optional)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rec)
	},
}

func init() {
	recommendCmd.Flags().String("activity", "", "Activity type requesting the recommendation")
	recommendCmd.Flags().Bool("optional", false, "Treat the activity as optional (skippable)")
	recommendCmd.Flags().String("curriculum", "", "Curriculum module JSON file (initializes records, resolves optionality)")
}
