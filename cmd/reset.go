package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amrit/lexiq/internal/proficiency"
)

var resetCmd = &cobra.Command{
	Use:   "reset <student>",
	Short: "Re-initialize a student's records to the prior",
	Long: `Re-initialize every record for a student to the uninformative prior.
Records are never deleted; accumulated evidence is replaced by the prior
alpha/beta and a zero sample count.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID := args[0]

		st, _, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		profCfg, err := proficiency.ConfigFromEnv()
		if err != nil {
			return err
		}
		if err := st.ProficiencyRepo(profCfg).Reset(cmd.Context(), studentID); err != nil {
			return err
		}
		fmt.Printf("reset records for student %q\n", studentID)
		return nil
	},
}
