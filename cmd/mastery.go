package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var masteryCmd = &cobra.Command{
	Use:   "mastery <student> <module>",
	Short: "Check whether a module computes as mastered",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, svc, err := openService(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		mastered, err := svc.CheckMastery(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		fmt.Println(mastered)
		return nil
	},
}
