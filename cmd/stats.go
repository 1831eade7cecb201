package cmd

import (
	"fmt"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/amrit/lexiq/internal/proficiency"
	"github.com/amrit/lexiq/internal/tuning"
)

var (
	statsHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8B5CF6"))
	masteredStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#22C55E")).Bold(true)
	weakStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("#F43F5E"))
)

var statsCmd = &cobra.Command{
	Use:   "stats <student>",
	Short: "Show a student's proficiency records",
	Args:  cobra.ExactArgs(1),
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
		tuneCfg, err := tuning.ConfigFromEnv()
		if err != nil {
			return err
		}
		engine := tuning.NewEngine(tuneCfg)

		recs, err := st.ProficiencyRepo(profCfg).AllForStudent(cmd.Context(), studentID)
		if err != nil {
			return err
		}
		if len(recs) == 0 {
			fmt.Printf("no records for student %q\n", studentID)
			return nil
		}

		now := time.Now()
		fmt.Println(statsHeaderStyle.Render(fmt.Sprintf("%-8s %-28s %8s %8s %8s %8s", "LEVEL", "SCOPE", "MEAN", "DECAYED", "CONF", "SAMPLES")))
		for _, rec := range recs {
			decayed := proficiency.DecayedMean(rec, now)
			line := fmt.Sprintf("%-8s %-28s %8.3f %8.3f %8.3f %8d",
				rec.Level, rec.ScopeKey,
				rec.MeanAbility, decayed, rec.Confidence, rec.SampleCount)
			switch {
			case rec.Level == proficiency.LevelModule && engine.IsMastered(rec, now):
				line += "  " + masteredStyle.Render("mastered")
			case decayed < tuneCfg.WeaknessThreshold && rec.SampleCount > 0:
				line += "  " + weakStyle.Render("weak")
			}
			fmt.Println(line)
		}

		events, err := st.EventRepo().RecentActivity(cmd.Context(), studentID, 10)
		if err != nil {
			return err
		}
		if len(events) > 0 {
			fmt.Println()
			fmt.Println(statsHeaderStyle.Render("RECENT ACTIVITY"))
			for _, ev := range events {
				fmt.Printf("%s  %-20s %d/%d\n", ev.CreatedAt.Format("2006-01-02 15:04"), ev.ModuleID, ev.Correct, ev.Total)
			}
		}
		return nil
	},
}
