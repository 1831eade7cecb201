package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/amrit/lexiq/internal/proficiency"
	"github.com/amrit/lexiq/internal/session"
	"github.com/amrit/lexiq/internal/store"
	"github.com/amrit/lexiq/internal/tuning"
)

var rootCmd = &cobra.Command{
	Use:   "lexiq",
	Short: "Adaptive vocabulary tutor engine",
	Long:  "Lexiq — Bayesian proficiency tracking and exercise tuning for vocabulary learning.",
}

func Execute() error {
	// A .env file is optional; ignore its absence.
	_ = godotenv.Load()
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LEXIQ_DB env var)")

	rootCmd.AddCommand(recommendCmd)
	rootCmd.AddCommand(submitCmd)
	rootCmd.AddCommand(masteryCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest
// priority), then LEXIQ_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openService opens the store and wires the session service from env
// configuration. The caller must Close the returned store.
func openService(cmd *cobra.Command) (*store.Store, *session.Service, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open store: %w", err)
	}

	profCfg, err := proficiency.ConfigFromEnv()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	tuneCfg, err := tuning.ConfigFromEnv()
	if err != nil {
		st.Close()
		return nil, nil, err
	}

	svc := session.NewService(
		st.ProficiencyRepo(profCfg),
		st.EventRepo(),
		tuning.NewEngine(tuneCfg),
		profCfg,
	)
	return st, svc, nil
}
