package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkohli/algoprep/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "algoprep",
	Short: "AI interview prep in the terminal",
	Long:  "Algoprep — terminal app for technical interview preparation: timed language quizzes, AI-generated algorithm problems, and coding patterns.",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides ALGOPREP_DB env var)")
	rootCmd.PersistentFlags().String("user", "local", "User id the command acts for")

	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(programCmd)
	rootCmd.AddCommand(patternCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then ALGOPREP_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

func userID(cmd *cobra.Command) string {
	u, _ := cmd.Flags().GetString("user")
	if u == "" {
		u = "local"
	}
	return u
}
