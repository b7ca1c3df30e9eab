package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nkohli/algoprep/internal/problems"
	"github.com/nkohli/algoprep/internal/program"
)

var solveCmd = &cobra.Command{
	Use:   "solve <user-problem-id>",
	Short: "Record a solution for a problem",
	Long:  "Records a solution attempt against one of your problems. A score above zero marks the problem solved; scores are kept in the 0-10 range.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language, _ := cmd.Flags().GetString("lang")
		file, _ := cmd.Flags().GetString("file")
		score, _ := cmd.Flags().GetInt("score")
		elapsed, _ := cmd.Flags().GetInt("elapsed")

		var source string
		if file != "" {
			data, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read solution file: %w", err)
			}
			source = string(data)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		asm := program.NewAssembler(
			problems.NewRepository(st.ProblemStore()),
			st.UserProblemStore(),
			st.PatternStore(),
		)
		err = asm.RecordSolution(cmd.Context(), args[0], program.Solution{
			Language:       language,
			Source:         source,
			Score:          score,
			ElapsedSeconds: elapsed,
		})
		if err != nil {
			return err
		}

		fmt.Println("Solution recorded.")
		return nil
	},
}

func init() {
	solveCmd.Flags().String("lang", "", "Language the solution is written in")
	solveCmd.Flags().String("file", "", "Path to the solution source file")
	solveCmd.Flags().Int("score", 0, "Self-assessed score from 0 to 10")
	solveCmd.Flags().Int("elapsed", 0, "Seconds spent on the solution")
}
