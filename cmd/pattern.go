package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nkohli/algoprep/internal/content"
	"github.com/nkohli/algoprep/internal/llm"
	"github.com/nkohli/algoprep/internal/problems"
	"github.com/nkohli/algoprep/internal/program"
)

var patternCmd = &cobra.Command{
	Use:   "pattern <language>",
	Short: "Study a coding pattern",
	Long:  "Generates a coding pattern (e.g. Sliding Window) with practice problems and adds it to your program. You can hold at most 3 patterns at a time.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language := args[0]
		topic, _ := cmd.Flags().GetString("topic")
		count, _ := cmd.Flags().GetInt("count")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		user := userID(cmd)
		existingProblems, err := st.UserProblemTitles(cmd.Context(), user)
		if err != nil {
			return err
		}
		existingPatterns, err := st.PatternTitles(cmd.Context(), user)
		if err != nil {
			return err
		}

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.RequestLog())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		svc := content.NewService(provider, content.DefaultConfig())

		fmt.Printf("Generating a coding pattern (%s)...\n", language)
		draft, err := svc.CodingPattern(cmd.Context(), content.PatternInput{
			Language:         language,
			Topic:            topic,
			ProblemCount:     count,
			ExistingTitles:   existingProblems,
			ExistingPatterns: existingPatterns,
		})
		if err != nil {
			return fmt.Errorf("generate pattern: %w", err)
		}

		asm := program.NewAssembler(
			problems.NewRepository(st.ProblemStore()),
			st.UserProblemStore(),
			st.PatternStore(),
		)
		pattern, err := asm.AssembleCodingPattern(cmd.Context(), user, *draft)
		if err != nil {
			var policy *program.PolicyError
			if errors.As(err, &policy) {
				return fmt.Errorf("you already hold %d patterns (limit %d); finish one first", policy.Count, policy.Limit)
			}
			return err
		}

		fmt.Printf("Pattern: %s (%d problems, id %s)\n\n", pattern.Title, pattern.TotalProblems, pattern.ID)
		fmt.Println(pattern.Info)
		return nil
	},
}

var patternStatusCmd = &cobra.Command{
	Use:   "status <pattern-id>",
	Short: "Show a pattern's progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
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
		progress, err := asm.PatternProgress(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Solved %d/%d\n", progress.Solved, progress.Total)
		return nil
	},
}

func init() {
	patternCmd.Flags().String("topic", "", "A specific pattern to generate (default: model's choice)")
	patternCmd.Flags().Int("count", 5, "Number of practice problems in the pattern")
	patternCmd.AddCommand(patternStatusCmd)
}
