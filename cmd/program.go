package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nkohli/algoprep/internal/content"
	"github.com/nkohli/algoprep/internal/llm"
	"github.com/nkohli/algoprep/internal/problems"
	"github.com/nkohli/algoprep/internal/program"
)

var programCmd = &cobra.Command{
	Use:   "program <language>",
	Short: "Generate a set of algorithm problems",
	Long:  "Generates standalone algorithm problems for the given language and adds them to your practice program. Problems you already have are never duplicated.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language := args[0]
		count, _ := cmd.Flags().GetInt("count")
		difficulty, _ := cmd.Flags().GetString("difficulty")
		if !problems.Difficulty(difficulty).Valid() {
			return fmt.Errorf("unknown difficulty %q (easy, mid, advanced)", difficulty)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		user := userID(cmd)
		existing, err := st.UserProblemTitles(cmd.Context(), user)
		if err != nil {
			return err
		}

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.RequestLog())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		svc := content.NewService(provider, content.DefaultConfig())

		fmt.Printf("Generating %d %s problems (%s)...\n", count, difficulty, language)
		drafts, err := svc.AlgorithmSet(cmd.Context(), content.AlgorithmSetInput{
			Language:       language,
			Difficulty:     problems.Difficulty(difficulty),
			Count:          count,
			ExistingTitles: existing,
		})
		if err != nil {
			return fmt.Errorf("generate problems: %w", err)
		}

		asm := program.NewAssembler(
			problems.NewRepository(st.ProblemStore()),
			st.UserProblemStore(),
			st.PatternStore(),
		)
		created, failures := asm.AssembleAlgorithms(cmd.Context(), user, drafts)

		for _, up := range created {
			p, err := st.ProblemStore().Get(cmd.Context(), up.ProblemID)
			if err != nil {
				return err
			}
			fmt.Printf("  + %s [%s]  (id %s)\n", p.Title, p.Difficulty, up.ID)
		}
		for _, f := range failures {
			fmt.Fprintf(os.Stderr, "  ! skipped %q: %v\n", f.Title, f.Err)
		}
		fmt.Printf("Added %d problems.\n", len(created))
		return nil
	},
}

func init() {
	programCmd.Flags().Int("count", 5, "Number of problems to generate")
	programCmd.Flags().String("difficulty", "easy", "Problem difficulty: easy, mid, advanced")
}
