package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		user := userID(cmd)
		ctx := cmd.Context()

		total, solved, err := st.ProblemCounts(ctx, user)
		if err != nil {
			return err
		}
		fmt.Printf("Problems: %d solved / %d total\n", solved, total)

		attempts, err := st.AttemptSummaries(ctx, user, 5)
		if err != nil {
			return err
		}
		if len(attempts) > 0 {
			fmt.Println("\nRecent quiz attempts:")
			for _, a := range attempts {
				fmt.Printf("  %s  %-12s score %d  %s\n",
					a.CreatedAt.Format("2006-01-02"), a.Language, a.Score, a.SkillLevel)
			}
		}

		usage, err := st.LLMUsageTotals(ctx)
		if err != nil {
			return err
		}
		if usage.Requests > 0 {
			fmt.Printf("\nLLM usage: %d requests (%d failed), %d in / %d out tokens\n",
				usage.Requests, usage.Failures, usage.InputTokens, usage.OutputTokens)
		}
		return nil
	},
}
