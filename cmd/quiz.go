package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nkohli/algoprep/internal/content"
	"github.com/nkohli/algoprep/internal/llm"
	"github.com/nkohli/algoprep/internal/screens/quizrun"
)

var quizCmd = &cobra.Command{
	Use:   "quiz <language>",
	Short: "Take a timed skill-assessment quiz",
	Long:  "Generates a quiz for the given programming language and runs it with a 10-second clock per question. Running out of time submits the whole quiz.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		language := args[0]
		count, _ := cmd.Flags().GetInt("questions")
		seconds, _ := cmd.Flags().GetInt("seconds")

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		provider, err := llm.NewProviderFromEnv(cmd.Context(), st.RequestLog())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}
		svc := content.NewService(provider, content.DefaultConfig())

		fmt.Printf("Generating a %s quiz...\n", language)
		qz, err := svc.Quiz(cmd.Context(), content.QuizInput{
			Language:      language,
			QuestionCount: count,
		})
		if err != nil {
			return fmt.Errorf("generate quiz: %w", err)
		}

		result, err := quizrun.Run(qz, userID(cmd), st.AttemptStore(), time.Duration(seconds)*time.Second)
		if err != nil {
			return err
		}
		if result == nil {
			fmt.Println("Quiz abandoned.")
			return nil
		}

		fmt.Printf("Score: %d/%d (%d%%)\n", result.Score.Correct, result.Score.Total, result.Score.Percentage)
		fmt.Printf("Skill level: %s\n", result.Level)
		return nil
	},
}

func init() {
	quizCmd.Flags().Int("questions", 10, "Number of questions to generate")
	quizCmd.Flags().Int("seconds", 10, "Seconds allowed per question")
}
