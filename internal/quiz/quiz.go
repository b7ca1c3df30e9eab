package quiz

import (
	"context"

	"github.com/nkohli/algoprep/internal/grade"
)

// Quiz is a reusable question-set template for one language. It carries
// no per-user state; an attempt against it is recorded as an Attempt.
type Quiz struct {
	ID        string
	Language  string
	Questions []grade.Question
}

// QuestionsCount returns the number of questions in the quiz.
func (q *Quiz) QuestionsCount() int {
	return len(q.Questions)
}

// Attempt is one completed quiz attempt — the questions actually asked,
// the answers given, and the derived score and skill level. Created only
// at finalization and immutable thereafter.
type Attempt struct {
	UserID     string
	Language   string
	Score      int // clamped to [0, QuestionsCount]
	SkillLevel grade.Level
	Questions  []grade.AttemptQuestion
}

// AttemptStore persists completed attempts. Implemented by the store
// package; nothing is written through it until an attempt finalizes.
type AttemptStore interface {
	CreateAttempt(ctx context.Context, a *Attempt) (string, error)
}
