package grade

import (
	"fmt"
	"math"
	"strings"
)

// GradeTrueFalse reports whether a true/false answer is correct.
func GradeTrueFalse(answer, userAnswer bool) bool {
	return answer == userAnswer
}

// GradeSingleChoice reports whether a single-choice answer is correct.
// Comparison is an exact match after trimming surrounding whitespace.
func GradeSingleChoice(answer, userAnswer string) bool {
	return strings.TrimSpace(answer) == strings.TrimSpace(userAnswer)
}

// MultiChoiceResult breaks down a multiple-choice answer against the
// canonical set. FullyCorrect holds only when the user's selection is
// exactly the canonical set: same size, no extras, none missing.
type MultiChoiceResult struct {
	CorrectCount   int // selected and correct
	IncorrectCount int // selected but not in the canonical set
	MissedCount    int // in the canonical set but not selected
	FullyCorrect   bool
}

// GradeMultipleChoice grades a multiple-choice selection with set
// semantics. Duplicate selections count once.
func GradeMultipleChoice(answer, userAnswer []string) MultiChoiceResult {
	want := toSet(answer)
	got := toSet(userAnswer)

	var res MultiChoiceResult
	for opt := range got {
		if want[opt] {
			res.CorrectCount++
		} else {
			res.IncorrectCount++
		}
	}
	for opt := range want {
		if !got[opt] {
			res.MissedCount++
		}
	}
	res.FullyCorrect = res.IncorrectCount == 0 && res.MissedCount == 0
	return res
}

func toSet(opts []string) map[string]bool {
	set := make(map[string]bool, len(opts))
	for _, o := range opts {
		set[strings.TrimSpace(o)] = true
	}
	return set
}

// GradeQuestion grades a single answered question. A skipped answer is
// always incorrect. An unknown question type returns an error so a new
// type cannot silently pass ungraded.
func GradeQuestion(q Question, a Answer) (bool, error) {
	if a.Skipped {
		return false, nil
	}

	switch q.Type {
	case TypeTrueFalse:
		return GradeTrueFalse(q.AnswerBool, a.Bool), nil
	case TypeSingleChoice:
		return GradeSingleChoice(q.AnswerText, a.Text), nil
	case TypeMultipleChoice:
		return GradeMultipleChoice(q.AnswerMulti, a.Multi).FullyCorrect, nil
	default:
		return false, fmt.Errorf("unknown question type %q", q.Type)
	}
}

// Score aggregates correctness over a whole quiz attempt.
type Score struct {
	Correct    int
	Total      int
	Percentage int // round(100 * Correct / Total)
}

// ScoreQuiz grades every answered question and aggregates the result.
// Multiple choice counts as correct only when fully correct. A question
// that cannot be graded (unknown type) counts as incorrect — an attempt
// always produces a score.
func ScoreQuiz(questions []AttemptQuestion) Score {
	s := Score{Total: len(questions)}
	for _, aq := range questions {
		correct, err := GradeQuestion(aq.Question, aq.UserAnswer)
		if err != nil {
			continue
		}
		if correct {
			s.Correct++
		}
	}
	if s.Total > 0 {
		s.Percentage = int(math.Round(100 * float64(s.Correct) / float64(s.Total)))
	}
	return s
}

// Level thresholds. Monotonic: a higher percentage never maps lower.
const (
	juniorThreshold = 35
	midThreshold    = 60
	seniorThreshold = 85
)

// MapScoreToLevel maps a percentage in [0,100] to a skill level.
// Total over the whole range; out-of-range input is clamped.
func MapScoreToLevel(percentage int) Level {
	switch {
	case percentage >= seniorThreshold:
		return LevelSenior
	case percentage >= midThreshold:
		return LevelMid
	case percentage >= juniorThreshold:
		return LevelJunior
	default:
		return LevelEntry
	}
}
