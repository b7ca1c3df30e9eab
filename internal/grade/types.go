package grade

// QuestionType identifies how a question is asked and answered.
type QuestionType string

const (
	// TypeTrueFalse is a true-or-false question. The answer is a bool.
	TypeTrueFalse QuestionType = "TOF"

	// TypeSingleChoice is a pick-one question. The answer is the text of
	// the correct option.
	TypeSingleChoice QuestionType = "singleChoice"

	// TypeMultipleChoice is a pick-all-that-apply question. The answer is
	// the set of correct option texts.
	TypeMultipleChoice QuestionType = "multipleChoice"
)

// Valid reports whether t is a known question type.
func (t QuestionType) Valid() bool {
	switch t {
	case TypeTrueFalse, TypeSingleChoice, TypeMultipleChoice:
		return true
	}
	return false
}

// Question is a single quiz question with its canonical answer.
// Exactly one of the Answer* fields is meaningful, selected by Type.
type Question struct {
	// Type selects the answer shape.
	Type QuestionType

	// Prompt is the question text shown to the user.
	Prompt string

	// Options holds the selectable choices. Present for choice types,
	// empty for true/false.
	Options []string

	// AnswerBool is the canonical answer for TypeTrueFalse.
	AnswerBool bool

	// AnswerText is the canonical answer for TypeSingleChoice.
	AnswerText string

	// AnswerMulti is the canonical answer set for TypeMultipleChoice.
	AnswerMulti []string
}

// Answer is a user-submitted answer. Exactly one of the value fields is
// meaningful, matching the question's type. A timed-out question carries
// an Answer with Skipped set — never an absent answer — so a completed
// attempt always has one Answer per question.
type Answer struct {
	Bool    bool
	Text    string
	Multi   []string
	Skipped bool
}

// SkippedAnswer returns the failing answer recorded for a timed-out question.
// It never grades correct, even against a false TOF answer.
func SkippedAnswer() Answer {
	return Answer{Skipped: true}
}

// AttemptQuestion pairs a question with the answer the user gave.
type AttemptQuestion struct {
	Question
	UserAnswer Answer
}

// Level is the skill level derived from a quiz score.
type Level string

const (
	LevelEntry  Level = "entry-level"
	LevelJunior Level = "junior"
	LevelMid    Level = "mid-level"
	LevelSenior Level = "senior"
)

// Rank returns the ordinal position of the level, lowest first.
// Unknown levels rank below entry-level.
func (l Level) Rank() int {
	switch l {
	case LevelEntry:
		return 1
	case LevelJunior:
		return 2
	case LevelMid:
		return 3
	case LevelSenior:
		return 4
	}
	return 0
}
