package quiz

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/nkohli/algoprep/internal/grade"
)

// State is the engine's position in a quiz attempt.
type State int

const (
	StateNotStarted State = iota
	StateShowing          // a question is current; see Engine.Index
	StateCompleted
)

// ErrEmptyQuiz is returned when starting an engine over a quiz with no
// questions.
var ErrEmptyQuiz = errors.New("quiz has no questions")

// Config holds per-attempt engine policy.
type Config struct {
	// QuestionTime is the time budget for each question, measured from
	// the moment it becomes current.
	QuestionTime time.Duration

	// AutoTimer arms an internal timer per question that fires Timeout
	// on expiry. Disable when a UI owns the countdown and calls Timeout
	// itself.
	AutoTimer bool
}

// DefaultConfig returns the standard attempt policy.
func DefaultConfig() Config {
	return Config{
		QuestionTime: 10 * time.Second,
		AutoTimer:    true,
	}
}

// Result is the outcome of a finalized attempt. AttemptID is empty when
// persistence failed; Persist can be retried in that case.
type Result struct {
	AttemptID string
	Score     grade.Score
	Level     grade.Level
	Attempt   *Attempt
}

// Engine drives a single quiz attempt through its states:
//
//	NotStarted → Showing(0) → ... → Showing(n-1) → Completed
//
// Submit and Timeout race for the current question; whichever arrives
// first wins and the loser is a no-op, decided by comparing against the
// current index rather than by cancelling timers. A timeout ends the
// whole attempt, not just the current question. Nothing is persisted
// until the attempt completes.
type Engine struct {
	mu sync.Mutex

	cfg    Config
	quiz   *Quiz
	userID string
	store  AttemptStore

	state   State
	index   int
	answers []grade.Answer
	given   []bool

	timer    *time.Timer
	timerGen int

	result *Result
}

// NewEngine creates an engine for one attempt by userID over quiz.
func NewEngine(q *Quiz, userID string, store AttemptStore, cfg Config) *Engine {
	if cfg.QuestionTime <= 0 {
		cfg.QuestionTime = DefaultConfig().QuestionTime
	}
	return &Engine{
		cfg:    cfg,
		quiz:   q,
		userID: userID,
		store:  store,
		state:  StateNotStarted,
	}
}

// Start validates the quiz and moves to Showing(0).
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateNotStarted {
		return fmt.Errorf("engine already started")
	}
	if e.quiz == nil || len(e.quiz.Questions) == 0 {
		return ErrEmptyQuiz
	}

	e.answers = make([]grade.Answer, len(e.quiz.Questions))
	e.given = make([]bool, len(e.quiz.Questions))
	e.state = StateShowing
	e.index = 0
	e.armTimer()
	return nil
}

// Submit records the answer for the question at index and advances.
// On the last question it finalizes the attempt. A submit for a question
// that is not current is a no-op.
func (e *Engine) Submit(ctx context.Context, index int, answer grade.Answer) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.current(index) {
		return e.state, nil
	}

	e.answers[index] = answer
	e.given[index] = true

	if index == len(e.quiz.Questions)-1 {
		err := e.finalize(ctx)
		return e.state, err
	}

	e.index = index + 1
	e.armTimer()
	return e.state, nil
}

// Timeout records a skipped answer for the question at index and
// finalizes the whole attempt immediately — time running out submits the
// entire quiz. A timeout for a question that is not current (already
// answered, already advanced) is a no-op, so a late timer fire after
// Submit won the race costs nothing.
func (e *Engine) Timeout(ctx context.Context, index int) (State, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.current(index) {
		return e.state, nil
	}

	e.answers[index] = grade.SkippedAnswer()
	e.given[index] = true
	err := e.finalize(ctx)
	return e.state, err
}

// Abandon discards the attempt before completion. No side effects have
// been persisted, so there is nothing to undo; the timer is released.
func (e *Engine) Abandon() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == StateCompleted {
		return
	}
	e.stopTimer()
	e.state = StateCompleted
}

// Persist retries persistence of a finalized attempt whose store write
// failed. Returns the attempt id on success.
func (e *Engine) Persist(ctx context.Context) (string, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.result == nil {
		return "", fmt.Errorf("attempt not finalized")
	}
	if e.result.AttemptID != "" {
		return e.result.AttemptID, nil
	}
	id, err := e.store.CreateAttempt(ctx, e.result.Attempt)
	if err != nil {
		return "", fmt.Errorf("persist attempt: %w", err)
	}
	e.result.AttemptID = id
	return id, nil
}

// State returns the engine state and, when showing, the current index.
func (e *Engine) State() (State, int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, e.index
}

// Result returns the finalized result, or nil before completion.
func (e *Engine) Result() *Result {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.result
}

// current reports whether index is the question the engine is showing.
// Callers hold e.mu.
func (e *Engine) current(index int) bool {
	return e.state == StateShowing && index == e.index
}

// finalize fills unanswered questions with skipped answers, scores the
// attempt, and persists it. Callers hold e.mu.
func (e *Engine) finalize(ctx context.Context) error {
	e.stopTimer()
	e.state = StateCompleted

	questions := make([]grade.AttemptQuestion, len(e.quiz.Questions))
	for i, q := range e.quiz.Questions {
		ans := e.answers[i]
		if !e.given[i] {
			ans = grade.SkippedAnswer()
		}
		questions[i] = grade.AttemptQuestion{Question: q, UserAnswer: ans}
	}

	score := grade.ScoreQuiz(questions)
	level := grade.MapScoreToLevel(score.Percentage)

	attempt := &Attempt{
		UserID:     e.userID,
		Language:   e.quiz.Language,
		Score:      clampScore(score.Correct, len(questions)),
		SkillLevel: level,
		Questions:  questions,
	}

	e.result = &Result{
		Score:   score,
		Level:   level,
		Attempt: attempt,
	}

	id, err := e.store.CreateAttempt(ctx, attempt)
	if err != nil {
		return fmt.Errorf("persist attempt: %w", err)
	}
	e.result.AttemptID = id
	return nil
}

// armTimer schedules a timeout for the current question. The generation
// counter plus the index check in Timeout make a late fire harmless even
// when Stop loses the race with the runtime timer.
func (e *Engine) armTimer() {
	e.stopTimer()
	if !e.cfg.AutoTimer {
		return
	}

	e.timerGen++
	gen := e.timerGen
	index := e.index
	e.timer = time.AfterFunc(e.cfg.QuestionTime, func() {
		e.mu.Lock()
		stale := gen != e.timerGen
		e.mu.Unlock()
		if stale {
			return
		}
		_, _ = e.Timeout(context.Background(), index)
	})
}

// stopTimer releases the pending timer, if any. Callers hold e.mu.
func (e *Engine) stopTimer() {
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
}

func clampScore(score, max int) int {
	if score < 0 {
		return 0
	}
	if score > max {
		return max
	}
	return score
}
