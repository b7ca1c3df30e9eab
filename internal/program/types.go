package program

import (
	"context"

	"github.com/nkohli/algoprep/internal/problems"
)

// Solution is one submission against a user problem.
type Solution struct {
	Language       string
	Source         string
	Score          int // clamped to [0,10]
	ElapsedSeconds int
}

// UserProblem associates a canonical problem with one user's progress.
// UserID is empty for problems held in a coding pattern's shared pool.
type UserProblem struct {
	ID        string
	UserID    string
	ProblemID string
	Solved    bool
	Score     int
	Solutions []Solution
}

// CodingPattern is a named technique group. Its problem set is fixed at
// creation: requesting more problems for a pattern creates a new pattern
// rather than appending to this one. SolvedProblems is never stored; it
// is recomputed from UserProblem truth (see Assembler.PatternProgress).
type CodingPattern struct {
	ID             string
	UserID         string
	Title          string
	Info           string
	TotalProblems  int
	UserProblemIDs []string // ordered
}

// PatternDraft is generated coding-pattern content before assembly.
type PatternDraft struct {
	Title         string
	Info          string
	TotalProblems int
	Problems      []problems.Draft
}

// Progress is the derived completion state of a coding pattern.
type Progress struct {
	Total  int
	Solved int
}

// UserProblemStore persists per-user problem progress. Create binds a
// canonical problem to a user (or to the shared pool when userID is
// empty); Delete exists for assembly rollback.
type UserProblemStore interface {
	Create(ctx context.Context, userID, problemID string) (*UserProblem, error)
	Get(ctx context.Context, id string) (*UserProblem, error)
	Delete(ctx context.Context, id string) error
	AddSolution(ctx context.Context, id string, sol Solution) error
}

// PatternStore persists coding patterns. Create enforces maxPerUser
// atomically where the backing store supports it (the SQLite store runs
// the count check and insert in one transaction), returning
// ErrPatternLimit when the user is at the cap.
type PatternStore interface {
	Create(ctx context.Context, p *CodingPattern, maxPerUser int) (string, error)
	Get(ctx context.Context, id string) (*CodingPattern, error)
	CountByUser(ctx context.Context, userID string) (int, error)
}
