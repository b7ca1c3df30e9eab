package program

import (
	"context"
	"errors"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/nkohli/algoprep/internal/problems"
)

// MaxPatternsPerUser is the number of coding patterns a user may hold
// concurrently.
const MaxPatternsPerUser = 3

// defaultConcurrency bounds parallel problem creation within one
// assembly request.
const defaultConcurrency = 4

// AssembleFailure reports one draft that could not be materialized.
type AssembleFailure struct {
	Title string
	Err   error
}

// Assembler materializes generated problem content into persisted,
// de-duplicated records attached to a user. All canonical problem access
// goes through the problem repository.
type Assembler struct {
	repo         *problems.Repository
	userProblems UserProblemStore
	patterns     PatternStore
	concurrency  int
}

// NewAssembler creates an Assembler over the given repository and stores.
func NewAssembler(repo *problems.Repository, ups UserProblemStore, ps PatternStore) *Assembler {
	return &Assembler{
		repo:         repo,
		userProblems: ups,
		patterns:     ps,
		concurrency:  defaultConcurrency,
	}
}

// AssembleAlgorithms resolves each draft to a canonical problem and binds
// it to userID as a UserProblem. Drafts are independent and are created
// concurrently; a failure on one is reported in the failure list and
// never aborts its siblings. The caller decides what partial success
// means for it.
func (a *Assembler) AssembleAlgorithms(ctx context.Context, userID string, drafts []problems.Draft) ([]*UserProblem, []AssembleFailure) {
	created := make([]*UserProblem, len(drafts))
	failed := make([]*AssembleFailure, len(drafts))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, draft := range drafts {
		g.Go(func() error {
			up, err := a.materialize(ctx, userID, draft)
			if err != nil {
				failed[i] = &AssembleFailure{Title: draft.Title, Err: err}
				return nil
			}
			created[i] = up
			return nil
		})
	}
	_ = g.Wait() // goroutines report via the slices, never via error

	return compact(created), compactFailures(failed)
}

// AssembleCodingPattern creates the pattern's problems and then the
// pattern record itself. Per-problem failures are tolerated — a pattern
// with fewer problems than drafted is degraded but valid. A failure to
// persist the pattern record is fatal: every user problem created by
// this invocation is deleted before the error surfaces, so no orphans
// survive. Problems created by earlier invocations are never touched.
func (a *Assembler) AssembleCodingPattern(ctx context.Context, userID string, draft PatternDraft) (*CodingPattern, error) {
	// Best-effort cap pre-check: reject with no partial effect. The
	// store re-checks inside its create transaction, which closes the
	// window between two concurrent requests from the same user.
	count, err := a.patterns.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("count patterns for %s: %w", userID, err)
	}
	if count >= MaxPatternsPerUser {
		return nil, &PolicyError{UserID: userID, Count: count, Limit: MaxPatternsPerUser}
	}

	// Create the pattern's problems concurrently. The pattern pool is
	// shared, so user problems inside a pattern carry no user id.
	created := make([]*UserProblem, len(draft.Problems))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, pd := range draft.Problems {
		g.Go(func() error {
			up, err := a.materialize(gctx, "", pd)
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: skipping pattern problem %q: %v\n", pd.Title, err)
				return nil
			}
			created[i] = up
			return nil
		})
	}
	// All creations settle before the pattern record is written — and
	// before any rollback could run against a not-yet-created record.
	_ = g.Wait()

	kept := compact(created)
	if len(kept) == 0 {
		return nil, ErrNoProblems
	}

	ids := make([]string, len(kept))
	for i, up := range kept {
		ids[i] = up.ID
	}
	pattern := &CodingPattern{
		UserID:         userID,
		Title:          draft.Title,
		Info:           draft.Info,
		TotalProblems:  len(kept),
		UserProblemIDs: ids,
	}

	id, err := a.patterns.Create(ctx, pattern, MaxPatternsPerUser)
	if err != nil {
		if rbErr := a.rollback(ctx, kept); rbErr != nil {
			var rb *RollbackError
			if errors.As(rbErr, &rb) {
				rb.Cause = err
			}
			return nil, rbErr
		}
		if errors.Is(err, ErrPatternLimit) {
			// Lost the cap race after the pre-check; everything this
			// invocation created has been removed again.
			return nil, &PolicyError{UserID: userID, Count: MaxPatternsPerUser, Limit: MaxPatternsPerUser}
		}
		return nil, &RollbackError{Cause: err}
	}

	pattern.ID = id
	return pattern, nil
}

// RecordSolution appends a solution to a user problem, clamping its
// score to [0,10] and marking the problem solved when the submission
// passes.
func (a *Assembler) RecordSolution(ctx context.Context, userProblemID string, sol Solution) error {
	sol.Score = clamp(sol.Score, 0, 10)
	if err := a.userProblems.AddSolution(ctx, userProblemID, sol); err != nil {
		return fmt.Errorf("record solution for %s: %w", userProblemID, err)
	}
	return nil
}

// PatternProgress recomputes a pattern's solved count from its user
// problems. The count is derived, never read from stored state.
func (a *Assembler) PatternProgress(ctx context.Context, patternID string) (*Progress, error) {
	pattern, err := a.patterns.Get(ctx, patternID)
	if err != nil {
		return nil, fmt.Errorf("get pattern %s: %w", patternID, err)
	}

	progress := &Progress{Total: pattern.TotalProblems}
	for _, id := range pattern.UserProblemIDs {
		up, err := a.userProblems.Get(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("get user problem %s: %w", id, err)
		}
		if up.Solved {
			progress.Solved++
		}
	}
	return progress, nil
}

// materialize resolves one draft through the repository and binds it.
func (a *Assembler) materialize(ctx context.Context, userID string, draft problems.Draft) (*UserProblem, error) {
	p, err := a.repo.FindOrCreate(ctx, draft)
	if err != nil {
		return nil, err
	}
	up, err := a.userProblems.Create(ctx, userID, p.ID)
	if err != nil {
		return nil, fmt.Errorf("create user problem for %s: %w", p.Slug, err)
	}
	return up, nil
}

// rollback deletes the user problems created by a failed pattern
// assembly. Returns a RollbackError listing any ids whose delete failed.
func (a *Assembler) rollback(ctx context.Context, created []*UserProblem) error {
	var orphans []string
	for _, up := range created {
		if err := a.userProblems.Delete(ctx, up.ID); err != nil {
			fmt.Fprintf(os.Stderr, "warning: rollback delete of user problem %s failed: %v\n", up.ID, err)
			orphans = append(orphans, up.ID)
		}
	}
	if len(orphans) > 0 {
		return &RollbackError{Cause: fmt.Errorf("incomplete rollback"), Orphans: orphans}
	}
	return nil
}

func compact(ups []*UserProblem) []*UserProblem {
	out := make([]*UserProblem, 0, len(ups))
	for _, up := range ups {
		if up != nil {
			out = append(out, up)
		}
	}
	return out
}

func compactFailures(fs []*AssembleFailure) []AssembleFailure {
	var out []AssembleFailure
	for _, f := range fs {
		if f != nil {
			out = append(out, *f)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
