package program

import (
	"errors"
	"fmt"
)

// ErrPatternLimit is returned by a PatternStore create that lost the cap
// check inside its transaction.
var ErrPatternLimit = errors.New("coding pattern limit reached")

// ErrNoProblems is returned when a pattern assembly could not persist a
// single problem; a pattern with no content is not created.
var ErrNoProblems = errors.New("no problems could be created for pattern")

// PolicyError rejects a request that would violate a policy invariant.
// The request has no partial effect.
type PolicyError struct {
	UserID string
	Count  int
	Limit  int
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("user %s holds %d coding patterns (limit %d)", e.UserID, e.Count, e.Limit)
}

// RollbackError reports a failed pattern creation together with the
// outcome of its compensating rollback. Cause is the original failure;
// Orphans lists user-problem ids whose deletion also failed and may need
// manual cleanup.
type RollbackError struct {
	Cause   error
	Orphans []string
}

func (e *RollbackError) Error() string {
	if len(e.Orphans) == 0 {
		return fmt.Sprintf("pattern creation failed (rolled back): %v", e.Cause)
	}
	return fmt.Sprintf("pattern creation failed, %d rollback deletes also failed: %v", len(e.Orphans), e.Cause)
}

func (e *RollbackError) Unwrap() error { return e.Cause }
