package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkohli/algoprep/internal/program"
)

// ErrUserProblemNotFound is the typed miss for user-problem lookups.
var ErrUserProblemNotFound = errors.New("user problem not found")

// userProblemStore implements program.UserProblemStore. Solutions are a
// JSON array column; they are only ever appended to and read whole.
type userProblemStore struct {
	db *sql.DB
}

// UserProblemStore returns a program.UserProblemStore backed by this store.
func (s *Store) UserProblemStore() program.UserProblemStore {
	return &userProblemStore{db: s.db}
}

func (r *userProblemStore) Create(ctx context.Context, userID, problemID string) (*program.UserProblem, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_problems (id, user_id, problem_id) VALUES (?, ?, ?)`,
		id, userID, problemID)
	if err != nil {
		return nil, fmt.Errorf("insert user problem: %w", err)
	}
	return &program.UserProblem{ID: id, UserID: userID, ProblemID: problemID}, nil
}

func (r *userProblemStore) Get(ctx context.Context, id string) (*program.UserProblem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, problem_id, solved, score, solutions
		 FROM user_problems WHERE id = ?`, id)

	var up program.UserProblem
	var solved int
	var solutions string
	err := row.Scan(&up.ID, &up.UserID, &up.ProblemID, &solved, &up.Score, &solutions)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserProblemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user problem: %w", err)
	}
	up.Solved = solved != 0
	if err := json.Unmarshal([]byte(solutions), &up.Solutions); err != nil {
		return nil, fmt.Errorf("decode solutions for %s: %w", id, err)
	}
	return &up, nil
}

func (r *userProblemStore) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM user_problems WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete user problem: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrUserProblemNotFound
	}
	return nil
}

// AddSolution appends sol and folds it into the solved flag and best
// score. Read-modify-write runs in one transaction so concurrent
// submissions against the same record don't lose solutions.
func (r *userProblemStore) AddSolution(ctx context.Context, id string, sol program.Solution) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var solved int
	var score int
	var raw string
	err = tx.QueryRowContext(ctx,
		`SELECT solved, score, solutions FROM user_problems WHERE id = ?`, id).
		Scan(&solved, &score, &raw)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserProblemNotFound
	}
	if err != nil {
		return fmt.Errorf("read user problem: %w", err)
	}

	var solutions []program.Solution
	if err := json.Unmarshal([]byte(raw), &solutions); err != nil {
		return fmt.Errorf("decode solutions for %s: %w", id, err)
	}
	solutions = append(solutions, sol)

	if sol.Score > 0 {
		solved = 1
	}
	if sol.Score > score {
		score = sol.Score
	}

	encoded, err := json.Marshal(solutions)
	if err != nil {
		return fmt.Errorf("encode solutions: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE user_problems SET solved = ?, score = ?, solutions = ? WHERE id = ?`,
		solved, score, string(encoded), id)
	if err != nil {
		return fmt.Errorf("update user problem: %w", err)
	}
	return tx.Commit()
}
