package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkohli/algoprep/internal/program"
)

// ErrPatternNotFound is the typed miss for pattern lookups.
var ErrPatternNotFound = errors.New("coding pattern not found")

// patternStore implements program.PatternStore. The per-user cap is
// enforced inside the create transaction: the count check and the
// insert commit together, so two concurrent creates from the same user
// cannot both slip under the limit.
type patternStore struct {
	db *sql.DB
}

// PatternStore returns a program.PatternStore backed by this store.
func (s *Store) PatternStore() program.PatternStore {
	return &patternStore{db: s.db}
}

func (r *patternStore) Create(ctx context.Context, p *program.CodingPattern, maxPerUser int) (string, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if maxPerUser > 0 {
		var count int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM coding_patterns WHERE user_id = ?`, p.UserID).
			Scan(&count)
		if err != nil {
			return "", fmt.Errorf("count patterns: %w", err)
		}
		if count >= maxPerUser {
			return "", program.ErrPatternLimit
		}
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO coding_patterns (id, user_id, title, info, total_problems)
		 VALUES (?, ?, ?, ?, ?)`,
		id, p.UserID, p.Title, p.Info, p.TotalProblems)
	if err != nil {
		return "", fmt.Errorf("insert pattern: %w", err)
	}

	for i, upID := range p.UserProblemIDs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO pattern_problems (pattern_id, user_problem_id, position)
			 VALUES (?, ?, ?)`,
			id, upID, i)
		if err != nil {
			return "", fmt.Errorf("insert pattern problem %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit pattern: %w", err)
	}
	return id, nil
}

func (r *patternStore) Get(ctx context.Context, id string) (*program.CodingPattern, error) {
	var p program.CodingPattern
	err := r.db.QueryRowContext(ctx,
		`SELECT id, user_id, title, info, total_problems
		 FROM coding_patterns WHERE id = ?`, id).
		Scan(&p.ID, &p.UserID, &p.Title, &p.Info, &p.TotalProblems)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatternNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan pattern: %w", err)
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT user_problem_id FROM pattern_problems
		 WHERE pattern_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query pattern problems: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var upID string
		if err := rows.Scan(&upID); err != nil {
			return nil, fmt.Errorf("scan pattern problem: %w", err)
		}
		p.UserProblemIDs = append(p.UserProblemIDs, upID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pattern problems: %w", err)
	}
	return &p, nil
}

func (r *patternStore) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM coding_patterns WHERE user_id = ?`, userID).
		Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count patterns: %w", err)
	}
	return count, nil
}
