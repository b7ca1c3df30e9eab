package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/nkohli/algoprep/internal/problems"
)

// problemStore implements problems.Store on the problems table. The
// UNIQUE index on slug is the source of ErrDuplicateSlug.
type problemStore struct {
	db *sql.DB
}

// ProblemStore returns a problems.Store backed by this store.
func (s *Store) ProblemStore() problems.Store {
	return &problemStore{db: s.db}
}

func (r *problemStore) Get(ctx context.Context, id string) (*problems.Problem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, slug, title, description, difficulty, kind, hint
		 FROM problems WHERE id = ?`, id)
	return scanProblem(row)
}

func (r *problemStore) FindBySlug(ctx context.Context, slug string) (*problems.Problem, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, slug, title, description, difficulty, kind, hint
		 FROM problems WHERE slug = ?`, slug)
	return scanProblem(row)
}

func (r *problemStore) Create(ctx context.Context, p *problems.Problem) (string, error) {
	id := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO problems (id, slug, title, description, difficulty, kind, hint)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, p.Slug, p.Title, p.Description, string(p.Difficulty), string(p.Kind), p.Hint)
	if err != nil {
		if isUniqueViolation(err) {
			return "", problems.ErrDuplicateSlug
		}
		return "", fmt.Errorf("insert problem: %w", err)
	}
	return id, nil
}

func (r *problemStore) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM problems WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete problem: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return problems.ErrNotFound
	}
	return nil
}

func scanProblem(row *sql.Row) (*problems.Problem, error) {
	var p problems.Problem
	var difficulty, kind string
	err := row.Scan(&p.ID, &p.Slug, &p.Title, &p.Description, &difficulty, &kind, &p.Hint)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, problems.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan problem: %w", err)
	}
	p.Difficulty = problems.Difficulty(difficulty)
	p.Kind = problems.Kind(kind)
	return &p, nil
}

// UserProblemTitles returns the titles of problems bound to userID,
// oldest first. Used to build prompt deduplication lists.
func (s *Store) UserProblemTitles(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.title FROM user_problems up
		 JOIN problems p ON p.id = up.problem_id
		 WHERE up.user_id = ? ORDER BY up.created_at, up.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query user problem titles: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

// PatternTitles returns the titles of the user's coding patterns,
// oldest first.
func (s *Store) PatternTitles(ctx context.Context, userID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT title FROM coding_patterns
		 WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query pattern titles: %w", err)
	}
	defer rows.Close()
	return scanStrings(rows)
}

func scanStrings(rows *sql.Rows) ([]string, error) {
	var out []string
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, fmt.Errorf("scan title: %w", err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate titles: %w", err)
	}
	return out, nil
}

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint
// failure. modernc.org/sqlite exposes these only through the message.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
