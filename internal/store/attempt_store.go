package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/nkohli/algoprep/internal/quiz"
)

// attemptStore implements quiz.AttemptStore. The asked questions and
// given answers are stored as one JSON document; attempts are written
// once at finalization and never updated.
type attemptStore struct {
	db *sql.DB
}

// AttemptStore returns a quiz.AttemptStore backed by this store.
func (s *Store) AttemptStore() quiz.AttemptStore {
	return &attemptStore{db: s.db}
}

func (r *attemptStore) CreateAttempt(ctx context.Context, a *quiz.Attempt) (string, error) {
	questions, err := json.Marshal(a.Questions)
	if err != nil {
		return "", fmt.Errorf("encode attempt questions: %w", err)
	}

	id := uuid.NewString()
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO quiz_attempts (id, user_id, language, score, skill_level, questions)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		id, a.UserID, a.Language, a.Score, string(a.SkillLevel), string(questions))
	if err != nil {
		return "", fmt.Errorf("insert attempt: %w", err)
	}
	return id, nil
}

// AttemptSummaries returns the user's most recent attempts, newest
// first. limit <= 0 returns all.
func (s *Store) AttemptSummaries(ctx context.Context, userID string, limit int) ([]AttemptSummary, error) {
	q := `SELECT id, user_id, language, score, skill_level, created_at
	      FROM quiz_attempts WHERE user_id = ? ORDER BY created_at DESC, id`
	args := []any{userID}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptSummary
	for rows.Next() {
		var a AttemptSummary
		if err := rows.Scan(&a.ID, &a.UserID, &a.Language, &a.Score, &a.SkillLevel, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

// ProblemCounts returns the user's total and solved problem counts.
func (s *Store) ProblemCounts(ctx context.Context, userID string) (total, solved int, err error) {
	err = s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(solved), 0)
		 FROM user_problems WHERE user_id = ?`, userID).
		Scan(&total, &solved)
	if err != nil {
		return 0, 0, fmt.Errorf("count user problems: %w", err)
	}
	return total, solved, nil
}
