package store

import (
	"context"
	"database/sql"
	"fmt"
)

// requestLog implements RequestLogRepo on the llm_requests table.
type requestLog struct {
	db *sql.DB
}

// RequestLog returns a RequestLogRepo backed by this store.
func (s *Store) RequestLog() RequestLogRepo {
	return &requestLog{db: s.db}
}

func (r *requestLog) AppendLLMRequest(ctx context.Context, data LLMRequestData) error {
	success := 0
	if data.Success {
		success = 1
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO llm_requests
		 (provider, model, purpose, input_tokens, output_tokens, latency_ms, success, error_message)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		data.Provider, data.Model, data.Purpose,
		data.InputTokens, data.OutputTokens, data.LatencyMs, success, data.ErrorMessage)
	if err != nil {
		return fmt.Errorf("insert llm request: %w", err)
	}
	return nil
}

// LLMUsageTotals aggregates the request log.
func (s *Store) LLMUsageTotals(ctx context.Context) (*LLMUsage, error) {
	var u LLMUsage
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN success = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(input_tokens), 0),
		        COALESCE(SUM(output_tokens), 0)
		 FROM llm_requests`).
		Scan(&u.Requests, &u.Failures, &u.InputTokens, &u.OutputTokens)
	if err != nil {
		return nil, fmt.Errorf("aggregate llm requests: %w", err)
	}
	return &u, nil
}
