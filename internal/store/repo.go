package store

import (
	"context"
	"time"
)

// LLMRequestData captures one LLM API call for the request log.
type LLMRequestData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// RequestLogRepo provides append access to the LLM request log.
type RequestLogRepo interface {
	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestData) error
}

// LLMUsage aggregates the request log for reporting.
type LLMUsage struct {
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// AttemptSummary is a stored quiz attempt without its question payload.
type AttemptSummary struct {
	ID         string
	UserID     string
	Language   string
	Score      int
	SkillLevel string
	CreatedAt  time.Time
}
