package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/nkohli/algoprep/internal/store"
)

// LoggingProvider is a decorator that records every LLM request in the
// store's request log.
type LoggingProvider struct {
	inner      Provider
	requestLog store.RequestLogRepo
}

// WithLogging wraps a Provider with request logging.
func WithLogging(p Provider, log store.RequestLogRepo) Provider {
	return &LoggingProvider{inner: p, requestLog: log}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	rec := store.LLMRequestData{
		Provider:  l.inner.ModelID(),
		Model:     l.inner.ModelID(),
		Purpose:   PurposeFrom(ctx),
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if resp != nil {
		rec.Model = resp.Model
		rec.InputTokens = resp.Usage.InputTokens
		rec.OutputTokens = resp.Usage.OutputTokens
	}
	if err != nil {
		rec.ErrorMessage = err.Error()
	}

	// A failed log write never fails the request.
	if logErr := l.requestLog.AppendLLMRequest(ctx, rec); logErr != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to log LLM request: %v\n", logErr)
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
