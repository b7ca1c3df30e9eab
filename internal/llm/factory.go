package llm

import (
	"context"
	"fmt"

	"github.com/nkohli/algoprep/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and request-log middleware. requestLog may be nil to skip logging.
func NewProvider(ctx context.Context, cfg Config, requestLog store.RequestLogRepo) (Provider, error) {
	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Caller → retry → logging → base.
	wrapped := base
	if requestLog != nil {
		wrapped = WithLogging(wrapped, requestLog)
	}
	return WithRetry(wrapped, cfg.Retry), nil
}

// NewProviderFromEnv builds a provider from ALGOPREP_* env vars when
// set, otherwise discovers one from standard API key env vars.
func NewProviderFromEnv(ctx context.Context, requestLog store.RequestLogRepo) (Provider, error) {
	cfg := ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, err
		}
		cfg = discovered
	}
	return NewProvider(ctx, cfg, requestLog)
}
