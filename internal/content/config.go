package content

// Config controls the behavior of the generation Service.
type Config struct {
	// MaxTokens is the token budget for the LLM response. Problem sets
	// and patterns carry full statements, so the budget is generous.
	MaxTokens int

	// Temperature controls LLM output randomness (0.0-1.0).
	Temperature float64

	// MaxExistingTitles is the maximum number of existing titles to
	// include in the prompt for deduplication.
	MaxExistingTitles int
}

// DefaultConfig returns a Config with recommended defaults.
func DefaultConfig() Config {
	return Config{
		MaxTokens:         4096,
		Temperature:       0.7,
		MaxExistingTitles: 30,
	}
}
