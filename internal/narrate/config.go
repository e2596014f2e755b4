package narrate

import "time"

// Config holds narration settings.
type Config struct {
	MaxTokens   int
	Temperature float64

	// Timeout bounds one Elaborate call independently of the caller's
	// deadline. Zero means DefaultTimeout.
	Timeout time.Duration
}

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// DefaultConfig returns sensible defaults for narration.
func DefaultConfig() Config {
	return Config{
		MaxTokens:   512,
		Temperature: 0.4,
		Timeout:     DefaultTimeout,
	}
}
