package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/mathsheet/internal/store"
)

// NewProvider creates a Provider from configuration, wrapped so that
// callers see caller → retry → logging → base. A nil eventRepo skips
// event logging.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	if eventRepo != nil {
		base = WithLogging(base, cfg.Provider, eventRepo, logger)
	}
	return WithRetry(base, cfg.Retry, logger), nil
}

// NewProviderFromEnv builds a provider from MATHSHEET_* variables. When the
// configured provider has no API key, the standard vendor key variables are
// probed instead.
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger) (Provider, Config, error) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		return nil, Config{}, err
	}
	if verr := cfg.Validate(); verr != nil {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, cfg, verr
		}
		discovered.Timeout = cfg.Timeout
		discovered.Retry = cfg.Retry
		cfg = discovered
	}

	p, err := NewProvider(ctx, cfg, eventRepo, logger)
	return p, cfg, err
}
