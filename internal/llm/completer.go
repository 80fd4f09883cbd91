package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/bizhubhq/bizhub/internal/config"
)

// Completer sends conversations to the completion service and returns the
// highest-ranked text response. Implementations make exactly one outbound
// call per invocation and never retry.
type Completer interface {
	// Complete sends an ordered conversation and returns the completion text.
	Complete(ctx context.Context, conv Conversation) (string, error)

	// CompletePrompt sends a single raw prompt (single-shot use).
	CompletePrompt(ctx context.Context, prompt string) (string, error)
}

// New creates a Completer based on configuration. The default "proxy"
// provider talks to the credential-holding proxy; all other providers call
// the model API directly with a locally held key.
func New(ctx context.Context, cfg config.Config, logger *slog.Logger) (Completer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.AIProvider {
	case config.ProviderProxy, "":
		return NewProxyClient(cfg.ProxyURL, cfg.ProxyAnonKey, logger), nil
	case config.ProviderGoogleAI, config.ProviderOpenAI, config.ProviderAnthropic,
		config.ProviderOllama, config.ProviderBedrock:
		// Return an untyped nil on failure; a typed-nil *ModelClient inside
		// the interface would slip past the callers' nil checks.
		mc, err := NewModelClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return mc, nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.AIProvider)
	}
}
