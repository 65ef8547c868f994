// Package compose phrases retrieved knowledge through a hosted model. The
// model rephrases curated text, it never sources facts: prompts carry only
// store content, and the structured entries travel with every answer so
// renderers never depend on the model for correctness.
package compose

import (
	"context"
	"fmt"
)

// Client is the surface the composer needs from a hosted model provider.
type Client interface {
	// Complete sends a prompt and returns the completion.
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSystem sends a prompt with a system message.
	CompleteWithSystem(ctx context.Context, systemPrompt, userPrompt string) (string, error)

	// Name identifies the provider in logs and errors.
	Name() string
}

// CompositionError reports a failed or malformed model exchange. The caller
// falls back to the raw curated entries; composition is cosmetic, never
// load-bearing.
type CompositionError struct {
	Provider string
	Err      error
}

func (e *CompositionError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("compose: %v", e.Err)
	}
	return fmt.Sprintf("compose: provider %s: %v", e.Provider, e.Err)
}

func (e *CompositionError) Unwrap() error { return e.Err }

// NewClient builds the client for a provider name. Supported providers are
// "openai" (and anything speaking its chat API via base URL) and "gemini".
func NewClient(ctx context.Context, provider, apiKey, model, baseURL string) (Client, error) {
	switch provider {
	case "openai":
		cfg := DefaultOpenAIConfig(apiKey)
		if model != "" {
			cfg.Model = model
		}
		if baseURL != "" {
			cfg.BaseURL = baseURL
		}
		return NewOpenAIClientWithConfig(cfg), nil
	case "gemini":
		return NewGeminiClient(ctx, apiKey, model)
	default:
		return nil, fmt.Errorf("unknown provider %q (valid: openai, gemini)", provider)
	}
}
