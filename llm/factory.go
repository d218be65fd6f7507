package llm

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mindflowapp/mindflow/types"
)

// NewProvider is a factory function that returns an instance of an llm.Provider
// based on the provided LLM configuration. When no provider is named the
// Gemini provider is used, matching the default model family.
func NewProvider(config *types.LLMConfig) (Provider, error) {
	if config == nil {
		return nil, fmt.Errorf("LLM configuration cannot be nil")
	}

	provider := strings.ToLower(strings.TrimSpace(config.Provider))
	if provider == "" {
		provider = "gemini"
	}

	timeout := 60 * time.Second
	if config.RequestTimeoutSeconds > 0 {
		timeout = time.Duration(config.RequestTimeoutSeconds) * time.Second
	}

	switch provider {
	case "gemini":
		apiKey := resolveKey(config.APIKey, "GEMINI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: set GEMINI_API_KEY or llm.apiKey in config", ErrMissingAPIKey)
		}
		model := config.ModelName
		if model == "" {
			model = "gemini-2.5-flash"
		}
		return NewGeminiProvider(apiKey, model, config.Debug), nil
	case "openai":
		apiKey := resolveKey(config.APIKey, "OPENAI_API_KEY")
		if apiKey == "" {
			return nil, fmt.Errorf("%w: set OPENAI_API_KEY or llm.apiKey in config", ErrMissingAPIKey)
		}
		model := config.ModelName
		if model == "" {
			model = "gpt-4o-mini"
		}
		return NewOpenAIProvider(apiKey, model, timeout, config.Debug), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}

// resolveKey prefers the configured key and falls back to the environment.
func resolveKey(configured, envVar string) string {
	if configured != "" {
		return configured
	}
	return os.Getenv(envVar)
}
