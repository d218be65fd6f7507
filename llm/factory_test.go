package llm

import (
	"errors"
	"strings"
	"testing"

	"github.com/mindflowapp/mindflow/types"
)

func TestNewProviderNilConfig(t *testing.T) {
	if _, err := NewProvider(nil); err == nil {
		t.Error("nil config should be rejected")
	}
}

func TestNewProviderMissingKeyIsDistinguishable(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := NewProvider(&types.LLMConfig{Provider: "gemini"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if !strings.Contains(err.Error(), "GEMINI_API_KEY") {
		t.Errorf("remediation should name the env var: %v", err)
	}

	_, err = NewProvider(&types.LLMConfig{Provider: "openai"})
	if !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("error = %v, want ErrMissingAPIKey", err)
	}
	if !strings.Contains(err.Error(), "OPENAI_API_KEY") {
		t.Errorf("remediation should name the env var: %v", err)
	}
}

func TestNewProviderDefaultsToGemini(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	p, err := NewProvider(&types.LLMConfig{})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	if _, ok := p.(*GeminiProvider); !ok {
		t.Errorf("default provider is %T, want *GeminiProvider", p)
	}
}

func TestNewProviderPrefersConfiguredKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "env-key")

	p, err := NewProvider(&types.LLMConfig{Provider: "openai", APIKey: "config-key"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	op, ok := p.(*OpenAIProvider)
	if !ok {
		t.Fatalf("provider is %T", p)
	}
	if op.apiKey != "config-key" {
		t.Errorf("apiKey = %q, configured key should win", op.apiKey)
	}
}

func TestNewProviderUnsupported(t *testing.T) {
	_, err := NewProvider(&types.LLMConfig{Provider: "cohere"})
	if err == nil || errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("unsupported provider error = %v", err)
	}
}
