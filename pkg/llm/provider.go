// Package llm provides a unified interface for LLM backends.
//
// The pipeline treats the model as an opaque text-completion service:
// a prompt goes in, raw text comes out. Provider implementations wrap
// the vendor SDKs (Anthropic, OpenAI) or a local Ollama instance.
package llm

import (
	"context"
	"time"
)

// Request represents a completion request to the LLM.
type Request struct {
	Prompt       string
	Temperature  float64
	MaxNewTokens int // Max tokens to generate (0 = provider default)
}

// Usage tracks token consumption.
type Usage struct {
	InputTokens  int
	OutputTokens int
}

// Response represents the result of a generation.
type Response struct {
	Content      string
	FinishReason string
	Usage        Usage
	Model        string // Actual model used
	Duration     time.Duration
}

// Provider is the interface all LLM backends implement.
type Provider interface {
	// Generate sends a completion request and returns the raw text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// Name returns the provider identifier (e.g., "anthropic", "ollama").
	Name() string

	// Model returns the configured model name.
	Model() string
}

// ProviderConfig holds common configuration for providers.
type ProviderConfig struct {
	APIKey     string
	BaseURL    string // For custom endpoints or a non-default Ollama host
	Model      string
	MaxRetries int
	Timeout    time.Duration
}

// DefaultProviderConfig returns sensible defaults.
func DefaultProviderConfig() ProviderConfig {
	return ProviderConfig{
		MaxRetries: 3,
		Timeout:    120 * time.Second,
	}
}
