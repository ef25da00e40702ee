// Package genai generates lead summaries and email drafts using a hosted
// text-generation model. Generation is advisory: callers always get text
// back, never an error.
package genai

import (
	"context"
)

// Client defines the interface for text-generation providers.
type Client interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Config holds provider-agnostic client settings.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}
