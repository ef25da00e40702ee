package genai

import (
	"fmt"
	"strings"
)

// NewClient creates a text-generation client for the configured provider.
// An empty API key returns nil without error: the Service treats a nil
// client as simulation mode.
func NewClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}

	switch strings.ToLower(cfg.Provider) {
	case "", "gemini":
		return newGeminiClient(cfg)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
}
