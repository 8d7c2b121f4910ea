package domain

import (
	"context"
)

// Prompt message roles understood by chat-completion generators.
const (
	PromptRoleSystem    = "system"
	PromptRoleUser      = "user"
	PromptRoleAssistant = "assistant"
)

// PromptMessage is one entry of a chat-style prompt.
type PromptMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// GenerationRequest is the prompt handed to a text generator.
type GenerationRequest struct {
	Messages    []PromptMessage
	Temperature float64
	MaxTokens   int
}

// Generator produces reply text for a chat-style prompt. Implementations
// make a single attempt; callers decide how to degrade on failure.
type Generator interface {
	Complete(ctx context.Context, req *GenerationRequest) (string, error)
}

// GeneratorConfig holds text-generation collaborator settings.
// Enabled is an explicit capability flag: when false the responder runs
// with its deterministic fallback only, regardless of credentials.
type GeneratorConfig struct {
	Enabled     bool    `yaml:"enabled"`
	BaseURL     string  `yaml:"baseUrl"`
	APIKey      string  `yaml:"apiKey"`
	Model       string  `yaml:"model"`
	Timeout     int     `yaml:"timeout"` // seconds, per generation call
	MaxTokens   int     `yaml:"maxTokens"`
	Temperature float64 `yaml:"temperature"`
}
