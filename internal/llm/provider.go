package llm

import (
	"context"
	"errors"
)

// ErrNoAPIKey is returned when a hosted provider is configured without a key
var ErrNoAPIKey = errors.New("missing API key")

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate runs one completion with a system instruction and a user prompt
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// Target names the model and endpoint a provider sends requests to.
// Reporter includes both in its cache keys when the provider implements it.
type Target interface {
	Model() string
	Endpoint() string
}

// GenerateRequest contains the input for a single completion
type GenerateRequest struct {
	// System is the system instruction (working method, form data)
	System string

	// Prompt is the user turn
	Prompt string

	// Model overrides the configured model when set
	Model string

	// Temperature controls sampling; reports use low values
	Temperature float32

	// MaxTokens limits the response length
	MaxTokens int
}

// GenerateResponse contains the model output
type GenerateResponse struct {
	// Text is the generated text, trimmed
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "gemini", "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for hosted providers
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, test servers)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "gemini",
		Model:     defaultGeminiModel,
		Timeout:   60,
		MaxTokens: 2048,
	}
}

func (c Config) model(override, fallback string) string {
	if override != "" {
		return override
	}
	if c.Model != "" {
		return c.Model
	}
	return fallback
}

func (c Config) maxTokens(override int) int {
	if override > 0 {
		return override
	}
	if c.MaxTokens > 0 {
		return c.MaxTokens
	}
	return 2048
}
