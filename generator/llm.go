package generator

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// LLMClient abstracts the text generation endpoint so it can be swapped or mocked.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// Provider builds a client for one credential. The credential is owned by
// the user session, so clients are created per call.
type Provider func(apiKey string) (LLMClient, error)

// GenerationParams are the fixed sampling settings sent with every request.
type GenerationParams struct {
	Temperature     float64
	TopK            int
	TopP            float64
	MaxOutputTokens int
}

// DefaultGenerationParams mirrors the settings the tool has always used.
var DefaultGenerationParams = GenerationParams{
	Temperature:     0.7,
	TopK:            40,
	TopP:            0.95,
	MaxOutputTokens: 2048,
}

// LLMSettings is the base configuration handed to concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	Params   GenerationParams
}

var (
	ErrMissingAPIKey = errors.New("กรุณาใส่ API Key")
	// ErrNoContent is a well-formed response without any candidate text.
	ErrNoContent = errors.New("ไม่ได้รับการตอบกลับจาก AI")
)

// APIError is a non-success response from the endpoint.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewProvider picks the client implementation named by settings.Provider.
// settings.APIKey, when set, is used whenever the caller passes no key.
func NewProvider(settings LLMSettings) (Provider, error) {
	build := func(apiKey string) LLMSettings {
		s := settings
		if apiKey != "" {
			s.APIKey = apiKey
		}
		return s
	}
	switch settings.Provider {
	case "", "gemini":
		return func(apiKey string) (LLMClient, error) {
			return NewGeminiLLM(build(apiKey))
		}, nil
	case "openai":
		return func(apiKey string) (LLMClient, error) {
			return NewOpenAILLMFromConfig(build(apiKey))
		}, nil
	case "deepseek":
		// DeepSeek speaks the OpenAI protocol but has no default endpoint.
		if settings.BaseURL == "" {
			return nil, fmt.Errorf("llm provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
		return func(apiKey string) (LLMClient, error) {
			return NewOpenAILLMFromConfig(build(apiKey))
		}, nil
	case "mock":
		return func(string) (LLMClient, error) { return MockLLM{}, nil }, nil
	default:
		return nil, fmt.Errorf("llm provider %s not supported", settings.Provider)
	}
}
