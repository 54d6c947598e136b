package generator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"
)

const (
	geminiDefaultModel = "gemini-2.0-flash-exp"
	geminiGenericError = "ไม่สามารถเชื่อมต่อกับ Gemini API ได้"
)

// GeminiLLM implements LLMClient on the official Gemini SDK (generateContent).
type GeminiLLM struct {
	Model   string
	APIKey  string
	BaseURL string
	Params  GenerationParams
	client  *http.Client
}

func NewGeminiLLM(cfg LLMSettings) (*GeminiLLM, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingAPIKey
	}
	g := &GeminiLLM{
		Model:   cfg.Model,
		APIKey:  strings.TrimSpace(cfg.APIKey),
		BaseURL: strings.TrimRight(cfg.BaseURL, "/"),
		Params:  cfg.Params,
		client:  &http.Client{Timeout: cfg.Timeout},
	}
	if g.Model == "" {
		g.Model = geminiDefaultModel
	}
	if g.Params == (GenerationParams{}) {
		g.Params = DefaultGenerationParams
	}
	return g, nil
}

// WithHTTPClient swaps the transport, mainly for tests.
func (g *GeminiLLM) WithHTTPClient(c *http.Client) *GeminiLLM {
	g.client = c
	return g
}

func (g *GeminiLLM) Complete(ctx context.Context, prompt Prompt) (string, error) {
	cc := &genai.ClientConfig{
		APIKey:     g.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: g.client,
	}
	if g.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: g.BaseURL}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(g.Params.Temperature)),
		TopK:            genai.Ptr(float32(g.Params.TopK)),
		TopP:            genai.Ptr(float32(g.Params.TopP)),
		MaxOutputTokens: int32(g.Params.MaxOutputTokens),
	}
	if prompt.System != "" {
		config.SystemInstruction = genai.NewContentFromText(prompt.System, genai.RoleUser)
	}

	resp, err := client.Models.GenerateContent(ctx, g.Model, genai.Text(prompt.User), config)
	if err != nil {
		return "", geminiError(err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", ErrNoContent
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 || content.Parts[0] == nil {
		return "", ErrNoContent
	}
	return content.Parts[0].Text, nil
}

// geminiError maps SDK errors to APIError. The SDK reports payload errors
// both by value and by pointer depending on the call path.
func geminiError(err error) error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		apiErr = *apiErrPtr
	default:
		return fmt.Errorf("gemini request: %w", err)
	}
	msg := strings.TrimSpace(apiErr.Message)
	if msg == "" {
		msg = geminiGenericError
	}
	return &APIError{StatusCode: apiErr.Code, Message: msg}
}

var _ LLMClient = (*GeminiLLM)(nil)

// IsAPIError reports whether err came back from the endpoint itself.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}
