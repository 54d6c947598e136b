package generator

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// generateContentBody is the subset of the wire request the tests inspect.
type generateContentBody struct {
	SystemInstruction *struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"systemInstruction"`
	Contents []struct {
		Parts []struct {
			Text string `json:"text"`
		} `json:"parts"`
	} `json:"contents"`
	GenerationConfig struct {
		Temperature     float64 `json:"temperature"`
		TopK            float64 `json:"topK"`
		TopP            float64 `json:"topP"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiLLM {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	g, err := NewGeminiLLM(LLMSettings{APIKey: "test-key", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("NewGeminiLLM: %v", err)
	}
	return g.WithHTTPClient(srv.Client())
}

func TestGeminiComplete(t *testing.T) {
	var got generateContentBody
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash-exp:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header missing")
		}
		if r.URL.Query().Get("key") != "" {
			t.Errorf("api key leaked into the query string")
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"role":"model","parts":[{"text":"# สวัสดี"}]}}]}`))
	})

	text, err := g.Complete(context.Background(), Prompt{User: "hello"})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if text != "# สวัสดี" {
		t.Fatalf("unexpected text %q", text)
	}
	if len(got.Contents) != 1 || len(got.Contents[0].Parts) != 1 || got.Contents[0].Parts[0].Text != "hello" {
		t.Fatalf("prompt not sent: %#v", got.Contents)
	}
	cfg := got.GenerationConfig
	if cfg.Temperature != 0.7 || cfg.TopK != 40 || cfg.TopP != 0.95 || cfg.MaxOutputTokens != 2048 {
		t.Fatalf("unexpected generation config: %#v", cfg)
	}
	if got.SystemInstruction != nil {
		t.Fatalf("system instruction should be omitted for empty system prompt")
	}
}

func TestGeminiSystemInstruction(t *testing.T) {
	var got generateContentBody
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"ok"}]}}]}`))
	})

	if _, err := g.Complete(context.Background(), Prompt{System: "เขียนเป็นภาษาไทย", User: "hello"}); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got.SystemInstruction == nil || len(got.SystemInstruction.Parts) != 1 || got.SystemInstruction.Parts[0].Text != "เขียนเป็นภาษาไทย" {
		t.Fatalf("system instruction not sent: %#v", got.SystemInstruction)
	}
}

func TestGeminiErrorMessage(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"code":400,"message":"API key not valid","status":"INVALID_ARGUMENT"}}`))
	})

	_, err := g.Complete(context.Background(), Prompt{User: "x"})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest || apiErr.Message != "API key not valid" {
		t.Fatalf("unexpected api error: %#v", apiErr)
	}
}

func TestGeminiGenericError(t *testing.T) {
	g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	_, err := g.Complete(context.Background(), Prompt{User: "x"})
	if err == nil || err.Error() != geminiGenericError || !IsAPIError(err) {
		t.Fatalf("expected generic api error, got %v", err)
	}
}

func TestGeminiNoCandidates(t *testing.T) {
	for _, body := range []string{`{}`, `{"candidates":[]}`, `{"candidates":[{}]}`, `{"candidates":[{"content":{"parts":[]}}]}`} {
		g := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(body))
		})
		if _, err := g.Complete(context.Background(), Prompt{User: "x"}); !errors.Is(err, ErrNoContent) {
			t.Fatalf("body %s: expected ErrNoContent, got %v", body, err)
		}
	}
}

func TestNewGeminiRequiresKey(t *testing.T) {
	if _, err := NewGeminiLLM(LLMSettings{APIKey: "  "}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	if _, err := NewProvider(LLMSettings{Provider: "deepseek"}); err == nil {
		t.Fatalf("deepseek without base_url should fail")
	}
	if _, err := NewProvider(LLMSettings{Provider: "bard"}); err == nil {
		t.Fatalf("unknown provider should fail")
	}

	p, err := NewProvider(LLMSettings{Provider: "gemini", APIKey: "from-config"})
	if err != nil {
		t.Fatalf("NewProvider: %v", err)
	}
	client, err := p("")
	if err != nil {
		t.Fatalf("provider with configured key: %v", err)
	}
	if g := client.(*GeminiLLM); g.APIKey != "from-config" {
		t.Fatalf("configured key not used: %q", g.APIKey)
	}
	client, _ = p("from-user")
	if g := client.(*GeminiLLM); g.APIKey != "from-user" {
		t.Fatalf("user key should win: %q", g.APIKey)
	}
}
