package generator

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubLLM struct {
	reply  string
	err    error
	prompt Prompt
	calls  int
}

func (s *stubLLM) Complete(_ context.Context, p Prompt) (string, error) {
	s.calls++
	s.prompt = p
	return s.reply, s.err
}

func stubProvider(s *stubLLM) Provider {
	return func(string) (LLMClient, error) { return s, nil }
}

func TestAgentGenerate(t *testing.T) {
	stub := &stubLLM{reply: "\n# หัวข้อ SEO\n\nบทนำของ **บทความ**\n\n## ส่วนแรก\n"}
	agent, err := NewAgent(stubProvider(stub), nil)
	if err != nil {
		t.Fatalf("NewAgent: %v", err)
	}

	draft, err := agent.Generate(context.Background(), "key", Spec{Topic: "SEO", Audience: "general"})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if draft.Title != "หัวข้อ SEO" {
		t.Fatalf("unexpected title %q", draft.Title)
	}
	if draft.Digest != "บทนำของ บทความ" {
		t.Fatalf("unexpected digest %q", draft.Digest)
	}
	if strings.HasPrefix(draft.Markdown, "\n") {
		t.Fatalf("markdown not trimmed")
	}
	if stub.calls != 1 || !strings.Contains(stub.prompt.User, `"SEO"`) {
		t.Fatalf("expected one call with the topic, got %d %q", stub.calls, stub.prompt.User)
	}
}

func TestAgentEmptyReply(t *testing.T) {
	agent, _ := NewAgent(stubProvider(&stubLLM{reply: "  \n"}), nil)
	if _, err := agent.Generate(context.Background(), "key", Spec{Topic: "x"}); !errors.Is(err, ErrNoContent) {
		t.Fatalf("expected ErrNoContent, got %v", err)
	}
}

func TestAgentPropagatesErrorWithoutRetry(t *testing.T) {
	stub := &stubLLM{err: &APIError{StatusCode: 500, Message: "boom"}}
	agent, _ := NewAgent(stubProvider(stub), nil)
	_, err := agent.Generate(context.Background(), "key", Spec{Topic: "x"})
	if !IsAPIError(err) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if stub.calls != 1 {
		t.Fatalf("expected a single call, got %d", stub.calls)
	}
}

func TestAgentProviderError(t *testing.T) {
	agent, _ := NewAgent(func(string) (LLMClient, error) { return nil, ErrMissingAPIKey }, nil)
	if _, err := agent.Generate(context.Background(), "", Spec{Topic: "x"}); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}

func TestPostProcessFallbacks(t *testing.T) {
	draft, err := PostProcess("* only\n* a list", Spec{Topic: "หัวข้อ"})
	if err != nil {
		t.Fatalf("PostProcess: %v", err)
	}
	if draft.Title != "หัวข้อ" {
		t.Fatalf("title should fall back to topic, got %q", draft.Title)
	}
	if draft.Digest != "* only * a list" {
		t.Fatalf("unexpected fallback digest %q", draft.Digest)
	}

	long := strings.Repeat("ก", 300)
	draft, _ = PostProcess(long, Spec{})
	if n := len([]rune(draft.Digest)); n != digestLimit {
		t.Fatalf("digest should be cut to %d runes, got %d", digestLimit, n)
	}
}

func TestMockLLMUsesTopic(t *testing.T) {
	out, err := MockLLM{}.Complete(context.Background(), BuildPrompt(Spec{Topic: "กาแฟ"}))
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !strings.HasPrefix(out, "# กาแฟ\n") {
		t.Fatalf("mock output should start with the topic: %q", out)
	}
}
