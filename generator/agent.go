package generator

import (
	"context"
	"errors"
	"log/slog"
)

// Agent turns a Spec into a Draft with one call to the configured provider.
type Agent struct {
	provider Provider
	logger   *slog.Logger
}

func NewAgent(provider Provider, logger *slog.Logger) (*Agent, error) {
	if provider == nil {
		return nil, errors.New("llm provider is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Agent{provider: provider, logger: logger}, nil
}

// Generate builds the prompt, calls the model once and post-processes the
// answer. There is no retry; a failure is returned to the caller as is.
func (a *Agent) Generate(ctx context.Context, apiKey string, spec Spec) (Draft, error) {
	client, err := a.provider(apiKey)
	if err != nil {
		return Draft{}, err
	}

	prompt := BuildPrompt(spec)
	a.logger.Debug("requesting article", "topic", spec.Topic, "audience", spec.Audience, "length", spec.Length)

	raw, err := client.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("generation failed", "topic", spec.Topic, "err", err)
		return Draft{}, err
	}
	draft, err := PostProcess(raw, spec)
	if err != nil {
		return Draft{}, err
	}
	a.logger.Info("article generated", "title", draft.Title, "bytes", len(draft.Markdown))
	return draft, nil
}
