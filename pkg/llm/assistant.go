package llm

import (
	"context"
	"fmt"
	"strings"
)

// Assistant implementa Classifier e Synthesizer sobre um Backend
type Assistant struct {
	backend Backend
}

// NewAssistant cria uma nova instância de Assistant
func NewAssistant(backend Backend) *Assistant {
	return &Assistant{backend: backend}
}

// Model retorna o nome do backend em uso
func (a *Assistant) Model() string {
	return a.backend.Name()
}

// Classify implementa Classifier
func (a *Assistant) Classify(ctx context.Context, text string) (Category, error) {
	raw, err := a.backend.Complete(ctx, Request{
		Prompt:      fmt.Sprintf(classifyPrompt, escapeQuotes(text)),
		MaxTokens:   60,
		Temperature: 0.1,
	})
	if err != nil {
		return "", err
	}

	c, ok := parseClassification(raw)
	if !ok {
		return "", fmt.Errorf("%w: unparseable classification %q", ErrUnavailable, raw)
	}
	return c, nil
}

// Synthesize implementa Synthesizer
func (a *Assistant) Synthesize(ctx context.Context, question, snapshot string) (string, error) {
	answer, err := a.backend.Complete(ctx, Request{
		System:      fmt.Sprintf(synthesizeSystem, snapshot),
		Prompt:      question,
		MaxTokens:   300,
		Temperature: 0.7,
	})
	if err != nil {
		return "", err
	}

	if degenerate(answer) {
		return "", fmt.Errorf("%w: degenerate answer", ErrUnavailable)
	}
	return strings.TrimSpace(answer), nil
}
