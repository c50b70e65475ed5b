package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

// Provedores suportados
const (
	ProviderNone      = "none"
	ProviderOllama    = "ollama"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
)

// Config seleciona e configura o backend
type Config struct {
	Provider     string
	Model        string
	OllamaURL    string
	AnthropicKey string
	GeminiKey    string
	Timeout      time.Duration
	Retries      int
}

// New monta o Assistant do provedor configurado, protegido por um Guard.
// Retorna nil, nil quando o provedor é "none".
func New(ctx context.Context, cfg Config, log logger.Logger) (*Assistant, error) {
	var (
		backend Backend
		err     error
	)

	client := &http.Client{}

	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderNone:
		return nil, nil
	case ProviderOllama:
		backend = NewOllama(cfg.OllamaURL, cfg.Model, client)
	case ProviderAnthropic:
		backend, err = NewAnthropic(cfg.AnthropicKey, cfg.Model, client)
	case ProviderGemini:
		backend, err = NewGemini(ctx, cfg.GeminiKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	return NewAssistant(NewGuard(backend, cfg.Timeout, cfg.Retries, log)), nil
}
