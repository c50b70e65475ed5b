package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
)

// DefaultTimeout é o limite padrão de cada chamada ao modelo
const DefaultTimeout = 8 * time.Second

// Guard limita cada chamada ao backend com timeout e no máximo uma nova tentativa
type Guard struct {
	next    Backend
	timeout time.Duration
	retries int
	log     logger.Logger
}

// NewGuard cria um Guard. retries é limitado a {0, 1}.
func NewGuard(next Backend, timeout time.Duration, retries int, log logger.Logger) *Guard {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if retries < 0 {
		retries = 0
	}
	if retries > 1 {
		retries = 1
	}
	return &Guard{next: next, timeout: timeout, retries: retries, log: log}
}

// Name implementa Backend
func (g *Guard) Name() string {
	return g.next.Name()
}

// Complete implementa Backend. Toda falha é devolvida como ErrUnavailable.
func (g *Guard) Complete(ctx context.Context, req Request) (string, error) {
	var lastErr error

	for attempt := 0; attempt <= g.retries; attempt++ {
		callCtx, cancel := context.WithTimeout(ctx, g.timeout)
		text, err := g.next.Complete(callCtx, req)
		cancel()

		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err == nil {
			err = errors.New("empty response")
		}
		lastErr = err

		g.log.Warn("model call failed",
			"backend", g.next.Name(),
			"attempt", attempt+1,
			"error", err,
		)

		if ctx.Err() != nil {
			break
		}
	}

	if errors.Is(lastErr, ErrUnavailable) {
		return "", lastErr
	}
	return "", fmt.Errorf("%w: %v", ErrUnavailable, lastErr)
}
