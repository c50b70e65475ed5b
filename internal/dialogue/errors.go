package dialogue

import (
	"errors"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	"github.com/hugohenrick/nexpos-assistant/pkg/llm"
)

// Falhas tratadas dentro de Process. Nenhuma chega ao transporte.
var (
	ErrNotFound     = domain.ErrNotFound
	ErrConflict     = domain.ErrConflict
	ErrUnavailable  = llm.ErrUnavailable
	ErrAccessDenied = errors.New("access denied")
	ErrValidation   = errors.New("validation failed")
	ErrUnknown      = errors.New("internal error")
)

// failureKind nomeia a falha para os logs
func failureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrAccessDenied):
		return "access_denied"
	case errors.Is(err, ErrUnavailable):
		return "collaborator_unavailable"
	case errors.Is(err, ErrValidation), errors.Is(err, domain.ErrInvalidField):
		return "validation"
	}
	return "unknown"
}
