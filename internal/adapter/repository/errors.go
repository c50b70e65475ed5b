package repository

import (
	"fmt"

	"github.com/hugohenrick/nexpos-assistant/internal/domain"
)

// Erros específicos do repositório. Todos embrulham os erros de domínio.
var (
	ErrDeviceNotFound     = fmt.Errorf("dispositivo não encontrado: %w", domain.ErrNotFound)
	ErrDeviceDuplicateKey = fmt.Errorf("dispositivo com mesmo ID já existe: %w", domain.ErrConflict)

	ErrMerchantNotFound     = fmt.Errorf("estabelecimento não encontrado: %w", domain.ErrNotFound)
	ErrMerchantDuplicateKey = fmt.Errorf("estabelecimento com mesmo ID já existe: %w", domain.ErrConflict)

	ErrAlertNotFound     = fmt.Errorf("alerta não encontrado: %w", domain.ErrNotFound)
	ErrAlertDuplicateKey = fmt.Errorf("alerta com mesmo ID já existe: %w", domain.ErrConflict)

	ErrRegionNotFound = fmt.Errorf("região sem dados: %w", domain.ErrNotFound)
	ErrFAQNotFound    = fmt.Errorf("tópico não encontrado: %w", domain.ErrNotFound)
	ErrTenantNotFound = fmt.Errorf("tenant não encontrado: %w", domain.ErrNotFound)
	ErrUserNotFound   = fmt.Errorf("usuário não encontrado: %w", domain.ErrNotFound)
)
