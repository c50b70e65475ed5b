package tenant

import "errors"

// Erros comuns relacionados a operações de tenant
var (
	// ErrTenantNotSpecified ocorre quando um ID de tenant não é fornecido
	ErrTenantNotSpecified = errors.New("tenant not specified")

	// ErrTenantNotActive ocorre quando um tenant não existe ou está suspenso
	ErrTenantNotActive = errors.New("tenant is not active")
)
