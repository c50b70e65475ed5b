// Package domain reúne os erros compartilhados pelas entidades do NexPOS.
package domain

import "errors"

// Erros de domínio. Os repositórios embrulham estes valores com fmt.Errorf("...: %w")
// para que o motor de diálogo os classifique com errors.Is.
var (
	ErrNotFound     = errors.New("registro não encontrado")
	ErrConflict     = errors.New("registro já existe")
	ErrInvalidField = errors.New("campo inválido")
)
