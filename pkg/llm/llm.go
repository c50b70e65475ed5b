// Package llm contém os colaboradores de modelo de linguagem: o classificador de
// intenção e o sintetizador de respostas, com os backends ollama, anthropic e gemini.
package llm

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable cobre qualquer falha do modelo: conexão recusada, timeout,
// status diferente de 200, JSON malformado ou texto vazio/degenerado.
var ErrUnavailable = errors.New("model unavailable")

// Category é a intenção grosseira devolvida pelo classificador
type Category string

// Vocabulário fechado do classificador
const (
	CategoryDevice        Category = "DEVICE"
	CategoryAddDevice     Category = "ADD_DEVICE"
	CategoryDisableDevice Category = "DISABLE_DEVICE"
	CategoryMerchant      Category = "MERCHANT"
	CategoryAddMerchant   Category = "ADD_MERCHANT"
	CategoryReport        Category = "REPORT"
	CategoryAlert         Category = "ALERT"
	CategoryHelp          Category = "HELP"
	CategoryGeneral       Category = "GENERAL"
)

// Categories retorna o vocabulário na ordem apresentada ao modelo
func Categories() []Category {
	return []Category{
		CategoryDevice, CategoryAddDevice, CategoryDisableDevice,
		CategoryMerchant, CategoryAddMerchant, CategoryReport,
		CategoryAlert, CategoryHelp, CategoryGeneral,
	}
}

// ParseCategory normaliza a categoria. Valores fora do vocabulário viram GENERAL.
func ParseCategory(s string) Category {
	s = strings.ToUpper(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "_")
	for _, c := range Categories() {
		if Category(s) == c {
			return c
		}
	}
	return CategoryGeneral
}

// Classifier classifica texto livre em uma categoria
type Classifier interface {
	Classify(ctx context.Context, text string) (Category, error)
}

// Synthesizer responde a uma pergunta usando um resumo dos dados
type Synthesizer interface {
	Synthesize(ctx context.Context, question, snapshot string) (string, error)
}

// Request é uma chamada de completação
type Request struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Backend é um provedor de completação de texto
type Backend interface {
	Complete(ctx context.Context, req Request) (string, error)
	Name() string
}
