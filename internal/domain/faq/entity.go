package faq

import (
	"context"
	"strings"
)

// Entry é um tópico da base de conhecimento
type Entry struct {
	Key      string `json:"key" yaml:"key"`
	Title    string `json:"title" yaml:"title"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
}

// Matches informa se algum termo relevante da consulta aparece no tópico
func (e *Entry) Matches(query string) bool {
	haystack := strings.ToLower(e.Key + " " + e.Question + " " + e.Answer)
	for _, w := range Terms(query) {
		if strings.Contains(haystack, w) {
			return true
		}
	}
	return false
}

var stopWords = map[string]struct{}{
	"how": {}, "the": {}, "and": {}, "what": {}, "can": {}, "does": {}, "for": {},
	"you": {}, "are": {}, "with": {}, "this": {}, "that": {}, "why": {}, "when": {},
}

// Terms extrai as palavras relevantes de uma consulta
func Terms(query string) []string {
	fields := strings.FieldsFunc(strings.ToLower(query), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	out := fields[:0]
	for _, f := range fields {
		if len(f) < 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Repository define a interface de leitura da base de conhecimento
type Repository interface {
	// List lista os tópicos na ordem de cadastro
	List(ctx context.Context) ([]*Entry, error)

	// FindByKey busca um tópico pela chave
	FindByKey(ctx context.Context, key string) (*Entry, error)

	// Search retorna até limit tópicos que citam algum termo da consulta
	Search(ctx context.Context, query string, limit int) ([]*Entry, error)
}
