package repository

import (
	"sync"
)

// memoryTable guarda linhas por chave preservando a ordem de inserção.
// Toda leitura devolve cópias, então quem chama pode alterar o resultado à vontade.
type memoryTable[T any] struct {
	mu   sync.RWMutex
	keys []string
	rows map[string]*T
}

func newMemoryTable[T any]() *memoryTable[T] {
	return &memoryTable[T]{rows: make(map[string]*T)}
}

func (t *memoryTable[T]) get(key string) (*T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[key]
	if !ok {
		return nil, false
	}
	c := *row
	return &c, true
}

func (t *memoryTable[T]) list(match func(*T) bool) []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]*T, 0, len(t.keys))
	for _, k := range t.keys {
		row := t.rows[k]
		if match != nil && !match(row) {
			continue
		}
		c := *row
		out = append(out, &c)
	}
	return out
}

func (t *memoryTable[T]) len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.keys)
}

// insert falha (false) se a chave já existir
func (t *memoryTable[T]) insert(key string, row *T) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[key]; exists {
		return false
	}
	c := *row
	t.rows[key] = &c
	t.keys = append(t.keys, key)
	return true
}

func (t *memoryTable[T]) put(key string, row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.rows[key]; !exists {
		t.keys = append(t.keys, key)
	}
	c := *row
	t.rows[key] = &c
}

// update aplica fn sobre uma cópia e só grava se fn não falhar.
// Retorna found=false quando a chave não existe.
func (t *memoryTable[T]) update(key string, fn func(*T) error) (row *T, found bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cur, ok := t.rows[key]
	if !ok {
		return nil, false, nil
	}
	c := *cur
	if err := fn(&c); err != nil {
		return nil, true, err
	}
	t.rows[key] = &c
	out := c
	return &out, true, nil
}

func (t *memoryTable[T]) remove(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[key]; !ok {
		return false
	}
	delete(t.rows, key)
	for i, k := range t.keys {
		if k == key {
			t.keys = append(t.keys[:i], t.keys[i+1:]...)
			break
		}
	}
	return true
}
