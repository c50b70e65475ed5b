// Package session guarda o estado de diálogo por sessão e serializa o
// processamento de eventos de uma mesma sessão.
package session

import (
	"context"
	"sync"
	"time"
)

// DefaultTTL é o tempo padrão de inatividade antes de uma sessão ser removida
const DefaultTTL = 24 * time.Hour

type entry struct {
	mu       sync.Mutex
	state    State
	lastSeen time.Time
	refs     int
}

// Store mantém as sessões em memória
type Store struct {
	mu       sync.Mutex
	sessions map[string]*entry
	ttl      time.Duration
	now      func() time.Time
}

// NewStore cria o store. ttl <= 0 desliga a expiração.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Lease dá acesso exclusivo a uma sessão até Release
type Lease struct {
	store *Store
	id    string
	e     *entry
	done  bool
}

// Acquire bloqueia até obter a sessão, criando-a em Main se não existir
func (s *Store) Acquire(id string) *Lease {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if !ok {
		e = &entry{lastSeen: s.now()}
		s.sessions[id] = e
	}
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()
	return &Lease{store: s, id: id, e: e}
}

// ID retorna o identificador da sessão
func (l *Lease) ID() string { return l.id }

// State retorna o estado atual
func (l *Lease) State() State { return l.e.state }

// Set substitui o estado
func (l *Lease) Set(st State) { l.e.state = st }

// Release libera a sessão e registra a atividade
func (l *Lease) Release() {
	if l.done {
		return
	}
	l.done = true

	l.store.mu.Lock()
	l.e.lastSeen = l.store.now()
	l.e.refs--
	l.store.mu.Unlock()

	l.e.mu.Unlock()
}

// Get retorna o estado de uma sessão sem bloqueá-la
func (s *Store) Get(id string) (State, bool) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return State{}, false
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state, true
}

// Delete remove a sessão. Uma sessão em uso é apenas reiniciada para Main.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	e, ok := s.sessions[id]
	if ok && e.refs == 0 {
		delete(s.sessions, id)
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	if ok {
		e.mu.Lock()
		e.state = State{}
		e.mu.Unlock()
	}
}

// Len retorna o número de sessões
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep remove sessões ociosas há mais que o TTL e retorna quantas saíram
func (s *Store) Sweep() int {
	if s.ttl <= 0 {
		return 0
	}

	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.sessions {
		if e.refs == 0 && e.lastSeen.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// Run executa Sweep periodicamente até o contexto ser cancelado
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	if s.ttl <= 0 {
		<-ctx.Done()
		return nil
	}
	if interval <= 0 {
		interval = s.ttl / 4
		if interval > time.Hour {
			interval = time.Hour
		}
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
