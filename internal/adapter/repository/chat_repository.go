package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

// DefaultHistoryLimit é o número máximo de mensagens guardadas por usuário
const DefaultHistoryLimit = 200

// MemoryChatRepository implementa chat.Repository em memória, com limite por usuário
type MemoryChatRepository struct {
	mu      sync.RWMutex
	limit   int
	history map[string][]chat.Entry
}

// NewMemoryChatRepository cria o histórico. limit <= 0 usa DefaultHistoryLimit.
func NewMemoryChatRepository(limit int) *MemoryChatRepository {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	return &MemoryChatRepository{limit: limit, history: make(map[string][]chat.Entry)}
}

func historyKey(ctx context.Context, userID string) string {
	return tenant.GetTenantIDFromContext(ctx) + "/" + userID
}

// SaveMessage implementa chat.Repository.SaveMessage
func (r *MemoryChatRepository) SaveMessage(ctx context.Context, entry *chat.Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	key := historyKey(ctx, entry.UserID)
	r.mu.Lock()
	defer r.mu.Unlock()

	h := append(r.history[key], *entry)
	if len(h) > r.limit {
		h = append([]chat.Entry(nil), h[len(h)-r.limit:]...)
	}
	r.history[key] = h
	return nil
}

// GetUserHistory implementa chat.Repository.GetUserHistory
func (r *MemoryChatRepository) GetUserHistory(ctx context.Context, userID string, limit, offset int) ([]chat.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h := r.history[historyKey(ctx, userID)]
	var out []chat.Entry
	for i := len(h) - 1 - offset; i >= 0; i-- {
		out = append(out, h[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

// DeleteUserHistory implementa chat.Repository.DeleteUserHistory
func (r *MemoryChatRepository) DeleteUserHistory(ctx context.Context, userID string) error {
	r.mu.Lock()
	delete(r.history, historyKey(ctx, userID))
	r.mu.Unlock()
	return nil
}

// CountUserMessages implementa chat.Repository.CountUserMessages
func (r *MemoryChatRepository) CountUserMessages(ctx context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.history[historyKey(ctx, userID)]), nil
}
