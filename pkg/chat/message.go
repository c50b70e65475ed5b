package chat

import "time"

// Entry representa uma mensagem no histórico do chat
type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	SessionID string    `json:"session_id,omitempty"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// Papéis de uma entrada do histórico
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)
