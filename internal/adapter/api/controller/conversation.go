package controller

import (
	"context"
	"time"

	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
	"github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

// conversation liga os transportes ao motor de diálogo e grava o histórico
type conversation struct {
	engine  *dialogue.Engine
	history chat.Repository
	log     logger.Logger
}

// sessionKey separa as sessões por usuário, impedindo que um cliente
// continue a conversa de outro informando o mesmo session_id
func sessionKey(userID, sessionID string) string {
	return userID + "/" + sessionID
}

func callerOf(id auth.Identity) dialogue.Caller {
	return dialogue.Caller{
		UserID:   id.UserID,
		TenantID: id.TenantID,
		Name:     id.Name,
		Role:     id.Role,
	}
}

// turn processa um evento e registra entrada e respostas no histórico
func (c *conversation) turn(ctx context.Context, id auth.Identity, sessionID string, ev dialogue.Event) []chat.Message {
	msgs := c.engine.Process(ctx, sessionKey(id.UserID, sessionID), callerOf(id), ev)

	if c.history == nil || id.UserID == "" {
		return msgs
	}

	ctx = tenant.SetTenantIDContext(ctx, id.TenantID)
	now := time.Now().UTC()
	if input := describeEvent(ev); input != "" {
		c.save(ctx, &chat.Entry{UserID: id.UserID, SessionID: sessionID, Role: chat.RoleUser, Content: input, Timestamp: now})
	}
	for _, m := range msgs {
		if !chat.IsPrimary(m) {
			continue
		}
		c.save(ctx, &chat.Entry{UserID: id.UserID, SessionID: sessionID, Role: chat.RoleAssistant, Content: chat.Summary(m), Timestamp: now})
	}
	return msgs
}

func (c *conversation) save(ctx context.Context, entry *chat.Entry) {
	if err := c.history.SaveMessage(ctx, entry); err != nil {
		c.log.Warn("failed to save chat history", "user_id", entry.UserID, "error", err)
	}
}

func describeEvent(ev dialogue.Event) string {
	switch ev.Kind {
	case dialogue.EventText:
		return ev.Text
	case dialogue.EventButton:
		return "[button] " + ev.Button
	case dialogue.EventFormSubmit:
		return "[form] " + ev.Form.FormID
	}
	return ""
}
