package controller

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
	"github.com/hugohenrick/nexpos-assistant/internal/session"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
	"github.com/hugohenrick/nexpos-assistant/pkg/logger"
	pkgtenant "github.com/hugohenrick/nexpos-assistant/pkg/tenant"
)

const (
	wsReadLimit    = 64 << 10
	wsWriteTimeout = 10 * time.Second
)

// anonymous é usado para o menu de boas-vindas, antes do primeiro token
var anonymous = auth.Identity{Role: user.RoleViewer}

// WebSocketController mantém conversas pelo websocket /ws/chat
type WebSocketController struct {
	conv       *conversation
	sessions   *session.Store
	jwtService *auth.JWTService
	validator  pkgtenant.TenantValidator
	upgrader   websocket.Upgrader
	base       context.Context
	log        logger.Logger
}

// NewWebSocketController cria uma nova instância de WebSocketController.
// As conexões abertas são fechadas quando base for cancelado.
func NewWebSocketController(
	base context.Context,
	engine *dialogue.Engine,
	sessions *session.Store,
	chatRepository chat.Repository,
	jwtService *auth.JWTService,
	validator pkgtenant.TenantValidator,
	allowedOrigins []string,
	log logger.Logger,
) *WebSocketController {
	return &WebSocketController{
		conv:       &conversation{engine: engine, history: chatRepository, log: log},
		sessions:   sessions,
		jwtService: jwtService,
		validator:  validator,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		base: base,
		log:  log,
	}
}

func originChecker(allowed []string) func(*http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}

// Chat atende uma conexão websocket
// @Summary Conversa em tempo real
// @Description Cada envelope JSON deve trazer auth_token. Quadros que não são JSON são tratados como texto. Tenants suspensos recebem erro 403.
// @Tags chat
// @Router /ws/chat [get]
func (c *WebSocketController) Chat(ctx *gin.Context) {
	conn, err := c.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		c.log.Warn("websocket upgrade failed", "error", err, "ip", ctx.ClientIP())
		return
	}
	defer conn.Close()
	stop := context.AfterFunc(c.base, func() { conn.Close() })
	defer stop()

	conn.SetReadLimit(wsReadLimit)
	connID := uuid.New().String()
	keys := map[string]struct{}{}
	defer func() {
		for k := range keys {
			c.sessions.Delete(k)
		}
	}()

	c.log.Debug("websocket connected", "conn_id", connID, "ip", ctx.ClientIP())

	keys[sessionKey(anonymous.UserID, connID)] = struct{}{}
	welcome := c.conv.turn(c.base, anonymous, connID, dialogue.Event{Kind: dialogue.EventEmpty})
	if err := c.send(conn, dto.ToOutboundList(welcome)...); err != nil {
		return
	}

	var lastToken string
	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) && !errors.Is(err, net.ErrClosed) {
				c.log.Debug("websocket read ended", "conn_id", connID, "error", err)
			}
			return
		}

		env := dto.ParseEnvelope(raw)
		token := env.Credential()
		if token == "" {
			token = lastToken
		}

		id, err := c.jwtService.Authenticate(token)
		if err != nil {
			if err := c.send(conn, dto.OutboundMessage{
				Type:    chat.KindError,
				Code:    http.StatusUnauthorized,
				Message: auth.FailureMessage(err),
			}); err != nil {
				return
			}
			continue
		}
		lastToken = token

		if denied, ok := c.checkTenant(ctx.Request.Context(), id); !ok {
			if err := c.send(conn, denied); err != nil {
				return
			}
			continue
		}

		keys[sessionKey(id.UserID, connID)] = struct{}{}
		msgs := c.conv.turn(ctx.Request.Context(), id, connID, env.Event())
		if err := c.send(conn, dto.ToOutboundList(msgs)...); err != nil {
			return
		}
	}
}

// checkTenant aplica a mesma regra do TenantMiddleware das rotas REST
func (c *WebSocketController) checkTenant(ctx context.Context, id auth.Identity) (dto.OutboundMessage, bool) {
	if id.TenantID == "" {
		return dto.OutboundMessage{Type: chat.KindError, Code: http.StatusBadRequest, Message: pkgtenant.ErrTenantNotSpecified.Error()}, false
	}
	valid, err := c.validator.ValidateTenant(ctx, id.TenantID)
	if err != nil {
		c.log.Error("tenant validation failed", "tenant_id", id.TenantID, "error", err)
		return dto.OutboundMessage{Type: chat.KindError, Code: http.StatusInternalServerError, Message: "tenant validation failed"}, false
	}
	if !valid {
		return dto.OutboundMessage{Type: chat.KindError, Code: http.StatusForbidden, Message: pkgtenant.ErrTenantNotActive.Error()}, false
	}
	return dto.OutboundMessage{}, true
}

// send escreve os quadros em ordem. Apenas o laço da conexão escreve.
func (c *WebSocketController) send(conn *websocket.Conn, frames ...dto.OutboundMessage) error {
	for _, f := range frames {
		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteJSON(f); err != nil {
			c.log.Debug("websocket write failed", "error", err)
			return err
		}
	}
	return nil
}
