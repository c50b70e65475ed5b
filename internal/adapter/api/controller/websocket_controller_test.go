package controller_test

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/hugohenrick/nexpos-assistant/internal/adapter/api/dto"
	"github.com/hugohenrick/nexpos-assistant/internal/domain"
	domaintenant "github.com/hugohenrick/nexpos-assistant/internal/domain/tenant"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
	"github.com/hugohenrick/nexpos-assistant/pkg/chat"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/chat"
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn) dto.OutboundMessage {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	var m dto.OutboundMessage
	require.NoError(t, conn.ReadJSON(&m))
	return m
}

func expiredToken(t *testing.T) string {
	t.Helper()
	past := time.Now().Add(-2 * time.Hour)
	claims := auth.JWTClaims{
		UserID:   "U001",
		TenantID: "tenant-001",
		Username: "viewer_demo",
		Role:     "viewer",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(past),
			ExpiresAt: jwt.NewNumericDate(past.Add(time.Hour)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return tok
}

func TestWebSocketChat(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()

	welcome := readFrame(t, conn)
	assert.Equal(t, chat.KindText, welcome.Type)
	assert.Contains(t, welcome.Content, "Welcome to NexPOS Assistant")
	assert.Equal(t, "viewer", welcome.Metadata.UserRole)

	t.Run("missing token", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]string{"text": "hi"}))
		f := readFrame(t, conn)
		assert.Equal(t, chat.KindError, f.Type)
		assert.Equal(t, 401, f.Code)
		assert.Equal(t, "auth failed: invalid", f.Message)
	})

	t.Run("expired token", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]string{"text": "hi", "auth_token": expiredToken(t)}))
		f := readFrame(t, conn)
		assert.Equal(t, chat.KindError, f.Type)
		assert.Equal(t, "auth failed: expired", f.Message)
	})

	admin := s.token(t, "admin_demo")

	t.Run("text turn", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]string{"text": "is pos-1001 working?", "auth_token": admin}))
		f := readFrame(t, conn)
		assert.Equal(t, chat.KindText, f.Type)
		assert.Contains(t, f.Content, "POS-1001 — Counter A")
		assert.Equal(t, "admin", f.Metadata.UserRole)
	})

	t.Run("empty envelope gets the main menu", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]string{"auth_token": admin}))
		f := readFrame(t, conn)
		assert.Equal(t, chat.KindText, f.Type)
		assert.Contains(t, f.Content, "Welcome to NexPOS Assistant, Amit Kumar")
		assert.NotEmpty(t, f.Buttons)
	})

	t.Run("token is reused for later envelopes", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]string{"button_data": "add_device"}))
		f := readFrame(t, conn)
		assert.Equal(t, chat.KindForm, f.Type)
		assert.Equal(t, "add_device", f.FormID)
		assert.NotEmpty(t, f.Fields)
	})

	t.Run("legacy form envelope", func(t *testing.T) {
		require.NoError(t, conn.WriteJSON(map[string]interface{}{
			"token":     admin,
			"type":      "form_submit",
			"form_name": "add_device",
			"form_data": map[string]string{"device_id": "POS-7001", "merchant": "MER-002", "region": "Delhi"},
		}))
		f := readFrame(t, conn)
		assert.Equal(t, chat.KindText, f.Type)
		assert.NotEmpty(t, f.Metadata.OperationID)
		_, err := s.store.Devices.FindByID(context.Background(), "POS-7001")
		assert.NoError(t, err)
	})

	t.Run("plain text frame", func(t *testing.T) {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("menu")))
		f := readFrame(t, conn)
		assert.Contains(t, f.Content, "Welcome to NexPOS Assistant, Amit Kumar")
	})
}

func TestWebSocketRejectsSuspendedTenant(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	s := newServer(t)
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	readFrame(t, conn)

	ctx := context.Background()
	_, err := s.store.Tenants.Update(ctx, "tenant-001", domaintenant.Patch{Status: string(domaintenant.StatusSuspended)})
	require.NoError(t, err)

	admin := s.token(t, "admin_demo")
	require.NoError(t, conn.WriteJSON(map[string]interface{}{
		"auth_token": admin,
		"form_submit": map[string]interface{}{
			"form_id": "add_device",
			"fields":  map[string]string{"device_id": "POS-9002", "merchant_id": "MER-001", "region": "Mumbai"},
		},
	}))
	f := readFrame(t, conn)
	assert.Equal(t, chat.KindError, f.Type)
	assert.Equal(t, 403, f.Code)
	assert.Equal(t, "tenant is not active", f.Message)

	_, err = s.store.Devices.FindByID(ctx, "POS-9002")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = s.store.Tenants.Update(ctx, "tenant-001", domaintenant.Patch{Status: string(domaintenant.StatusActive)})
	require.NoError(t, err)

	require.NoError(t, conn.WriteJSON(map[string]string{"text": "menu"}))
	f = readFrame(t, conn)
	assert.Equal(t, chat.KindText, f.Type)
	assert.Contains(t, f.Content, "Welcome to NexPOS Assistant, Amit Kumar")
}

func TestWebSocketClosesOnShutdown(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := newServer(t, func(o *serverOptions) { o.base = ctx })
	srv := httptest.NewServer(s.router)
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	readFrame(t, conn)

	cancel()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.Error(t, err)
	assert.Eventually(t, func() bool { return s.sessions.Len() == 0 }, 5*time.Second, 10*time.Millisecond)
}
