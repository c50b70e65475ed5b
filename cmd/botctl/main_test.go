package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/nexpos-assistant/internal/dialogue"
	"github.com/hugohenrick/nexpos-assistant/pkg/auth"
)

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("MODEL_PROVIDER", "none")
	t.Setenv("REPOSITORY_DRIVER", "memory")

	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "botctl-secret")

	out, err := execute(t, "", "token", "admin_demo")
	require.NoError(t, err)

	svc, err := auth.NewJWTService("botctl-secret", 0)
	require.NoError(t, err)
	id, err := svc.Authenticate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "U003", id.UserID)
	assert.Equal(t, "admin", id.Role.String())

	_, err = execute(t, "", "token", "nobody")
	assert.Error(t, err)
}

func TestTokenCommandRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", "")
	_, err := execute(t, "", "token", "admin_demo")
	assert.ErrorIs(t, err, auth.ErrMissingJWTKey)
}

func TestCapabilitiesCommand(t *testing.T) {
	out, err := execute(t, "", "capabilities")
	require.NoError(t, err)
	assert.Contains(t, out, "Role: viewer")
	assert.Contains(t, out, "get_device_status")
	assert.NotContains(t, out, "disable_device")

	out, err = execute(t, "", "capabilities", "--role", "super_admin")
	require.NoError(t, err)
	assert.Contains(t, out, "disable_device")
	assert.Contains(t, out, "update_tenant")

	_, err = execute(t, "", "capabilities", "--role", "root")
	assert.Error(t, err)
}

func TestChatCommand(t *testing.T) {
	in := strings.Join([]string{
		"is pos-1001 working?",
		"/button disable_device",
		"/form",
		"/quit",
	}, "\n")

	out, err := execute(t, in, "chat", "--no-model")
	require.NoError(t, err)
	assert.Contains(t, out, "Welcome to NexPOS Assistant")
	assert.Contains(t, out, "POS-1001 — Counter A")
	assert.Contains(t, out, "Access denied")
	assert.Contains(t, out, "usage: /form")
}

func TestParseLine(t *testing.T) {
	ev, err := parseLine("/button device_detail:POS-1001")
	require.NoError(t, err)
	assert.Equal(t, dialogue.ButtonEvent("device_detail:POS-1001"), ev)

	ev, err = parseLine("/form add_device device_id=POS-9001 region=MUM")
	require.NoError(t, err)
	assert.Equal(t, dialogue.FormEvent("add_device", map[string]string{"device_id": "POS-9001", "region": "MUM"}), ev)

	_, err = parseLine("/form add_device device_id")
	assert.Error(t, err)

	ev, err = parseLine("show me alerts")
	require.NoError(t, err)
	assert.Equal(t, dialogue.TextEvent("show me alerts"), ev)
}
