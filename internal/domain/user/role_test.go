package user

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	for _, r := range Roles() {
		got, err := ParseRole(r.String())
		require.NoError(t, err)
		assert.Equal(t, r, got)
	}

	got, err := ParseRole("  Super_Admin ")
	require.NoError(t, err)
	assert.Equal(t, RoleSuperAdmin, got)

	_, err = ParseRole("root")
	assert.ErrorIs(t, err, ErrUnknownRole)
	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestRoleOrdering(t *testing.T) {
	assert.True(t, RoleSuperAdmin.AtLeast(RoleAdmin))
	assert.True(t, RoleAdmin.AtLeast(RoleAdmin))
	assert.False(t, RoleManager.AtLeast(RoleAdmin))
	assert.False(t, RoleViewer.AtLeast(RoleManager))
	assert.False(t, Role(42).AtLeast(RoleViewer))
	assert.False(t, RoleSuperAdmin.AtLeast(Role(-1)))
}

func TestRoleJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		Role Role `json:"role"`
	}{RoleManager})
	require.NoError(t, err)
	assert.JSONEq(t, `{"role":"manager"}`, string(b))

	var in struct {
		Role Role `json:"role"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"role":"admin"}`), &in))
	assert.Equal(t, RoleAdmin, in.Role)
	assert.Error(t, json.Unmarshal([]byte(`{"role":"owner"}`), &in))
}

func TestPassword(t *testing.T) {
	u := &User{Username: "admin_demo"}
	require.NoError(t, u.SetPassword("demo123"))
	assert.True(t, u.CheckPassword("demo123"))
	assert.False(t, u.CheckPassword("wrong"))
}
