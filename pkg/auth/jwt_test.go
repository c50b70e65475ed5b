package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugohenrick/nexpos-assistant/internal/domain/user"
)

func testUser() *user.User {
	return &user.User{
		ID:       "U003",
		TenantID: "tenant-001",
		Username: "admin_demo",
		Name:     "Asha Admin",
		Role:     user.RoleAdmin,
	}
}

func TestNewJWTServiceRequiresSecret(t *testing.T) {
	_, err := NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTKey)

	s, err := NewJWTService("secret", 0)
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, s.Expiration())
}

func TestGenerateAndAuthenticate(t *testing.T) {
	s, err := NewJWTService("secret", time.Hour)
	require.NoError(t, err)

	token, err := s.GenerateToken(testUser())
	require.NoError(t, err)

	id, err := s.Authenticate(token)
	require.NoError(t, err)
	assert.Equal(t, Identity{
		UserID:   "U003",
		TenantID: "tenant-001",
		Username: "admin_demo",
		Name:     "Asha Admin",
		Role:     user.RoleAdmin,
	}, id)
}

func TestExpiredToken(t *testing.T) {
	s, err := NewJWTService("secret", time.Minute)
	require.NoError(t, err)

	issued := time.Now().Add(-time.Hour)
	s.now = func() time.Time { return issued }
	token, err := s.GenerateToken(testUser())
	require.NoError(t, err)

	s.now = time.Now
	_, err = s.Authenticate(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Equal(t, "auth failed: expired", FailureMessage(err))
}

func TestInvalidToken(t *testing.T) {
	s, _ := NewJWTService("secret", time.Hour)
	other, _ := NewJWTService("other", time.Hour)

	token, err := other.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = s.Authenticate(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Equal(t, "auth failed: invalid", FailureMessage(err))

	_, err = s.Authenticate("garbage")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken(t *testing.T) {
	s, _ := NewJWTService("secret", time.Hour)
	token, _ := s.GenerateToken(testUser())

	refreshed, err := s.RefreshToken(token)
	require.NoError(t, err)

	id, err := s.Authenticate(refreshed)
	require.NoError(t, err)
	assert.Equal(t, "U003", id.UserID)
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	s, _ := NewJWTService("secret", time.Hour)

	r := gin.New()
	r.GET("/me", JWTAuthMiddleware(s), func(c *gin.Context) {
		id, _ := GetCurrentUser(c)
		c.String(http.StatusOK, id.Username)
	})
	r.GET("/tenants", JWTAuthMiddleware(s), RoleAuthMiddleware(user.RoleSuperAdmin), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	token, _ := s.GenerateToken(testUser())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "admin_demo", w.Body.String())

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "auth failed: invalid")

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/tenants", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
