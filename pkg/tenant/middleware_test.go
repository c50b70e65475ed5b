package tenant

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubValidator map[string]bool

func (s stubValidator) ValidateTenant(_ context.Context, id string) (bool, error) {
	if id == "boom" {
		return false, errors.New("boom")
	}
	return s[id], nil
}

func TestTenantMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	v := stubValidator{"tenant-001": true, "tenant-003": false}

	cases := map[string]int{
		"":           http.StatusBadRequest,
		"tenant-001": http.StatusOK,
		"tenant-003": http.StatusForbidden,
		"boom":       http.StatusInternalServerError,
	}

	for id, want := range cases {
		r := gin.New()
		r.GET("/", func(c *gin.Context) {
			if id != "" {
				c.Set(GinKey, id)
			}
			c.Next()
		}, TenantMiddleware(v), func(c *gin.Context) { c.Status(http.StatusOK) })

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, want, w.Code, id)
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := SetTenantIDContext(context.Background(), "tenant-002")
	assert.Equal(t, "tenant-002", GetTenantIDFromContext(ctx))
	assert.Empty(t, GetTenantIDFromContext(context.Background()))
}
