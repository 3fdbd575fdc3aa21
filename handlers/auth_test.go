package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type recordingRevoker struct {
	revoked []string
}

func (r *recordingRevoker) Revoke(ctx context.Context, token string) error {
	r.revoked = append(r.revoked, token)
	return nil
}

func (r *recordingRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	for _, t := range r.revoked {
		if t == token {
			return true, nil
		}
	}
	return false, nil
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	revoker := &recordingRevoker{}
	h := NewAuthHandler(nil, revoker, zap.NewNop())

	r := gin.New()
	r.POST("/api/auth/logout", h.Logout)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer some.jwt.token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"some.jwt.token"}, revoker.revoked)
}

func TestLogoutRequiresBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	revoker := &recordingRevoker{}
	h := NewAuthHandler(nil, revoker, zap.NewNop())

	r := gin.New()
	r.POST("/api/auth/logout", h.Logout)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, revoker.revoked)
}
