package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campuscare/utils"
)

type memRevoker struct {
	revoked map[string]bool
}

func (r *memRevoker) Revoke(ctx context.Context, token string) error {
	if r.revoked == nil {
		r.revoked = map[string]bool{}
	}
	r.revoked[token] = true
	return nil
}

func (r *memRevoker) IsRevoked(ctx context.Context, token string) (bool, error) {
	return r.revoked[token], nil
}

func authTestRouter(optional bool, revoker *memRevoker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/whoami", JWTAuthUserMiddleware(optional, revoker), func(c *gin.Context) {
		userID, _ := c.Get("userID")
		c.JSON(http.StatusOK, gin.H{"userID": userID})
	})
	return r
}

func hitWhoami(t *testing.T, r *gin.Engine, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	r := authTestRouter(false, &memRevoker{})
	w := hitWhoami(t, r, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareAcceptsValidToken(t *testing.T) {
	token, err := utils.GenerateToken("u1", "jamie@uni.edu", false, time.Hour)
	require.NoError(t, err)

	r := authTestRouter(false, &memRevoker{})
	w := hitWhoami(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")
}

func TestAuthMiddlewareRejectsRevokedToken(t *testing.T) {
	token, err := utils.GenerateToken("u1", "jamie@uni.edu", false, time.Hour)
	require.NoError(t, err)

	revoker := &memRevoker{}
	require.NoError(t, revoker.Revoke(context.Background(), token))

	r := authTestRouter(false, revoker)
	w := hitWhoami(t, r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareOptionalPassesAnonymously(t *testing.T) {
	token, err := utils.GenerateToken("u1", "jamie@uni.edu", false, time.Hour)
	require.NoError(t, err)

	revoker := &memRevoker{}
	require.NoError(t, revoker.Revoke(context.Background(), token))

	r := authTestRouter(true, revoker)

	// No token: anonymous passthrough.
	w := hitWhoami(t, r, "")
	assert.Equal(t, http.StatusOK, w.Code)

	// Revoked token behaves like no token.
	w = hitWhoami(t, r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "null")
}
