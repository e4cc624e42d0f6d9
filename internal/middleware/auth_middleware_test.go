package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dj_store_backend/internal/middleware"
	"dj_store_backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(tokens *utils.TokenManager) (*gin.Engine, *int64) {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	var seenClientID int64
	engine.GET("/protected", middleware.AuthMiddleware(tokens), func(c *gin.Context) {
		if id, ok := c.Get("clientID"); ok {
			seenClientID = id.(int64)
		}
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return engine, &seenClientID
}

func TestAuthMiddlewareMissingHeader(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour, "dj-store-test")
	engine, _ := newProtectedRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareMalformedHeader(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour, "dj-store-test")
	engine, _ := newProtectedRouter(tokens)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareBindsClientID(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour, "dj-store-test")
	engine, seenClientID := newProtectedRouter(tokens)

	token, err := tokens.GenerateAccessToken(42, utils.RoleClient)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, int64(42), *seenClientID)
}

func TestAuthMiddlewareRejectsForeignToken(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour, "dj-store-test")
	foreign := utils.NewTokenManager("other-secret", time.Hour, "dj-store-test")
	engine, _ := newProtectedRouter(tokens)

	token, err := foreign.GenerateAccessToken(42, utils.RoleClient)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}
