package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wholesale/backend/internal/infrastructure/auth"
	"github.com/wholesale/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newAuthService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: time.Minute,
		Issuer:                "wholesale-test",
	})
}

func newProtectedEngine(svc *auth.JWTService, extra ...gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(RequestID())
	engine.Use(JWTAuth(JWTAuthConfig{Service: svc, SkipPaths: []string{"/open"}}))
	handlers := append(extra, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":     GetUserID(c),
			"retailer_id": GetRetailerID(c),
		})
	})
	engine.GET("/protected", handlers...)
	engine.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	return engine
}

func get(engine *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := newAuthService()
	retailerID := uuid.New().String()
	token, err := svc.GenerateToken("user-1", auth.RoleRetailer, retailerID)
	require.NoError(t, err)

	w := get(newProtectedEngine(svc), "/protected", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), retailerID)
}

func TestJWTAuth_MissingToken(t *testing.T) {
	w := get(newProtectedEngine(newAuthService()), "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	expired := auth.NewJWTService(config.JWTConfig{
		Secret:                "test-secret-at-least-32-characters!!",
		AccessTokenExpiration: -time.Minute,
		Issuer:                "wholesale-test",
	})
	token, err := expired.GenerateToken("user-1", auth.RoleAdmin, "")
	require.NoError(t, err)

	w := get(newProtectedEngine(newAuthService()), "/protected", token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
}

func TestJWTAuth_SkipPath(t *testing.T) {
	w := get(newProtectedEngine(newAuthService()), "/open", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	svc := newAuthService()
	engine := newProtectedEngine(svc, RequireAdmin())

	retailerToken, err := svc.GenerateToken("user-1", auth.RoleRetailer, uuid.New().String())
	require.NoError(t, err)
	w := get(engine, "/protected", retailerToken)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := svc.GenerateToken("admin-1", auth.RoleAdmin, "")
	require.NoError(t, err)
	w = get(engine, "/protected", adminToken)
	assert.Equal(t, http.StatusOK, w.Code)
}
