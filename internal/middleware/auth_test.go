package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hp_quiz_backend/internal/config"
	"hp_quiz_backend/internal/model"
	"hp_quiz_backend/internal/util"
	"hp_quiz_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "middleware-test-secret-0123456789"

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = testSecret
	cfg.JWT.ExpireTime = time.Hour
	return cfg
}

func tokenFor(t *testing.T, role model.UserRole) string {
	t.Helper()
	user := &model.User{Role: role, Email: "t@example.com"}
	user.ID = 7
	token, err := util.GenerateJWT(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
}

func newRouter(cfg *config.Config, roles ...model.UserRole) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger.Log = zap.NewNop()

	r := gin.New()
	handlers := []gin.HandlerFunc{AuthMiddleware(cfg)}
	if len(roles) > 0 {
		handlers = append(handlers, RoleMiddleware(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims := util.GetUserFromContext(c)
		c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
	})
	r.GET("/secure", handlers...)
	return r
}

func get(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	r := newRouter(testConfig())

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "garbage").Code)
	assert.Equal(t, http.StatusOK, get(r, tokenFor(t, model.RoleUser)).Code)
}

func TestAuthMiddlewareQueryToken(t *testing.T) {
	r := newRouter(testConfig())

	req := httptest.NewRequest(http.MethodGet, "/secure?token="+tokenFor(t, model.RoleUser), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoleMiddleware(t *testing.T) {
	r := newRouter(testConfig(), model.RoleEditor)

	assert.Equal(t, http.StatusForbidden, get(r, tokenFor(t, model.RoleUser)).Code)
	assert.Equal(t, http.StatusOK, get(r, tokenFor(t, model.RoleEditor)).Code)
	// Admin passes everywhere.
	assert.Equal(t, http.StatusOK, get(r, tokenFor(t, model.RoleAdmin)).Code)
}

func TestTryAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	r := gin.New()
	r.GET("/open", TryAuthMiddleware(cfg), func(c *gin.Context) {
		if claims := util.GetUserFromContext(c); claims != nil {
			c.JSON(http.StatusOK, gin.H{"user_id": claims.UserID})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": 0})
	})

	anon := httptest.NewRequest(http.MethodGet, "/open", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, anon)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":0`)

	authed := httptest.NewRequest(http.MethodGet, "/open", nil)
	authed.Header.Set("Authorization", "Bearer "+tokenFor(t, model.RoleUser))
	w = httptest.NewRecorder()
	r.ServeHTTP(w, authed)
	assert.Contains(t, w.Body.String(), `"user_id":7`)
}
