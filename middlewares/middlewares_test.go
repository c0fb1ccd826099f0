package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupAuthRouter(tokens *utils.TokenManager) *gin.Engine {
	r := gin.New()
	r.GET("/optional", OptionalAuth(tokens), func(c *gin.Context) {
		id, ok := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"id": id, "authenticated": ok})
	})
	staff := r.Group("/admin", AuthMiddleware(tokens), RequireStaff())
	staff.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	return r
}

func doRequest(r http.Handler, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware_StaffOnly(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := setupAuthRouter(tokens)

	staffToken, err := tokens.GenerateToken(1, "staff")
	require.NoError(t, err)
	customerToken, err := tokens.GenerateToken(2, "customer")
	require.NoError(t, err)
	foreign, err := utils.NewTokenManager("other-secret", time.Hour).GenerateToken(1, "admin")
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, doRequest(r, http.MethodGet, "/admin/ping", staffToken).Code)
	assert.Equal(t, http.StatusForbidden, doRequest(r, http.MethodGet, "/admin/ping", customerToken).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/admin/ping", "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, http.MethodGet, "/admin/ping", foreign).Code)
}

func TestOptionalAuth(t *testing.T) {
	tokens := utils.NewTokenManager("secret", time.Hour)
	r := setupAuthRouter(tokens)
	token, err := tokens.GenerateToken(7, "customer")
	require.NoError(t, err)

	w := doRequest(r, http.MethodGet, "/optional", token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"authenticated":true}`, w.Body.String())

	w = doRequest(r, http.MethodGet, "/optional", "garbage")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":0,"authenticated":false}`, w.Body.String())
}

func TestRateLimiter_PerIP(t *testing.T) {
	r := gin.New()
	r.Use(NewRateLimiter(0.001, 2).RateLimit())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	call := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = ip + ":1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2"))
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddlewares([]string{"https://olive.example"}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "https://olive.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://olive.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
