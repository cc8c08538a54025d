package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"marketplace-backend/pkg/jwt"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Recovery())
	r.GET("/", append(handlers, func(c *gin.Context) {
		id, _ := GetUserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id.String(), "role": GetRole(c)})
	})...)
	return r
}

func TestAuthMiddleware(t *testing.T) {
	tokens := jwt.NewManager("test-secret")
	userID := uuid.New()
	access, err := tokens.GenerateAccessToken(userID.String(), "seller@example.com", "seller")
	require.NoError(t, err)
	refresh, err := tokens.GenerateRefreshToken(userID.String())
	require.NoError(t, err)
	badUser, err := tokens.GenerateAccessToken("not-a-uuid", "x@example.com", "seller")
	require.NoError(t, err)
	otherSecret, err := jwt.NewManager("other").GenerateAccessToken(userID.String(), "x@example.com", "admin")
	require.NoError(t, err)

	r := newRouter(AuthMiddleware(tokens))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"valid", "Bearer " + access, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Token " + access, http.StatusUnauthorized},
		{"refresh token", "Bearer " + refresh, http.StatusUnauthorized},
		{"bad user id", "Bearer " + badUser, http.StatusUnauthorized},
		{"wrong secret", "Bearer " + otherSecret, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
			if tt.want == http.StatusOK {
				assert.Contains(t, w.Body.String(), userID.String())
				assert.Contains(t, w.Body.String(), `"role":"seller"`)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	tokens := jwt.NewManager("test-secret")
	seller, _ := tokens.GenerateAccessToken(uuid.NewString(), "s@example.com", "seller")
	admin, _ := tokens.GenerateAccessToken(uuid.NewString(), "a@example.com", "admin")
	buyer, _ := tokens.GenerateAccessToken(uuid.NewString(), "b@example.com", "buyer")

	r := newRouter(AuthMiddleware(tokens), RequireRoles("seller", "admin"))
	adminOnly := newRouter(AuthMiddleware(tokens), AdminMiddleware())

	do := func(r *gin.Engine, token string) int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, do(r, seller))
	assert.Equal(t, http.StatusOK, do(r, admin))
	assert.Equal(t, http.StatusForbidden, do(r, buyer))
	assert.Equal(t, http.StatusForbidden, do(adminOnly, seller))
	assert.Equal(t, http.StatusOK, do(adminOnly, admin))
}

func TestRequestID(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
}

func rateLimitedGet(r *gin.Engine, remote, forwardedFor string) int {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remote
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimit(t *testing.T) {
	r := newRouter(RateLimit(1, 2))
	require.NoError(t, r.SetTrustedProxies(nil))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, rateLimitedGet(r, "203.0.113.9:1000", ""))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)

	// another client has its own bucket
	assert.Equal(t, http.StatusOK, rateLimitedGet(r, "203.0.113.10:1000", ""))
}

func TestRateLimit_IgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := newRouter(RateLimit(1, 2))
	require.NoError(t, r.SetTrustedProxies(nil))

	codes := make([]int, 0, 3)
	for _, fake := range []string{"198.51.100.1", "198.51.100.2", "198.51.100.3"} {
		codes = append(codes, rateLimitedGet(r, "203.0.113.9:1000", fake))
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestRateLimit_TrustedProxyForwardsClientIP(t *testing.T) {
	r := newRouter(RateLimit(1, 1))
	require.NoError(t, r.SetTrustedProxies([]string{"10.0.0.0/8"}))

	assert.Equal(t, http.StatusOK, rateLimitedGet(r, "10.0.0.2:1000", "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, rateLimitedGet(r, "10.0.0.2:1000", "198.51.100.1"))
	// client khác sau cùng proxy có bucket riêng
	assert.Equal(t, http.StatusOK, rateLimitedGet(r, "10.0.0.2:1000", "198.51.100.2"))
}

func TestIPLimiter_SweepsAtMostOncePerTTL(t *testing.T) {
	l := newIPLimiter(1, 1, time.Minute)
	t0 := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

	l.get("a", t0)
	l.get("b", t0.Add(30*time.Second))
	assert.Equal(t, 2, l.size())

	// sweep: a idle > ttl bị xoá, b còn
	l.get("c", t0.Add(61*time.Second))
	assert.Equal(t, 2, l.size())

	// chưa đủ ttl kể từ lần sweep trước => không quét dù b đã idle
	l.get("d", t0.Add(100*time.Second))
	assert.Equal(t, 3, l.size())

	// sweep kế tiếp: b, c idle > ttl; còn d, e
	l.get("e", t0.Add(122*time.Second))
	assert.Equal(t, 2, l.size())
}

func TestRecovery(t *testing.T) {
	r := newRouter(func(c *gin.Context) { panic("boom") })
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
