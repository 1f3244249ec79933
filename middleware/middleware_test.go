package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"oasis/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("middleware-secret")

func init() {
	gin.SetMode(gin.TestMode)
}

func adminRouter() *gin.Engine {
	r := gin.New()
	r.GET("/admin", JWTAuthAdminMiddleware(secret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(adminKey))
	})
	r.GET("/public", OptionalAdminMiddleware(secret), func(c *gin.Context) {
		if IsAdmin(c) {
			c.String(http.StatusOK, "admin")
			return
		}
		c.String(http.StatusOK, "guest")
	})
	return r
}

func get(r http.Handler, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAdminMiddleware(t *testing.T) {
	r := adminRouter()
	good, err := utils.GenerateToken(secret, "owner@example.com", "admin", time.Hour)
	require.NoError(t, err)
	wrongRole, err := utils.GenerateToken(secret, "x@example.com", "customer", time.Hour)
	require.NoError(t, err)
	otherKey, err := utils.GenerateToken([]byte("other"), "owner@example.com", "admin", time.Hour)
	require.NoError(t, err)
	expired, err := utils.GenerateToken(secret, "owner@example.com", "admin", -time.Minute)
	require.NoError(t, err)

	w := get(r, "/admin", good)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "owner@example.com", w.Body.String())

	for _, tok := range []string{"", wrongRole, otherKey, expired, "garbage"} {
		w := get(r, "/admin", tok)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), `"success":false`)
	}

	assert.Equal(t, "admin", get(r, "/public", good).Body.String())
	assert.Equal(t, "guest", get(r, "/public", expired).Body.String())
	assert.Equal(t, "guest", get(r, "/public", "").Body.String())
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.Use(RateLimitMiddleware(3))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := []int{}
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{200, 200, 200, 429}, codes)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.1:5555"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetClientIP(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded first", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.2:80", "203.0.113.7"},
		{"forwarded skips junk", map[string]string{"X-Forwarded-For": "unknown, 198.51.100.4"}, "10.0.0.2:80", "198.51.100.4"},
		{"real ip", map[string]string{"X-Real-IP": " 192.0.2.9 "}, "10.0.0.2:80", "192.0.2.9"},
		{"remote addr", nil, "10.0.0.2:80", "10.0.0.2"},
		{"remote without port", nil, "10.0.0.3", "10.0.0.3"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			c.Request.RemoteAddr = tc.remote
			for k, v := range tc.headers {
				c.Request.Header.Set(k, v)
			}
			assert.Equal(t, tc.want, getClientIP(c))
		})
	}
}
