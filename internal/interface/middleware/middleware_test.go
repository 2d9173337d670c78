package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	t.Run("generates id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(w.Body.String())
		require.NoError(t, err)
		assert.Equal(t, w.Body.String(), w.Header().Get(RequestIDHeader))
	})

	t.Run("reuses incoming id", func(t *testing.T) {
		id := uuid.NewString()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, id)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("replaces malformed id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "not a uuid")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.NotEqual(t, "not a uuid", w.Body.String())
	})
}

func TestRealIP(t *testing.T) {
	newEngine := func(t *testing.T, proxies []string) *gin.Engine {
		r := gin.New()
		require.NoError(t, TrustProxies(r, proxies))
		r.Use(RealIP())
		r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("real_ip")) })
		return r
	}
	trusted := newEngine(t, []string{"192.0.2.0/24"})
	untrusted := newEngine(t, nil)

	tests := []struct {
		name    string
		r       *gin.Engine
		headers map[string]string
		want    string
	}{
		{"cloudflare via proxy", trusted, map[string]string{"CF-Connecting-IP": "203.0.113.7", "X-Forwarded-For": "198.51.100.1"}, "203.0.113.7"},
		{"forwarded via proxy", trusted, map[string]string{"X-Forwarded-For": "198.51.100.1"}, "198.51.100.1"},
		{"forwarded skips trusted hops", trusted, map[string]string{"X-Forwarded-For": "6.6.6.6, 198.51.100.1, 192.0.2.8"}, "198.51.100.1"},
		{"x-real-ip via proxy", trusted, map[string]string{"X-Real-IP": "198.51.100.9"}, "198.51.100.9"},
		{"invalid header falls back", trusted, map[string]string{"CF-Connecting-IP": "bogus"}, "192.0.2.1"},
		{"cloudflare from client ignored", untrusted, map[string]string{"CF-Connecting-IP": "203.0.113.7"}, "192.0.2.1"},
		{"forwarded from client ignored", untrusted, map[string]string{"X-Forwarded-For": "127.0.0.1"}, "192.0.2.1"},
		{"x-real-ip from client ignored", untrusted, map[string]string{"X-Real-IP": "10.0.0.1"}, "192.0.2.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = "192.0.2.1:1234"
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()
			tt.r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Body.String())
		})
	}
}

func TestMaxBytesMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(MaxBytesMiddleware(16))
	r.POST("/", func(c *gin.Context) {
		buf := make([]byte, 64)
		n, _ := c.Request.Body.Read(buf)
		c.String(http.StatusOK, string(buf[:n]))
	})

	t.Run("small body passes", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello")))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "hello", w.Body.String())
	})

	t.Run("declared oversize body rejected", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32))))
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), "Request body too large")
	})
}

func newLimitedEngine(t *testing.T, m *MemoryLimiter, allow AllowFunc) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, TrustProxies(r, nil))
	r.Use(RealIP(), MemoryRateLimit(m, KeyByIPAndPath(), allow))
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func send(r http.Handler, remote, xff string) int {
	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.RemoteAddr = remote
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestMemoryRateLimit(t *testing.T) {
	r := newLimitedEngine(t, NewMemoryLimiter(2, time.Minute), nil)

	assert.Equal(t, http.StatusOK, send(r, "203.0.113.1:1000", ""))
	assert.Equal(t, http.StatusOK, send(r, "203.0.113.1:1001", ""))
	assert.Equal(t, http.StatusTooManyRequests, send(r, "203.0.113.1:1002", ""))
	assert.Equal(t, http.StatusOK, send(r, "203.0.113.2:1000", ""))
}

func TestMemoryRateLimit_RotatingForwardedForStillLimited(t *testing.T) {
	m := NewMemoryLimiter(1, time.Minute)
	r := newLimitedEngine(t, m, nil)

	allowed := 0
	for i := 0; i < 50; i++ {
		if send(r, "203.0.113.9:4000", fmt.Sprintf("198.51.100.%d", i)) == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 1, allowed)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryRateLimit_PrivateBypass(t *testing.T) {
	r := newLimitedEngine(t, NewMemoryLimiter(1, time.Minute), AllowPrivateIP())

	t.Run("private peer bypasses", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			assert.Equal(t, http.StatusOK, send(r, "10.1.2.3:1000", ""))
		}
	})

	t.Run("spoofed loopback does not bypass", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, send(r, "203.0.113.9:1000", "127.0.0.1"))
		for i := 0; i < 4; i++ {
			assert.Equal(t, http.StatusTooManyRequests, send(r, "203.0.113.9:1000", "127.0.0.1"))
		}
	})
}

func TestMemoryLimiter_EvictsIdleKeys(t *testing.T) {
	m := NewMemoryLimiter(1, time.Minute)
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	for i := 0; i < 50; i++ {
		m.allow(fmt.Sprintf("rl:ip:198.51.100.%d", i))
	}
	require.Equal(t, 50, m.Len())

	now = now.Add(30 * time.Second)
	assert.False(t, m.allow("rl:ip:198.51.100.0"))
	assert.True(t, m.allow("rl:ip:203.0.113.1"))
	assert.Equal(t, 51, m.Len(), "no sweep before a full window")

	now = now.Add(45 * time.Second)
	assert.True(t, m.allow("rl:ip:203.0.113.2"))
	assert.Equal(t, 3, m.Len(), "only keys seen within the window survive")
}

func TestRateLimit_NilRedisPassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RateLimit(nil, 1, time.Minute, KeyByIP(), nil))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
