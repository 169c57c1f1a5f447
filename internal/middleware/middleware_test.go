package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newEngine(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(handlers...)
	r.GET("/ok", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(ContextRequestIDKey))
	})
	r.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	return r
}

func get(r http.Handler, path string, header http.Header) *httptest.ResponseRecorder {
	return getFrom(r, "192.0.2.1:1234", path, header)
}

func getFrom(r http.Handler, remoteAddr, path string, header http.Header) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = remoteAddr
	for k, values := range header {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequestIDGenerated(t *testing.T) {
	r := newEngine(RequestID())

	w := get(r, "/ok", nil)
	require.Equal(t, http.StatusOK, w.Code)

	id := w.Header().Get(HeaderRequestID)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)
	assert.Equal(t, id, w.Body.String())
}

func TestRequestIDPropagated(t *testing.T) {
	r := newEngine(RequestID())

	w := get(r, "/ok", http.Header{HeaderRequestID: {"abc-123"}})
	assert.Equal(t, "abc-123", w.Header().Get(HeaderRequestID))
	assert.Equal(t, "abc-123", w.Body.String())

	long := strings.Repeat("x", maxRequestIDLength+1)
	w = get(r, "/ok", http.Header{HeaderRequestID: {long}})
	assert.NotEqual(t, long, w.Header().Get(HeaderRequestID))
}

func TestRateLimit(t *testing.T) {
	r := newEngine(RateLimit(1, zap.NewNop()))

	w := get(r, "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = get(r, "/ok", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"too many requests"}`, w.Body.String())

	// limits are per client
	w = getFrom(r, "198.51.100.20:5555", "/ok", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	r := newEngine(RateLimit(1, zap.NewNop()))

	w := getFrom(r, "198.51.100.7:4000", "/ok", http.Header{"X-Forwarded-For": {"10.0.0.1"}})
	require.Equal(t, http.StatusOK, w.Code)

	for _, forwarded := range []string{"10.0.0.2", "10.0.0.3", "203.0.113.9"} {
		w = getFrom(r, "198.51.100.7:4000", "/ok", http.Header{"X-Forwarded-For": {forwarded}})
		assert.Equal(t, http.StatusTooManyRequests, w.Code, forwarded)
	}
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	r := newEngine(RateLimit(1, zap.NewNop()))
	require.NoError(t, r.SetTrustedProxies([]string{"198.51.100.7"}))

	for _, forwarded := range []string{"203.0.113.1", "203.0.113.2"} {
		w := getFrom(r, "198.51.100.7:4000", "/ok", http.Header{"X-Forwarded-For": {forwarded}})
		assert.Equal(t, http.StatusOK, w.Code, forwarded)
	}
	w := getFrom(r, "198.51.100.7:4000", "/ok", http.Header{"X-Forwarded-For": {"203.0.113.1"}})
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimitDisabled(t *testing.T) {
	r := newEngine(RateLimit(0, zap.NewNop()))

	for i := 0; i < 10; i++ {
		assert.Equal(t, http.StatusOK, get(r, "/ok", nil).Code)
	}
}

func TestAccessLog(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	r := newEngine(RequestID(), AccessLog(zap.New(core)))

	get(r, "/ok", http.Header{HeaderRequestID: {"req-1"}})
	get(r, "/missing", nil)

	entries := logs.All()
	require.Len(t, entries, 2)

	first := entries[0].ContextMap()
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	assert.Equal(t, "GET", first["method"])
	assert.Equal(t, "/ok", first["path"])
	assert.EqualValues(t, http.StatusOK, first["status"])
	assert.Equal(t, "req-1", first["request_id"])

	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.EqualValues(t, http.StatusNotFound, entries[1].ContextMap()["status"])
}
