package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hammamikhairi/ottoorder/internal/config"
	"github.com/hammamikhairi/ottoorder/internal/logger"
)

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}
	final := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	Chain(mw("first"), mw("second"))(final).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Len(t, seen, 36)
	assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "abc-123", seen)
	assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
}

func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.LevelNormal, &buf)
	h := Recovery(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/restaurant/x/chat", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, buf.String(), "panic recovered: boom")
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.LevelNormal, &buf)
	h := Logging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	out := buf.String()
	assert.Contains(t, out, "GET /health")
	assert.Contains(t, out, "status=418")
}

func TestCORS(t *testing.T) {
	cfg := config.CORSConfig{
		AllowedOrigins: "https://a.example, https://b.example",
		AllowedMethods: "GET,POST,OPTIONS",
		AllowedHeaders: "Content-Type",
		MaxAge:         600,
	}
	called := false
	h := CORS(cfg)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	t.Run("preflight", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodOptions, "/restaurant/x/chat", nil)
		req.Header.Set("Origin", "https://b.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.False(t, called, "handler should not run for preflight")
		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, "https://b.example", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "GET,POST,OPTIONS", rec.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "600", rec.Header().Get("Access-Control-Max-Age"))
	})

	t.Run("disallowed origin", func(t *testing.T) {
		called = false
		req := httptest.NewRequest(http.MethodPost, "/restaurant/x/chat", strings.NewReader("{}"))
		req.Header.Set("Origin", "https://evil.example")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.True(t, called)
		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		req.Header.Set("Origin", "http://localhost:3000")
		rec := httptest.NewRecorder()
		CORS(config.CORSConfig{AllowedOrigins: "*"})(http.NotFoundHandler()).ServeHTTP(rec, req)

		assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}
