package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("ok"))
})

func TestCORS(t *testing.T) {
	h := CORS(ok)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/tools/damage/calc", nil))
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.Equal(t, "ok", rr.Body.String())
}

func TestIPRateLimiter(t *testing.T) {
	h := NewIPRateLimiter(0.001, 2).LimitMiddleware(ok)
	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}
	// the port changes per connection, the bucket is per host
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5000"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:5001"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1:5002"))
	assert.Equal(t, http.StatusOK, call("10.0.0.2:5000"))
}

func TestIPRateLimiter_ForgetsIdleClients(t *testing.T) {
	clock := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(0.001, 1)
	l.now = func() time.Time { return clock }
	h := l.LimitMiddleware(ok)
	call := func(addr string) int {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)
		return rr.Code
	}

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
		assert.Equal(t, http.StatusOK, call(addr))
	}
	assert.Equal(t, 3, l.Clients())

	clock = clock.Add(DefaultIdle / 2)
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.3:2"))

	clock = clock.Add(DefaultIdle/2 + time.Second)
	assert.Equal(t, http.StatusOK, call("10.0.0.4:1"))
	// .3 was seen half an idle period ago and stays limited
	assert.Equal(t, 2, l.Clients())
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.3:3"))
	assert.Equal(t, http.StatusOK, call("10.0.0.1:2"))
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/tools/sn/chart", nil))

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "request", line["msg"])
	assert.Equal(t, "/api/tools/sn/chart", line["path"])
	assert.Equal(t, float64(http.StatusTeapot), line["status"])
}
