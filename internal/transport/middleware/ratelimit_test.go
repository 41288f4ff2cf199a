package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func doFrom(h http.Handler, addr string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/books/x/chapters/1", nil)
	req.RemoteAddr = addr
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimiter_AllowsBurst(t *testing.T) {
	rl := NewRateLimiter(60, 10, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	for i := 0; i < 10; i++ {
		rec := doFrom(handler, "1.2.3.4:1234")
		assert.Equal(t, http.StatusOK, rec.Code, "request %d should be allowed", i)
	}
}

func TestRateLimiter_BlocksOverBurst(t *testing.T) {
	rl := NewRateLimiter(1, 5, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doFrom(handler, "1.2.3.4:1234").Code)
	}

	rec := doFrom(handler, "1.2.3.4:9999")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code, "the port is not part of the client key")
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestRateLimiter_DifferentIPsIndependent(t *testing.T) {
	rl := NewRateLimiter(1, 2, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	for i := 0; i < 2; i++ {
		doFrom(handler, "1.1.1.1:1234")
	}

	assert.Equal(t, http.StatusOK, doFrom(handler, "2.2.2.2:5678").Code)
}

func TestRateLimiter_TokenRefill(t *testing.T) {
	rl := NewRateLimiter(120, 1, time.Minute)
	defer rl.Stop()

	handler := rl.Limit()(okHandler())

	assert.Equal(t, http.StatusOK, doFrom(handler, "3.3.3.3:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, doFrom(handler, "3.3.3.3:1234").Code)

	// 120 per minute refills one token every 500ms.
	time.Sleep(600 * time.Millisecond)

	assert.Equal(t, http.StatusOK, doFrom(handler, "3.3.3.3:1234").Code)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(60, 1, time.Minute)
	rl.Stop()
	rl.Stop()
}
