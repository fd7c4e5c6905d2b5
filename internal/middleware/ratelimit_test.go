package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func newUnlockLimiter(t *testing.T, limit int) (http.Handler, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("Failed to start miniredis: %v", err)
	}
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		redisClient.Close()
		mr.Close()
	})

	config := RateLimitConfig{
		RequestsPerWindow: limit,
		Window:            time.Minute,
		KeyPrefix:         "atelier:unlock",
	}

	handler := RateLimitMiddleware(redisClient, config, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	return handler, mr
}

// Unlock attempts beyond the limit are answered with 429, whatever the source port
func TestProperty_RateLimitingBlocksExcessiveRequests(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("excessive requests are blocked with 429", prop.ForAll(
		func(requestsPerWindow int, excessRequests int) bool {
			handler, _ := newUnlockLimiter(t, requestsPerWindow)

			successCount := 0
			blockedCount := 0
			for i := 0; i < requestsPerWindow+excessRequests; i++ {
				req := httptest.NewRequest("POST", "/api/admin/unlock", nil)
				req.RemoteAddr = fmt.Sprintf("192.168.1.100:%d", 40000+i)
				w := httptest.NewRecorder()

				handler.ServeHTTP(w, req)

				switch w.Code {
				case http.StatusOK:
					successCount++
				case http.StatusTooManyRequests:
					blockedCount++
				}
			}

			if successCount != requestsPerWindow || blockedCount != excessRequests {
				t.Logf("FAIL: limit %d: %d passed, %d blocked", requestsPerWindow, successCount, blockedCount)
				return false
			}
			return true
		},
		gen.IntRange(1, 10),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestRateLimit_ClientsAreCountedSeparately(t *testing.T) {
	handler, _ := newUnlockLimiter(t, 1)

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
		req := httptest.NewRequest("POST", "/api/admin/unlock", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("Expected first request from %s to pass, got %d", addr, w.Code)
		}
	}
}

func TestRateLimit_HeadersAndWindowReset(t *testing.T) {
	handler, mr := newUnlockLimiter(t, 2)

	send := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest("POST", "/api/admin/unlock", nil)
		req.RemoteAddr = "192.168.1.101:5000"
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w
	}

	w := send()
	if w.Header().Get("X-RateLimit-Limit") != "2" || w.Header().Get("X-RateLimit-Remaining") != "1" {
		t.Fatalf("Unexpected headers: %v", w.Header())
	}

	send()
	blocked := send()
	if blocked.Code != http.StatusTooManyRequests {
		t.Fatalf("Expected 429, got %d", blocked.Code)
	}
	if blocked.Header().Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	mr.FastForward(2 * time.Minute)
	if w := send(); w.Code != http.StatusOK {
		t.Fatalf("Expected window to reset, got %d", w.Code)
	}
}
