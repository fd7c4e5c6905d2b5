package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"atelier/internal/config"
	"atelier/internal/repository"
	"atelier/internal/storage"
	"atelier/internal/store"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type emptyProducts struct{}

func (emptyProducts) List(ctx context.Context) ([]repository.ProductRow, error) { return nil, nil }
func (emptyProducts) Insert(ctx context.Context, row repository.ProductRow) error {
	return nil
}
func (emptyProducts) Upsert(ctx context.Context, rows []repository.ProductRow) error {
	return nil
}
func (emptyProducts) Delete(ctx context.Context, id string) error {
	return repository.ErrProductNotFound
}

type emptySections struct{}

func (emptySections) List(ctx context.Context) ([]repository.HomepageConfigRow, error) {
	return nil, nil
}
func (emptySections) Upsert(ctx context.Context, rows []repository.HomepageConfigRow) error {
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Env: "development"},
		Admin: config.AdminConfig{
			Passphrase:     "vermeni2025",
			GrantSecret:    "test-secret",
			GrantTTL:       time.Hour,
			UnlockAttempts: 2,
			UnlockWindow:   time.Minute,
		},
	}
}

func newRouter(t *testing.T, health HealthFunc, redisClient *redis.Client) (http.Handler, *storage.LocalBucket) {
	t.Helper()
	bucket := storage.NewLocalBucket(t.TempDir(), "http://localhost:8080/media")
	st := store.New(emptyProducts{}, emptySections{}, zap.NewNop())
	return NewRouter(testConfig(), zap.NewNop(), health, st, bucket, redisClient), bucket
}

func TestHealth(t *testing.T) {
	tests := []struct {
		name   string
		status string
		want   int
	}{
		{name: "up", status: "up", want: http.StatusOK},
		{name: "down", status: "down", want: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := newRouter(t, func(ctx context.Context) map[string]string {
				return map[string]string{"status": tt.status}
			}, nil)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

			assert.Equal(t, tt.want, w.Code)
			assert.Contains(t, w.Body.String(), tt.status)
		})
	}
}

func TestMediaServesLocalBucket(t *testing.T) {
	router, bucket := newRouter(t, nil, nil)

	url, err := bucket.Upload(context.Background(), "product-images/look.jpg", "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8080/media/product-images/look.jpg", url)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/media/product-images/look.jpg", nil))

	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Equal(t, "jpeg-bytes", string(body))
}

func TestUnlockIsRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	router, _ := newRouter(t, nil, client)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("POST", "/api/admin/unlock", strings.NewReader(`{"passphrase":"guess"}`))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.7:5123"
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusUnauthorized, http.StatusUnauthorized, http.StatusTooManyRequests}, codes)
}

func TestShopperRoutesSetSessionCookie(t *testing.T) {
	router, _ := newRouter(t, nil, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("GET", "/api/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Result().Cookies())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest("POST", "/api/profile/login", nil))

	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "atelier_session", cookies[0].Name)
	assert.False(t, cookies[0].Secure)
}
