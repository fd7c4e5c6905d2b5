package transport

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"testing"
	"time"

	"atelier/internal/auth"
	"atelier/internal/config"
	"atelier/internal/middleware"
	"atelier/internal/repository"
	"atelier/internal/service"
	"atelier/internal/storage"
	"atelier/internal/store"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type fakeProductRepository struct {
	mu       sync.Mutex
	rows     []repository.ProductRow
	inserted int
}

func (f *fakeProductRepository) List(ctx context.Context) ([]repository.ProductRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.ProductRow, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeProductRepository) Insert(ctx context.Context, row repository.ProductRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inserted++
	now := time.Now()
	row.CreatedAt = &now
	f.rows = append([]repository.ProductRow{row}, f.rows...)
	return nil
}

func (f *fakeProductRepository) Upsert(ctx context.Context, rows []repository.ProductRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		replaced := false
		for i := range f.rows {
			if f.rows[i].ID == row.ID {
				f.rows[i] = row
				replaced = true
			}
		}
		if !replaced {
			f.rows = append(f.rows, row)
		}
	}
	return nil
}

func (f *fakeProductRepository) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repository.ErrProductNotFound
}

type fakeSectionRepository struct {
	mu        sync.Mutex
	rows      []repository.HomepageConfigRow
	upsertErr error
}

func (f *fakeSectionRepository) List(ctx context.Context) ([]repository.HomepageConfigRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]repository.HomepageConfigRow, len(f.rows))
	copy(out, f.rows)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (f *fakeSectionRepository) Upsert(ctx context.Context, rows []repository.HomepageConfigRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	for _, row := range rows {
		replaced := false
		for i := range f.rows {
			if f.rows[i].ID == row.ID {
				f.rows[i] = row
				replaced = true
			}
		}
		if !replaced {
			f.rows = append(f.rows, row)
		}
	}
	return nil
}

type testApp struct {
	router   chi.Router
	products *fakeProductRepository
	sections *fakeSectionRepository
	store    *store.Store
	gate     *auth.PassphraseGate
}

func passthrough(next http.Handler) http.Handler {
	return next
}

// newTestApp wires the handlers the way the server does, over in-memory repositories
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	logger := zap.NewNop()

	app := &testApp{
		products: &fakeProductRepository{},
		sections: &fakeSectionRepository{},
		gate: auth.NewPassphraseGate(config.AdminConfig{
			Passphrase:  "vermeni2025",
			GrantSecret: "test-secret",
			GrantTTL:    time.Hour,
		}),
	}
	app.store = store.New(app.products, app.sections, logger)

	bucket := storage.NewLocalBucket(t.TempDir(), "http://localhost:8080/media")
	admin := service.NewAdminService(app.store, bucket, logger)
	if err := admin.Initialize(context.Background()); err != nil {
		t.Fatalf("Failed to initialize: %v", err)
	}

	router := chi.NewRouter()
	NewCatalogHandler(service.NewCatalogService(app.store), logger).RegisterRoutes(router)
	NewShopperHandler(service.NewCartService(app.store), logger).
		RegisterRoutes(router, middleware.SessionMiddleware(app.store, false))
	NewAdminHandler(admin, app.gate, logger).
		RegisterRoutes(router, passthrough, middleware.AuthMiddleware(app.gate, logger))
	app.router = router

	return app
}

func (a *testApp) grant(t *testing.T) string {
	t.Helper()
	grant, err := a.gate.Unlock(context.Background(), "vermeni2025")
	if err != nil {
		t.Fatalf("Failed to unlock: %v", err)
	}
	return grant
}
