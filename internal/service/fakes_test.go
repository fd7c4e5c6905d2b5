package service

import (
	"context"
	"errors"
	"io"
	"sort"
	"sync"
	"testing"
	"time"

	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/internal/store"

	"go.uber.org/zap"
)

type fakeProductRepository struct {
	mu        sync.Mutex
	rows      []repository.ProductRow
	listErr   error
	insertErr error
	inserted  []repository.ProductRow
	clock     time.Time
}

func (f *fakeProductRepository) List(ctx context.Context) ([]repository.ProductRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]repository.ProductRow, len(f.rows))
	copy(out, f.rows)
	return out, nil
}

func (f *fakeProductRepository) Insert(ctx context.Context, row repository.ProductRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, row)
	f.rows = append([]repository.ProductRow{f.stamp(row)}, f.rows...)
	return nil
}

func (f *fakeProductRepository) Upsert(ctx context.Context, rows []repository.ProductRow) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, row := range rows {
		replaced := false
		for i := range f.rows {
			if f.rows[i].ID == row.ID {
				f.rows[i] = f.stamp(row)
				replaced = true
			}
		}
		if !replaced {
			f.rows = append([]repository.ProductRow{f.stamp(row)}, f.rows...)
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

func (f *fakeProductRepository) insertCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.inserted)
}

// stamp fills created_at the way the column default does
func (f *fakeProductRepository) stamp(row repository.ProductRow) repository.ProductRow {
	if row.CreatedAt == nil {
		f.clock = f.clock.Add(time.Second)
		created := f.clock
		row.CreatedAt = &created
	}
	return row
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

type fakeBucket struct {
	mu      sync.Mutex
	objects map[string][]byte
	fail    error
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string][]byte)}
}

func (b *fakeBucket) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	if b.fail != nil {
		return "", b.fail
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	b.mu.Lock()
	b.objects[objectPath] = data
	b.mu.Unlock()
	return "https://cdn.example.com/" + objectPath, nil
}

var errRemote = errors.New("new row violates row-level security policy")

type fixture struct {
	products *fakeProductRepository
	sections *fakeSectionRepository
	store    *store.Store
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		products: &fakeProductRepository{clock: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)},
		sections: &fakeSectionRepository{},
	}
	f.store = store.New(f.products, f.sections, zap.NewNop())
	if err := f.store.Refresh(context.Background()); err != nil {
		t.Fatalf("Failed to refresh store: %v", err)
	}
	return f
}

func (f *fixture) addProducts(t *testing.T, products ...domain.Product) {
	t.Helper()
	rows := make([]repository.ProductRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, store.ProductToRow(p))
	}
	if err := f.products.Upsert(context.Background(), rows); err != nil {
		t.Fatalf("Failed to add products: %v", err)
	}
	if err := f.store.Refresh(context.Background()); err != nil {
		t.Fatalf("Failed to refresh store: %v", err)
	}
}
