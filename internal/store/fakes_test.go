package store

import (
	"context"
	"errors"
	"sort"
	"sync"

	"atelier/internal/repository"

	"go.uber.org/zap"
)

var errRemote = errors.New("new row violates row-level security policy")

type fakeProductRepository struct {
	mu        sync.Mutex
	rows      []repository.ProductRow
	listErr   error
	insertErr error
	inserted  []repository.ProductRow
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
			f.rows = append([]repository.ProductRow{row}, f.rows...)
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
	listErr   error
	upsertErr error
}

func (f *fakeSectionRepository) List(ctx context.Context) ([]repository.HomepageConfigRow, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
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

func newTestStore(products *fakeProductRepository, sections *fakeSectionRepository) *Store {
	return New(products, sections, zap.NewNop())
}

func strPtr(s string) *string {
	return &s
}

func seedSections() []repository.HomepageConfigRow {
	return []repository.HomepageConfigRow{
		{ID: "hero-1", Type: "hero", Title: "The Golden Age of Childhood", Subtitle: strPtr("Where Heritage Meets Haute Couture"), ButtonText: strPtr("Discover Collection"), IsVisible: true, DisplayOrder: 0},
		{ID: "featured-1", Type: "featured", Title: "Exquisite Creations", IsVisible: true, DisplayOrder: 1},
		{ID: "banner-1", Type: "banner", Title: "The Artisanal Atelier", ImageURL: strPtr("https://images.example.com/atelier.jpg"), IsVisible: true, DisplayOrder: 2},
	}
}
