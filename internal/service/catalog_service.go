package service

import (
	"sort"

	"atelier/internal/domain"
)

// SortOrder is a shop listing order
type SortOrder string

const (
	SortNewest       SortOrder = "newest"
	SortPriceLowHigh SortOrder = "price-asc"
	SortPriceHighLow SortOrder = "price-desc"

	// AllCategories disables the category filter
	AllCategories = "All"

	// FeaturedLimit caps the featured products shown on the homepage
	FeaturedLimit = 3
)

// CatalogReader is the read side of the store
type CatalogReader interface {
	Products() []domain.Product
	Product(id string) (domain.Product, bool)
	HomepageConfig() []domain.HomepageSection
	NeedsInitialization() bool
	Loaded() bool
	Err() error
}

// Home is everything the storefront homepage renders
type Home struct {
	Sections            []domain.HomepageSection `json:"sections"`
	Featured            []domain.Product         `json:"featured"`
	NeedsInitialization bool                     `json:"needsInitialization"`
	LoadError           string                   `json:"loadError,omitempty"`
}

// CatalogService defines the storefront read operations
type CatalogService interface {
	Shop(category string, order SortOrder) ([]domain.Product, error)
	Product(id string) (domain.Product, error)
	Home() Home
}

type catalogService struct {
	store CatalogReader
}

// NewCatalogService creates a new instance of CatalogService
func NewCatalogService(store CatalogReader) CatalogService {
	return &catalogService{store: store}
}

// Shop filters the catalog by category ("All" or empty for everything) and sorts it.
// Newest keeps the remote created_at order.
func (s *catalogService) Shop(category string, order SortOrder) ([]domain.Product, error) {
	if category != "" && category != AllCategories && !domain.Category(category).Valid() {
		return nil, ErrInvalidCategory
	}

	products := s.store.Products()
	result := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if category == "" || category == AllCategories || p.Category == domain.Category(category) {
			result = append(result, p)
		}
	}

	switch order {
	case "", SortNewest:
	case SortPriceLowHigh:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price < result[j].Price })
	case SortPriceHighLow:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price > result[j].Price })
	default:
		return nil, ErrInvalidSort
	}

	return result, nil
}

func (s *catalogService) Product(id string) (domain.Product, error) {
	p, ok := s.store.Product(id)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return p, nil
}

// Home returns the visible renderable sections in display order and the first featured products
func (s *catalogService) Home() Home {
	sections := s.store.HomepageConfig()
	visible := make([]domain.HomepageSection, 0, len(sections))
	for _, section := range sections {
		if section.IsVisible && section.Type.Renderable() {
			visible = append(visible, section)
		}
	}
	sort.SliceStable(visible, func(i, j int) bool { return visible[i].Order < visible[j].Order })

	featured := make([]domain.Product, 0, FeaturedLimit)
	for _, p := range s.store.Products() {
		if len(featured) == FeaturedLimit {
			break
		}
		if p.IsFeatured {
			featured = append(featured, p)
		}
	}

	home := Home{
		Sections:            visible,
		Featured:            featured,
		NeedsInitialization: s.store.NeedsInitialization(),
	}
	if err := s.store.Err(); err != nil {
		home.LoadError = err.Error()
	}
	return home
}
