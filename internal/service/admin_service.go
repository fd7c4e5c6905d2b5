package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"atelier/internal/domain"
	"atelier/internal/repository"
	"atelier/internal/seed"
	"atelier/internal/storage"
	"atelier/internal/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// Defaults written on every product created from the console
	NewProductAgeRange         = "1-6Y"
	NewProductCareInstructions = "Dry clean only"
)

// Direction moves a section within the layout
type Direction string

const (
	DirectionUp   Direction = "up"
	DirectionDown Direction = "down"
)

// AdminStore is the store surface the console writes through
type AdminStore interface {
	CatalogReader
	Refresh(ctx context.Context) error
	UpdateHomepageConfig(ctx context.Context, sections []domain.HomepageSection) error
	WriteProducts(ctx context.Context, write func(ctx context.Context, repo repository.ProductRepository) error) error
}

// ProductDraft is the new-product form
type ProductDraft struct {
	Name        string          `json:"name" validate:"required"`
	Price       float64         `json:"price" validate:"gt=0"`
	Description string          `json:"description"`
	Category    domain.Category `json:"category" validate:"required,oneof=Dresses Suits Accessories Outerwear Shoes"`
	Images      []string        `json:"images" validate:"dive,required"`
	Sizes       []string        `json:"sizes"`
	Colors      []string        `json:"colors"`
	IsNew       *bool           `json:"isNew"`
	IsFeatured  *bool           `json:"isFeatured"`
}

// Upload is one file handed to UploadImages
type Upload struct {
	Name string
	Data []byte
}

// UploadFailure names a file that could not be stored
type UploadFailure struct {
	Name  string `json:"name"`
	Error string `json:"error"`
}

// UploadResult lists the public URLs stored so far and the files that failed
type UploadResult struct {
	URLs     []string        `json:"urls"`
	Failures []UploadFailure `json:"failures"`
}

// AdminService defines the console operations
type AdminService interface {
	Products() []domain.Product
	CreateProduct(ctx context.Context, draft ProductDraft) (domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) error
	Layout() []domain.HomepageSection
	PublishLayout(ctx context.Context, sections []domain.HomepageSection) error
	Initialize(ctx context.Context) error
	UploadImages(ctx context.Context, files []Upload) (UploadResult, error)
	Refresh(ctx context.Context) error
}

type adminService struct {
	store  AdminStore
	bucket storage.Bucket
	logger *zap.Logger
	newID  func() string
}

// NewAdminService creates a new instance of AdminService. bucket may be nil, in which case
// uploads fail with ErrStorageNotEnabled.
func NewAdminService(st AdminStore, bucket storage.Bucket, logger *zap.Logger) AdminService {
	return &adminService{
		store:  st,
		bucket: bucket,
		logger: logger,
		newID:  uuid.NewString,
	}
}

func (s *adminService) Products() []domain.Product {
	return s.store.Products()
}

// CreateProduct validates the draft, inserts it and refreshes the store.
// Nothing is sent to the table store when validation fails.
func (s *adminService) CreateProduct(ctx context.Context, draft ProductDraft) (domain.Product, error) {
	if err := validate.Struct(draft); err != nil {
		return domain.Product{}, err
	}

	product := productFromDraft(draft, s.newID())
	err := s.store.WriteProducts(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		return repo.Insert(ctx, store.ProductToRow(product))
	})
	if err := s.written(err); err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("Product created",
		zap.String("product_id", product.ID),
		zap.String("name", product.Name),
	)

	if saved, ok := s.store.Product(product.ID); ok {
		return saved, nil
	}
	return product, nil
}

// UpdateProduct writes the full record back. The id must already be in the catalog.
func (s *adminService) UpdateProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	existing, ok := s.store.Product(product.ID)
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	if err := validate.Struct(product); err != nil {
		return domain.Product{}, err
	}
	if product.CreatedAt.IsZero() {
		product.CreatedAt = existing.CreatedAt
	}

	err := s.store.WriteProducts(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		return repo.Upsert(ctx, []repository.ProductRow{store.ProductToRow(product)})
	})
	if err := s.written(err); err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("Product updated", zap.String("product_id", product.ID))

	if saved, ok := s.store.Product(product.ID); ok {
		return saved, nil
	}
	return product, nil
}

func (s *adminService) DeleteProduct(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrProductNotFound
	}
	if _, ok := s.store.Product(id); !ok {
		return ErrProductNotFound
	}

	err := s.store.WriteProducts(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		return repo.Delete(ctx, id)
	})
	if err := s.written(err); err != nil {
		return err
	}

	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}

// written reduces a product write error to the part the caller must act on. A write that
// reached the table store succeeded even when the reload after it failed; the store keeps
// that failure as its load error.
func (s *adminService) written(err error) error {
	if errors.Is(err, store.ErrReloadFailed) {
		s.logger.Warn("Product saved but catalog reload failed", zap.Error(err))
		return nil
	}
	return err
}

func (s *adminService) Layout() []domain.HomepageSection {
	return s.store.HomepageConfig()
}

// PublishLayout validates the edited sections and upserts them. Ids and display orders must be
// unique across the resulting layout, including published sections left out of the edit.
func (s *adminService) PublishLayout(ctx context.Context, sections []domain.HomepageSection) error {
	seen := make(map[string]bool, len(sections))
	orders := make(map[int]string, len(sections))
	for _, section := range sections {
		if err := validate.Struct(section); err != nil {
			return err
		}
		if seen[section.ID] {
			return fmt.Errorf("%w: %s", ErrDuplicateSection, section.ID)
		}
		seen[section.ID] = true
		if other, taken := orders[section.Order]; taken {
			return fmt.Errorf("%w: %s and %s share order %d", ErrDuplicateOrder, other, section.ID, section.Order)
		}
		orders[section.Order] = section.ID
	}

	for _, published := range s.store.HomepageConfig() {
		if seen[published.ID] {
			continue
		}
		if other, taken := orders[published.Order]; taken {
			return fmt.Errorf("%w: %s and %s share order %d", ErrDuplicateOrder, other, published.ID, published.Order)
		}
	}

	return s.store.UpdateHomepageConfig(ctx, sections)
}

// Initialize upserts the sample catalog and homepage layout, then refreshes
func (s *adminService) Initialize(ctx context.Context) error {
	data, err := seed.Load()
	if err != nil {
		return fmt.Errorf("failed to load seed data: %w", err)
	}

	rows := make([]repository.ProductRow, 0, len(data.Products))
	for _, p := range data.Products {
		rows = append(rows, store.ProductToRow(p))
	}

	err = s.store.WriteProducts(ctx, func(ctx context.Context, repo repository.ProductRepository) error {
		return repo.Upsert(ctx, rows)
	})
	if err != nil {
		return err
	}

	if err := s.store.UpdateHomepageConfig(ctx, data.Sections); err != nil {
		return err
	}

	s.logger.Info("Atelier initialized",
		zap.Int("products", len(data.Products)),
		zap.Int("sections", len(data.Sections)),
	)
	return nil
}

// UploadImages optimizes and uploads each file. A failed file is logged and skipped.
func (s *adminService) UploadImages(ctx context.Context, files []Upload) (UploadResult, error) {
	if s.bucket == nil {
		return UploadResult{}, ErrStorageNotEnabled
	}
	if len(files) == 0 {
		return UploadResult{}, ErrNoFiles
	}

	result := UploadResult{URLs: []string{}, Failures: []UploadFailure{}}
	for _, f := range files {
		url, err := s.upload(ctx, f)
		if err != nil {
			s.logger.Error("Upload error", zap.String("file", f.Name), zap.Error(err))
			result.Failures = append(result.Failures, UploadFailure{Name: f.Name, Error: err.Error()})
			continue
		}
		result.URLs = append(result.URLs, url)
	}

	return result, nil
}

func (s *adminService) upload(ctx context.Context, f Upload) (string, error) {
	optimized, err := storage.OptimizeImage(f.Data)
	if err != nil {
		return "", err
	}
	return s.bucket.Upload(ctx, storage.ImagePath("jpg"), "image/jpeg", bytes.NewReader(optimized))
}

func (s *adminService) Refresh(ctx context.Context) error {
	return s.store.Refresh(ctx)
}

func productFromDraft(draft ProductDraft, id string) domain.Product {
	isNew := true
	if draft.IsNew != nil {
		isNew = *draft.IsNew
	}
	isFeatured := false
	if draft.IsFeatured != nil {
		isFeatured = *draft.IsFeatured
	}

	return domain.Product{
		ID:               id,
		Name:             draft.Name,
		Price:            draft.Price,
		Description:      draft.Description,
		Category:         draft.Category,
		Images:           orEmpty(draft.Images),
		Sizes:            orEmpty(draft.Sizes),
		Colors:           orEmpty(draft.Colors),
		AgeRange:         NewProductAgeRange,
		CareInstructions: NewProductCareInstructions,
		Reviews:          []domain.Review{},
		IsNew:            isNew,
		IsFeatured:       isFeatured,
	}
}

// MoveSection swaps the section at index with its neighbour and renumbers order to match
// positions. Moving past either end is a no-op.
func MoveSection(sections []domain.HomepageSection, index int, dir Direction) ([]domain.HomepageSection, error) {
	if index < 0 || index >= len(sections) {
		return nil, ErrSectionNotFound
	}

	target := index
	switch dir {
	case DirectionUp:
		target = index - 1
	case DirectionDown:
		target = index + 1
	default:
		return nil, ErrInvalidDirection
	}

	out := make([]domain.HomepageSection, len(sections))
	copy(out, sections)
	if target < 0 || target >= len(out) {
		return out, nil
	}

	out[index], out[target] = out[target], out[index]
	for i := range out {
		out[i].Order = i
	}
	return out, nil
}

// ToggleVisibility flips IsVisible on the section with the given id
func ToggleVisibility(sections []domain.HomepageSection, id string) ([]domain.HomepageSection, error) {
	out := make([]domain.HomepageSection, len(sections))
	copy(out, sections)

	for i := range out {
		if out[i].ID == id {
			out[i].IsVisible = !out[i].IsVisible
			return out, nil
		}
	}
	return nil, ErrSectionNotFound
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
