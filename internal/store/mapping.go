package store

import (
	"encoding/json"

	"atelier/internal/domain"
	"atelier/internal/repository"
)

const (
	DefaultAgeRange         = "1-6Y"
	DefaultCareInstructions = "Professional clean only"
)

// ProductFromRow converts a products row to a domain product, filling read defaults.
// Malformed review JSON is treated as no reviews.
func ProductFromRow(row repository.ProductRow) domain.Product {
	p := domain.Product{
		ID:               row.ID,
		Name:             row.Name,
		Price:            row.Price,
		Description:      row.Description,
		Category:         domain.Category(row.Category),
		Images:           copyStrings(row.Images),
		Sizes:            copyStrings(row.Sizes),
		Colors:           copyStrings(row.Colors),
		AgeRange:         DefaultAgeRange,
		CareInstructions: DefaultCareInstructions,
		Reviews:          []domain.Review{},
		IsNew:            row.IsNew,
		IsFeatured:       row.IsFeatured,
	}

	if row.AgeRange != nil && *row.AgeRange != "" {
		p.AgeRange = *row.AgeRange
	}
	if row.CareInstructions != nil && *row.CareInstructions != "" {
		p.CareInstructions = *row.CareInstructions
	}
	if row.CreatedAt != nil {
		p.CreatedAt = *row.CreatedAt
	}
	if len(row.Reviews) > 0 {
		var reviews []domain.Review
		if err := json.Unmarshal(row.Reviews, &reviews); err == nil && reviews != nil {
			p.Reviews = reviews
		}
	}

	return p
}

// ProductToRow converts a domain product to the remote products row
func ProductToRow(p domain.Product) repository.ProductRow {
	row := repository.ProductRow{
		ID:               p.ID,
		Name:             p.Name,
		Price:            p.Price,
		Description:      p.Description,
		Category:         string(p.Category),
		Images:           copyStrings(p.Images),
		Sizes:            copyStrings(p.Sizes),
		Colors:           copyStrings(p.Colors),
		AgeRange:         optional(p.AgeRange),
		CareInstructions: optional(p.CareInstructions),
		IsNew:            p.IsNew,
		IsFeatured:       p.IsFeatured,
		Reviews:          json.RawMessage("[]"),
	}

	if !p.CreatedAt.IsZero() {
		createdAt := p.CreatedAt
		row.CreatedAt = &createdAt
	}
	if len(p.Reviews) > 0 {
		if raw, err := json.Marshal(p.Reviews); err == nil {
			row.Reviews = raw
		}
	}

	return row
}

// SectionFromRow converts a homepage_config row to a domain section
func SectionFromRow(row repository.HomepageConfigRow) domain.HomepageSection {
	return domain.HomepageSection{
		ID:         row.ID,
		Type:       domain.SectionType(row.Type),
		Title:      row.Title,
		Subtitle:   copyPtr(row.Subtitle),
		ImageURL:   copyPtr(row.ImageURL),
		ButtonText: copyPtr(row.ButtonText),
		IsVisible:  row.IsVisible,
		Order:      row.DisplayOrder,
	}
}

// SectionToRow converts a domain section to the remote homepage_config row
func SectionToRow(s domain.HomepageSection) repository.HomepageConfigRow {
	return repository.HomepageConfigRow{
		ID:           s.ID,
		Type:         string(s.Type),
		Title:        s.Title,
		Subtitle:     copyPtr(s.Subtitle),
		ImageURL:     copyPtr(s.ImageURL),
		ButtonText:   copyPtr(s.ButtonText),
		IsVisible:    s.IsVisible,
		DisplayOrder: s.Order,
	}
}

func copyStrings(values []string) []string {
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func copyPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
