package store

import (
	"testing"
	"time"

	"atelier/internal/domain"
	"atelier/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestProductMapping_RoundTrip(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	product := domain.Product{
		ID:               "a",
		Name:             "Royal Heritage Mary Janes",
		Price:            450,
		Description:      "Supple Italian lambskin leather",
		Category:         domain.CategoryShoes,
		Images:           []string{"https://picsum.photos/id/21/800/1200"},
		Sizes:            []string{"22", "24"},
		Colors:           []string{"Antique Gold"},
		AgeRange:         "1-6 Years",
		CareInstructions: "Protect with leather conditioner.",
		Reviews:          []domain.Review{{ID: "r1", User: "Claire D.", Rating: 4, Comment: "Beautiful", Date: "2024-02-01"}},
		IsNew:            true,
		CreatedAt:        created,
	}

	row := ProductToRow(product)
	assert.Equal(t, "Shoes", row.Category)
	assert.Equal(t, "1-6 Years", *row.AgeRange)
	assert.Equal(t, created, *row.CreatedAt)

	assert.Equal(t, product, ProductFromRow(row))
}

func TestProductFromRow_Defaults(t *testing.T) {
	p := ProductFromRow(repository.ProductRow{ID: "x", AgeRange: strPtr(""), Reviews: []byte(`not json`)})

	assert.Equal(t, DefaultAgeRange, p.AgeRange)
	assert.Equal(t, DefaultCareInstructions, p.CareInstructions)
	assert.NotNil(t, p.Reviews)
	assert.Empty(t, p.Reviews)
	assert.NotNil(t, p.Images)
}

func TestSectionMapping_RoundTrip(t *testing.T) {
	section := domain.HomepageSection{
		ID:         "banner-1",
		Type:       domain.SectionBanner,
		Title:      "The Artisanal Atelier",
		Subtitle:   strPtr("Each piece tells a story of a thousand stitches."),
		ImageURL:   strPtr("https://images.example.com/atelier.jpg"),
		ButtonText: strPtr("Explore the Craft"),
		IsVisible:  true,
		Order:      2,
	}

	row := SectionToRow(section)
	assert.Equal(t, "banner", row.Type)
	assert.Equal(t, 2, row.DisplayOrder)
	assert.Equal(t, "https://images.example.com/atelier.jpg", *row.ImageURL)

	assert.Equal(t, section, SectionFromRow(row))
}
