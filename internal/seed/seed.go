// Package seed holds the sample catalog and homepage layout used to initialize an empty store.
package seed

import (
	_ "embed"
	"fmt"

	"atelier/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var seedYAML []byte

// Data is the decoded seed file
type Data struct {
	Products []domain.Product
	Sections []domain.HomepageSection
}

type productEntry struct {
	ID               string          `yaml:"id"`
	Name             string          `yaml:"name"`
	Price            float64         `yaml:"price"`
	Description      string          `yaml:"description"`
	Category         string          `yaml:"category"`
	Images           []string        `yaml:"images"`
	Sizes            []string        `yaml:"sizes"`
	Colors           []string        `yaml:"colors"`
	AgeRange         string          `yaml:"age_range"`
	CareInstructions string          `yaml:"care_instructions"`
	IsNew            bool            `yaml:"is_new"`
	IsFeatured       bool            `yaml:"is_featured"`
	Reviews          []domain.Review `yaml:"reviews"`
}

type sectionEntry struct {
	ID         string  `yaml:"id"`
	Type       string  `yaml:"type"`
	Title      string  `yaml:"title"`
	Subtitle   *string `yaml:"subtitle"`
	ImageURL   *string `yaml:"image_url"`
	ButtonText *string `yaml:"button_text"`
	IsVisible  bool    `yaml:"is_visible"`
	Order      int     `yaml:"order"`
}

type file struct {
	Products []productEntry `yaml:"products"`
	Sections []sectionEntry `yaml:"sections"`
}

// Load decodes the embedded seed file
func Load() (*Data, error) {
	return Parse(seedYAML)
}

// Parse decodes a seed document and checks every category and section type
func Parse(raw []byte) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed data: %w", err)
	}

	data := &Data{
		Products: make([]domain.Product, 0, len(f.Products)),
		Sections: make([]domain.HomepageSection, 0, len(f.Sections)),
	}

	for _, p := range f.Products {
		category := domain.Category(p.Category)
		if !category.Valid() {
			return nil, fmt.Errorf("seed product %s: unknown category %q", p.ID, p.Category)
		}
		reviews := p.Reviews
		if reviews == nil {
			reviews = []domain.Review{}
		}
		data.Products = append(data.Products, domain.Product{
			ID:               p.ID,
			Name:             p.Name,
			Price:            p.Price,
			Description:      p.Description,
			Category:         category,
			Images:           orEmpty(p.Images),
			Sizes:            orEmpty(p.Sizes),
			Colors:           orEmpty(p.Colors),
			AgeRange:         p.AgeRange,
			CareInstructions: p.CareInstructions,
			Reviews:          reviews,
			IsNew:            p.IsNew,
			IsFeatured:       p.IsFeatured,
		})
	}

	for _, s := range f.Sections {
		sectionType := domain.SectionType(s.Type)
		if !sectionType.Valid() {
			return nil, fmt.Errorf("seed section %s: unknown type %q", s.ID, s.Type)
		}
		data.Sections = append(data.Sections, domain.HomepageSection{
			ID:         s.ID,
			Type:       sectionType,
			Title:      s.Title,
			Subtitle:   s.Subtitle,
			ImageURL:   s.ImageURL,
			ButtonText: s.ButtonText,
			IsVisible:  s.IsVisible,
			Order:      s.Order,
		})
	}

	return data, nil
}

func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
