package domain

import "time"

// Category is one of the fixed catalog categories
type Category string

const (
	CategoryDresses     Category = "Dresses"
	CategorySuits       Category = "Suits"
	CategoryAccessories Category = "Accessories"
	CategoryOuterwear   Category = "Outerwear"
	CategoryShoes       Category = "Shoes"
)

// Categories lists the catalog categories in display order
var Categories = []Category{
	CategoryDresses,
	CategorySuits,
	CategoryAccessories,
	CategoryOuterwear,
	CategoryShoes,
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Product represents a piece in the catalog
type Product struct {
	ID               string    `json:"id"`
	Name             string    `json:"name" validate:"required"`
	Price            float64   `json:"price" validate:"gt=0"`
	Description      string    `json:"description"`
	Category         Category  `json:"category" validate:"required,oneof=Dresses Suits Accessories Outerwear Shoes"`
	Images           []string  `json:"images"`
	Sizes            []string  `json:"sizes"`
	Colors           []string  `json:"colors"`
	AgeRange         string    `json:"ageRange"`
	CareInstructions string    `json:"careInstructions"`
	Reviews          []Review  `json:"reviews" validate:"dive"`
	IsNew            bool      `json:"isNew"`
	IsFeatured       bool      `json:"isFeatured"`
	CreatedAt        time.Time `json:"createdAt"`
}

// HasSize reports whether size is one of the product's available sizes
func (p *Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// HasColor reports whether color is one of the product's available colors
func (p *Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// Review is a customer review attached to a product
type Review struct {
	ID      string `json:"id" yaml:"id"`
	User    string `json:"user" yaml:"user"`
	Rating  int    `json:"rating" yaml:"rating" validate:"gte=1,lte=5"`
	Comment string `json:"comment" yaml:"comment"`
	Date    string `json:"date" yaml:"date"`
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
