package domain

// SectionType identifies the kind of homepage section
type SectionType string

const (
	SectionHero       SectionType = "hero"
	SectionFeatured   SectionType = "featured"
	SectionBanner     SectionType = "banner"
	SectionCollection SectionType = "collection"
	SectionNewsletter SectionType = "newsletter"
)

// Renderable reports whether the storefront knows how to draw sections of this type.
// Collection and newsletter sections are stored but never rendered.
func (t SectionType) Renderable() bool {
	switch t {
	case SectionHero, SectionFeatured, SectionBanner:
		return true
	}
	return false
}

// Valid reports whether t is a known section type
func (t SectionType) Valid() bool {
	switch t {
	case SectionHero, SectionFeatured, SectionBanner, SectionCollection, SectionNewsletter:
		return true
	}
	return false
}

// HomepageSection is one block of the homepage layout
type HomepageSection struct {
	ID         string      `json:"id" validate:"required"`
	Type       SectionType `json:"type" validate:"required,oneof=hero featured banner collection newsletter"`
	Title      string      `json:"title"`
	Subtitle   *string     `json:"subtitle,omitempty"`
	ImageURL   *string     `json:"imageUrl,omitempty"`
	ButtonText *string     `json:"buttonText,omitempty"`
	IsVisible  bool        `json:"isVisible"`
	Order      int         `json:"order" validate:"gte=0"`
}
