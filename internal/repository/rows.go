package repository

import (
	"encoding/json"
	"time"
)

// ProductRow mirrors a row of the remote products table, column for column
type ProductRow struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Price            float64         `json:"price"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	Images           []string        `json:"images"`
	Sizes            []string        `json:"sizes"`
	Colors           []string        `json:"colors"`
	AgeRange         *string         `json:"age_range"`
	CareInstructions *string         `json:"care_instructions"`
	IsNew            bool            `json:"is_new"`
	IsFeatured       bool            `json:"is_featured"`
	CreatedAt        *time.Time      `json:"created_at,omitempty"`
	Reviews          json.RawMessage `json:"reviews"`
}

// HomepageConfigRow mirrors a row of the remote homepage_config table
type HomepageConfigRow struct {
	ID           string  `json:"id"`
	Type         string  `json:"type"`
	Title        string  `json:"title"`
	Subtitle     *string `json:"subtitle"`
	ImageURL     *string `json:"image_url"`
	ButtonText   *string `json:"button_text"`
	IsVisible    bool    `json:"is_visible"`
	DisplayOrder int     `json:"display_order"`
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func reviewsOrEmpty(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return []byte("[]")
	}
	return raw
}
