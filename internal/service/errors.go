package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var (
	ErrProductNotFound   = errors.New("product not found")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrInvalidSort       = errors.New("invalid sort order")
	ErrSizeUnavailable   = errors.New("size not available for this product")
	ErrColorUnavailable  = errors.New("color not available for this product")
	ErrSectionNotFound   = errors.New("section not found")
	ErrDuplicateSection  = errors.New("duplicate section id")
	ErrDuplicateOrder    = errors.New("duplicate section display order")
	ErrInvalidDirection  = errors.New("direction must be up or down")
	ErrNoFiles           = errors.New("no files to upload")
	ErrStorageNotEnabled = errors.New("object storage is not configured")
)

var validate = validator.New()
