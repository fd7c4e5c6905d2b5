// Package storage uploads product images to a public bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"atelier/internal/config"

	"github.com/google/uuid"
)

// ImagePrefix is the folder every product image is uploaded under
const ImagePrefix = "product-images"

var (
	ErrInvalidPath     = errors.New("invalid object path")
	ErrUnknownDriver   = errors.New("unknown storage driver")
	ErrMissingFolderID = errors.New("drive folder id is required")
)

// Bucket stores objects and hands back a URL anyone can read them from
type Bucket interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error)
}

// NewBucket builds the bucket selected by cfg.Driver
func NewBucket(ctx context.Context, cfg config.StorageConfig) (Bucket, error) {
	switch cfg.Driver {
	case "", "local":
		return NewLocalBucket(cfg.LocalRoot, cfg.PublicBaseURL), nil
	case "drive":
		return NewDriveBucket(ctx, cfg.DriveCreds, cfg.DriveFolderID)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDriver, cfg.Driver)
	}
}

// ImagePath returns a fresh product-images/<uuid>.<ext> path. An empty ext means jpg.
func ImagePath(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		ext = "jpg"
	}
	return ImagePrefix + "/" + uuid.NewString() + "." + ext
}

func cleanObjectPath(objectPath string) (string, error) {
	if objectPath == "" || strings.HasPrefix(objectPath, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	cleaned := path.Clean(objectPath)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, objectPath)
	}
	return cleaned, nil
}
