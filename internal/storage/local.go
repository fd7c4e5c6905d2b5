package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// LocalBucket writes objects below a directory that the HTTP server exposes under /media/
type LocalBucket struct {
	root    string
	baseURL string
}

func NewLocalBucket(root, baseURL string) *LocalBucket {
	return &LocalBucket{
		root:    root,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Root returns the directory objects are written to
func (b *LocalBucket) Root() string {
	return b.root
}

func (b *LocalBucket) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	cleaned, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	target := filepath.Join(b.root, filepath.FromSlash(cleaned))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create object directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create object: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(target)
		return "", fmt.Errorf("failed to write object: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close object: %w", err)
	}

	return b.baseURL + "/" + cleaned, nil
}
