package storage

import (
	"context"
	"fmt"
	"io"
	"path"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// DriveBucket uploads into a Google Drive folder and shares each file with anyone holding the link
type DriveBucket struct {
	client   *drive.Service
	folderID string
}

// NewDriveBucket authenticates with a service account JSON file
func NewDriveBucket(ctx context.Context, credentialsPath, folderID string, opts ...option.ClientOption) (*DriveBucket, error) {
	if folderID == "" {
		return nil, ErrMissingFolderID
	}
	if credentialsPath != "" {
		opts = append([]option.ClientOption{option.WithCredentialsFile(credentialsPath)}, opts...)
	}

	client, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}

	return &DriveBucket{client: client, folderID: folderID}, nil
}

func (b *DriveBucket) Upload(ctx context.Context, objectPath, contentType string, r io.Reader) (string, error) {
	cleaned, err := cleanObjectPath(objectPath)
	if err != nil {
		return "", err
	}

	file := &drive.File{
		Name:     path.Base(cleaned),
		Parents:  []string{b.folderID},
		MimeType: contentType,
	}

	created, err := b.client.Files.Create(file).
		Media(r, googleapi.ContentType(contentType)).
		Fields("id").
		Context(ctx).
		Do()
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	permission := &drive.Permission{Type: "anyone", Role: "reader"}
	if _, err := b.client.Permissions.Create(created.Id, permission).Context(ctx).Do(); err != nil {
		return "", fmt.Errorf("failed to share file: %w", err)
	}

	return fmt.Sprintf("https://drive.google.com/uc?id=%s", created.Id), nil
}
