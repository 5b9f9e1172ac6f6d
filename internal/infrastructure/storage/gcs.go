package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/oksasatya/t2-user-service/internal/domain/provider"
)

// GCS uploads staged avatars to a Google Cloud Storage bucket as public objects.
type GCS struct {
	Client    *storage.Client
	Bucket    string
	TmpFolder string
}

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

func NewGCS(client *storage.Client, bucket, tmpFolder string) *GCS {
	return &GCS{Client: client, Bucket: bucket, TmpFolder: tmpFolder}
}

func (g *GCS) SaveFile(ctx context.Context, file string) (string, error) {
	name := filepath.Base(file)
	contentType := contentTypeOf(name)
	if contentType == "" {
		return "", provider.ErrFileNotFound
	}

	path := filepath.Join(g.TmpFolder, name)
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", provider.ErrFileNotFound
		}
		return "", err
	}
	defer func() { _ = f.Close() }()

	wc := g.Client.Bucket(g.Bucket).Object(name).NewWriter(ctx)
	wc.ContentType = contentType
	wc.PredefinedACL = "publicRead"
	wc.ChunkSize = 0 // avatars are small; upload in a single request
	if _, err := io.Copy(wc, f); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("upload %s: %w", name, err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("upload %s: %w", name, err)
	}

	_ = f.Close()
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("remove staged %s: %w", name, err)
	}
	return name, nil
}

func (g *GCS) DeleteFile(ctx context.Context, file string) error {
	err := g.Client.Bucket(g.Bucket).Object(filepath.Base(file)).Delete(ctx)
	if err != nil && !errors.Is(err, storage.ErrObjectNotExist) {
		return fmt.Errorf("delete %s: %w", file, err)
	}
	return nil
}

var _ provider.StorageProvider = (*GCS)(nil)
