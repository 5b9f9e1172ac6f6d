package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/oksasatya/t2-user-service/internal/domain/provider"
)

// Disk keeps avatars on the local filesystem. Uploads are staged in TmpFolder
// and moved into UploadsFolder, which is served under /files.
type Disk struct {
	TmpFolder     string
	UploadsFolder string
}

func NewDisk(tmpFolder, uploadsFolder string) (*Disk, error) {
	for _, dir := range []string{tmpFolder, uploadsFolder} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return &Disk{TmpFolder: tmpFolder, UploadsFolder: uploadsFolder}, nil
}

func (d *Disk) SaveFile(_ context.Context, file string) (string, error) {
	name := filepath.Base(file)
	src := filepath.Join(d.TmpFolder, name)
	dst := filepath.Join(d.UploadsFolder, name)

	if err := os.Rename(src, dst); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", provider.ErrFileNotFound
		}
		// rename fails across devices; fall back to copy
		if cErr := copyFile(src, dst); cErr != nil {
			return "", fmt.Errorf("move %s: %w", name, cErr)
		}
		_ = os.Remove(src)
	}
	return name, nil
}

// DeleteFile removes an uploaded file. A missing file is not an error.
func (d *Disk) DeleteFile(_ context.Context, file string) error {
	path := filepath.Join(d.UploadsFolder, filepath.Base(file))
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", file, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer func() { _ = in.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

var _ provider.StorageProvider = (*Disk)(nil)
