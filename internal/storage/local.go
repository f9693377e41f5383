package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
)

// LocalUploader copies blobs under a base directory and returns file://
// locators. Composition picks it when no bucket is configured, keeping the
// pipeline runnable in degraded operation and in tests.
type LocalUploader struct {
	baseDir string
}

func NewLocalUploader(baseDir string) *LocalUploader {
	return &LocalUploader{baseDir: baseDir}
}

func (u *LocalUploader) Upload(ctx context.Context, objectName string, contentType string, r io.Reader) (string, error) {
	dst := filepath.Join(u.baseDir, filepath.FromSlash(objectName))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}

	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return "", err
	}
	return "file://" + dst, nil
}
