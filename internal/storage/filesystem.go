package storage

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
)

// FilesystemStore keeps report artifacts on the local filesystem and serves
// them through the embedding HTTP server's download endpoint.
type FilesystemStore struct {
	baseURL string // server URL, e.g. "http://localhost:8080"
	dir     string // local directory for artifacts
}

func NewFilesystemStore(baseURL, dir string) (*FilesystemStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifacts directory: %w", err)
	}
	return &FilesystemStore{baseURL: baseURL, dir: dir}, nil
}

func (s *FilesystemStore) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	path := filepath.Join(s.dir, filepath.Base(key))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact %s: %w", key, err)
	}
	return fmt.Sprintf("%s/reports/files/%s", s.baseURL, url.PathEscape(filepath.Base(key))), nil
}

func (s *FilesystemStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return os.Open(filepath.Join(s.dir, filepath.Base(key)))
}

func (s *FilesystemStore) Exists(ctx context.Context, key string) (bool, int64, error) {
	info, err := os.Stat(filepath.Join(s.dir, filepath.Base(key)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, 0, nil
		}
		return false, 0, err
	}
	return true, info.Size(), nil
}

func (s *FilesystemStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(filepath.Join(s.dir, filepath.Base(key)))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
