package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FileStore saves uploaded blobs to disk under a base directory and returns
// references under a public URL prefix (served by the HTTP layer).
type FileStore struct {
	basePath  string
	publicURL string
}

// NewFileStore creates the base directory if missing. publicURL is the URL
// prefix under which saved files are exposed, e.g. "/uploads".
func NewFileStore(basePath, publicURL string) (*FileStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, fmt.Errorf("storage base path is required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	publicURL = strings.TrimRight(strings.TrimSpace(publicURL), "/")
	if publicURL == "" {
		publicURL = "/uploads"
	}
	return &FileStore{basePath: basePath, publicURL: publicURL}, nil
}

// Save writes the blob under key (which may contain "/" separated
// subdirectories, e.g. "portfolio/works/...") and returns its public path.
func (f *FileStore) Save(_ context.Context, key string, r io.Reader, _ int64, _ string) (string, error) {
	key = cleanKey(key)
	if key == "" {
		return "", fmt.Errorf("storage key is required")
	}
	target := filepath.Join(f.basePath, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}
	out, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()
	if _, err := io.Copy(out, r); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}
	return f.publicURL + "/" + key, nil
}

// Delete removes a stored blob. Missing blobs are not an error.
func (f *FileStore) Delete(_ context.Context, key string) error {
	key = cleanKey(key)
	if key == "" {
		return nil
	}
	target := filepath.Join(f.basePath, filepath.FromSlash(key))
	if err := os.Remove(target); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// cleanKey normalizes a key and strips any path traversal.
func cleanKey(key string) string {
	key = strings.TrimSpace(strings.ReplaceAll(key, "\\", "/"))
	key = path.Clean("/" + key)
	return strings.TrimPrefix(key, "/")
}
