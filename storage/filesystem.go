package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// FilesystemStore writes objects below baseDir and hands out references
// prefixed with mediaURL, which the API serves as static files
type FilesystemStore struct {
	baseDir  string
	mediaURL string
}

// NewFilesystemStore creates baseDir if needed
func NewFilesystemStore(baseDir, mediaURL string) (*FilesystemStore, error) {
	if !filepath.IsAbs(baseDir) {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve storage directory: %w", err)
		}
		baseDir = filepath.Join(wd, baseDir)
	}
	//nolint:gosec,mnd // Directory permissions 0755 are intentional
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}
	if !strings.HasSuffix(mediaURL, "/") {
		mediaURL += "/"
	}

	return &FilesystemStore{baseDir: baseDir, mediaURL: mediaURL}, nil
}

// Dir is the directory served under MediaURL
func (s *FilesystemStore) Dir() string {
	return s.baseDir
}

func (s *FilesystemStore) MediaURL() string {
	return s.mediaURL
}

func (s *FilesystemStore) Put(_ context.Context, key, _ string, body io.Reader) (string, error) {
	target, err := s.pathFor(key)
	if err != nil {
		return "", err
	}

	//nolint:gosec,mnd // Directory permissions 0755 are intentional
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	if _, err := io.Copy(f, body); err != nil {
		_ = f.Close()
		_ = os.Remove(target)
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close file: %w", err)
	}

	return s.mediaURL + filepath.ToSlash(key), nil
}

func (s *FilesystemStore) Delete(_ context.Context, ref string) error {
	key, ok := strings.CutPrefix(ref, s.mediaURL)
	if !ok {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, ref)
	}
	target, err := s.pathFor(key)
	if err != nil {
		return err
	}
	if err := os.Remove(target); err != nil {
		if os.IsNotExist(err) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("failed to remove file: %w", err)
	}
	return nil
}

// pathFor keeps every key inside baseDir
func (s *FilesystemStore) pathFor(key string) (string, error) {
	target := filepath.Join(s.baseDir, filepath.FromSlash(key))
	rel, err := filepath.Rel(s.baseDir, target)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return target, nil
}
