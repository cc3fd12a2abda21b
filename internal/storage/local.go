package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// PublicPathPrefix is the URL prefix the local upload root is served under.
const PublicPathPrefix = "/uploads"

// localStorage writes uploads to disk under baseDir/<kind>/<name>.
type localStorage struct {
	baseDir string
}

// NewLocal creates the disk-backed storage and ensures both destination
// directories exist. The ensure step is idempotent and happens once here, not
// per request.
func NewLocal(baseDir string) (Storage, error) {
	if baseDir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	for _, kind := range []string{KindImage, KindDocument} {
		if err := os.MkdirAll(filepath.Join(baseDir, kind), 0o755); err != nil {
			return nil, fmt.Errorf("create upload directory %s: %w", kind, err)
		}
	}
	return &localStorage{baseDir: baseDir}, nil
}

// Save streams the content to disk. The name is always a generated one, never
// the client-supplied filename; filepath.Base guards the join anyway.
func (s *localStorage) Save(ctx context.Context, kind, name string, r io.Reader, opt SaveOptions) (FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return FileInfo{}, err
	}
	dst := filepath.Join(s.baseDir, filepath.Base(kind), filepath.Base(name))

	f, err := os.Create(dst)
	if err != nil {
		return FileInfo{}, fmt.Errorf("create file: %w", err)
	}
	n, err := io.Copy(f, r)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(dst)
		return FileInfo{}, fmt.Errorf("write file: %w", err)
	}
	return FileInfo{Path: dst, Size: n}, nil
}

// Remove deletes a stored file by kind and name.
func (s *localStorage) Remove(ctx context.Context, kind, name string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.Remove(filepath.Join(s.baseDir, filepath.Base(kind), filepath.Base(name)))
}

// URL maps a stored file to the static serving prefix.
func (s *localStorage) URL(kind, name string) string {
	return PublicPathPrefix + "/" + kind + "/" + name
}
