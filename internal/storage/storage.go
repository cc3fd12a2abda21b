package storage

import (
	"context"
	"io"
)

// Package storage contains the persistence backends for validated uploads.
// The local backend writes to disk under the configured upload root; the
// minio backend targets any S3-compatible store. Both partition files by
// coarse media kind.

// Kinds are the two physical destinations uploads are partitioned into.
const (
	KindImage    = "images"
	KindDocument = "documents"
)

// SaveOptions carries optional metadata for a stored file. Size should be the
// exact byte count when known.
type SaveOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// FileInfo describes a stored file.
type FileInfo struct {
	Path string
	Size int64
}

// Storage persists validated upload content. Implementations must be safe for
// concurrent use; each request works on its own generated name so writes
// never contend.
type Storage interface {
	// Save streams r into the destination for kind under the given name.
	Save(ctx context.Context, kind, name string, r io.Reader, opt SaveOptions) (FileInfo, error)
	// Remove deletes a stored file. Used for scan-hook vetoes and rollbacks.
	Remove(ctx context.Context, kind, name string) error
	// URL returns the public URL route handlers persist on their resources.
	URL(kind, name string) string
}
