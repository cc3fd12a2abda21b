// Package upload validates a single file per request and persists it through
// the storage backend under a random, collision-resistant name. All
// validation happens before any byte is written.
package upload

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/model"
	"portfolio-api/internal/storage"
)

// DefaultMaxSize is the upload byte ceiling (5 MiB).
const DefaultMaxSize = 5 * 1024 * 1024

// FileField is the multipart field name uploads must use.
const FileField = "file"

// allowedTypes maps each accepted media type to its required extensions. A
// declared type outside this list is rejected, and so is an allowed type
// whose filename extension does not match it.
var allowedTypes = map[string][]string{
	"image/jpeg":      {".jpg", ".jpeg"},
	"image/png":       {".png"},
	"image/gif":       {".gif"},
	"application/pdf": {".pdf"},
}

// ScanFunc is the post-storage scan hook. It receives the stored path and may
// veto the upload by returning an error; the processor then deletes the file.
// The default hook is a no-op; real scanning plugs in here.
type ScanFunc func(path string) error

// ErrFileRequired is returned by Single when the request carries no file.
// Routes that make the file optional call Process directly instead.
func ErrFileRequired() *apperr.Error {
	return apperr.New(400, "File is required")
}

func errTooManyFiles() *apperr.Error {
	return apperr.New(400, "Too many files. Only one file is allowed.")
}

func errUnexpectedField(field string) *apperr.Error {
	return apperr.New(400, "Unexpected file field").WithCause(fmt.Errorf("field %q", field))
}

func errTypeNotAllowed() *apperr.Error {
	return apperr.New(400, "Invalid file type. Only JPEG, PNG, GIF and PDF files are allowed.")
}

func errTypeMismatch() *apperr.Error {
	return apperr.New(400, "File extension does not match the declared file type.")
}

func errFileTooLarge() *apperr.Error {
	return apperr.New(400, "File too large")
}

// Processor validates uploads and hands them to the storage backend.
type Processor struct {
	store   storage.Storage
	maxSize int64
	scan    ScanFunc
}

// NewProcessor builds a Processor. maxSize <= 0 falls back to DefaultMaxSize;
// a nil scan hook disables scanning.
func NewProcessor(store storage.Storage, maxSize int64, scan ScanFunc) *Processor {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Processor{store: store, maxSize: maxSize, scan: scan}
}

// Single enforces the one-file-per-request contract over a parsed multipart
// form, then validates and stores that file. Files under any field other than
// FileField are rejected outright.
func (p *Processor) Single(ctx context.Context, form *multipart.Form, expectType string) (*model.UploadedFile, error) {
	if form == nil {
		return nil, ErrFileRequired()
	}
	var file *multipart.FileHeader
	count := 0
	for field, headers := range form.File {
		if field != FileField && len(headers) > 0 {
			return nil, errUnexpectedField(field)
		}
		count += len(headers)
		if len(headers) > 0 {
			file = headers[0]
		}
	}
	if count == 0 {
		return nil, ErrFileRequired()
	}
	if count > 1 {
		return nil, errTooManyFiles()
	}
	return p.Process(ctx, file, expectType)
}

// Process validates one file header and stores its content. expectType
// restricts the coarse kind a route accepts ("image", "document" or "" for
// either). Nothing touches the storage backend until every check has passed.
func (p *Processor) Process(ctx context.Context, fh *multipart.FileHeader, expectType string) (*model.UploadedFile, error) {
	if fh == nil {
		return nil, ErrFileRequired()
	}

	contentType := fh.Header.Get("Content-Type")
	exts, ok := allowedTypes[contentType]
	if !ok {
		return nil, errTypeNotAllowed()
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !contains(exts, ext) {
		return nil, errTypeMismatch()
	}

	kind := storage.KindDocument
	if strings.HasPrefix(contentType, "image/") {
		kind = storage.KindImage
	}
	switch expectType {
	case "image":
		if kind != storage.KindImage {
			return nil, errTypeNotAllowed()
		}
	case "document":
		if kind != storage.KindDocument {
			return nil, errTypeNotAllowed()
		}
	}

	if fh.Size > p.maxSize {
		return nil, errFileTooLarge()
	}

	name, err := randomName(ext)
	if err != nil {
		return nil, fmt.Errorf("generate storage name: %w", err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, apperr.New(400, "Cannot open uploaded file").WithCause(err)
	}
	defer f.Close()

	info, err := p.store.Save(ctx, kind, name, f, storage.SaveOptions{
		Size:        fh.Size,
		ContentType: contentType,
		Metadata:    map[string]string{"original-filename": fh.Filename},
	})
	if err != nil {
		return nil, fmt.Errorf("store upload: %w", err)
	}

	if p.scan != nil {
		if scanErr := p.scan(info.Path); scanErr != nil {
			if rmErr := p.store.Remove(ctx, kind, name); rmErr != nil {
				return nil, fmt.Errorf("scan veto: %v; remove failed: %w", scanErr, rmErr)
			}
			return nil, apperr.New(400, "File rejected by security scan").WithCause(scanErr)
		}
	}

	return &model.UploadedFile{
		Filename:     name,
		Path:         info.Path,
		URL:          p.store.URL(kind, name),
		ContentType:  contentType,
		Size:         info.Size,
		OriginalName: fh.Filename,
	}, nil
}

// randomName returns a fixed-length random hex string with the lowercased
// original extension appended. The client-supplied filename never reaches the
// storage path.
func randomName(ext string) (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf) + ext, nil
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
