package upload

import (
	"bytes"
	"context"
	"errors"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/storage"
	storeMocks "portfolio-api/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type formFile struct {
	field       string
	filename    string
	contentType string
	content     []byte
}

func buildForm(t *testing.T, files ...formFile) *multipart.Form {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, f := range files {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+f.field+`"; filename="`+f.filename+`"`)
		h.Set("Content-Type", f.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(f.content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form
}

func newLocalProcessor(t *testing.T, scan ScanFunc) (*Processor, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)
	return NewProcessor(store, DefaultMaxSize, scan), dir
}

func countFiles(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	for _, kind := range []string{storage.KindImage, storage.KindDocument} {
		entries, err := os.ReadDir(filepath.Join(dir, kind))
		require.NoError(t, err)
		n += len(entries)
	}
	return n
}

func TestProcessStoresImage(t *testing.T) {
	p, dir := newLocalProcessor(t, nil)
	form := buildForm(t, formFile{FileField, "Portrait.PNG", "image/png", []byte("png-bytes")})

	uf, err := p.Single(context.Background(), form, "image")
	require.NoError(t, err)

	assert.Len(t, uf.Filename, 32+len(".png"))
	assert.True(t, filepath.Ext(uf.Filename) == ".png")
	assert.Equal(t, "/uploads/images/"+uf.Filename, uf.URL)
	assert.Equal(t, "image/png", uf.ContentType)
	assert.Equal(t, int64(9), uf.Size)
	assert.Equal(t, "Portrait.PNG", uf.OriginalName)
	assert.NotContains(t, uf.Path, "Portrait")
	assert.Equal(t, 1, countFiles(t, dir))
}

func TestProcessStoresPDFUnderDocuments(t *testing.T) {
	p, dir := newLocalProcessor(t, nil)
	form := buildForm(t, formFile{FileField, "resume.pdf", "application/pdf", []byte("%PDF-1.4")})

	uf, err := p.Single(context.Background(), form, "document")
	require.NoError(t, err)

	assert.Contains(t, uf.URL, "/uploads/documents/")
	assert.Equal(t, 1, countFiles(t, dir))
}

func TestProcessExtensionMismatchNeverWrites(t *testing.T) {
	p, dir := newLocalProcessor(t, nil)
	// Allowed media type, wrong extension.
	form := buildForm(t, formFile{FileField, "image.pdf", "image/png", []byte("x")})

	_, err := p.Single(context.Background(), form, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not match")
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestProcessDisallowedType(t *testing.T) {
	p, dir := newLocalProcessor(t, nil)
	form := buildForm(t, formFile{FileField, "script.sh", "application/x-sh", []byte("#!/bin/sh")})

	_, err := p.Single(context.Background(), form, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid file type")
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestProcessKindRestriction(t *testing.T) {
	p, _ := newLocalProcessor(t, nil)
	form := buildForm(t, formFile{FileField, "resume.pdf", "application/pdf", []byte("%PDF")})

	_, err := p.Single(context.Background(), form, "image")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid file type")
}

func TestProcessSizeCeiling(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocal(dir)
	require.NoError(t, err)
	p := NewProcessor(store, 4, nil)

	form := buildForm(t, formFile{FileField, "big.png", "image/png", []byte("five!")})

	_, err = p.Single(context.Background(), form, "")
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.Code)
	assert.Equal(t, "File too large", appErr.Message)
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestSingleRejectsMultipleFiles(t *testing.T) {
	p, dir := newLocalProcessor(t, nil)
	form := buildForm(t,
		formFile{FileField, "a.png", "image/png", []byte("a")},
		formFile{FileField, "b.png", "image/png", []byte("b")},
	)

	_, err := p.Single(context.Background(), form, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only one file")
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestSingleRejectsUnexpectedField(t *testing.T) {
	p, _ := newLocalProcessor(t, nil)
	form := buildForm(t, formFile{"attachment", "a.png", "image/png", []byte("a")})

	_, err := p.Single(context.Background(), form, "")
	require.Error(t, err)

	var appErr *apperr.Error
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "Unexpected file field", appErr.Message)
}

func TestSingleRequiresFile(t *testing.T) {
	p, _ := newLocalProcessor(t, nil)
	form := buildForm(t)

	_, err := p.Single(context.Background(), form, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File is required")

	_, err = p.Single(context.Background(), nil, "")
	assert.Error(t, err)
}

func TestScanHookVetoDeletesFile(t *testing.T) {
	var scannedPath string
	p, dir := newLocalProcessor(t, func(path string) error {
		scannedPath = path
		return errors.New("infected")
	})
	form := buildForm(t, formFile{FileField, "a.png", "image/png", []byte("a")})

	_, err := p.Single(context.Background(), form, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "security scan")
	assert.NotEmpty(t, scannedPath)
	assert.Equal(t, 0, countFiles(t, dir))
}

func TestScanHookPasses(t *testing.T) {
	p, dir := newLocalProcessor(t, func(string) error { return nil })
	form := buildForm(t, formFile{FileField, "a.png", "image/png", []byte("a")})

	_, err := p.Single(context.Background(), form, "")
	require.NoError(t, err)
	assert.Equal(t, 1, countFiles(t, dir))
}

func TestProcessStorageError(t *testing.T) {
	mStore := new(storeMocks.MockStorage)
	mStore.On("Save", mock.Anything, storage.KindImage, mock.Anything, mock.Anything, mock.Anything).
		Return(storage.FileInfo{}, errors.New("disk full"))
	p := NewProcessor(mStore, DefaultMaxSize, nil)

	form := buildForm(t, formFile{FileField, "a.png", "image/png", []byte("a")})

	_, err := p.Single(context.Background(), form, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store upload")
	mStore.AssertExpectations(t)
}
