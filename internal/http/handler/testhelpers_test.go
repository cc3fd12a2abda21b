package handler

import (
	"bytes"
	"database/sql"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/require"

	"portfolio-api/internal/apperr"
	"portfolio-api/internal/storage"
	"portfolio-api/internal/upload"
)

func errInvalidCredentials() error {
	return apperr.Unauthorized("Invalid credentials")
}

func errNoRows() error {
	return sql.ErrNoRows
}

func newUploadProcessor(t *testing.T) *upload.Processor {
	t.Helper()
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return upload.NewProcessor(store, 0, nil)
}

// newMultipartWriter writes a one-file form under the "file" field with an
// explicit part content type and returns the form's content type.
func newMultipartWriter(body *bytes.Buffer, filename, contentType string) string {
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="file"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, _ := writer.CreatePart(header)
	part.Write([]byte("file-content"))
	writer.Close()

	return writer.FormDataContentType()
}
