package model

// UploadedFile is the request-scoped record of a stored upload. OriginalName
// is kept for logging only and is never used as a storage path. Route
// handlers persist URL onto the owning resource; the binary stays on disk or
// in the object store.
type UploadedFile struct {
	Filename     string `json:"filename"`
	Path         string `json:"path"`
	URL          string `json:"url"`
	ContentType  string `json:"content_type"`
	Size         int64  `json:"size"`
	OriginalName string `json:"original_name"`
}
