package media

import (
	"context"
	"strings"
)

// UploadInput carries one file destined for the object store. PublicID is the
// caller-chosen object key within Folder; ContentType is the declared MIME
// type, persisted alongside the returned URL.
type UploadInput struct {
	Data        []byte
	PublicID    string
	Folder      string
	ContentType string
}

// Store is the media-host contract. Implementations return a publicly
// resolvable URL for the stored object; the core never reads bytes back.
type Store interface {
	Upload(ctx context.Context, in UploadInput) (string, error)
}

// FileTypeFor maps a MIME content type to the coarse file_type label stored
// on upload rows.
func FileTypeFor(contentType string) string {
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "document"
	}
}
