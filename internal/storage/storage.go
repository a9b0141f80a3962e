package storage

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"
)

// Object describes a stored file and where clients can fetch it.
type Object struct {
	Key string
	URL string
}

// UploadInput conveys one file to store.
type UploadInput struct {
	Key         string
	Body        io.Reader
	ContentType string
}

// Service stores public images (product photos, trainer portraits) in remote object storage.
type Service interface {
	Upload(ctx context.Context, in UploadInput) (Object, error)
	Delete(ctx context.Context, key string) error
	// KeyFromURL maps a URL produced by Upload back to its key. ok is false for foreign URLs.
	KeyFromURL(url string) (key string, ok bool)
}

// ImageKey builds a fresh key for an image of the given entity, e.g. "images/produtos/3/<uuid>.png".
func ImageKey(prefix, entity string, id int64, ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	name := uuid.NewString()
	if ext != "" {
		name += "." + ext
	}
	return path.Join(strings.Trim(prefix, "/"), entity, fmt.Sprintf("%d", id), name)
}
