package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"murim-academy/internal/domain"
	"murim-academy/internal/storage"
)

// ErrStorageUnavailable is returned when image uploads are requested but no bucket is configured.
var ErrStorageUnavailable = errors.New("image storage is not configured")

// ImageTarget is an entity carrying a replaceable picture.
type ImageTarget interface {
	CurrentImage(ctx context.Context, id int64) (string, error)
	SetImage(ctx context.Context, id int64, url string) error
}

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
	"image/gif":  "gif",
}

// ImageService stores uploaded pictures and points the owning record at them.
type ImageService struct {
	store     storage.Service
	keyPrefix string
	log       logrus.FieldLogger
}

// NewImageService accepts a nil store; every upload then fails with ErrStorageUnavailable.
func NewImageService(store storage.Service, keyPrefix string, log logrus.FieldLogger) *ImageService {
	return &ImageService{store: store, keyPrefix: keyPrefix, log: log}
}

// Replace uploads body as the new picture of entity id and returns its public URL.
// The previous picture is removed from storage when it was one of ours.
func (s *ImageService) Replace(ctx context.Context, entity string, id int64, target ImageTarget, body io.Reader, contentType string) (string, error) {
	if s.store == nil {
		return "", ErrStorageUnavailable
	}
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", domain.NewValidationError("imagem", "must be a JPEG, PNG, WebP or GIF image")
	}

	previous, err := target.CurrentImage(ctx, id)
	if err != nil {
		return "", err
	}

	obj, err := s.store.Upload(ctx, storage.UploadInput{
		Key:         storage.ImageKey(s.keyPrefix, entity, id, ext),
		Body:        body,
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}

	if err := target.SetImage(ctx, id, obj.URL); err != nil {
		if delErr := s.store.Delete(ctx, obj.Key); delErr != nil {
			s.log.WithError(delErr).WithField("key", obj.Key).Warn("remove orphaned image")
		}
		return "", err
	}

	if key, ours := s.store.KeyFromURL(previous); ours {
		if err := s.store.Delete(ctx, key); err != nil {
			s.log.WithError(err).WithField("key", key).Warn("remove replaced image")
		}
	}
	return obj.URL, nil
}
