package service

import (
	"context"
	"io"
	"path"

	"github.com/rs/zerolog"

	"sweetshop/api/internal/ids"
	"sweetshop/api/internal/models"
	"sweetshop/api/internal/storage"
)

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type ImageService struct {
	sweets SweetStore
	store  *storage.ObjectStore
	log    zerolog.Logger
}

func NewImageService(sweets SweetStore, store *storage.ObjectStore, log zerolog.Logger) *ImageService {
	return &ImageService{
		sweets: sweets,
		store:  store,
		log:    log,
	}
}

// Upload stores a catalog image and points the sweet's image_url at it.
// The sweet is fetched first so a bad id fails before any bytes move.
func (s *ImageService) Upload(ctx context.Context, sweetID string, contentType string, size int64, reader io.Reader) (models.Sweet, error) {
	ext, ok := imageExtensions[contentType]
	if !ok {
		return models.Sweet{}, &ValidationError{Message: "Image must be JPEG, PNG, GIF, or WebP"}
	}

	if _, err := s.sweets.GetByID(ctx, sweetID); err != nil {
		return models.Sweet{}, err
	}

	key := path.Join("sweets", sweetID, ids.New()+ext)
	if err := s.store.Put(ctx, key, reader, size, contentType); err != nil {
		return models.Sweet{}, err
	}

	sweet, err := s.sweets.SetImageURL(ctx, sweetID, s.store.PublicURL(key))
	if err != nil {
		return models.Sweet{}, err
	}

	s.log.Info().Str("sweet_id", sweetID).Str("key", key).Msg("sweet image uploaded")
	return sweet, nil
}
