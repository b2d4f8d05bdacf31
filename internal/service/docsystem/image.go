package docsystem

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/storage"
)

// imageMimeTypes are the types accepted for document images
var imageMimeTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"image/webp",
	"image/svg+xml",
}

type imageService struct {
	imageRepo  docsysRepo.ImageRepository
	blobs      storage.BlobStore
	authorizer docsysSvc.DocumentAuthorizer
	now        func() time.Time
	logger     *slog.Logger
}

// NewImageService creates a new image service
func NewImageService(
	imageRepo docsysRepo.ImageRepository,
	blobs storage.BlobStore,
	authorizer docsysSvc.DocumentAuthorizer,
	logger *slog.Logger,
) docsysSvc.ImageService {
	return &imageService{
		imageRepo:  imageRepo,
		blobs:      blobs,
		authorizer: authorizer,
		now:        time.Now,
		logger:     logger,
	}
}

func (s *imageService) ListImages(ctx context.Context, userID, documentID string) ([]models.DocumentImage, error) {
	if _, err := s.authorizer.CanView(ctx, userID, documentID); err != nil {
		return nil, err
	}
	return s.imageRepo.ListByDocument(ctx, documentID)
}

// UploadImage stores an image under documents/{id}/{millis}-{name}
func (s *imageService) UploadImage(ctx context.Context, userID, documentID string, file *docsysSvc.UploadedFile) (*models.DocumentImage, error) {
	if _, err := s.authorizer.CanEdit(ctx, userID, documentID); err != nil {
		return nil, err
	}

	if file == nil || file.Content == nil {
		return nil, domain.Invalid("No file provided")
	}
	if !slices.Contains(imageMimeTypes, file.ContentType) {
		return nil, domain.Invalid(fmt.Sprintf("Unsupported file type: %s", file.ContentType))
	}
	if file.Size > config.MaxImageSize {
		return nil, domain.Invalid("File size exceeds 5MB limit")
	}

	data, err := storage.ReadLimited(file.Content, config.MaxImageSize)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, domain.Invalid("File size exceeds 5MB limit")
		}
		return nil, fmt.Errorf("read image: %w", err)
	}

	key := fmt.Sprintf("documents/%s/%d-%s", documentID, s.now().UnixMilli(), storage.SanitizeName(file.Filename))
	blob, err := s.blobs.Put(ctx, key, bytes.NewReader(data), file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img := &models.DocumentImage{
		DocumentID: documentID,
		UserID:     userID,
		URL:        blob.URL,
		Pathname:   blob.Key,
		Filename:   file.Filename,
		Size:       int64(len(data)),
		MimeType:   file.ContentType,
	}
	if err := s.imageRepo.Create(ctx, img); err != nil {
		if delErr := s.blobs.Delete(ctx, blob.Key); delErr != nil {
			s.logger.Warn("failed to remove orphaned image blob", "path", blob.Key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("image uploaded",
		"id", img.ID,
		"document_id", documentID,
		"size", img.Size,
		"mime_type", img.MimeType,
	)

	return img, nil
}

// DeleteImage removes an image row; a failed blob delete is only logged
func (s *imageService) DeleteImage(ctx context.Context, userID, documentID, imageID string) error {
	if _, err := s.authorizer.CanEdit(ctx, userID, documentID); err != nil {
		return err
	}
	if err := validation.Validate(imageID, validation.Required, is.UUID); err != nil {
		return domain.NotFound("Image not found")
	}

	img, err := s.imageRepo.GetByID(ctx, documentID, imageID)
	if err != nil {
		return err
	}

	if err := s.blobs.Delete(ctx, img.Pathname); err != nil {
		s.logger.Warn("failed to delete image blob", "path", img.Pathname, "error", err)
	}

	if err := s.imageRepo.Delete(ctx, img.ID); err != nil {
		return err
	}

	s.logger.Info("image deleted", "id", img.ID, "document_id", documentID)
	return nil
}
