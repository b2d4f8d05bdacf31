package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// ImageService stores images embedded in documents
type ImageService interface {
	ListImages(ctx context.Context, userID, documentID string) ([]docsystem.DocumentImage, error)
	UploadImage(ctx context.Context, userID, documentID string, file *UploadedFile) (*docsystem.DocumentImage, error)
	DeleteImage(ctx context.Context, userID, documentID, imageID string) error
}
