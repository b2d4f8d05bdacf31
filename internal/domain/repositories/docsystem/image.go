package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// ImageRepository defines data access operations for document images
type ImageRepository interface {
	Create(ctx context.Context, image *docsystem.DocumentImage) error
	GetByID(ctx context.Context, documentID, id string) (*docsystem.DocumentImage, error)
	ListByDocument(ctx context.Context, documentID string) ([]docsystem.DocumentImage, error)
	Delete(ctx context.Context, id string) error
	DeleteByDocument(ctx context.Context, documentID string) error
}
