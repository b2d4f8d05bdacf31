package docsystem

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/storage"
)

// trashService implements the TrashService interface
type trashService struct {
	docRepo     docsysRepo.DocumentRepository
	shareRepo   docsysRepo.ShareRepository
	versionRepo docsysRepo.VersionRepository
	imageRepo   docsysRepo.ImageRepository
	edgeRepo    docsysRepo.EdgeRepository
	txManager   repositories.TransactionManager
	blobs       storage.BlobStore
	logger      *slog.Logger
}

// NewTrashService creates a new trash service
func NewTrashService(
	docRepo docsysRepo.DocumentRepository,
	shareRepo docsysRepo.ShareRepository,
	versionRepo docsysRepo.VersionRepository,
	imageRepo docsysRepo.ImageRepository,
	edgeRepo docsysRepo.EdgeRepository,
	txManager repositories.TransactionManager,
	blobs storage.BlobStore,
	logger *slog.Logger,
) docsysSvc.TrashService {
	return &trashService{
		docRepo:     docRepo,
		shareRepo:   shareRepo,
		versionRepo: versionRepo,
		imageRepo:   imageRepo,
		edgeRepo:    edgeRepo,
		txManager:   txManager,
		blobs:       blobs,
		logger:      logger,
	}
}

// ListTrash lists the user's soft-deleted documents, most recently deleted first
func (s *trashService) ListTrash(ctx context.Context, userID string) ([]models.TrashItem, error) {
	docs, err := s.docRepo.ListTrash(ctx, userID)
	if err != nil {
		return nil, err
	}

	items := make([]models.TrashItem, 0, len(docs))
	for _, d := range docs {
		item := models.TrashItem{
			ID:        d.ID,
			Title:     d.Title,
			Excerpt:   models.Excerpt(d.Content, config.ExcerptLength),
			Tags:      d.Tags,
			UpdatedAt: d.UpdatedAt,
		}
		if d.DeletedAt != nil {
			item.DeletedAt = *d.DeletedAt
		}
		items = append(items, item)
	}
	return items, nil
}

// trashed returns the user's document only while it is in the trash
func (s *trashService) trashed(ctx context.Context, userID, documentID string) (*models.Document, error) {
	notInTrash := domain.NotFound("Document not found in trash")
	if _, err := uuid.Parse(documentID); err != nil {
		return nil, notInTrash
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, notInTrash
		}
		return nil, err
	}
	if doc.UserID != userID || doc.DeletedAt == nil {
		return nil, notInTrash
	}
	return doc, nil
}

// Restore takes a document out of the trash
func (s *trashService) Restore(ctx context.Context, userID, documentID string) (*models.Document, error) {
	if _, err := s.trashed(ctx, userID, documentID); err != nil {
		return nil, err
	}

	if err := s.docRepo.Restore(ctx, documentID); err != nil {
		return nil, err
	}

	doc, err := s.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("document restored", "id", documentID, "user_id", userID)
	return doc, nil
}

// DeletePermanently removes a trashed document with its shares, versions,
// images, edges and tag links in one transaction. Image blobs are removed
// afterwards; failures there are only logged.
func (s *trashService) DeletePermanently(ctx context.Context, userID, documentID string) error {
	if _, err := s.trashed(ctx, userID, documentID); err != nil {
		return err
	}

	images, err := s.imageRepo.ListByDocument(ctx, documentID)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.shareRepo.DeleteByDocument(txCtx, documentID); err != nil {
			return err
		}
		if err := s.versionRepo.DeleteByDocument(txCtx, documentID); err != nil {
			return err
		}
		if err := s.imageRepo.DeleteByDocument(txCtx, documentID); err != nil {
			return err
		}
		if err := s.edgeRepo.DeleteByDocument(txCtx, documentID); err != nil {
			return err
		}
		return s.docRepo.HardDelete(txCtx, documentID)
	})
	if err != nil {
		return err
	}

	for _, img := range images {
		if err := s.blobs.Delete(ctx, img.Pathname); err != nil {
			s.logger.Warn("failed to delete image blob",
				"document_id", documentID,
				"path", img.Pathname,
				"error", err,
			)
		}
	}

	s.logger.Info("document permanently deleted",
		"id", documentID,
		"user_id", userID,
		"images", len(images),
	)
	return nil
}
