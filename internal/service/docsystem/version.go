package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

type versionService struct {
	versionRepo     docsysRepo.VersionRepository
	docRepo         docsysRepo.DocumentRepository
	txManager       repositories.TransactionManager
	contentAnalyzer docsysSvc.ContentAnalyzer
	authorizer      docsysSvc.DocumentAuthorizer
	logger          *slog.Logger
}

// NewVersionService creates a new version service
func NewVersionService(
	versionRepo docsysRepo.VersionRepository,
	docRepo docsysRepo.DocumentRepository,
	txManager repositories.TransactionManager,
	contentAnalyzer docsysSvc.ContentAnalyzer,
	authorizer docsysSvc.DocumentAuthorizer,
	logger *slog.Logger,
) docsysSvc.VersionService {
	return &versionService{
		versionRepo:     versionRepo,
		docRepo:         docRepo,
		txManager:       txManager,
		contentAnalyzer: contentAnalyzer,
		authorizer:      authorizer,
		logger:          logger,
	}
}

func (s *versionService) ListVersions(ctx context.Context, userID, documentID string) ([]models.DocumentVersion, error) {
	if _, err := s.authorizer.CanView(ctx, userID, documentID); err != nil {
		return nil, err
	}
	return s.versionRepo.ListByDocument(ctx, documentID)
}

// CreateVersion snapshots the document's current title and content
func (s *versionService) CreateVersion(ctx context.Context, userID, documentID string) (*models.DocumentVersion, error) {
	access, err := s.authorizer.CanEdit(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	v := snapshot(access.Document, userID)
	if err := s.versionRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("version created",
		"document_id", documentID,
		"version", v.Version,
		"user_id", userID,
	)

	return s.versionRepo.GetByID(ctx, documentID, v.ID)
}

func snapshot(doc *models.Document, userID string) *models.DocumentVersion {
	return &models.DocumentVersion{
		DocumentID: doc.ID,
		UserID:     userID,
		Title:      doc.Title,
		Content:    doc.Content,
	}
}

func (s *versionService) GetVersion(ctx context.Context, userID, documentID, versionID string) (*models.DocumentVersion, error) {
	if _, err := s.authorizer.CanView(ctx, userID, documentID); err != nil {
		return nil, err
	}
	return s.getVersion(ctx, documentID, versionID)
}

func (s *versionService) getVersion(ctx context.Context, documentID, versionID string) (*models.DocumentVersion, error) {
	if err := validation.Validate(versionID, validation.Required, is.UUID); err != nil {
		return nil, domain.NotFound("Version not found")
	}
	return s.versionRepo.GetByID(ctx, documentID, versionID)
}

// RestoreVersion backs up the current state as a new version and then
// overwrites title and content with the chosen version, atomically
func (s *versionService) RestoreVersion(ctx context.Context, userID, documentID, versionID string) (*models.RestoreResult, error) {
	access, err := s.authorizer.CanEdit(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	target, err := s.getVersion(ctx, documentID, versionID)
	if err != nil {
		return nil, err
	}

	doc := access.Document
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.versionRepo.Create(txCtx, snapshot(doc, userID)); err != nil {
			return err
		}

		doc.Title = target.Title
		doc.Content = target.Content
		doc.WordCount = s.contentAnalyzer.CountWords(doc.Content)
		return s.docRepo.Update(txCtx, doc)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("version restored",
		"document_id", documentID,
		"version", target.Version,
		"user_id", userID,
	)

	return &models.RestoreResult{
		Message:  fmt.Sprintf("Restored to version %d", target.Version),
		Document: doc,
	}, nil
}
