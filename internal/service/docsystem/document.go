package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

// documentService implements the DocumentService interface
type documentService struct {
	docRepo         docsysRepo.DocumentRepository
	tagRepo         docsysRepo.TagRepository
	edgeRepo        docsysRepo.EdgeRepository
	txManager       repositories.TransactionManager
	contentAnalyzer docsysSvc.ContentAnalyzer
	authorizer      docsysSvc.DocumentAuthorizer
	validator       *ResourceValidator
	logger          *slog.Logger
}

// NewDocumentService creates a new document service
func NewDocumentService(
	docRepo docsysRepo.DocumentRepository,
	tagRepo docsysRepo.TagRepository,
	edgeRepo docsysRepo.EdgeRepository,
	txManager repositories.TransactionManager,
	contentAnalyzer docsysSvc.ContentAnalyzer,
	authorizer docsysSvc.DocumentAuthorizer,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.DocumentService {
	return &documentService{
		docRepo:         docRepo,
		tagRepo:         tagRepo,
		edgeRepo:        edgeRepo,
		txManager:       txManager,
		contentAnalyzer: contentAnalyzer,
		authorizer:      authorizer,
		validator:       validator,
		logger:          logger,
	}
}

// ListDocuments returns the user's live documents with their edges
func (s *documentService) ListDocuments(ctx context.Context, userID string) ([]models.Document, error) {
	docs, err := s.docRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	edges, err := s.edgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	for i := range docs {
		attachEdges(&docs[i], edges)
	}
	return docs, nil
}

// attachEdges fills EdgesFrom and EdgesTo of doc from edges
func attachEdges(doc *models.Document, edges []models.Edge) {
	doc.EdgesFrom = make([]models.Edge, 0)
	doc.EdgesTo = make([]models.Edge, 0)
	for _, e := range edges {
		if e.FromDocumentID == doc.ID {
			doc.EdgesFrom = append(doc.EdgesFrom, e)
		}
		if e.ToDocumentID == doc.ID {
			doc.EdgesTo = append(doc.EdgesTo, e)
		}
	}
}

// CreateDocument creates a document and connects its tags, creating
// missing tags for the user
func (s *documentService) CreateDocument(ctx context.Context, userID string, req *docsysSvc.CreateDocumentRequest) (*models.Document, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Tags = normalizeTags(req.Tags)
	req.FolderID = normalizeFolderID(req.FolderID)

	if err := s.validateCreateRequest(req); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateFolder(ctx, req.FolderID, userID); err != nil {
		return nil, err
	}

	now := time.Now()
	doc := &models.Document{
		UserID:    userID,
		FolderID:  req.FolderID,
		Title:     req.Title,
		Content:   req.Content,
		WordCount: s.contentAnalyzer.CountWords(req.Content),
		Tags:      req.Tags,
		EdgesFrom: []models.Edge{},
		EdgesTo:   []models.Edge{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Create(txCtx, doc); err != nil {
			return err
		}
		return setTags(txCtx, s.tagRepo, userID, doc.ID, doc.Tags)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"user_id", userID,
		"folder_id", doc.FolderID,
		"tags", len(doc.Tags),
		"word_count", doc.WordCount,
	)

	return doc, nil
}

// setTags upserts each tag name for the user and replaces the document's links
func setTags(ctx context.Context, tagRepo docsysRepo.TagRepository, userID, documentID string, names []string) error {
	ids := make([]string, 0, len(names))
	for _, name := range names {
		tag, err := tagRepo.Upsert(ctx, userID, name)
		if err != nil {
			return err
		}
		ids = append(ids, tag.ID)
	}
	return tagRepo.SetDocumentTags(ctx, documentID, ids)
}

// GetDocument returns a document the user owns or holds a share on
func (s *documentService) GetDocument(ctx context.Context, userID, documentID string) (*models.Document, error) {
	access, err := s.authorizer.CanView(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	doc := access.Document
	edges, err := s.edgeRepo.ListByUser(ctx, doc.UserID)
	if err != nil {
		return nil, err
	}
	attachEdges(doc, edges)

	return doc, nil
}

// UpdateDocument changes the fields present in req. Share holders with edit
// permission may change title and content; tags and folder are owner only.
func (s *documentService) UpdateDocument(ctx context.Context, userID, documentID string, req *docsysSvc.UpdateDocumentRequest) (*models.Document, error) {
	access, err := s.authorizer.CanEdit(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	doc := access.Document

	if req.Title != nil {
		trimmed := strings.TrimSpace(*req.Title)
		req.Title = &trimmed
	}
	if req.Tags != nil {
		tags := normalizeTags(*req.Tags)
		req.Tags = &tags
	}
	if err := s.validateUpdateRequest(req); err != nil {
		return nil, err
	}

	if !access.IsOwner && (req.Tags != nil || req.FolderID.Present) {
		return nil, domain.Forbidden("Only the document owner can change tags or folder")
	}

	if req.Title != nil {
		doc.Title = *req.Title
	}
	if req.Content != nil {
		doc.Content = *req.Content
		doc.WordCount = s.contentAnalyzer.CountWords(doc.Content)
	}
	if req.FolderID.Present {
		folderID := req.FolderID.OrNil()
		if err := s.validator.ValidateFolder(ctx, folderID, doc.UserID); err != nil {
			return nil, err
		}
		doc.FolderID = folderID
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.docRepo.Update(txCtx, doc); err != nil {
			return err
		}
		if req.Tags != nil {
			doc.Tags = *req.Tags
			return setTags(txCtx, s.tagRepo, doc.UserID, doc.ID, doc.Tags)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	edges, err := s.edgeRepo.ListByUser(ctx, doc.UserID)
	if err != nil {
		return nil, err
	}
	attachEdges(doc, edges)

	s.logger.Info("document updated",
		"id", doc.ID,
		"user_id", userID,
		"owner", access.IsOwner,
	)

	return doc, nil
}

// DeleteDocument moves an owned document to the trash
func (s *documentService) DeleteDocument(ctx context.Context, userID, documentID string) error {
	if _, err := s.authorizer.IsOwner(ctx, userID, documentID); err != nil {
		return err
	}

	if err := s.docRepo.SoftDelete(ctx, documentID); err != nil {
		return err
	}

	s.logger.Info("document trashed", "id", documentID, "user_id", userID)
	return nil
}

// TogglePin flips the pin flag of an owned document
func (s *documentService) TogglePin(ctx context.Context, userID, documentID string) (*models.PinResult, error) {
	doc, err := s.authorizer.IsOwner(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	pinned := !doc.IsPinned
	if err := s.docRepo.SetPinned(ctx, documentID, pinned); err != nil {
		return nil, err
	}

	s.logger.Info("document pin toggled", "id", documentID, "pinned", pinned)
	return &models.PinResult{ID: doc.ID, Title: doc.Title, IsPinned: pinned}, nil
}

// MoveDocument moves an owned document into a folder, or to the root
func (s *documentService) MoveDocument(ctx context.Context, userID, documentID string, req *docsysSvc.MoveDocumentRequest) (*models.Document, error) {
	doc, err := s.authorizer.IsOwner(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}

	folderID := normalizeFolderID(req.FolderID)
	if err := s.validator.ValidateFolder(ctx, folderID, userID); err != nil {
		return nil, err
	}

	doc.FolderID = folderID
	if err := s.docRepo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document moved", "id", documentID, "folder_id", folderID)
	return doc, nil
}

// BulkMove moves the user's live documents among req.DocumentIDs
func (s *documentService) BulkMove(ctx context.Context, userID string, req *docsysSvc.BulkMoveRequest) (*models.BulkResult, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentIDs, documentIDRules...),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	folderID := normalizeFolderID(req.FolderID)
	if err := s.validator.ValidateFolder(ctx, folderID, userID); err != nil {
		return nil, err
	}

	count, err := s.docRepo.BulkMove(ctx, userID, req.DocumentIDs, folderID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("documents moved", "user_id", userID, "folder_id", folderID, "count", count)
	return &models.BulkResult{
		Message: fmt.Sprintf("%d documents moved", count),
		Count:   count,
	}, nil
}

// BulkDelete trashes the user's live documents among req.DocumentIDs
func (s *documentService) BulkDelete(ctx context.Context, userID string, req *docsysSvc.BulkDeleteRequest) (*models.BulkResult, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.DocumentIDs, documentIDRules...),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	count, err := s.docRepo.BulkSoftDelete(ctx, userID, req.DocumentIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Info("documents trashed", "user_id", userID, "count", count)
	return &models.BulkResult{
		Message: fmt.Sprintf("%d documents deleted", count),
		Count:   count,
	}, nil
}

func (s *documentService) validateCreateRequest(req *docsysSvc.CreateDocumentRequest) error {
	return domain.FromValidation(validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxDocumentTitleLength),
		),
		validation.Field(&req.Tags, tagRules),
	))
}

func (s *documentService) validateUpdateRequest(req *docsysSvc.UpdateDocumentRequest) error {
	return domain.FromValidation(validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.When(req.Title != nil, validation.Required),
			validation.RuneLength(1, config.MaxDocumentTitleLength),
		),
		validation.Field(&req.Tags, validation.By(func(value any) error {
			tags, _ := value.(*[]string)
			if tags == nil {
				return nil
			}
			return validation.Validate(*tags, tagRules)
		})),
	))
}
