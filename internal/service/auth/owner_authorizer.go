package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsystemRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

// ShareAuthorizer implements DocumentAuthorizer using ownership and shares.
// The owner can do everything; a share holder can view, and edit with an
// edit share. Deleted documents are reported as not found to everyone.
type ShareAuthorizer struct {
	docRepo   docsystemRepo.DocumentRepository
	shareRepo docsystemRepo.ShareRepository
}

// NewShareAuthorizer creates a new share-aware authorizer
func NewShareAuthorizer(
	docRepo docsystemRepo.DocumentRepository,
	shareRepo docsystemRepo.ShareRepository,
) docsysSvc.DocumentAuthorizer {
	return &ShareAuthorizer{
		docRepo:   docRepo,
		shareRepo: shareRepo,
	}
}

// resolve loads the live document and the caller's access to it
func (a *ShareAuthorizer) resolve(ctx context.Context, userID, documentID string) (*models.Access, error) {
	if _, err := uuid.Parse(documentID); err != nil {
		return nil, domain.NotFound("Document not found")
	}

	doc, err := a.docRepo.GetByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if doc.DeletedAt != nil {
		return nil, domain.NotFound("Document not found")
	}

	if doc.UserID == userID {
		return &models.Access{Document: doc, IsOwner: true, CanEdit: true}, nil
	}

	share, err := a.shareRepo.GetForUser(ctx, documentID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// Hide the document's existence from strangers
			return nil, domain.NotFound("Document not found")
		}
		return nil, fmt.Errorf("check document share: %w", err)
	}

	return &models.Access{
		Document: doc,
		CanEdit:  share.Permission == models.PermissionEdit,
	}, nil
}

// CanView checks the user owns the document or holds any share on it
func (a *ShareAuthorizer) CanView(ctx context.Context, userID, documentID string) (*models.Access, error) {
	return a.resolve(ctx, userID, documentID)
}

// CanEdit checks the user owns the document or holds an edit share
func (a *ShareAuthorizer) CanEdit(ctx context.Context, userID, documentID string) (*models.Access, error) {
	access, err := a.resolve(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if !access.CanEdit {
		return nil, domain.Forbidden("You do not have permission to edit this document")
	}
	return access, nil
}

// IsOwner checks the user owns the document
func (a *ShareAuthorizer) IsOwner(ctx context.Context, userID, documentID string) (*models.Document, error) {
	access, err := a.resolve(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	if !access.IsOwner {
		return nil, domain.Forbidden("Only the document owner can do this")
	}
	return access.Document, nil
}
