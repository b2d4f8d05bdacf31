package docsystem

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

type shareService struct {
	shareRepo  docsysRepo.ShareRepository
	userRepo   repositories.UserRepository
	authorizer docsysSvc.DocumentAuthorizer
	logger     *slog.Logger
}

// NewShareService creates a new share service
func NewShareService(
	shareRepo docsysRepo.ShareRepository,
	userRepo repositories.UserRepository,
	authorizer docsysSvc.DocumentAuthorizer,
	logger *slog.Logger,
) docsysSvc.ShareService {
	return &shareService{
		shareRepo:  shareRepo,
		userRepo:   userRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

var permissionRule = validation.In(models.PermissionView, models.PermissionEdit).
	Error("permission must be view or edit")

// ListShares lists the shares of an owned document
func (s *shareService) ListShares(ctx context.Context, userID, documentID string) ([]models.DocumentShare, error) {
	if _, err := s.authorizer.IsOwner(ctx, userID, documentID); err != nil {
		return nil, err
	}
	return s.shareRepo.ListByDocument(ctx, documentID)
}

// CreateShare grants the user with req.Email access to an owned document
func (s *shareService) CreateShare(ctx context.Context, userID, documentID string, req *docsysSvc.CreateShareRequest) (*models.DocumentShare, error) {
	req.Email = strings.TrimSpace(req.Email)
	if req.Permission == "" {
		req.Permission = models.PermissionView
	}
	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, validation.Required, is.EmailFormat),
		validation.Field(&req.Permission, permissionRule),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	if _, err := s.authorizer.IsOwner(ctx, userID, documentID); err != nil {
		return nil, err
	}

	target, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if target.ID == userID {
		return nil, domain.Invalid("Cannot share with yourself")
	}

	share := &models.DocumentShare{
		DocumentID: documentID,
		UserID:     target.ID,
		Permission: req.Permission,
	}
	if err := s.shareRepo.Create(ctx, share); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			return nil, domain.Invalid("Document already shared with this user")
		}
		return nil, err
	}
	summary := target.Summary()
	share.User = &summary

	s.logger.Info("document shared",
		"document_id", documentID,
		"share_id", share.ID,
		"recipient_id", target.ID,
		"permission", share.Permission,
	)

	return share, nil
}

func (s *shareService) getShare(ctx context.Context, userID, documentID, shareID string) (*models.DocumentShare, error) {
	if _, err := s.authorizer.IsOwner(ctx, userID, documentID); err != nil {
		return nil, err
	}
	if err := validation.Validate(shareID, validation.Required, is.UUID); err != nil {
		return nil, domain.NotFound("Share not found")
	}
	return s.shareRepo.GetByID(ctx, documentID, shareID)
}

// UpdateShare changes the permission of a share on an owned document
func (s *shareService) UpdateShare(ctx context.Context, userID, documentID, shareID string, req *docsysSvc.UpdateShareRequest) (*models.DocumentShare, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Permission, validation.Required, permissionRule),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	share, err := s.getShare(ctx, userID, documentID, shareID)
	if err != nil {
		return nil, err
	}

	if err := s.shareRepo.UpdatePermission(ctx, share.ID, req.Permission); err != nil {
		return nil, err
	}
	share.Permission = req.Permission
	share.UpdatedAt = time.Now()

	s.logger.Info("share updated", "share_id", share.ID, "permission", share.Permission)
	return share, nil
}

// DeleteShare revokes a share on an owned document
func (s *shareService) DeleteShare(ctx context.Context, userID, documentID, shareID string) error {
	share, err := s.getShare(ctx, userID, documentID, shareID)
	if err != nil {
		return err
	}

	if err := s.shareRepo.Delete(ctx, share.ID); err != nil {
		return err
	}

	s.logger.Info("share deleted", "share_id", share.ID, "document_id", documentID)
	return nil
}

// SharedWithMe lists live documents other users shared with userID
func (s *shareService) SharedWithMe(ctx context.Context, userID string) ([]models.SharedDocument, error) {
	return s.shareRepo.ListSharedWith(ctx, userID)
}
