package docsystem

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

const folderNameTaken = "A folder with this name already exists at this location"

type folderService struct {
	folderRepo docsysRepo.FolderRepository
	docRepo    docsysRepo.DocumentRepository
	validator  *ResourceValidator
	logger     *slog.Logger
}

// NewFolderService creates a new folder service
func NewFolderService(
	folderRepo docsysRepo.FolderRepository,
	docRepo docsysRepo.DocumentRepository,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.FolderService {
	return &folderService{
		folderRepo: folderRepo,
		docRepo:    docRepo,
		validator:  validator,
		logger:     logger,
	}
}

// ListFolders lists the user's folders ordered by name
func (s *folderService) ListFolders(ctx context.Context, userID string) ([]models.Folder, error) {
	return s.folderRepo.ListByUser(ctx, userID)
}

// CreateFolder creates a folder under an optional parent
func (s *folderService) CreateFolder(ctx context.Context, userID string, req *docsysSvc.CreateFolderRequest) (*models.Folder, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.ParentID = normalizeFolderID(req.ParentID)

	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("folder name is required"),
			validation.RuneLength(1, config.MaxFolderNameLength),
		),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	if err := s.validator.ValidateFolder(ctx, req.ParentID, userID); err != nil {
		return nil, parentNotFound(err)
	}

	exists, err := s.folderRepo.NameExists(ctx, userID, req.ParentID, req.Name, "")
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Invalid(folderNameTaken)
	}

	folder := &models.Folder{
		UserID:   userID,
		ParentID: req.ParentID,
		Name:     req.Name,
	}
	if err := s.folderRepo.Create(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder created",
		"id", folder.ID,
		"name", folder.Name,
		"user_id", userID,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// parentNotFound renames a missing folder error for parent lookups
func parentNotFound(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return domain.NotFound("Parent folder not found")
	}
	return err
}

// GetFolder returns a folder with its documents and child folders
func (s *folderService) GetFolder(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	folder, err := s.getOwned(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	folder.Documents, err = s.docRepo.ListByFolder(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}
	folder.Children, err = s.folderRepo.ListChildren(ctx, folderID, userID)
	if err != nil {
		return nil, err
	}

	return folder, nil
}

func (s *folderService) getOwned(ctx context.Context, userID, folderID string) (*models.Folder, error) {
	if err := validation.Validate(folderID, validation.Required, is.UUID); err != nil {
		return nil, domain.NotFound("Folder not found")
	}
	return s.folderRepo.GetByID(ctx, folderID, userID)
}

// UpdateFolder renames and/or moves a folder
func (s *folderService) UpdateFolder(ctx context.Context, userID, folderID string, req *docsysSvc.UpdateFolderRequest) (*models.Folder, error) {
	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.When(req.Name != nil, validation.Required.Error("folder name is required")),
			validation.RuneLength(1, config.MaxFolderNameLength),
		),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	folder, err := s.getOwned(ctx, userID, folderID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		folder.Name = *req.Name
	}

	// Tri-state: only move when the field was present in the request
	if req.ParentID.Present {
		parentID := req.ParentID.OrNil()
		if parentID != nil {
			if *parentID == folderID {
				return nil, domain.Invalid("Cannot move folder to itself")
			}
			if err := s.validator.ValidateFolder(ctx, parentID, userID); err != nil {
				return nil, parentNotFound(err)
			}
			if err := s.validateNoCircularReference(ctx, userID, folderID, *parentID); err != nil {
				return nil, err
			}
		}
		folder.ParentID = parentID
	}

	exists, err := s.folderRepo.NameExists(ctx, userID, folder.ParentID, folder.Name, folder.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, &domain.ConflictError{Message: folderNameTaken, ResourceType: "folder"}
	}

	if err := s.folderRepo.Update(ctx, folder); err != nil {
		return nil, err
	}

	s.logger.Info("folder updated",
		"id", folder.ID,
		"name", folder.Name,
		"parent_id", folder.ParentID,
	)

	return folder, nil
}

// validateNoCircularReference walks up from targetParentID and fails if it
// reaches folderID. The walk is bounded by MaxFolderDepth.
func (s *folderService) validateNoCircularReference(ctx context.Context, userID, folderID, targetParentID string) error {
	current := &targetParentID
	for depth := 0; current != nil && depth < config.MaxFolderDepth; depth++ {
		if *current == folderID {
			return domain.Invalid("Cannot move folder to its own descendant")
		}

		parent, err := s.folderRepo.GetByID(ctx, *current, userID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil
			}
			return err
		}
		current = parent.ParentID
	}

	if current != nil {
		return domain.Invalid("Folder hierarchy is too deep")
	}
	return nil
}

// DeleteFolder soft deletes a folder without live children or documents
func (s *folderService) DeleteFolder(ctx context.Context, userID, folderID string) error {
	folder, err := s.getOwned(ctx, userID, folderID)
	if err != nil {
		return err
	}

	hasContents, err := s.folderRepo.HasContents(ctx, folder.ID)
	if err != nil {
		return err
	}
	if hasContents {
		return domain.Invalid("Cannot delete folder with contents. Move or delete contents first.")
	}

	if err := s.folderRepo.SoftDelete(ctx, folder.ID); err != nil {
		return err
	}

	s.logger.Info("folder deleted", "id", folder.ID, "user_id", userID)
	return nil
}
