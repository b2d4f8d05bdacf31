package docsystem

import (
	"context"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

type tagService struct {
	tagRepo   docsysRepo.TagRepository
	txManager repositories.TransactionManager
	logger    *slog.Logger
}

// NewTagService creates a new tag service
func NewTagService(
	tagRepo docsysRepo.TagRepository,
	txManager repositories.TransactionManager,
	logger *slog.Logger,
) docsysSvc.TagService {
	return &tagService{tagRepo: tagRepo, txManager: txManager, logger: logger}
}

func (s *tagService) ListTags(ctx context.Context, userID string) ([]models.Tag, error) {
	return s.tagRepo.ListByUser(ctx, userID)
}

func (s *tagService) getOwned(ctx context.Context, userID, tagID string) (*models.Tag, error) {
	if err := validation.Validate(tagID, validation.Required, is.UUID); err != nil {
		return nil, domain.NotFound("Tag not found")
	}
	return s.tagRepo.GetByID(ctx, tagID, userID)
}

// GetTag returns a tag with the live documents carrying it
func (s *tagService) GetTag(ctx context.Context, userID, tagID string) (*models.Tag, error) {
	tag, err := s.getOwned(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}

	tag.Documents, err = s.tagRepo.ListDocuments(ctx, tag.ID)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// RenameTag renames a tag; names are unique per user
func (s *tagService) RenameTag(ctx context.Context, userID, tagID string, req *docsysSvc.RenameTagRequest) (*models.Tag, error) {
	req.Name = strings.TrimSpace(req.Name)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required.Error("tag name is required"),
			validation.RuneLength(1, config.MaxTagNameLength),
		),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	tag, err := s.getOwned(ctx, userID, tagID)
	if err != nil {
		return nil, err
	}
	if tag.Name == req.Name {
		return tag, nil
	}

	exists, err := s.tagRepo.NameExists(ctx, userID, req.Name, tag.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.Invalid("A tag with this name already exists")
	}

	if err := s.tagRepo.Rename(ctx, tag.ID, req.Name); err != nil {
		return nil, err
	}

	s.logger.Info("tag renamed", "id", tag.ID, "from", tag.Name, "to", req.Name)
	return s.tagRepo.GetByID(ctx, tag.ID, userID)
}

// DeleteTag soft deletes a tag and detaches it from documents
func (s *tagService) DeleteTag(ctx context.Context, userID, tagID string) error {
	tag, err := s.getOwned(ctx, userID, tagID)
	if err != nil {
		return err
	}

	// Unlinking and marking deleted commit together
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		return s.tagRepo.SoftDelete(txCtx, tag.ID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("tag deleted", "id", tag.ID, "user_id", userID)
	return nil
}
