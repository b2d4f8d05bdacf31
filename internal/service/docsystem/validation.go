package docsystem

import (
	"context"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
)

// ResourceValidator validates that parent resources exist, belong to the
// user and are not soft-deleted before operating on child resources
type ResourceValidator struct {
	folderRepo docsysRepo.FolderRepository
}

// NewResourceValidator creates a new resource validator
func NewResourceValidator(folderRepo docsysRepo.FolderRepository) *ResourceValidator {
	return &ResourceValidator{folderRepo: folderRepo}
}

// ValidateFolder ensures a folder exists, is owned by userID and is not soft-deleted.
// A nil folderID is the root and always valid.
func (v *ResourceValidator) ValidateFolder(ctx context.Context, folderID *string, userID string) error {
	if folderID == nil {
		return nil
	}
	if err := validation.Validate(*folderID, is.UUID); err != nil {
		return domain.NotFound("Folder not found")
	}

	if _, err := v.folderRepo.GetByID(ctx, *folderID, userID); err != nil {
		return fmt.Errorf("invalid folder: %w", err)
	}
	return nil
}

// normalizeFolderID treats an empty folder id as the root
func normalizeFolderID(id *string) *string {
	if id == nil || strings.TrimSpace(*id) == "" {
		return nil
	}
	return id
}

// normalizeTags trims tag names and drops blanks and duplicates, keeping order
func normalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// tagRules validates each tag name
var tagRules = validation.Each(validation.RuneLength(1, config.MaxTagNameLength))

// documentIDRules validates a non-empty list of document ids
var documentIDRules = []validation.Rule{
	validation.Required.Error("at least one document is required"),
	validation.Each(validation.Required, is.UUID),
}
