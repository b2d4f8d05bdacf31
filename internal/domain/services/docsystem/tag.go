package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// TagService manages a user's tags
type TagService interface {
	ListTags(ctx context.Context, userID string) ([]docsystem.Tag, error)

	// GetTag returns the tag with its live documents
	GetTag(ctx context.Context, userID, tagID string) (*docsystem.Tag, error)

	RenameTag(ctx context.Context, userID, tagID string, req *RenameTagRequest) (*docsystem.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID string) error
}

// RenameTagRequest renames a tag
type RenameTagRequest struct {
	Name string `json:"name"`
}
