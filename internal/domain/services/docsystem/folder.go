package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// FolderService handles folder business logic
type FolderService interface {
	ListFolders(ctx context.Context, userID string) ([]docsystem.Folder, error)
	CreateFolder(ctx context.Context, userID string, req *CreateFolderRequest) (*docsystem.Folder, error)

	// GetFolder returns the folder with its documents and child folders
	GetFolder(ctx context.Context, userID, folderID string) (*docsystem.Folder, error)

	// UpdateFolder renames and/or moves a folder
	UpdateFolder(ctx context.Context, userID, folderID string, req *UpdateFolderRequest) (*docsystem.Folder, error)

	// DeleteFolder soft deletes an empty folder
	DeleteFolder(ctx context.Context, userID, folderID string) error
}

// TreeService defines operations for building document trees
type TreeService interface {
	// GetTree builds the nested folder/document tree of a user
	GetTree(ctx context.Context, userID string) (*docsystem.TreeNode, error)
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string  `json:"name"`
	ParentID *string `json:"parentId"` // nil for root
}

// UpdateFolderRequest represents a folder update request.
// ParentID null moves the folder to the root.
type UpdateFolderRequest struct {
	Name     *string                 `json:"name"`
	ParentID httputil.OptionalString `json:"parentId"`
}
