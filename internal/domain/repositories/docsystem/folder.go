package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// FolderRepository defines data access operations for folders.
// Reads ignore soft-deleted folders.
type FolderRepository interface {
	// Create creates a new folder
	Create(ctx context.Context, folder *docsystem.Folder) error

	// GetByID retrieves a live folder owned by userID
	GetByID(ctx context.Context, id, userID string) (*docsystem.Folder, error)

	// ListByUser lists the user's folders ordered by name with document counts
	ListByUser(ctx context.Context, userID string) ([]docsystem.Folder, error)

	// ListChildren lists the direct child folders of a folder
	ListChildren(ctx context.Context, id, userID string) ([]docsystem.Folder, error)

	// NameExists reports whether a sibling named name exists under parentID,
	// ignoring excludeID
	NameExists(ctx context.Context, userID string, parentID *string, name, excludeID string) (bool, error)

	// Update persists name and parent
	Update(ctx context.Context, folder *docsystem.Folder) error

	// HasContents reports whether the folder holds live child folders or documents
	HasContents(ctx context.Context, id string) (bool, error)

	// SoftDelete marks the folder deleted
	SoftDelete(ctx context.Context, id string) error
}
