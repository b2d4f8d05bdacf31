package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// TagRepository defines data access operations for tags
type TagRepository interface {
	// Upsert returns the user's tag with this name, creating it or reviving a
	// soft-deleted one
	Upsert(ctx context.Context, userID, name string) (*docsystem.Tag, error)

	// SetDocumentTags replaces a document's tag links
	SetDocumentTags(ctx context.Context, documentID string, tagIDs []string) error

	// ListByUser lists live tags ordered by name with live document counts
	ListByUser(ctx context.Context, userID string) ([]docsystem.Tag, error)

	// GetByID retrieves a live tag owned by userID
	GetByID(ctx context.Context, id, userID string) (*docsystem.Tag, error)

	// ListDocuments lists the live documents carrying a tag
	ListDocuments(ctx context.Context, tagID string) ([]docsystem.DocumentSummary, error)

	// NameExists reports whether another tag of the user, live or soft-deleted,
	// has this name
	NameExists(ctx context.Context, userID, name, excludeID string) (bool, error)

	// Rename changes a tag's name
	Rename(ctx context.Context, id, name string) error

	// SoftDelete marks a tag deleted and drops its document links
	SoftDelete(ctx context.Context, id string) error
}
