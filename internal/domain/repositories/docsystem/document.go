package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// DocumentRepository defines data access operations for documents.
// Every read loads the document's tag names.
type DocumentRepository interface {
	// Create creates a new document
	Create(ctx context.Context, doc *docsystem.Document) error

	// GetByID retrieves a document by ID, including soft-deleted ones
	// (DeletedAt is set for those)
	GetByID(ctx context.Context, id string) (*docsystem.Document, error)

	// ListByUser lists the user's live documents, pinned first then most recently updated
	ListByUser(ctx context.Context, userID string) ([]docsystem.Document, error)

	// ListRecent lists the user's most recently updated live documents
	ListRecent(ctx context.Context, userID string, limit int) ([]docsystem.Document, error)

	// GetByIDs returns the live documents among ids that the user owns
	GetByIDs(ctx context.Context, userID string, ids []string) ([]docsystem.Document, error)

	// ListSummaries lists the user's live documents without content
	ListSummaries(ctx context.Context, userID string) ([]docsystem.DocumentSummary, error)

	// ListByFolder lists live documents directly inside a folder
	ListByFolder(ctx context.Context, userID, folderID string) ([]docsystem.DocumentSummary, error)

	// Update persists title, content, word count and folder
	Update(ctx context.Context, doc *docsystem.Document) error

	// SetPinned sets the pin flag
	SetPinned(ctx context.Context, id string, pinned bool) error

	// SoftDelete moves a document to the trash
	SoftDelete(ctx context.Context, id string) error

	// Restore takes a document out of the trash
	Restore(ctx context.Context, id string) error

	// HardDelete removes the document row and its tag links
	HardDelete(ctx context.Context, id string) error

	// BulkMove moves the user's live documents among ids; returns the number moved
	BulkMove(ctx context.Context, userID string, ids []string, folderID *string) (int, error)

	// BulkSoftDelete trashes the user's live documents among ids; returns the number trashed
	BulkSoftDelete(ctx context.Context, userID string, ids []string) (int, error)

	// ListTrash lists the user's soft-deleted documents, most recently deleted first
	ListTrash(ctx context.Context, userID string) ([]docsystem.Document, error)

	// Search does a case-insensitive substring match over title, content and tag names
	Search(ctx context.Context, userID, query string, limit int) ([]docsystem.Document, error)

	// SearchTitles matches titles only; an empty query returns the most recent documents
	SearchTitles(ctx context.Context, userID, query string, limit int) ([]docsystem.DocumentRef, error)

	// FindByTitles returns the user's live documents whose title is one of titles
	FindByTitles(ctx context.Context, userID string, titles []string) ([]docsystem.DocumentRef, error)

	// ListContaining lists the user's live documents (other than excludeID)
	// whose content contains needle, case-insensitively
	ListContaining(ctx context.Context, userID, excludeID, needle string) ([]docsystem.Document, error)
}
