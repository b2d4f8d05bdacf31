package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// DocumentAuthorizer resolves what a user may do with a document.
// Owners may do everything; share holders may view, and edit with an edit share.
// Soft-deleted documents are not found.
type DocumentAuthorizer interface {
	// CanView returns the access of an owner or any share holder
	CanView(ctx context.Context, userID, documentID string) (*docsystem.Access, error)

	// CanEdit requires ownership or an edit share
	CanEdit(ctx context.Context, userID, documentID string) (*docsystem.Access, error)

	// IsOwner requires ownership
	IsOwner(ctx context.Context, userID, documentID string) (*docsystem.Document, error)
}

// DocumentService handles document business logic
type DocumentService interface {
	ListDocuments(ctx context.Context, userID string) ([]docsystem.Document, error)
	CreateDocument(ctx context.Context, userID string, req *CreateDocumentRequest) (*docsystem.Document, error)
	GetDocument(ctx context.Context, userID, documentID string) (*docsystem.Document, error)
	UpdateDocument(ctx context.Context, userID, documentID string, req *UpdateDocumentRequest) (*docsystem.Document, error)

	// DeleteDocument moves the document to the trash
	DeleteDocument(ctx context.Context, userID, documentID string) error

	TogglePin(ctx context.Context, userID, documentID string) (*docsystem.PinResult, error)
	MoveDocument(ctx context.Context, userID, documentID string, req *MoveDocumentRequest) (*docsystem.Document, error)
	BulkMove(ctx context.Context, userID string, req *BulkMoveRequest) (*docsystem.BulkResult, error)
	BulkDelete(ctx context.Context, userID string, req *BulkDeleteRequest) (*docsystem.BulkResult, error)
}

// TrashService handles soft-deleted documents
type TrashService interface {
	ListTrash(ctx context.Context, userID string) ([]docsystem.TrashItem, error)
	Restore(ctx context.Context, userID, documentID string) (*docsystem.Document, error)

	// DeletePermanently removes the document and everything hanging off it
	DeletePermanently(ctx context.Context, userID, documentID string) error
}

// SearchService finds documents by substring
type SearchService interface {
	Search(ctx context.Context, userID, query string) ([]docsystem.SearchResult, error)
	SearchTitles(ctx context.Context, userID, query string) ([]docsystem.DocumentRef, error)
}

// CreateDocumentRequest represents a document creation request
type CreateDocumentRequest struct {
	Title    string   `json:"title"`
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	FolderID *string  `json:"folderId"`
}

// UpdateDocumentRequest changes only the fields present in the body.
// FolderID null moves the document to the root.
type UpdateDocumentRequest struct {
	Title    *string                 `json:"title"`
	Content  *string                 `json:"content"`
	Tags     *[]string               `json:"tags"`
	FolderID httputil.OptionalString `json:"folderId"`
}

// MoveDocumentRequest moves a document; nil FolderID is the root
type MoveDocumentRequest struct {
	FolderID *string `json:"folderId"`
}

// BulkMoveRequest moves several documents at once
type BulkMoveRequest struct {
	DocumentIDs []string `json:"documentIds"`
	FolderID    *string  `json:"folderId"`
}

// BulkDeleteRequest trashes several documents at once
type BulkDeleteRequest struct {
	DocumentIDs []string `json:"documentIds"`
}
