package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// ShareRepository defines data access operations for document shares
type ShareRepository interface {
	// Create stores a share. Returns *domain.ConflictError for a duplicate
	// (document, user) pair.
	Create(ctx context.Context, share *docsystem.DocumentShare) error

	// GetByID retrieves a share of a document
	GetByID(ctx context.Context, documentID, id string) (*docsystem.DocumentShare, error)

	// GetForUser returns the share granting userID access to a document
	GetForUser(ctx context.Context, documentID, userID string) (*docsystem.DocumentShare, error)

	// ListByDocument lists shares newest first, with recipient summaries
	ListByDocument(ctx context.Context, documentID string) ([]docsystem.DocumentShare, error)

	// ListSharedWith lists live documents shared with userID
	ListSharedWith(ctx context.Context, userID string) ([]docsystem.SharedDocument, error)

	// UpdatePermission changes a share's permission
	UpdatePermission(ctx context.Context, id string, permission docsystem.Permission) error

	// Delete removes a share
	Delete(ctx context.Context, id string) error

	// DeleteByDocument removes every share of a document
	DeleteByDocument(ctx context.Context, documentID string) error
}
