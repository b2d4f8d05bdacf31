package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// VersionRepository defines data access operations for document versions
type VersionRepository interface {
	// Create appends a snapshot; the repository assigns Version as max+1
	Create(ctx context.Context, version *docsystem.DocumentVersion) error

	// ListByDocument lists versions newest first, without content
	ListByDocument(ctx context.Context, documentID string) ([]docsystem.DocumentVersion, error)

	// GetByID retrieves one version of a document with content
	GetByID(ctx context.Context, documentID, id string) (*docsystem.DocumentVersion, error)

	// DeleteByDocument removes every version of a document
	DeleteByDocument(ctx context.Context, documentID string) error
}
