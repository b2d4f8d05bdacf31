package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// VersionService keeps snapshots of a document's title and content
type VersionService interface {
	ListVersions(ctx context.Context, userID, documentID string) ([]docsystem.DocumentVersion, error)

	// CreateVersion snapshots the current state (edit access)
	CreateVersion(ctx context.Context, userID, documentID string) (*docsystem.DocumentVersion, error)

	GetVersion(ctx context.Context, userID, documentID, versionID string) (*docsystem.DocumentVersion, error)

	// RestoreVersion snapshots the current state and then overwrites it with
	// the chosen version, atomically
	RestoreVersion(ctx context.Context, userID, documentID, versionID string) (*docsystem.RestoreResult, error)
}
