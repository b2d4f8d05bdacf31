package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// EdgeRepository defines data access operations for document relations
type EdgeRepository interface {
	// Upsert sets the weight of from→to, reviving a soft-deleted edge
	Upsert(ctx context.Context, fromID, toID string, weight float64) (*docsystem.Edge, error)

	// ListByUser lists live edges whose both ends are the user's live documents
	ListByUser(ctx context.Context, userID string) ([]docsystem.Edge, error)

	// ListRelations is ListByUser with endpoint titles
	ListRelations(ctx context.Context, userID string) ([]docsystem.Relation, error)

	// DeleteByDocument removes edges in both directions
	DeleteByDocument(ctx context.Context, documentID string) error
}
