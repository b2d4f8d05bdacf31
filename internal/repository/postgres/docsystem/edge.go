package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
)

// PostgresEdgeRepository implements the EdgeRepository interface
type PostgresEdgeRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewEdgeRepository creates a new edge repository
func NewEdgeRepository(config *postgres.RepositoryConfig) docsysRepo.EdgeRepository {
	return &PostgresEdgeRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert sets the weight of from→to
func (r *PostgresEdgeRepository) Upsert(ctx context.Context, fromID, toID string, weight float64) (*docsys.Edge, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (from_document_id, to_document_id, weight)
		VALUES ($1, $2, $3)
		ON CONFLICT (from_document_id, to_document_id)
		DO UPDATE SET weight = EXCLUDED.weight, deleted_at = NULL, updated_at = NOW()
		RETURNING id, from_document_id, to_document_id, weight, created_at, updated_at
	`, r.tables.Edges)

	var e docsys.Edge
	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, fromID, toID, weight).Scan(
		&e.ID, &e.FromDocumentID, &e.ToDocumentID, &e.Weight, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert edge: %w", err)
	}
	return &e, nil
}

// liveEdgesFor selects live edges between two live documents of $1
func (r *PostgresEdgeRepository) liveEdgesFor(columns string) string {
	return fmt.Sprintf(`
		SELECT %s
		FROM %s e
		JOIN %s a ON a.id = e.from_document_id
		JOIN %s b ON b.id = e.to_document_id
		WHERE e.deleted_at IS NULL
		AND a.user_id = $1 AND a.deleted_at IS NULL
		AND b.user_id = $1 AND b.deleted_at IS NULL
		ORDER BY e.weight DESC, e.created_at
	`, columns, r.tables.Edges, r.tables.Documents, r.tables.Documents)
}

// ListByUser lists live edges whose both ends are the user's live documents
func (r *PostgresEdgeRepository) ListByUser(ctx context.Context, userID string) ([]docsys.Edge, error) {
	query := r.liveEdgesFor(`e.id, e.from_document_id, e.to_document_id, e.weight, e.created_at, e.updated_at`)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	defer rows.Close()

	edges := make([]docsys.Edge, 0)
	for rows.Next() {
		var e docsys.Edge
		if err := rows.Scan(&e.ID, &e.FromDocumentID, &e.ToDocumentID, &e.Weight, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	return edges, rows.Err()
}

// ListRelations is ListByUser with endpoint titles
func (r *PostgresEdgeRepository) ListRelations(ctx context.Context, userID string) ([]docsys.Relation, error) {
	query := r.liveEdgesFor(`e.id, a.id, a.title, b.id, b.title, e.weight`)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list relations: %w", err)
	}
	defer rows.Close()

	relations := make([]docsys.Relation, 0)
	for rows.Next() {
		var rel docsys.Relation
		if err := rows.Scan(&rel.ID, &rel.From.ID, &rel.From.Title, &rel.To.ID, &rel.To.Title, &rel.Weight); err != nil {
			return nil, fmt.Errorf("scan relation: %w", err)
		}
		relations = append(relations, rel)
	}
	return relations, rows.Err()
}

// DeleteByDocument removes edges in both directions
func (r *PostgresEdgeRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE from_document_id = $1 OR to_document_id = $1`, r.tables.Edges)
	if _, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete edges: %w", err)
	}
	return nil
}
