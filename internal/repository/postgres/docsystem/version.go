package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
)

// PostgresVersionRepository implements the VersionRepository interface
type PostgresVersionRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewVersionRepository creates a new version repository
func NewVersionRepository(config *postgres.RepositoryConfig) docsysRepo.VersionRepository {
	return &PostgresVersionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create appends a snapshot numbered one past the document's latest
func (r *PostgresVersionRepository) Create(ctx context.Context, v *docsys.DocumentVersion) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, user_id, version, title, content)
		SELECT $1::uuid, $2::uuid, COALESCE(MAX(version), 0) + 1, $3::text, $4::text
		FROM %s WHERE document_id = $1::uuid
		RETURNING id, version, created_at
	`, r.tables.DocumentVersions, r.tables.DocumentVersions)

	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		v.DocumentID,
		v.UserID,
		v.Title,
		v.Content,
	).Scan(&v.ID, &v.Version, &v.CreatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Concurrent version write, retry", ResourceType: "version"}
		}
		return fmt.Errorf("create version: %w", err)
	}
	return nil
}

// ListByDocument lists versions newest first, without content
func (r *PostgresVersionRepository) ListByDocument(ctx context.Context, documentID string) ([]docsys.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.document_id, v.user_id, v.version, v.title, v.created_at,
			u.id, u.email, u.name, u.avatar
		FROM %s v JOIN %s u ON u.id = v.user_id
		WHERE v.document_id = $1
		ORDER BY v.version DESC
	`, r.tables.DocumentVersions, r.tables.Users)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list versions: %w", err)
	}
	defer rows.Close()

	versions := make([]docsys.DocumentVersion, 0)
	for rows.Next() {
		var v docsys.DocumentVersion
		var u models.UserSummary
		err := rows.Scan(&v.ID, &v.DocumentID, &v.UserID, &v.Version, &v.Title, &v.CreatedAt,
			&u.ID, &u.Email, &u.Name, &u.Avatar)
		if err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		v.User = &u
		versions = append(versions, v)
	}
	return versions, rows.Err()
}

// GetByID retrieves one version of a document with content
func (r *PostgresVersionRepository) GetByID(ctx context.Context, documentID, id string) (*docsys.DocumentVersion, error) {
	query := fmt.Sprintf(`
		SELECT v.id, v.document_id, v.user_id, v.version, v.title, v.content, v.created_at,
			u.id, u.email, u.name, u.avatar
		FROM %s v JOIN %s u ON u.id = v.user_id
		WHERE v.document_id = $1 AND v.id = $2
	`, r.tables.DocumentVersions, r.tables.Users)

	var v docsys.DocumentVersion
	var u models.UserSummary
	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, documentID, id).Scan(
		&v.ID, &v.DocumentID, &v.UserID, &v.Version, &v.Title, &v.Content, &v.CreatedAt,
		&u.ID, &u.Email, &u.Name, &u.Avatar,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NotFound("Version not found")
		}
		return nil, fmt.Errorf("get version: %w", err)
	}
	v.User = &u
	return &v, nil
}

// DeleteByDocument removes every version of a document
func (r *PostgresVersionRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentVersions)
	if _, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete versions: %w", err)
	}
	return nil
}
