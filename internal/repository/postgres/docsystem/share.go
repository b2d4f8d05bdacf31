package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
)

// PostgresShareRepository implements the ShareRepository interface
type PostgresShareRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewShareRepository creates a new share repository
func NewShareRepository(config *postgres.RepositoryConfig) docsysRepo.ShareRepository {
	return &PostgresShareRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresShareRepository) selectShares() string {
	return fmt.Sprintf(`
		SELECT s.id, s.document_id, s.user_id, s.permission, s.created_at, s.updated_at,
			u.id, u.email, u.name, u.avatar
		FROM %s s JOIN %s u ON u.id = s.user_id
	`, r.tables.DocumentShares, r.tables.Users)
}

func scanShare(row pgx.Row) (*docsys.DocumentShare, error) {
	var s docsys.DocumentShare
	var u models.UserSummary
	err := row.Scan(
		&s.ID, &s.DocumentID, &s.UserID, &s.Permission, &s.CreatedAt, &s.UpdatedAt,
		&u.ID, &u.Email, &u.Name, &u.Avatar,
	)
	if err != nil {
		return nil, err
	}
	s.User = &u
	return &s, nil
}

// Create stores a share
func (r *PostgresShareRepository) Create(ctx context.Context, share *docsys.DocumentShare) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, user_id, permission)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.DocumentShares)

	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		share.DocumentID,
		share.UserID,
		share.Permission,
	).Scan(&share.ID, &share.CreatedAt, &share.UpdatedAt)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{
				Message:      "Document already shared with this user",
				ResourceType: "share",
			}
		}
		return fmt.Errorf("create share: %w", err)
	}
	return nil
}

// GetByID retrieves a share of a document
func (r *PostgresShareRepository) GetByID(ctx context.Context, documentID, id string) (*docsys.DocumentShare, error) {
	query := r.selectShares() + ` WHERE s.document_id = $1 AND s.id = $2`

	share, err := scanShare(postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, documentID, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NotFound("Share not found")
		}
		return nil, fmt.Errorf("get share: %w", err)
	}
	return share, nil
}

// GetForUser returns the share granting userID access to a document
func (r *PostgresShareRepository) GetForUser(ctx context.Context, documentID, userID string) (*docsys.DocumentShare, error) {
	query := r.selectShares() + ` WHERE s.document_id = $1 AND s.user_id = $2`

	share, err := scanShare(postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, documentID, userID))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NotFound("Share not found")
		}
		return nil, fmt.Errorf("get share for user: %w", err)
	}
	return share, nil
}

// ListByDocument lists shares newest first
func (r *PostgresShareRepository) ListByDocument(ctx context.Context, documentID string) ([]docsys.DocumentShare, error) {
	query := r.selectShares() + ` WHERE s.document_id = $1 ORDER BY s.created_at DESC`

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	shares := make([]docsys.DocumentShare, 0)
	for rows.Next() {
		share, err := scanShare(rows)
		if err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		shares = append(shares, *share)
	}
	return shares, rows.Err()
}

// ListSharedWith lists live documents shared with userID, newest share first
func (r *PostgresShareRepository) ListSharedWith(ctx context.Context, userID string) ([]docsys.SharedDocument, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.title, d.content, d.created_at, d.updated_at,
			COALESCE((
				SELECT array_agg(t.name ORDER BY t.name)
				FROM %s dt JOIN %s t ON t.id = dt.tag_id
				WHERE dt.document_id = d.id AND t.deleted_at IS NULL
			), '{}') AS tags,
			o.id, o.email, o.name, o.avatar,
			s.permission, s.created_at
		FROM %s s
		JOIN %s d ON d.id = s.document_id
		JOIN %s o ON o.id = d.user_id
		WHERE s.user_id = $1 AND d.deleted_at IS NULL
		ORDER BY s.created_at DESC
	`, r.tables.DocumentTags, r.tables.Tags, r.tables.DocumentShares, r.tables.Documents, r.tables.Users)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list shared documents: %w", err)
	}
	defer rows.Close()

	docs := make([]docsys.SharedDocument, 0)
	for rows.Next() {
		var d docsys.SharedDocument
		err := rows.Scan(
			&d.ID, &d.Title, &d.Content, &d.CreatedAt, &d.UpdatedAt, &d.Tags,
			&d.Owner.ID, &d.Owner.Email, &d.Owner.Name, &d.Owner.Avatar,
			&d.Permission, &d.SharedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan shared document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}

// UpdatePermission changes a share's permission
func (r *PostgresShareRepository) UpdatePermission(ctx context.Context, id string, permission docsys.Permission) error {
	query := fmt.Sprintf(`UPDATE %s SET permission = $1, updated_at = NOW() WHERE id = $2`, r.tables.DocumentShares)

	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, permission, id)
	if err != nil {
		return fmt.Errorf("update share: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Share not found")
	}
	return nil
}

// Delete removes a share
func (r *PostgresShareRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.DocumentShares)

	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete share: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Share not found")
	}
	return nil
}

// DeleteByDocument removes every share of a document
func (r *PostgresShareRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentShares)
	if _, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete document shares: %w", err)
	}
	return nil
}
