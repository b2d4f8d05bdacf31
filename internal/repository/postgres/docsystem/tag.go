package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
)

// PostgresTagRepository implements the TagRepository interface
type PostgresTagRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewTagRepository creates a new tag repository
func NewTagRepository(config *postgres.RepositoryConfig) docsysRepo.TagRepository {
	return &PostgresTagRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Upsert returns the user's tag named name. A soft-deleted tag with the
// same name is revived instead of inserting a duplicate.
func (r *PostgresTagRepository) Upsert(ctx context.Context, userID, name string) (*models.Tag, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, name)
		VALUES ($1, $2)
		ON CONFLICT (user_id, name)
		DO UPDATE SET deleted_at = NULL,
			updated_at = CASE WHEN %s.deleted_at IS NULL THEN %s.updated_at ELSE NOW() END
		RETURNING id, user_id, name, created_at, updated_at
	`, r.tables.Tags, r.tables.Tags, r.tables.Tags)

	var tag models.Tag
	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID, name).Scan(
		&tag.ID, &tag.UserID, &tag.Name, &tag.CreatedAt, &tag.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert tag: %w", err)
	}
	return &tag, nil
}

// SetDocumentTags replaces a document's tag links
func (r *PostgresTagRepository) SetDocumentTags(ctx context.Context, documentID string, tagIDs []string) error {
	executor := postgres.GetExecutor(ctx, r.pool)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentTags)
	if _, err := executor.Exec(ctx, deleteQuery, documentID); err != nil {
		return fmt.Errorf("clear document tags: %w", err)
	}

	if len(tagIDs) == 0 {
		return nil
	}

	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (document_id, tag_id)
		SELECT $1::uuid, unnest($2::uuid[])
		ON CONFLICT DO NOTHING
	`, r.tables.DocumentTags)
	if _, err := executor.Exec(ctx, insertQuery, documentID, tagIDs); err != nil {
		return fmt.Errorf("link document tags: %w", err)
	}
	return nil
}

func (r *PostgresTagRepository) selectTags() string {
	return fmt.Sprintf(`
		SELECT t.id, t.user_id, t.name, t.created_at, t.updated_at,
			(SELECT COUNT(*) FROM %s dt JOIN %s d ON d.id = dt.document_id
			 WHERE dt.tag_id = t.id AND d.deleted_at IS NULL) AS document_count
		FROM %s t
	`, r.tables.DocumentTags, r.tables.Documents, r.tables.Tags)
}

func (r *PostgresTagRepository) queryTags(ctx context.Context, query string, args ...any) ([]models.Tag, error) {
	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tags: %w", err)
	}
	defer rows.Close()

	tags := make([]models.Tag, 0)
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.UserID, &t.Name, &t.CreatedAt, &t.UpdatedAt, &t.DocumentCount); err != nil {
			return nil, fmt.Errorf("scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// ListByUser lists live tags ordered by name
func (r *PostgresTagRepository) ListByUser(ctx context.Context, userID string) ([]models.Tag, error) {
	return r.queryTags(ctx,
		r.selectTags()+` WHERE t.user_id = $1 AND t.deleted_at IS NULL ORDER BY t.name`,
		userID)
}

// GetByID retrieves a live tag owned by userID
func (r *PostgresTagRepository) GetByID(ctx context.Context, id, userID string) (*models.Tag, error) {
	tags, err := r.queryTags(ctx,
		r.selectTags()+` WHERE t.id = $1 AND t.user_id = $2 AND t.deleted_at IS NULL`,
		id, userID)
	if err != nil {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, domain.NotFound("Tag not found")
	}
	return &tags[0], nil
}

// ListDocuments lists the live documents carrying a tag
func (r *PostgresTagRepository) ListDocuments(ctx context.Context, tagID string) ([]models.DocumentSummary, error) {
	query := fmt.Sprintf(`
		SELECT d.id, d.title, d.folder_id, d.is_pinned, d.word_count, d.updated_at
		FROM %s d JOIN %s dt ON dt.document_id = d.id
		WHERE dt.tag_id = $1 AND d.deleted_at IS NULL
		ORDER BY d.updated_at DESC
	`, r.tables.Documents, r.tables.DocumentTags)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, tagID)
	if err != nil {
		return nil, fmt.Errorf("list tag documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.DocumentSummary, 0)
	for rows.Next() {
		var s models.DocumentSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.FolderID, &s.IsPinned, &s.WordCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan tag document: %w", err)
		}
		docs = append(docs, s)
	}
	return docs, rows.Err()
}

// NameExists reports whether another tag of the user already has this name.
// Soft-deleted rows count too since the name is unique per user.
func (r *PostgresTagRepository) NameExists(ctx context.Context, userID, name, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE user_id = $1 AND name = $2 AND ($3 = '' OR id::text <> $3)
		)
	`, r.tables.Tags)

	var exists bool
	if err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check tag name: %w", err)
	}
	return exists, nil
}

// Rename changes a tag's name
func (r *PostgresTagRepository) Rename(ctx context.Context, id, name string) error {
	query := fmt.Sprintf(`UPDATE %s SET name = $1, updated_at = NOW() WHERE id = $2 AND deleted_at IS NULL`, r.tables.Tags)

	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, name, id)
	if err != nil {
		if postgres.IsPgDuplicateError(err) {
			return &domain.ConflictError{Message: "Tag with this name already exists", ResourceType: "tag"}
		}
		return fmt.Errorf("rename tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Tag not found")
	}
	return nil
}

// SoftDelete marks a tag deleted and drops its document links
func (r *PostgresTagRepository) SoftDelete(ctx context.Context, id string) error {
	executor := postgres.GetExecutor(ctx, r.pool)

	linkQuery := fmt.Sprintf(`DELETE FROM %s WHERE tag_id = $1`, r.tables.DocumentTags)
	if _, err := executor.Exec(ctx, linkQuery, id); err != nil {
		return fmt.Errorf("unlink tag: %w", err)
	}

	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, r.tables.Tags)
	tag, err := executor.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Tag not found")
	}
	return nil
}
