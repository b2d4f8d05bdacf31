package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
)

// PostgresDocumentRepository implements the DocumentRepository interface
type PostgresDocumentRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(config *postgres.RepositoryConfig) docsysRepo.DocumentRepository {
	return &PostgresDocumentRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// selectDocuments returns the SELECT ... FROM prefix shared by every full
// document read. The table is aliased d.
func (r *PostgresDocumentRepository) selectDocuments() string {
	return fmt.Sprintf(`
		SELECT d.id, d.user_id, d.folder_id, d.title, d.content, d.word_count, d.is_pinned,
			d.created_at, d.updated_at, d.deleted_at,
			COALESCE((
				SELECT array_agg(t.name ORDER BY t.name)
				FROM %s dt JOIN %s t ON t.id = dt.tag_id
				WHERE dt.document_id = d.id AND t.deleted_at IS NULL
			), '{}') AS tags
		FROM %s d
	`, r.tables.DocumentTags, r.tables.Tags, r.tables.Documents)
}

func scanDocument(row pgx.Row) (*models.Document, error) {
	var doc models.Document
	err := row.Scan(
		&doc.ID,
		&doc.UserID,
		&doc.FolderID,
		&doc.Title,
		&doc.Content,
		&doc.WordCount,
		&doc.IsPinned,
		&doc.CreatedAt,
		&doc.UpdatedAt,
		&doc.DeletedAt,
		&doc.Tags,
	)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *PostgresDocumentRepository) queryDocuments(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query documents: %w", err)
	}
	defer rows.Close()

	docs := make([]models.Document, 0)
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, *doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

// Create creates a new document
func (r *PostgresDocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, folder_id, title, content, word_count, is_pinned, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`, r.tables.Documents)

	executor := postgres.GetExecutor(ctx, r.pool)
	err := executor.QueryRow(ctx, query,
		doc.UserID,
		doc.FolderID,
		doc.Title,
		doc.Content,
		doc.WordCount,
		doc.IsPinned,
		doc.CreatedAt,
		doc.UpdatedAt,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Folder not found")
		}
		return fmt.Errorf("create document: %w", err)
	}

	return nil
}

// GetByID retrieves a document by ID, including soft-deleted ones
func (r *PostgresDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := r.selectDocuments() + ` WHERE d.id = $1`

	doc, err := scanDocument(postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NotFound("Document not found")
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	return doc, nil
}

// ListByUser lists the user's live documents
func (r *PostgresDocumentRepository) ListByUser(ctx context.Context, userID string) ([]models.Document, error) {
	query := r.selectDocuments() + `
		WHERE d.user_id = $1 AND d.deleted_at IS NULL
		ORDER BY d.is_pinned DESC, d.updated_at DESC
	`
	return r.queryDocuments(ctx, query, userID)
}

// ListRecent lists the most recently updated live documents
func (r *PostgresDocumentRepository) ListRecent(ctx context.Context, userID string, limit int) ([]models.Document, error) {
	query := r.selectDocuments() + `
		WHERE d.user_id = $1 AND d.deleted_at IS NULL
		ORDER BY d.updated_at DESC
		LIMIT $2
	`
	return r.queryDocuments(ctx, query, userID, limit)
}

// GetByIDs returns the owned live documents among ids
func (r *PostgresDocumentRepository) GetByIDs(ctx context.Context, userID string, ids []string) ([]models.Document, error) {
	query := r.selectDocuments() + `
		WHERE d.user_id = $1 AND d.id = ANY($2::uuid[]) AND d.deleted_at IS NULL
		ORDER BY array_position($2::uuid[], d.id)
	`
	return r.queryDocuments(ctx, query, userID, ids)
}

func (r *PostgresDocumentRepository) querySummaries(ctx context.Context, query string, args ...any) ([]models.DocumentSummary, error) {
	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query document summaries: %w", err)
	}
	defer rows.Close()

	summaries := make([]models.DocumentSummary, 0)
	for rows.Next() {
		var s models.DocumentSummary
		if err := rows.Scan(&s.ID, &s.Title, &s.FolderID, &s.IsPinned, &s.WordCount, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan document summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

// ListSummaries lists the user's live documents without content
func (r *PostgresDocumentRepository) ListSummaries(ctx context.Context, userID string) ([]models.DocumentSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, title, folder_id, is_pinned, word_count, updated_at
		FROM %s
		WHERE user_id = $1 AND deleted_at IS NULL
		ORDER BY title
	`, r.tables.Documents)
	return r.querySummaries(ctx, query, userID)
}

// ListByFolder lists live documents directly inside a folder
func (r *PostgresDocumentRepository) ListByFolder(ctx context.Context, userID, folderID string) ([]models.DocumentSummary, error) {
	query := fmt.Sprintf(`
		SELECT id, title, folder_id, is_pinned, word_count, updated_at
		FROM %s
		WHERE user_id = $1 AND folder_id = $2 AND deleted_at IS NULL
		ORDER BY updated_at DESC
	`, r.tables.Documents)
	return r.querySummaries(ctx, query, userID, folderID)
}

// Update persists title, content, word count and folder
func (r *PostgresDocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = $1, content = $2, word_count = $3, folder_id = $4, updated_at = $5
		WHERE id = $6
	`, r.tables.Documents)

	doc.UpdatedAt = time.Now()
	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query,
		doc.Title,
		doc.Content,
		doc.WordCount,
		doc.FolderID,
		doc.UpdatedAt,
		doc.ID,
	)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Folder not found")
		}
		return fmt.Errorf("update document: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Document not found")
	}
	return nil
}

// SetPinned sets the pin flag without touching updated_at
func (r *PostgresDocumentRepository) SetPinned(ctx context.Context, id string, pinned bool) error {
	query := fmt.Sprintf(`UPDATE %s SET is_pinned = $1 WHERE id = $2`, r.tables.Documents)
	return r.execOne(ctx, "pin document", query, pinned, id)
}

// SoftDelete moves a document to the trash
func (r *PostgresDocumentRepository) SoftDelete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, r.tables.Documents)
	return r.execOne(ctx, "delete document", query, id)
}

// Restore takes a document out of the trash
func (r *PostgresDocumentRepository) Restore(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NULL WHERE id = $1 AND deleted_at IS NOT NULL`, r.tables.Documents)
	return r.execOne(ctx, "restore document", query, id)
}

// HardDelete removes the document row and its tag links
func (r *PostgresDocumentRepository) HardDelete(ctx context.Context, id string) error {
	executor := postgres.GetExecutor(ctx, r.pool)

	linkQuery := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentTags)
	if _, err := executor.Exec(ctx, linkQuery, id); err != nil {
		return fmt.Errorf("delete document tags: %w", err)
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Documents)
	return r.execOne(ctx, "delete document permanently", query, id)
}

func (r *PostgresDocumentRepository) execOne(ctx context.Context, op, query string, args ...any) error {
	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Document not found")
	}
	return nil
}

// BulkMove moves the user's live documents among ids
func (r *PostgresDocumentRepository) BulkMove(ctx context.Context, userID string, ids []string, folderID *string) (int, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET folder_id = $1, updated_at = NOW()
		WHERE user_id = $2 AND id = ANY($3::uuid[]) AND deleted_at IS NULL
	`, r.tables.Documents)

	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, folderID, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk move documents: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// BulkSoftDelete trashes the user's live documents among ids
func (r *PostgresDocumentRepository) BulkSoftDelete(ctx context.Context, userID string, ids []string) (int, error) {
	query := fmt.Sprintf(`
		UPDATE %s SET deleted_at = NOW()
		WHERE user_id = $1 AND id = ANY($2::uuid[]) AND deleted_at IS NULL
	`, r.tables.Documents)

	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("bulk delete documents: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListTrash lists soft-deleted documents, most recently deleted first
func (r *PostgresDocumentRepository) ListTrash(ctx context.Context, userID string) ([]models.Document, error) {
	query := r.selectDocuments() + `
		WHERE d.user_id = $1 AND d.deleted_at IS NOT NULL
		ORDER BY d.deleted_at DESC
	`
	return r.queryDocuments(ctx, query, userID)
}

// Search matches title, content or any live tag name, case-insensitively
func (r *PostgresDocumentRepository) Search(ctx context.Context, userID, query string, limit int) ([]models.Document, error) {
	sql := r.selectDocuments() + fmt.Sprintf(`
		WHERE d.user_id = $1 AND d.deleted_at IS NULL
		AND (
			d.title ILIKE $2 OR d.content ILIKE $2
			OR EXISTS (
				SELECT 1 FROM %s dt JOIN %s t ON t.id = dt.tag_id
				WHERE dt.document_id = d.id AND t.deleted_at IS NULL AND t.name ILIKE $2
			)
		)
		ORDER BY d.updated_at DESC
		LIMIT $3
	`, r.tables.DocumentTags, r.tables.Tags)

	pattern := "%" + postgres.EscapeLike(query) + "%"
	return r.queryDocuments(ctx, sql, userID, pattern, limit)
}

// SearchTitles matches titles only; an empty query returns the most recent documents
func (r *PostgresDocumentRepository) SearchTitles(ctx context.Context, userID, query string, limit int) ([]models.DocumentRef, error) {
	sql := fmt.Sprintf(`
		SELECT id, title FROM %s
		WHERE user_id = $1 AND deleted_at IS NULL AND ($2 = '' OR title ILIKE '%%' || $3 || '%%')
		ORDER BY updated_at DESC
		LIMIT $4
	`, r.tables.Documents)

	return r.queryRefs(ctx, sql, userID, query, postgres.EscapeLike(query), limit)
}

// FindByTitles returns live documents whose title is one of titles
func (r *PostgresDocumentRepository) FindByTitles(ctx context.Context, userID string, titles []string) ([]models.DocumentRef, error) {
	if len(titles) == 0 {
		return []models.DocumentRef{}, nil
	}

	sql := fmt.Sprintf(`
		SELECT id, title FROM %s
		WHERE user_id = $1 AND deleted_at IS NULL AND title = ANY($2)
		ORDER BY updated_at DESC
	`, r.tables.Documents)

	return r.queryRefs(ctx, sql, userID, titles)
}

// ListContaining lists live documents other than excludeID whose content contains needle
func (r *PostgresDocumentRepository) ListContaining(ctx context.Context, userID, excludeID, needle string) ([]models.Document, error) {
	sql := r.selectDocuments() + `
		WHERE d.user_id = $1 AND d.deleted_at IS NULL AND d.id <> $2
		AND d.content ILIKE '%' || $3 || '%'
		ORDER BY d.updated_at DESC
	`
	return r.queryDocuments(ctx, sql, userID, excludeID, postgres.EscapeLike(needle))
}

func (r *PostgresDocumentRepository) queryRefs(ctx context.Context, sql string, args ...any) ([]models.DocumentRef, error) {
	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("query document refs: %w", err)
	}
	defer rows.Close()

	refs := make([]models.DocumentRef, 0)
	for rows.Next() {
		var ref models.DocumentRef
		if err := rows.Scan(&ref.ID, &ref.Title); err != nil {
			return nil, fmt.Errorf("scan document ref: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}
