package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsys "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
)

// PostgresImageRepository implements the ImageRepository interface
type PostgresImageRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewImageRepository creates a new image repository
func NewImageRepository(config *postgres.RepositoryConfig) docsysRepo.ImageRepository {
	return &PostgresImageRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

const imageColumns = `id, document_id, user_id, url, pathname, filename, size, mime_type, created_at`

// Create stores image metadata
func (r *PostgresImageRepository) Create(ctx context.Context, img *docsys.DocumentImage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (document_id, user_id, url, pathname, filename, size, mime_type)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, r.tables.DocumentImages)

	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		img.DocumentID,
		img.UserID,
		img.URL,
		img.Pathname,
		img.Filename,
		img.Size,
		img.MimeType,
	).Scan(&img.ID, &img.CreatedAt)
	if err != nil {
		return fmt.Errorf("create image: %w", err)
	}
	return nil
}

// GetByID retrieves an image of a document
func (r *PostgresImageRepository) GetByID(ctx context.Context, documentID, id string) (*docsys.DocumentImage, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE document_id = $1 AND id = $2`, imageColumns, r.tables.DocumentImages)

	var img docsys.DocumentImage
	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, documentID, id).Scan(
		&img.ID, &img.DocumentID, &img.UserID, &img.URL, &img.Pathname,
		&img.Filename, &img.Size, &img.MimeType, &img.CreatedAt,
	)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return nil, domain.NotFound("Image not found")
		}
		return nil, fmt.Errorf("get image: %w", err)
	}
	return &img, nil
}

// ListByDocument lists a document's images newest first
func (r *PostgresImageRepository) ListByDocument(ctx context.Context, documentID string) ([]docsys.DocumentImage, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE document_id = $1 ORDER BY created_at DESC`, imageColumns, r.tables.DocumentImages)

	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, documentID)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := make([]docsys.DocumentImage, 0)
	for rows.Next() {
		var img docsys.DocumentImage
		err := rows.Scan(
			&img.ID, &img.DocumentID, &img.UserID, &img.URL, &img.Pathname,
			&img.Filename, &img.Size, &img.MimeType, &img.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// Delete removes image metadata
func (r *PostgresImageRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.DocumentImages)

	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Image not found")
	}
	return nil
}

// DeleteByDocument removes every image row of a document
func (r *PostgresImageRepository) DeleteByDocument(ctx context.Context, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = $1`, r.tables.DocumentImages)
	if _, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, documentID); err != nil {
		return fmt.Errorf("delete document images: %w", err)
	}
	return nil
}
