package docsystem

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/repository/postgres"
)

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	tables *postgres.TableNames
	logger *slog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *postgres.RepositoryConfig) docsysRepo.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

func (r *PostgresFolderRepository) selectFolders() string {
	return fmt.Sprintf(`
		SELECT f.id, f.user_id, f.parent_id, f.name, f.created_at, f.updated_at,
			(SELECT COUNT(*) FROM %s d WHERE d.folder_id = f.id AND d.deleted_at IS NULL) AS document_count
		FROM %s f
	`, r.tables.Documents, r.tables.Folders)
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, query string, args ...any) ([]models.Folder, error) {
	rows, err := postgres.GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query folders: %w", err)
	}
	defer rows.Close()

	folders := make([]models.Folder, 0)
	for rows.Next() {
		var f models.Folder
		if err := rows.Scan(&f.ID, &f.UserID, &f.ParentID, &f.Name, &f.CreatedAt, &f.UpdatedAt, &f.DocumentCount); err != nil {
			return nil, fmt.Errorf("scan folder: %w", err)
		}
		folders = append(folders, f)
	}
	return folders, rows.Err()
}

// Create creates a new folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, parent_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`, r.tables.Folders)

	now := time.Now()
	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.UserID,
		folder.ParentID,
		folder.Name,
		now,
		now,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Parent folder not found")
		}
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// GetByID retrieves a live folder owned by userID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id, userID string) (*models.Folder, error) {
	folders, err := r.queryFolders(ctx,
		r.selectFolders()+` WHERE f.id = $1 AND f.user_id = $2 AND f.deleted_at IS NULL`,
		id, userID)
	if err != nil {
		return nil, err
	}
	if len(folders) == 0 {
		return nil, domain.NotFound("Folder not found")
	}
	return &folders[0], nil
}

// ListByUser lists the user's live folders ordered by name
func (r *PostgresFolderRepository) ListByUser(ctx context.Context, userID string) ([]models.Folder, error) {
	return r.queryFolders(ctx,
		r.selectFolders()+` WHERE f.user_id = $1 AND f.deleted_at IS NULL ORDER BY f.name`,
		userID)
}

// ListChildren lists the direct live child folders of a folder
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, id, userID string) ([]models.Folder, error) {
	return r.queryFolders(ctx,
		r.selectFolders()+` WHERE f.parent_id = $1 AND f.user_id = $2 AND f.deleted_at IS NULL ORDER BY f.name`,
		id, userID)
}

// NameExists reports whether a live sibling already uses name
func (r *PostgresFolderRepository) NameExists(ctx context.Context, userID string, parentID *string, name, excludeID string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (
			SELECT 1 FROM %s
			WHERE user_id = $1
			AND parent_id IS NOT DISTINCT FROM $2::uuid
			AND name = $3
			AND deleted_at IS NULL
			AND ($4 = '' OR id::text <> $4)
		)
	`, r.tables.Folders)

	var exists bool
	if err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID, parentID, name, excludeID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check folder name: %w", err)
	}
	return exists, nil
}

// Update persists name and parent
func (r *PostgresFolderRepository) Update(ctx context.Context, folder *models.Folder) error {
	query := fmt.Sprintf(`
		UPDATE %s SET name = $1, parent_id = $2, updated_at = $3
		WHERE id = $4 AND deleted_at IS NULL
		RETURNING updated_at
	`, r.tables.Folders)

	err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		time.Now(),
		folder.ID,
	).Scan(&folder.UpdatedAt)
	if err != nil {
		if postgres.IsPgNoRowsError(err) {
			return domain.NotFound("Folder not found")
		}
		if postgres.IsPgForeignKeyError(err) {
			return domain.NotFound("Parent folder not found")
		}
		return fmt.Errorf("update folder: %w", err)
	}
	return nil
}

// HasContents reports whether the folder holds live child folders or documents
func (r *PostgresFolderRepository) HasContents(ctx context.Context, id string) (bool, error) {
	query := fmt.Sprintf(`
		SELECT
			EXISTS (SELECT 1 FROM %s WHERE parent_id = $1 AND deleted_at IS NULL)
			OR EXISTS (SELECT 1 FROM %s WHERE folder_id = $1 AND deleted_at IS NULL)
	`, r.tables.Folders, r.tables.Documents)

	var has bool
	if err := postgres.GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(&has); err != nil {
		return false, fmt.Errorf("check folder contents: %w", err)
	}
	return has, nil
}

// SoftDelete marks the folder deleted
func (r *PostgresFolderRepository) SoftDelete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET deleted_at = NOW() WHERE id = $1 AND deleted_at IS NULL`, r.tables.Folders)

	tag, err := postgres.GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete folder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NotFound("Folder not found")
	}
	return nil
}
