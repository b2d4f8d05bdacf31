package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
)

// PostgresPasswordResetRepository implements the PasswordResetRepository interface
type PostgresPasswordResetRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewPasswordResetRepository creates a new PostgresPasswordResetRepository
func NewPasswordResetRepository(config *RepositoryConfig) repositories.PasswordResetRepository {
	return &PostgresPasswordResetRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create stores a new token
func (r *PostgresPasswordResetRepository) Create(ctx context.Context, token *models.PasswordResetToken) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`, r.tables.PasswordResetTokens)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, token.UserID, token.Token, token.ExpiresAt).
		Scan(&token.ID, &token.CreatedAt)
	if err != nil {
		return fmt.Errorf("create reset token: %w", err)
	}
	return nil
}

// GetByToken looks a token up by its secret value
func (r *PostgresPasswordResetRepository) GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	query := fmt.Sprintf(`
		SELECT id, user_id, token, expires_at, used_at, created_at
		FROM %s
		WHERE token = $1
	`, r.tables.PasswordResetTokens)

	var t models.PasswordResetToken
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, token).
		Scan(&t.ID, &t.UserID, &t.Token, &t.ExpiresAt, &t.UsedAt, &t.CreatedAt)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, domain.NotFound("reset token not found")
		}
		return nil, fmt.Errorf("get reset token: %w", err)
	}
	return &t, nil
}

// InvalidateUnused marks every unused token of the user as used
func (r *PostgresPasswordResetRepository) InvalidateUnused(ctx context.Context, userID string) error {
	query := fmt.Sprintf(`
		UPDATE %s SET used_at = NOW()
		WHERE user_id = $1 AND used_at IS NULL
	`, r.tables.PasswordResetTokens)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("invalidate reset tokens: %w", err)
	}
	return nil
}

// MarkUsed claims one unused token. A token that was already used,
// including by a concurrent reset, yields a validation error.
func (r *PostgresPasswordResetRepository) MarkUsed(ctx context.Context, id string) error {
	tag, err := GetExecutor(ctx, r.pool).Exec(ctx, r.markUsedQuery(), id)
	if err != nil {
		return fmt.Errorf("mark reset token used: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Invalid("Reset token has already been used")
	}
	return nil
}

func (r *PostgresPasswordResetRepository) markUsedQuery() string {
	return fmt.Sprintf(`UPDATE %s SET used_at = NOW() WHERE id = $1 AND used_at IS NULL`, r.tables.PasswordResetTokens)
}
