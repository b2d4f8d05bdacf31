package repositories

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a user. Returns *domain.ConflictError when the e-mail is taken.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*models.User, error)

	// GetByEmail retrieves a user by e-mail (case-insensitive)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// Update persists name and avatar
	Update(ctx context.Context, user *models.User) error

	// UpdatePassword replaces the stored password hash
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// PasswordResetRepository defines data access operations for reset tokens
type PasswordResetRepository interface {
	// Create stores a new token
	Create(ctx context.Context, token *models.PasswordResetToken) error

	// GetByToken looks a token up by its secret value
	GetByToken(ctx context.Context, token string) (*models.PasswordResetToken, error)

	// InvalidateUnused marks every unused token of the user as used
	InvalidateUnused(ctx context.Context, userID string) error

	// MarkUsed marks one token as used
	MarkUsed(ctx context.Context, id string) error
}
