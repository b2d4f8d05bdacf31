package services

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// AuthService handles registration, login and password reset
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*models.AuthResponse, error)

	// Login returns *domain.UnauthorizedError for unknown e-mail and wrong
	// password alike
	Login(ctx context.Context, req *LoginRequest) (*models.AuthResponse, error)

	// Me returns the authenticated user
	Me(ctx context.Context, userID string) (*models.User, error)

	// ForgotPassword issues a reset token and mails it. It never reveals
	// whether the e-mail is registered.
	ForgotPassword(ctx context.Context, req *ForgotPasswordRequest) error

	// ResetPassword consumes a reset token and sets a new password
	ResetPassword(ctx context.Context, req *ResetPasswordRequest) error
}

// UserService handles profile management. Every method requires
// callerID == userID.
type UserService interface {
	GetUser(ctx context.Context, callerID, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, callerID, userID string, req *UpdateProfileRequest) (*models.User, error)
	UploadAvatar(ctx context.Context, callerID, userID string, file *docsysSvc.UploadedFile) (*models.User, error)
	ChangePassword(ctx context.Context, callerID, userID string, req *ChangePasswordRequest) error
}

// RegisterRequest is the sign-up payload
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginRequest is the sign-in payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest asks for a reset e-mail
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ResetPasswordRequest sets a new password with a reset token
type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UpdateProfileRequest changes name and/or avatar. Avatar null clears it.
type UpdateProfileRequest struct {
	Name   *string                 `json:"name"`
	Avatar httputil.OptionalString `json:"avatar"`
}

// ChangePasswordRequest changes the password of a signed-in user
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}
