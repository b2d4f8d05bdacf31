// Package auth implements account, session and authorization services.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authn "github.com/Hosi121/Bansho-sub000/internal/auth"
	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	"github.com/Hosi121/Bansho-sub000/internal/domain/services"
	"github.com/Hosi121/Bansho-sub000/internal/mailer"
)

const invalidCredentials = "Invalid email or password"

type authService struct {
	userRepo  repositories.UserRepository
	resetRepo repositories.PasswordResetRepository
	txManager repositories.TransactionManager
	tokens    authn.TokenIssuer
	mailer    mailer.Mailer
	appURL    string
	now       func() time.Time
	logger    *slog.Logger
}

// NewAuthService creates the account service
func NewAuthService(
	userRepo repositories.UserRepository,
	resetRepo repositories.PasswordResetRepository,
	txManager repositories.TransactionManager,
	tokens authn.TokenIssuer,
	m mailer.Mailer,
	appURL string,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		userRepo:  userRepo,
		resetRepo: resetRepo,
		txManager: txManager,
		tokens:    tokens,
		mailer:    m,
		appURL:    strings.TrimRight(appURL, "/"),
		now:       time.Now,
		logger:    logger,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req *services.RegisterRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	req.Name = strings.TrimSpace(req.Name)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, emailRules...),
		validation.Field(&req.Password, newPasswordRules...),
		validation.Field(&req.Name, nameRules...),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	hash, err := authn.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID)
	return s.session(user)
}

func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*models.AuthResponse, error) {
	req.Email = normalizeEmail(req.Email)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Email, emailRules...),
		validation.Field(&req.Password, validation.Required.Error("Password is required")),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.Unauthorized(invalidCredentials)
		}
		return nil, err
	}

	if !authn.CheckPassword(user.PasswordHash, req.Password) {
		return nil, domain.Unauthorized(invalidCredentials)
	}

	return s.session(user)
}

func (s *authService) session(user *models.User) (*models.AuthResponse, error) {
	token, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, err
	}
	return &models.AuthResponse{Token: token, User: user}, nil
}

func (s *authService) Me(ctx context.Context, userID string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// ForgotPassword returns nil for unknown addresses too. Only validation and
// storage failures are reported.
func (s *authService) ForgotPassword(ctx context.Context, req *services.ForgotPasswordRequest) error {
	req.Email = normalizeEmail(req.Email)
	if err := validation.ValidateStruct(req, validation.Field(&req.Email, emailRules...)); err != nil {
		return domain.FromValidation(err)
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return err
	}

	secret, err := authn.RandomToken(config.PasswordResetTokenBytes)
	if err != nil {
		return err
	}

	token := &models.PasswordResetToken{
		UserID:    user.ID,
		Token:     secret,
		ExpiresAt: s.now().Add(config.PasswordResetTokenTTL),
	}
	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.resetRepo.InvalidateUnused(txCtx, user.ID); err != nil {
			return err
		}
		return s.resetRepo.Create(txCtx, token)
	})
	if err != nil {
		return err
	}

	msg, err := mailer.PasswordResetMessage(s.appURL, user.Email, user.Name, secret)
	if err != nil {
		s.logger.Error("build password reset e-mail", "error", err)
		return nil
	}
	if err := s.mailer.Send(ctx, msg); err != nil {
		s.logger.Error("send password reset e-mail", "user_id", user.ID, "error", err)
		return nil
	}

	s.logger.Info("password reset requested", "user_id", user.ID)
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req *services.ResetPasswordRequest) error {
	req.Token = strings.TrimSpace(req.Token)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Token, validation.Required.Error("Token is required")),
		validation.Field(&req.Password, newPasswordRules...),
	)
	if err != nil {
		return domain.FromValidation(err)
	}

	token, err := s.resetRepo.GetByToken(ctx, req.Token)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("Invalid or expired reset token")
		}
		return err
	}
	if token.Expired(s.now()) {
		return domain.Invalid("Reset token has expired")
	}
	if token.Used() {
		return domain.Invalid("Reset token has already been used")
	}

	if _, err := s.userRepo.GetByID(ctx, token.UserID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.Invalid("User not found")
		}
		return err
	}

	hash, err := authn.HashPassword(req.Password)
	if err != nil {
		return err
	}

	err = s.txManager.ExecTx(ctx, func(txCtx context.Context) error {
		if err := s.resetRepo.MarkUsed(txCtx, token.ID); err != nil {
			return err
		}
		return s.userRepo.UpdatePassword(txCtx, token.UserID, hash)
	})
	if err != nil {
		return err
	}

	s.logger.Info("password reset", "user_id", token.UserID)
	return nil
}
