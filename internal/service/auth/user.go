package auth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	authn "github.com/Hosi121/Bansho-sub000/internal/auth"
	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
	"github.com/Hosi121/Bansho-sub000/internal/domain/repositories"
	"github.com/Hosi121/Bansho-sub000/internal/domain/services"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/storage"
)

// avatarExtensions maps accepted avatar MIME types to the stored extension
var avatarExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/gif":  "gif",
	"image/webp": "webp",
}

type userService struct {
	userRepo repositories.UserRepository
	blobs    storage.BlobStore
	now      func() time.Time
	logger   *slog.Logger
}

// NewUserService creates the profile service
func NewUserService(userRepo repositories.UserRepository, blobs storage.BlobStore, logger *slog.Logger) services.UserService {
	return &userService{
		userRepo: userRepo,
		blobs:    blobs,
		now:      time.Now,
		logger:   logger,
	}
}

func self(callerID, userID string) error {
	if callerID != userID {
		return domain.Forbidden("Forbidden")
	}
	return nil
}

func (s *userService) GetUser(ctx context.Context, callerID, userID string) (*models.User, error) {
	if err := self(callerID, userID); err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, callerID, userID string, req *services.UpdateProfileRequest) (*models.User, error) {
	if err := self(callerID, userID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		trimmed := strings.TrimSpace(*req.Name)
		req.Name = &trimmed
	}
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.NilOrNotEmpty.Error("Name is required"),
			validation.RuneLength(1, config.MaxUserNameLength).Error("Name must be less than 100 characters")),
		validation.Field(&req.Avatar, validation.By(func(any) error {
			if req.Avatar.Value == nil {
				return nil
			}
			return validation.Validate(*req.Avatar.Value, is.URL.Error("Invalid URL"))
		})),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Avatar.Present {
		user.Avatar = req.Avatar.Value
		if user.Avatar != nil && *user.Avatar == "" {
			user.Avatar = nil
		}
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("profile updated", "user_id", userID)
	return user, nil
}

func (s *userService) UploadAvatar(ctx context.Context, callerID, userID string, file *docsysSvc.UploadedFile) (*models.User, error) {
	if err := self(callerID, userID); err != nil {
		return nil, err
	}

	if file == nil || file.Content == nil {
		return nil, domain.Invalid("No file provided")
	}
	ext, ok := avatarExtensions[file.ContentType]
	if !ok {
		return nil, domain.Invalid("Invalid file type. Allowed types: JPEG, PNG, GIF, WebP")
	}
	if file.Size > config.MaxImageSize {
		return nil, domain.Invalid("File too large. Maximum size is 5MB")
	}

	data, err := storage.ReadLimited(file.Content, config.MaxImageSize)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, domain.Invalid("File too large. Maximum size is 5MB")
		}
		return nil, fmt.Errorf("read avatar: %w", err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s_%d.%s", userID, s.now().UnixMilli(), ext)
	blob, err := s.blobs.Put(ctx, key, bytes.NewReader(data), file.ContentType)
	if err != nil {
		return nil, fmt.Errorf("store avatar: %w", err)
	}

	user.Avatar = &blob.URL
	if err := s.userRepo.Update(ctx, user); err != nil {
		if delErr := s.blobs.Delete(ctx, blob.Key); delErr != nil {
			s.logger.Warn("failed to remove orphaned avatar blob", "path", blob.Key, "error", delErr)
		}
		return nil, err
	}

	s.logger.Info("avatar uploaded", "user_id", userID, "size", len(data))
	return user, nil
}

func (s *userService) ChangePassword(ctx context.Context, callerID, userID string, req *services.ChangePasswordRequest) error {
	if err := self(callerID, userID); err != nil {
		return err
	}

	err := validation.ValidateStruct(req,
		validation.Field(&req.CurrentPassword, validation.Required.Error("Current password is required")),
		validation.Field(&req.NewPassword, newPasswordRules...),
	)
	if err != nil {
		return domain.FromValidation(err)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !authn.CheckPassword(user.PasswordHash, req.CurrentPassword) {
		return domain.Invalid("Current password is incorrect")
	}

	hash, err := authn.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hash); err != nil {
		return err
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}
