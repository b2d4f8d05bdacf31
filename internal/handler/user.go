package handler

import (
	"log/slog"
	"net/http"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain/services"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// UserHandler handles profile requests. Users may only touch their own profile.
type UserHandler struct {
	userService services.UserService
	logger      *slog.Logger
}

// NewUserHandler creates a new user handler
func NewUserHandler(userService services.UserService, logger *slog.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// GetUser returns a profile
// GET /api/users/{id}
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := PathParam(w, r, "id", "User not found")
	if !ok {
		return
	}

	user, err := h.userService.GetUser(r.Context(), httputil.GetUserID(r), userID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// UpdateUser changes name and avatar URL
// PUT /api/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := PathParam(w, r, "id", "User not found")
	if !ok {
		return
	}

	var req services.UpdateProfileRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), httputil.GetUserID(r), userID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// UploadAvatar stores a new avatar image from the multipart field "avatar"
// PUT /api/users/{id}/avatar
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	userID, ok := PathParam(w, r, "id", "User not found")
	if !ok {
		return
	}

	if !parseMultipart(w, r, config.MaxImageSize+multipartOverhead) {
		return
	}

	var file *docsysSvc.UploadedFile
	if fh := formFile(r, "avatar"); fh != nil {
		f, closer, err := uploadedFile(fh)
		if err != nil {
			h.logger.Error("failed to open avatar upload", "error", err)
			httputil.RespondError(w, http.StatusBadRequest, "Failed to read file")
			return
		}
		defer func() { _ = closer.Close() }()
		file = f
	}

	user, err := h.userService.UploadAvatar(r.Context(), httputil.GetUserID(r), userID, file)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, user)
}

// ChangePassword replaces the password after checking the current one
// PUT /api/users/{id}/password
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := PathParam(w, r, "id", "User not found")
	if !ok {
		return
	}

	var req services.ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.userService.ChangePassword(r.Context(), httputil.GetUserID(r), userID, &req); err != nil {
		handleError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Password updated successfully")
}
