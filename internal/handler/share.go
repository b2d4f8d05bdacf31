package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// ShareHandler handles per-user document grants
type ShareHandler struct {
	shareService docsysSvc.ShareService
	logger       *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService docsysSvc.ShareService, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
		logger:       logger,
	}
}

// ListShares lists who a document is shared with (owner only)
// GET /api/documents/{id}/share
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	shares, err := h.shareService.ListShares(r.Context(), httputil.GetUserID(r), docID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, shares)
}

// CreateShare shares a document with a user by e-mail
// POST /api/documents/{id}/share
func (h *ShareHandler) CreateShare(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	var req docsysSvc.CreateShareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	share, err := h.shareService.CreateShare(r.Context(), httputil.GetUserID(r), docID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, share)
}

// UpdateShare changes a share's permission
// PUT /api/documents/{id}/share?shareId=
func (h *ShareHandler) UpdateShare(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}
	shareID, ok := QueryID(w, r, "shareId", "Share")
	if !ok {
		return
	}

	var req docsysSvc.UpdateShareRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	share, err := h.shareService.UpdateShare(r.Context(), httputil.GetUserID(r), docID, shareID, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, share)
}

// DeleteShare revokes a share
// DELETE /api/documents/{id}/share?shareId=
func (h *ShareHandler) DeleteShare(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}
	shareID, ok := QueryID(w, r, "shareId", "Share")
	if !ok {
		return
	}

	if err := h.shareService.DeleteShare(r.Context(), httputil.GetUserID(r), docID, shareID); err != nil {
		handleError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Share removed")
}

// SharedWithMe lists documents other users shared with the caller
// GET /api/shared
func (h *ShareHandler) SharedWithMe(w http.ResponseWriter, r *http.Request) {
	docs, err := h.shareService.SharedWithMe(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}
