package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// TrashHandler handles soft-deleted documents
type TrashHandler struct {
	trashService docsysSvc.TrashService
	logger       *slog.Logger
}

// NewTrashHandler creates a new trash handler
func NewTrashHandler(trashService docsysSvc.TrashService, logger *slog.Logger) *TrashHandler {
	return &TrashHandler{
		trashService: trashService,
		logger:       logger,
	}
}

// ListTrash lists trashed documents, most recently deleted first
// GET /api/documents/trash
func (h *TrashHandler) ListTrash(w http.ResponseWriter, r *http.Request) {
	items, err := h.trashService.ListTrash(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// Restore takes a document out of the trash
// POST /api/documents/{id}/restore
func (h *TrashHandler) Restore(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found in trash")
	if !ok {
		return
	}

	doc, err := h.trashService.Restore(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeletePermanently removes a trashed document for good
// DELETE /api/documents/{id}/permanent
func (h *TrashHandler) DeletePermanently(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found in trash")
	if !ok {
		return
	}

	if err := h.trashService.DeletePermanently(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Document permanently deleted")
}
