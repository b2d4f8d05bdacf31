package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// VersionHandler handles document snapshots
type VersionHandler struct {
	versionService docsysSvc.VersionService
	logger         *slog.Logger
}

// NewVersionHandler creates a new version handler
func NewVersionHandler(versionService docsysSvc.VersionService, logger *slog.Logger) *VersionHandler {
	return &VersionHandler{
		versionService: versionService,
		logger:         logger,
	}
}

// ListVersions lists snapshots, newest first
// GET /api/documents/{id}/versions
func (h *VersionHandler) ListVersions(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	versions, err := h.versionService.ListVersions(r.Context(), httputil.GetUserID(r), docID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, versions)
}

// CreateVersion snapshots the current title and content
// POST /api/documents/{id}/versions
func (h *VersionHandler) CreateVersion(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	version, err := h.versionService.CreateVersion(r.Context(), httputil.GetUserID(r), docID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, version)
}

// GetVersion returns one snapshot with its content
// GET /api/documents/{id}/versions/{versionId}
func (h *VersionHandler) GetVersion(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}
	versionID, ok := PathParam(w, r, "versionId", "Version not found")
	if !ok {
		return
	}

	version, err := h.versionService.GetVersion(r.Context(), httputil.GetUserID(r), docID, versionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, version)
}

// RestoreVersion rolls the document back to a snapshot
// POST /api/documents/{id}/versions/{versionId}
func (h *VersionHandler) RestoreVersion(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}
	versionID, ok := PathParam(w, r, "versionId", "Version not found")
	if !ok {
		return
	}

	result, err := h.versionService.RestoreVersion(r.Context(), httputil.GetUserID(r), docID, versionID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}
