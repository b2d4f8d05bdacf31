package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// TagHandler handles tag HTTP requests
type TagHandler struct {
	tagService docsysSvc.TagService
	logger     *slog.Logger
}

// NewTagHandler creates a new tag handler
func NewTagHandler(tagService docsysSvc.TagService, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		tagService: tagService,
		logger:     logger,
	}
}

// ListTags lists tags by name with document counts
// GET /api/tags
func (h *TagHandler) ListTags(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListTags(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tags)
}

// GetTag returns a tag with its documents
// GET /api/tags/{id}
func (h *TagHandler) GetTag(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Tag not found")
	if !ok {
		return
	}

	tag, err := h.tagService.GetTag(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// RenameTag renames a tag
// PUT /api/tags/{id}
func (h *TagHandler) RenameTag(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Tag not found")
	if !ok {
		return
	}

	var req docsysSvc.RenameTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	tag, err := h.tagService.RenameTag(r.Context(), httputil.GetUserID(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, tag)
}

// DeleteTag soft deletes a tag and unlinks it from documents
// DELETE /api/tags/{id}
func (h *TagHandler) DeleteTag(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Tag not found")
	if !ok {
		return
	}

	if err := h.tagService.DeleteTag(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Tag deleted")
}
