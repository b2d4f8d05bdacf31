package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// LinkHandler handles [[wiki link]] resolution and editing helpers
type LinkHandler struct {
	linkService docsysSvc.LinkService
	logger      *slog.Logger
}

// NewLinkHandler creates a new link handler
func NewLinkHandler(linkService docsysSvc.LinkService, logger *slog.Logger) *LinkHandler {
	return &LinkHandler{
		linkService: linkService,
		logger:      logger,
	}
}

// Links resolves a document's outgoing links
// GET /api/documents/{id}/links
func (h *LinkHandler) Links(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	links, err := h.linkService.Links(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, links)
}

// Backlinks lists documents linking to this one
// GET /api/documents/{id}/backlinks
func (h *LinkHandler) Backlinks(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	refs, err := h.linkService.Backlinks(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, refs)
}

// Complete suggests titles while a link is being typed
// POST /api/wikilinks/complete
func (h *LinkHandler) Complete(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CompleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.linkService.Complete(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// Insert places a link at the cursor
// POST /api/wikilinks/insert
func (h *LinkHandler) Insert(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.InsertLinkRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.linkService.Insert(&req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
