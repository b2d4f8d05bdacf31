package handler

import (
	"log/slog"
	"net/http"
	"time"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	docService docsysSvc.DocumentService
	logger     *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(docService docsysSvc.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docService: docService,
		logger:     logger,
	}
}

// ListDocuments lists the caller's live documents, pinned first
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.docService.ListDocuments(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// CreateDocument creates a new document
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.CreateDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := h.docService.CreateDocument(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	doc, err := h.docService.GetDocument(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument updates the fields present in the body
// PUT /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	var req docsysSvc.UpdateDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := h.docService.UpdateDocument(r.Context(), httputil.GetUserID(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument moves a document to the trash
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	if err := h.docService.DeleteDocument(r.Context(), httputil.GetUserID(r), id); err != nil {
		handleError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Document deleted")
}

// TogglePin flips the pinned flag
// POST /api/documents/{id}/pin
func (h *DocumentHandler) TogglePin(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	result, err := h.docService.TogglePin(r.Context(), httputil.GetUserID(r), id)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// MoveDocument puts a document into a folder, or the root for null
// PUT /api/documents/{id}/move
func (h *DocumentHandler) MoveDocument(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	var req docsysSvc.MoveDocumentRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	doc, err := h.docService.MoveDocument(r.Context(), httputil.GetUserID(r), id, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// BulkMove moves several documents
// POST /api/documents/bulk/move
func (h *DocumentHandler) BulkMove(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.BulkMoveRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.docService.BulkMove(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// BulkDelete trashes several documents
// POST /api/documents/bulk/delete
func (h *DocumentHandler) BulkDelete(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.BulkDeleteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.docService.BulkDelete(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// HealthCheck is a simple health check endpoint
// GET /health
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now(),
	})
}
