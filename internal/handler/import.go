package handler

import (
	"log/slog"
	"mime/multipart"
	"net/http"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/export"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// maxImportBody caps a whole import request
const maxImportBody = config.MaxImportFiles*config.MaxImportFileSize + multipartOverhead

// ImportHandler handles file import and export
type ImportHandler struct {
	importService docsysSvc.ImportService
	exportService docsysSvc.ExportService
	logger        *slog.Logger
}

// NewImportHandler creates a new import/export handler
func NewImportHandler(importService docsysSvc.ImportService, exportService docsysSvc.ExportService, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		importService: importService,
		exportService: exportService,
		logger:        logger,
	}
}

// Import creates one document per uploaded file.
// POST /api/documents/import
//
// Form fields:
//   - files: one or more .md, .markdown, .txt, .html or .htm files
//   - folderId: optional target folder
//
// Responds 201 when at least one file was imported and 400 when none was;
// the body lists both outcomes either way.
func (h *ImportHandler) Import(w http.ResponseWriter, r *http.Request) {
	if !parseMultipart(w, r, maxImportBody) {
		return
	}
	userID := httputil.GetUserID(r)

	var folderID *string
	if v := r.FormValue("folderId"); v != "" {
		folderID = &v
	}

	headers := r.MultipartForm.File["files"]

	// Files stay open until the import has read them all
	files := make([]docsysSvc.UploadedFile, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range headers {
		file, f, err := uploadedFile(fh)
		if err != nil {
			h.logger.Error("failed to open uploaded file",
				"file", fh.Filename,
				"error", err,
			)
			httputil.RespondError(w, http.StatusBadRequest, "Failed to read file "+fh.Filename)
			return
		}
		opened = append(opened, f)
		files = append(files, *file)
	}

	h.logger.Info("starting import", "user_id", userID, "file_count", len(files), "folder_id", folderID)

	result, err := h.importService.Import(r.Context(), userID, folderID, files)
	if err != nil {
		handleError(w, err)
		return
	}

	status := http.StatusCreated
	if len(result.Success) == 0 {
		status = http.StatusBadRequest
	}
	httputil.RespondJSON(w, status, result)
}

// Export downloads a document as Markdown or PDF
// GET /api/documents/{id}/export?format=markdown|pdf
func (h *ImportHandler) Export(w http.ResponseWriter, r *http.Request) {
	id, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	format := docsysSvc.ExportFormat(r.URL.Query().Get("format"))
	file, err := h.exportService.Export(r.Context(), httputil.GetUserID(r), id, format)
	if err != nil {
		handleError(w, err)
		return
	}

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", export.ContentDisposition(file.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(file.Body)
}
