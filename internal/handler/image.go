package handler

import (
	"log/slog"
	"net/http"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// ImageHandler handles images embedded in documents
type ImageHandler struct {
	imageService docsysSvc.ImageService
	logger       *slog.Logger
}

// NewImageHandler creates a new image handler
func NewImageHandler(imageService docsysSvc.ImageService, logger *slog.Logger) *ImageHandler {
	return &ImageHandler{
		imageService: imageService,
		logger:       logger,
	}
}

// ListImages lists a document's images
// GET /api/documents/{id}/images
func (h *ImageHandler) ListImages(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	images, err := h.imageService.ListImages(r.Context(), httputil.GetUserID(r), docID)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, images)
}

// UploadImage stores the multipart field "file"
// POST /api/documents/{id}/images
func (h *ImageHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}

	if !parseMultipart(w, r, config.MaxImageSize+multipartOverhead) {
		return
	}

	var file *docsysSvc.UploadedFile
	if fh := formFile(r, "file"); fh != nil {
		f, closer, err := uploadedFile(fh)
		if err != nil {
			h.logger.Error("failed to open image upload", "error", err)
			httputil.RespondError(w, http.StatusBadRequest, "Failed to read file")
			return
		}
		defer func() { _ = closer.Close() }()
		file = f
	}

	img, err := h.imageService.UploadImage(r.Context(), httputil.GetUserID(r), docID, file)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, img)
}

// DeleteImage removes an image
// DELETE /api/documents/{id}/images?imageId=
func (h *ImageHandler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	docID, ok := PathParam(w, r, "id", "Document not found")
	if !ok {
		return
	}
	imageID, ok := QueryID(w, r, "imageId", "Image")
	if !ok {
		return
	}

	if err := h.imageService.DeleteImage(r.Context(), httputil.GetUserID(r), docID, imageID); err != nil {
		handleError(w, err)
		return
	}

	respondMessage(w, http.StatusOK, "Image deleted")
}
