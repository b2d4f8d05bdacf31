package handler

import (
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// multipartOverhead is added to file size limits when capping multipart
// bodies so an oversized file still reaches the service's size check
const multipartOverhead = 1 << 20

// handleError converts domain errors to HTTP responses
func handleError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		httputil.RespondErrorWithExtras(w, http.StatusBadRequest, verr.Message, map[string]interface{}{
			"errors": verr.Fields,
		})
		return
	}

	// Typed errors carry their own status and a message meant for the client
	var httpErr domain.HTTPError
	if errors.As(err, &httpErr) {
		httputil.RespondError(w, httpErr.StatusCode(), httpErr.Error())
		return
	}

	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrUnavailable):
		httputil.RespondError(w, http.StatusServiceUnavailable, err.Error())
	default:
		slog.Error("unhandled error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// PathParam returns the UUID path value name. Anything that is not a UUID
// cannot name an existing row, so it is answered with 404 notFound.
func PathParam(w http.ResponseWriter, r *http.Request, name, notFound string) (string, bool) {
	id := r.PathValue(name)
	if err := validation.Validate(id, validation.Required, is.UUID); err != nil {
		httputil.RespondError(w, http.StatusNotFound, notFound)
		return "", false
	}
	return id, true
}

// QueryID is PathParam for ids passed as query parameters
func QueryID(w http.ResponseWriter, r *http.Request, name, label string) (string, bool) {
	id := r.URL.Query().Get(name)
	if id == "" {
		httputil.RespondError(w, http.StatusBadRequest, label+" is required")
		return "", false
	}
	if err := validation.Validate(id, is.UUID); err != nil {
		httputil.RespondError(w, http.StatusNotFound, label+" not found")
		return "", false
	}
	return id, true
}

// decodeJSON parses the body into dest and answers 400/413 itself on failure
func decodeJSON(w http.ResponseWriter, r *http.Request, dest interface{}) bool {
	if err := httputil.ParseJSON(w, r, dest); err != nil {
		respondBodyError(w, err, "Invalid request body")
		return false
	}
	return true
}

// parseMultipart parses a multipart body and answers 400/413 itself on failure
func parseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64) bool {
	if err := httputil.ParseMultipart(w, r, maxBytes); err != nil {
		respondBodyError(w, err, "Invalid multipart form")
		return false
	}
	return true
}

func respondBodyError(w http.ResponseWriter, err error, msg string) {
	if httputil.IsTooLarge(err) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, msg)
}

// uploadedFile wraps a multipart part for the service layer. The caller
// closes the returned file.
func uploadedFile(fh *multipart.FileHeader) (*docsysSvc.UploadedFile, multipart.File, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, nil, err
	}
	return &docsysSvc.UploadedFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
	}, f, nil
}

// formFile returns the single uploaded file in field, or nil when absent
func formFile(r *http.Request, field string) *multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	files := r.MultipartForm.File[field]
	if len(files) == 0 {
		return nil
	}
	return files[0]
}

// messageResponse is the body of operations that return no resource
type messageResponse struct {
	Message string `json:"message"`
}

func respondMessage(w http.ResponseWriter, status int, msg string) {
	httputil.RespondJSON(w, status, messageResponse{Message: msg})
}
