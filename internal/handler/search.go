package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// SearchHandler handles document search
type SearchHandler struct {
	searchService docsysSvc.SearchService
	logger        *slog.Logger
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(searchService docsysSvc.SearchService, logger *slog.Logger) *SearchHandler {
	return &SearchHandler{
		searchService: searchService,
		logger:        logger,
	}
}

// Search finds documents whose title, content or tags contain q
// GET /api/documents/search?q=
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	results, err := h.searchService.Search(r.Context(), httputil.GetUserID(r), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// SearchTitles autocompletes document titles
// GET /api/documents/search/titles?q=
func (h *SearchHandler) SearchTitles(w http.ResponseWriter, r *http.Request) {
	refs, err := h.searchService.SearchTitles(r.Context(), httputil.GetUserID(r), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, refs)
}
