package handler

import (
	"log/slog"
	"net/http"

	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/httputil"
)

// GraphHandler serves the document graph and the AI features built on it
type GraphHandler struct {
	graphService    docsysSvc.GraphService
	relationService docsysSvc.RelationService
	askService      docsysSvc.AskService
	logger          *slog.Logger
}

// NewGraphHandler creates a new graph handler
func NewGraphHandler(
	graphService docsysSvc.GraphService,
	relationService docsysSvc.RelationService,
	askService docsysSvc.AskService,
	logger *slog.Logger,
) *GraphHandler {
	return &GraphHandler{
		graphService:    graphService,
		relationService: relationService,
		askService:      askService,
		logger:          logger,
	}
}

// GetGraph returns node positions and edges
// GET /api/graph
func (h *GraphHandler) GetGraph(w http.ResponseWriter, r *http.Request) {
	graph, err := h.graphService.GetGraph(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, graph)
}

// Relate scores how related two documents are and stores the edge
// POST /api/relations
func (h *GraphHandler) Relate(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.RelateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.relationService.Relate(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}

// ListRelations lists stored edges with endpoint titles
// GET /api/relations
func (h *GraphHandler) ListRelations(w http.ResponseWriter, r *http.Request) {
	relations, err := h.relationService.ListRelations(r.Context(), httputil.GetUserID(r))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, relations)
}

// Ask answers a question from the caller's documents
// POST /api/ask
func (h *GraphHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req docsysSvc.AskRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	resp, err := h.askService.Ask(r.Context(), httputil.GetUserID(r), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, resp)
}
