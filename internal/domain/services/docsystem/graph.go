package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// GraphService builds the document graph scene
type GraphService interface {
	GetGraph(ctx context.Context, userID string) (*docsystem.GraphData, error)
}

// RelationService scores and stores relations between documents
type RelationService interface {
	// Relate scores the first two documents of the request and stores the edge
	Relate(ctx context.Context, userID string, req *RelateRequest) (*RelateResponse, error)
	ListRelations(ctx context.Context, userID string) ([]docsystem.Relation, error)
}

// AskService answers questions from the user's documents
type AskService interface {
	Ask(ctx context.Context, userID string, req *AskRequest) (*AskResponse, error)
}

// RelateRequest names at least two owned documents
type RelateRequest struct {
	DocumentIDs []string `json:"documentIds"`
}

// RelateResponse carries the score in [0,1] and the stored edge, if any
type RelateResponse struct {
	Relation float64         `json:"relation"`
	Edge     *docsystem.Edge `json:"edge,omitempty"`
}

// AskRequest is a question, optionally scoped to specific documents
type AskRequest struct {
	Question    string   `json:"question"`
	DocumentIDs []string `json:"documentIds"`
}

// AskResponse is the model answer and the documents it was given
type AskResponse struct {
	Answer  string                  `json:"answer"`
	Sources []docsystem.DocumentRef `json:"sources"`
}
