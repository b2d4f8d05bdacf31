package docsystem

import (
	"context"
	"log/slog"
	"math"

	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

const (
	// GraphRadius is the radius of the circle nodes are placed on
	GraphRadius = 5.0

	// DefaultEdgeStrength is used for every pair when no relation is stored
	DefaultEdgeStrength = 0.1
)

type graphService struct {
	docRepo  docsysRepo.DocumentRepository
	edgeRepo docsysRepo.EdgeRepository
	logger   *slog.Logger
}

// NewGraphService creates a new graph service
func NewGraphService(
	docRepo docsysRepo.DocumentRepository,
	edgeRepo docsysRepo.EdgeRepository,
	logger *slog.Logger,
) docsysSvc.GraphService {
	return &graphService{
		docRepo:  docRepo,
		edgeRepo: edgeRepo,
		logger:   logger,
	}
}

// GetGraph lays out the user's live documents and their relations
func (s *graphService) GetGraph(ctx context.Context, userID string) (*models.GraphData, error) {
	docs, err := s.docRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	edges, err := s.edgeRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	graph := Layout(docs, edges)
	s.logger.Debug("graph built", "user_id", userID, "nodes", len(graph.Nodes), "edges", len(graph.Edges))
	return graph, nil
}

// Layout places docs on a circle in the z=0 plane, node i at angle 2πi/n.
// Stored edges become graph edges; without any, every unordered pair is
// connected with DefaultEdgeStrength.
func Layout(docs []models.Document, edges []models.Edge) *models.GraphData {
	graph := &models.GraphData{
		Nodes: make([]models.GraphNode, 0, len(docs)),
		Edges: make([]models.GraphEdge, 0),
	}
	if len(docs) == 0 {
		return graph
	}

	n := float64(len(docs))
	for i, d := range docs {
		angle := 2 * math.Pi * float64(i) / n
		tags := d.Tags
		if tags == nil {
			tags = []string{}
		}
		graph.Nodes = append(graph.Nodes, models.GraphNode{
			ID:    d.ID,
			Title: d.Title,
			Position: models.Position{
				X: GraphRadius * math.Cos(angle),
				Y: GraphRadius * math.Sin(angle),
				Z: 0,
			},
			DocumentInfo: models.GraphInfo{
				ID:        d.ID,
				Title:     d.Title,
				Content:   d.Content,
				Tags:      tags,
				CreatedAt: d.CreatedAt,
				UpdatedAt: d.UpdatedAt,
			},
		})
	}

	if len(edges) > 0 {
		for _, e := range edges {
			graph.Edges = append(graph.Edges, models.GraphEdge{
				ID:       e.ID,
				SourceID: e.FromDocumentID,
				TargetID: e.ToDocumentID,
				Strength: clamp01(e.Weight),
			})
		}
		return graph
	}

	for i := 0; i < len(docs); i++ {
		for j := i + 1; j < len(docs); j++ {
			graph.Edges = append(graph.Edges, models.GraphEdge{
				ID:       docs[i].ID + "-" + docs[j].ID,
				SourceID: docs[i].ID,
				TargetID: docs[j].ID,
				Strength: DefaultEdgeStrength,
			})
		}
	}
	return graph
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
