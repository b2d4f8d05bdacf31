package docsystem

import "time"

// Position is a point in the 3D graph scene
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// GraphNode is a document placed in the graph scene
type GraphNode struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Position     Position  `json:"position"`
	DocumentInfo GraphInfo `json:"documentInfo"`
}

// GraphInfo is the document payload shown when a node is selected
type GraphInfo struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GraphEdge connects two graph nodes. Strength is in [0,1].
type GraphEdge struct {
	ID       string  `json:"id"`
	SourceID string  `json:"sourceId"`
	TargetID string  `json:"targetId"`
	Strength float64 `json:"strength"`
}

// GraphData is the full scene returned to the client
type GraphData struct {
	Nodes []GraphNode `json:"nodes"`
	Edges []GraphEdge `json:"edges"`
}
