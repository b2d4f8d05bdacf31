package docsystem

import "time"

// Edge is a weighted, directed relation between two documents
type Edge struct {
	ID             string     `json:"id"`
	FromDocumentID string     `json:"from_document_id"`
	ToDocumentID   string     `json:"to_document_id"`
	Weight         float64    `json:"weight"`
	CreatedAt      time.Time  `json:"-"`
	UpdatedAt      time.Time  `json:"-"`
	DeletedAt      *time.Time `json:"-"`
}

// Relation is an edge with both endpoint titles resolved
type Relation struct {
	ID     string      `json:"id"`
	From   DocumentRef `json:"from"`
	To     DocumentRef `json:"to"`
	Weight float64     `json:"weight"`
}
