package docsystem

import "time"

// Tag is a per-user label attached to documents
type Tag struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	Name          string            `json:"name"`
	DocumentCount int               `json:"documentCount"`
	Documents     []DocumentSummary `json:"documents,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	DeletedAt     *time.Time        `json:"deletedAt,omitempty"`
}
