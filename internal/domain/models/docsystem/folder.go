package docsystem

import (
	"time"
)

type Folder struct {
	ID            string            `json:"id"`
	UserID        string            `json:"userId"`
	ParentID      *string           `json:"parentId"` // NULL = root level
	Name          string            `json:"name"`
	DocumentCount int               `json:"documentCount"`
	Children      []Folder          `json:"children,omitempty"`
	Documents     []DocumentSummary `json:"documents,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
	DeletedAt     *time.Time        `json:"deletedAt,omitempty"`
}
