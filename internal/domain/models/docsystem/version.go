package docsystem

import (
	"time"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
)

// DocumentVersion is an append-only snapshot of a document's title and content
type DocumentVersion struct {
	ID         string              `json:"id"`
	DocumentID string              `json:"documentId"`
	UserID     string              `json:"userId"`
	Version    int                 `json:"version"`
	Title      string              `json:"title"`
	Content    string              `json:"content,omitempty"`
	User       *models.UserSummary `json:"user,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// RestoreResult is returned after a version restore
type RestoreResult struct {
	Message  string    `json:"message"`
	Document *Document `json:"document"`
}
