package docsystem

import (
	"time"
)

type Document struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	FolderID  *string    `json:"folderId"` // NULL = root level
	Title     string     `json:"title"`
	Content   string     `json:"content"` // Markdown content
	WordCount int        `json:"wordCount"`
	IsPinned  bool       `json:"isPinned"`
	Tags      []string   `json:"tags"`
	EdgesFrom []Edge     `json:"edges_from"`
	EdgesTo   []Edge     `json:"edges_to"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// DocumentRef identifies a document by id and title
type DocumentRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// DocumentSummary is a document without content, used in folder, tag and tree listings
type DocumentSummary struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	FolderID  *string   `json:"folderId"`
	IsPinned  bool      `json:"isPinned"`
	WordCount int       `json:"wordCount"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TrashItem is a soft-deleted document as shown in the trash view
type TrashItem struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Excerpt   string    `json:"excerpt"`
	Tags      []string  `json:"tags"`
	DeletedAt time.Time `json:"deletedAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PinResult is returned when a document's pin flag is toggled
type PinResult struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	IsPinned bool   `json:"isPinned"`
}

// BulkResult reports how many documents a bulk operation touched
type BulkResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// Excerpt returns the first n runes of content, suffixed with "..." when cut
func Excerpt(content string, n int) string {
	runes := []rune(content)
	if len(runes) <= n {
		return content
	}
	return string(runes[:n]) + "..."
}
