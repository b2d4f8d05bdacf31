package docsystem

import (
	"time"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models"
)

// Permission is the access level a share grants
type Permission string

const (
	PermissionView Permission = "view"
	PermissionEdit Permission = "edit"
)

// Valid reports whether p is a known permission
func (p Permission) Valid() bool {
	return p == PermissionView || p == PermissionEdit
}

// DocumentShare grants one user access to another user's document
type DocumentShare struct {
	ID         string              `json:"id"`
	DocumentID string              `json:"documentId"`
	UserID     string              `json:"userId"`
	Permission Permission          `json:"permission"`
	User       *models.UserSummary `json:"user,omitempty"`
	CreatedAt  time.Time           `json:"createdAt"`
	UpdatedAt  time.Time           `json:"updatedAt"`
}

// SharedDocument is a document as seen by a share recipient
type SharedDocument struct {
	ID         string             `json:"id"`
	Title      string             `json:"title"`
	Content    string             `json:"content"`
	Tags       []string           `json:"tags"`
	CreatedAt  time.Time          `json:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt"`
	Owner      models.UserSummary `json:"owner"`
	Permission Permission         `json:"permission"`
	SharedAt   time.Time          `json:"sharedAt"`
}

// Access describes what the caller may do with a document
type Access struct {
	Document *Document
	IsOwner  bool
	CanEdit  bool
}
