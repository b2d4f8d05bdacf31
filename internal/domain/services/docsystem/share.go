package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// ShareService manages per-user grants on documents. Only the owner may
// list or change the shares of a document.
type ShareService interface {
	ListShares(ctx context.Context, userID, documentID string) ([]docsystem.DocumentShare, error)
	CreateShare(ctx context.Context, userID, documentID string, req *CreateShareRequest) (*docsystem.DocumentShare, error)
	UpdateShare(ctx context.Context, userID, documentID, shareID string, req *UpdateShareRequest) (*docsystem.DocumentShare, error)
	DeleteShare(ctx context.Context, userID, documentID, shareID string) error

	// SharedWithMe lists live documents other users shared with userID
	SharedWithMe(ctx context.Context, userID string) ([]docsystem.SharedDocument, error)
}

// CreateShareRequest shares a document with the user owning Email.
// Permission defaults to view.
type CreateShareRequest struct {
	Email      string               `json:"email"`
	Permission docsystem.Permission `json:"permission"`
}

// UpdateShareRequest changes the permission of a share
type UpdateShareRequest struct {
	Permission docsystem.Permission `json:"permission"`
}
