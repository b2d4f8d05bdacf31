package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/wikilink"
)

// LinkService resolves [[wiki links]] between a user's documents
type LinkService interface {
	// Links lists the outgoing links of a document and its rendered Markdown
	Links(ctx context.Context, userID, documentID string) (*docsystem.DocumentLinks, error)

	// Backlinks lists the owner's documents linking to this one
	Backlinks(ctx context.Context, userID, documentID string) ([]docsystem.DocumentRef, error)

	// Complete reports the input state at the cursor with title suggestions
	Complete(ctx context.Context, userID string, req *CompleteRequest) (*CompleteResponse, error)

	// Insert places a link at the cursor
	Insert(req *InsertLinkRequest) (*InsertLinkResponse, error)
}

// CompleteRequest asks for link suggestions at a cursor (rune offset)
type CompleteRequest struct {
	Content        string `json:"content"`
	CursorPosition int    `json:"cursorPosition"`
}

// CompleteResponse is the input state plus matching titles
type CompleteResponse struct {
	wikilink.InputState
	Suggestions []docsystem.DocumentRef `json:"suggestions"`
}

// InsertLinkRequest inserts [[Title]] at a cursor
type InsertLinkRequest struct {
	Content        string `json:"content"`
	CursorPosition int    `json:"cursorPosition"`
	Title          string `json:"title"`
}

// InsertLinkResponse is the edited content and new cursor
type InsertLinkResponse struct {
	Content        string `json:"content"`
	CursorPosition int    `json:"cursorPosition"`
}
