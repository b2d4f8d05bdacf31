package docsystem

import "time"

// MatchType names the field a search hit was found in
type MatchType string

const (
	MatchTitle   MatchType = "title"
	MatchContent MatchType = "content"
	MatchTag     MatchType = "tag"
)

// SearchResult is one document matched by a search query.
// MatchStart and MatchEnd are rune offsets into the matched field and are
// absent for tag matches.
type SearchResult struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
	Excerpt    string    `json:"excerpt"`
	MatchType  MatchType `json:"matchType,omitempty"`
	MatchStart *int      `json:"matchStart,omitempty"`
	MatchEnd   *int      `json:"matchEnd,omitempty"`
}
