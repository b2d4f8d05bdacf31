package docsystem

// ResolvedLink is a wiki link found in a document, resolved against the
// owner's documents. DocumentID is nil when no document has the title.
type ResolvedLink struct {
	Title      string  `json:"title"`
	Start      int     `json:"start"`
	End        int     `json:"end"`
	DocumentID *string `json:"documentId"`
}

// DocumentLinks is the outgoing link view of a document
type DocumentLinks struct {
	Links    []ResolvedLink `json:"links"`
	Rendered string         `json:"rendered"`
}
