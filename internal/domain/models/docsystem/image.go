package docsystem

import "time"

// DocumentImage is an uploaded image attached to a document
type DocumentImage struct {
	ID         string    `json:"id"`
	DocumentID string    `json:"documentId"`
	UserID     string    `json:"userId"`
	URL        string    `json:"url"`
	Pathname   string    `json:"-"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mimeType"`
	CreatedAt  time.Time `json:"createdAt"`
}
