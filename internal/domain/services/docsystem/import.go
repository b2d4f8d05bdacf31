package docsystem

import (
	"context"

	"github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
)

// ImportService creates documents from uploaded files
type ImportService interface {
	// Import converts each file independently; one failing file does not
	// stop the others
	Import(ctx context.Context, userID string, folderID *string, files []UploadedFile) (*ImportResult, error)
}

// ExportService renders a document as a downloadable file
type ExportService interface {
	Export(ctx context.Context, userID, documentID string, format ExportFormat) (*ExportedFile, error)
}

// ImportResult lists created documents and rejected files
type ImportResult struct {
	Success []docsystem.DocumentRef `json:"success"`
	Failed  []ImportError           `json:"failed"`
}

// ImportError explains why a file was not imported
type ImportError struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

// ExportFormat is the requested download format
type ExportFormat string

const (
	ExportMarkdown ExportFormat = "markdown"
	ExportPDF      ExportFormat = "pdf"
)

// ExportedFile is a rendered document ready to be sent
type ExportedFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
