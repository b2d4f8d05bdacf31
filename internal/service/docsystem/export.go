package docsystem

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Hosi121/Bansho-sub000/internal/domain"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/export"
)

// PDFRenderer renders a document to PDF bytes
type PDFRenderer interface {
	Render(doc export.PDFDocument) ([]byte, error)
}

type exportService struct {
	authorizer docsysSvc.DocumentAuthorizer
	pdf        PDFRenderer
	logger     *slog.Logger
}

// NewExportService creates a new export service
func NewExportService(
	authorizer docsysSvc.DocumentAuthorizer,
	pdf PDFRenderer,
	logger *slog.Logger,
) docsysSvc.ExportService {
	return &exportService{
		authorizer: authorizer,
		pdf:        pdf,
		logger:     logger,
	}
}

// Export renders a viewable document as Markdown (default) or PDF
func (s *exportService) Export(ctx context.Context, userID, documentID string, format docsysSvc.ExportFormat) (*docsysSvc.ExportedFile, error) {
	if format == "" {
		format = docsysSvc.ExportMarkdown
	}
	if format != docsysSvc.ExportMarkdown && format != docsysSvc.ExportPDF {
		return nil, domain.Invalid("Invalid format. Use markdown or pdf")
	}

	access, err := s.authorizer.CanView(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	doc := access.Document
	base := export.Filename(doc.Title)

	var file *docsysSvc.ExportedFile
	switch format {
	case docsysSvc.ExportPDF:
		body, err := s.pdf.Render(export.PDFDocument{
			Title:     doc.Title,
			Content:   doc.Content,
			CreatedAt: doc.CreatedAt,
			UpdatedAt: doc.UpdatedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		file = &docsysSvc.ExportedFile{
			Filename:    base + ".pdf",
			ContentType: "application/pdf",
			Body:        body,
		}
	default:
		file = &docsysSvc.ExportedFile{
			Filename:    base + ".md",
			ContentType: "text/markdown; charset=utf-8",
			Body:        []byte(export.MarkdownBody(doc.Title, doc.Content)),
		}
	}

	s.logger.Info("document exported",
		"document_id", documentID,
		"user_id", userID,
		"format", format,
		"bytes", len(file.Body),
	)

	return file, nil
}
