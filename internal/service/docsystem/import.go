package docsystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/storage"
)

// DocumentConverter turns an uploaded file into Markdown by extension
type DocumentConverter interface {
	Supports(filename string) bool
	Convert(ctx context.Context, filename string, content []byte) (*docsysSvc.ConvertedDocument, error)
	Extensions() []string
}

// importService implements the ImportService interface
type importService struct {
	docService docsysSvc.DocumentService
	converter  DocumentConverter
	validator  *ResourceValidator
	logger     *slog.Logger
}

// NewImportService creates a new import service
func NewImportService(
	docService docsysSvc.DocumentService,
	converter DocumentConverter,
	validator *ResourceValidator,
	logger *slog.Logger,
) docsysSvc.ImportService {
	return &importService{
		docService: docService,
		converter:  converter,
		validator:  validator,
		logger:     logger,
	}
}

// Import creates one document per file. Per-file problems are reported in
// the result instead of failing the request.
func (s *importService) Import(ctx context.Context, userID string, folderID *string, files []docsysSvc.UploadedFile) (*docsysSvc.ImportResult, error) {
	if len(files) == 0 {
		return nil, domain.Invalid("No files provided")
	}
	if len(files) > config.MaxImportFiles {
		return nil, domain.Invalid(fmt.Sprintf("Maximum %d files allowed per import", config.MaxImportFiles))
	}

	folderID = normalizeFolderID(folderID)
	if err := s.validator.ValidateFolder(ctx, folderID, userID); err != nil {
		return nil, err
	}

	result := &docsysSvc.ImportResult{
		Success: []models.DocumentRef{},
		Failed:  []docsysSvc.ImportError{},
	}

	for _, file := range files {
		doc, err := s.importFile(ctx, userID, folderID, file)
		if err != nil {
			// Infrastructure failures abort; everything else is the file's fault
			var httpErr domain.HTTPError
			if !errors.As(err, &httpErr) && !errors.Is(err, errFileRejected) {
				return nil, err
			}
			result.Failed = append(result.Failed, docsysSvc.ImportError{
				Filename: file.Filename,
				Error:    describe(err),
			})
			continue
		}
		result.Success = append(result.Success, models.DocumentRef{ID: doc.ID, Title: doc.Title})
	}

	s.logger.Info("import complete",
		"user_id", userID,
		"folder_id", folderID,
		"created", len(result.Success),
		"failed", len(result.Failed),
	)

	return result, nil
}

var errFileRejected = errors.New("file rejected")

// describe renders a per-file failure for the client
func describe(err error) string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		parts := make([]string, 0, len(verr.Fields))
		for field, msg := range verr.Fields {
			parts = append(parts, field+": "+msg)
		}
		sort.Strings(parts)
		return strings.Join(parts, "; ")
	}
	return strings.TrimPrefix(err.Error(), errFileRejected.Error()+": ")
}

func reject(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errFileRejected, fmt.Sprintf(format, args...))
}

func (s *importService) importFile(ctx context.Context, userID string, folderID *string, file docsysSvc.UploadedFile) (*models.Document, error) {
	if !s.converter.Supports(file.Filename) {
		return nil, reject("Unsupported file type. Allowed: %s", strings.Join(s.converter.Extensions(), ", "))
	}
	if file.Size > config.MaxImportFileSize {
		return nil, reject("File size exceeds 1MB limit")
	}

	data, err := storage.ReadLimited(file.Content, config.MaxImportFileSize)
	if err != nil {
		if errors.Is(err, storage.ErrTooLarge) {
			return nil, reject("File size exceeds 1MB limit")
		}
		return nil, reject("Failed to read file: %v", err)
	}

	converted, err := s.converter.Convert(ctx, file.Filename, data)
	if err != nil {
		return nil, reject("%v", err)
	}

	title := strings.TrimSpace(converted.Title)
	if title == "" {
		title = TitleFromFilename(file.Filename)
	}

	return s.docService.CreateDocument(ctx, userID, &docsysSvc.CreateDocumentRequest{
		Title:    title,
		Content:  converted.Content,
		Tags:     converted.Tags,
		FolderID: folderID,
	})
}

// TitleFromFilename strips the directory and extension and caps the length
func TitleFromFilename(filename string) string {
	base := filepath.Base(strings.ReplaceAll(filename, "\\", "/"))
	title := strings.TrimSpace(strings.TrimSuffix(base, filepath.Ext(base)))
	if title == "" || title == "." {
		title = "Untitled"
	}
	if runes := []rune(title); len(runes) > config.MaxDocumentTitleLength {
		title = string(runes[:config.MaxDocumentTitleLength])
	}
	return title
}
