package docsystem

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
	"github.com/Hosi121/Bansho-sub000/internal/wikilink"
)

type linkService struct {
	docRepo    docsysRepo.DocumentRepository
	authorizer docsysSvc.DocumentAuthorizer
	logger     *slog.Logger
}

// NewLinkService creates a new wiki link service
func NewLinkService(
	docRepo docsysRepo.DocumentRepository,
	authorizer docsysSvc.DocumentAuthorizer,
	logger *slog.Logger,
) docsysSvc.LinkService {
	return &linkService{
		docRepo:    docRepo,
		authorizer: authorizer,
		logger:     logger,
	}
}

// Links resolves a document's [[links]] against the caller's own documents
func (s *linkService) Links(ctx context.Context, userID, documentID string) (*models.DocumentLinks, error) {
	access, err := s.authorizer.CanView(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	doc := access.Document

	titleToID := make(map[string]string)
	if titles := wikilink.UniqueTitles(doc.Content); len(titles) > 0 {
		refs, err := s.docRepo.FindByTitles(ctx, userID, titles)
		if err != nil {
			return nil, err
		}
		for _, ref := range refs {
			// Keep the first match when titles collide
			if _, ok := titleToID[ref.Title]; !ok {
				titleToID[ref.Title] = ref.ID
			}
		}
	}

	extracted := wikilink.Extract(doc.Content)
	links := make([]models.ResolvedLink, 0, len(extracted))
	for _, l := range extracted {
		resolved := models.ResolvedLink{Title: l.Title, Start: l.Start, End: l.End}
		if id, ok := titleToID[l.Title]; ok {
			resolved.DocumentID = &id
		}
		links = append(links, resolved)
	}

	return &models.DocumentLinks{
		Links:    links,
		Rendered: wikilink.TransformToMarkdown(doc.Content, titleToID),
	}, nil
}

// Backlinks lists the caller's documents that link to this one by title.
// Share holders never see the owner's other documents.
func (s *linkService) Backlinks(ctx context.Context, userID, documentID string) ([]models.DocumentRef, error) {
	access, err := s.authorizer.CanView(ctx, userID, documentID)
	if err != nil {
		return nil, err
	}
	doc := access.Document

	candidates, err := s.docRepo.ListContaining(ctx, userID, doc.ID, doc.Title)
	if err != nil {
		return nil, err
	}

	refs := make([]models.DocumentRef, 0)
	for _, c := range candidates {
		if wikilink.Contains(c.Content, doc.Title) {
			refs = append(refs, models.DocumentRef{ID: c.ID, Title: c.Title})
		}
	}
	return refs, nil
}

// Complete reports whether the cursor sits in an open [[ and suggests titles
func (s *linkService) Complete(ctx context.Context, userID string, req *docsysSvc.CompleteRequest) (*docsysSvc.CompleteResponse, error) {
	err := validation.ValidateStruct(req,
		validation.Field(&req.CursorPosition, validation.Min(0)),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	resp := &docsysSvc.CompleteResponse{
		InputState:  wikilink.InputStateAt(req.Content, req.CursorPosition),
		Suggestions: []models.DocumentRef{},
	}
	if !resp.IsActive {
		return resp, nil
	}

	query := strings.TrimSpace(resp.Query)
	if len([]rune(query)) > config.MaxSearchQueryLength {
		return resp, nil
	}

	resp.Suggestions, err = s.docRepo.SearchTitles(ctx, userID, query, config.TitleSearchLimit)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// Insert places [[title]] at the cursor, replacing an open [[query
func (s *linkService) Insert(req *docsysSvc.InsertLinkRequest) (*docsysSvc.InsertLinkResponse, error) {
	req.Title = strings.TrimSpace(req.Title)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.RuneLength(1, config.MaxDocumentTitleLength),
			validation.By(func(any) error {
				if strings.ContainsAny(req.Title, "[]") {
					return errors.New("must not contain brackets")
				}
				return nil
			}),
		),
		validation.Field(&req.CursorPosition, validation.Min(0)),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	content, cursor := wikilink.Insert(req.Content, req.CursorPosition, req.Title)
	return &docsysSvc.InsertLinkResponse{Content: content, CursorPosition: cursor}, nil
}
