package docsystem

import (
	"context"
	"log/slog"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

// searchService implements the SearchService interface
type searchService struct {
	docRepo docsysRepo.DocumentRepository
	logger  *slog.Logger
}

// NewSearchService creates a new search service
func NewSearchService(docRepo docsysRepo.DocumentRepository, logger *slog.Logger) docsysSvc.SearchService {
	return &searchService{docRepo: docRepo, logger: logger}
}

// Search matches the query against title, content and tag names and
// reports where the first hit is
func (s *searchService) Search(ctx context.Context, userID, query string) ([]models.SearchResult, error) {
	query = strings.TrimSpace(query)
	err := validation.Validate(query,
		validation.Required.Error("search query is required"),
		validation.RuneLength(1, config.MaxSearchQueryLength),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	docs, err := s.docRepo.Search(ctx, userID, query, config.SearchResultLimit)
	if err != nil {
		return nil, err
	}

	results := make([]models.SearchResult, 0, len(docs))
	for _, d := range docs {
		results = append(results, highlight(d, query))
	}

	s.logger.Debug("search", "user_id", userID, "query", query, "results", len(results))
	return results, nil
}

// highlight builds a search result for doc, locating query in title first,
// then content, then tags
func highlight(doc models.Document, query string) models.SearchResult {
	r := models.SearchResult{
		ID:        doc.ID,
		Title:     doc.Title,
		Content:   doc.Content,
		Tags:      doc.Tags,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
		Excerpt:   models.Excerpt(doc.Content, config.ExcerptLength),
	}
	if r.Tags == nil {
		r.Tags = []string{}
	}

	if start, end, ok := MatchRange(doc.Title, query); ok {
		r.MatchType, r.MatchStart, r.MatchEnd = models.MatchTitle, &start, &end
		return r
	}
	if start, end, ok := MatchRange(doc.Content, query); ok {
		r.MatchType, r.MatchStart, r.MatchEnd = models.MatchContent, &start, &end
		return r
	}
	for _, tag := range doc.Tags {
		if _, _, ok := MatchRange(tag, query); ok {
			r.MatchType = models.MatchTag
			break
		}
	}
	return r
}

// MatchRange finds the first case-insensitive occurrence of query in text.
// start and end are rune offsets, end exclusive.
func MatchRange(text, query string) (start, end int, ok bool) {
	haystack := lowerRunes(text)
	needle := lowerRunes(query)
	if len(needle) == 0 || len(needle) > len(haystack) {
		return 0, 0, false
	}

outer:
	for i := 0; i+len(needle) <= len(haystack); i++ {
		for j, r := range needle {
			if haystack[i+j] != r {
				continue outer
			}
		}
		return i, i + len(needle), true
	}
	return 0, 0, false
}

// lowerRunes lowercases rune by rune so offsets stay aligned with the input
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// SearchTitles autocompletes titles. An empty query lists recent documents.
func (s *searchService) SearchTitles(ctx context.Context, userID, query string) ([]models.DocumentRef, error) {
	query = strings.TrimSpace(query)
	if err := validation.Validate(query, validation.RuneLength(0, config.MaxSearchQueryLength)); err != nil {
		return nil, domain.FromValidation(err)
	}
	return s.docRepo.SearchTitles(ctx, userID, query, config.TitleSearchLimit)
}
