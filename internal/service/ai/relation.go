package ai

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sashabaranov/go-openai"

	"github.com/Hosi121/Bansho-sub000/internal/cache"
	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

const relationCacheTTL = 24 * time.Hour

type relationService struct {
	docRepo  docsysRepo.DocumentRepository
	edgeRepo docsysRepo.EdgeRepository
	client   ChatCompleter
	cache    cache.Cache
	prompt   config.PromptTemplate
	model    string
	logger   *slog.Logger
}

// NewRelationService creates a relation scorer. A nil client makes every
// score DefaultRelation and nothing is stored.
func NewRelationService(
	docRepo docsysRepo.DocumentRepository,
	edgeRepo docsysRepo.EdgeRepository,
	client ChatCompleter,
	c cache.Cache,
	prompts *config.Prompts,
	model string,
	logger *slog.Logger,
) docsysSvc.RelationService {
	if c == nil {
		c = cache.Noop{}
	}
	return &relationService{
		docRepo:  docRepo,
		edgeRepo: edgeRepo,
		client:   client,
		cache:    c,
		prompt:   prompts.Relation,
		model:    model,
		logger:   logger,
	}
}

// distinct keeps the first occurrence of each id
func distinct(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

func (s *relationService) Relate(ctx context.Context, userID string, req *docsysSvc.RelateRequest) (*docsysSvc.RelateResponse, error) {
	ids := distinct(req.DocumentIDs)
	err := validation.Validate(ids,
		validation.Required.Error("at least two documents are required"),
		validation.Length(2, 0).Error("at least two documents are required"),
		validation.Each(validation.Required, is.UUID),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	docs, err := s.docRepo.GetByIDs(ctx, userID, ids)
	if err != nil {
		return nil, err
	}
	if len(docs) != len(ids) {
		return nil, domain.NotFound("One or more documents not found or not owned by user")
	}

	byID := make(map[string]*models.Document, len(docs))
	for i := range docs {
		byID[docs[i].ID] = &docs[i]
	}
	first, second := byID[ids[0]], byID[ids[1]]

	if s.client == nil {
		return &docsysSvc.RelateResponse{Relation: DefaultRelation}, nil
	}

	score, err := s.score(ctx, first, second)
	if err != nil {
		return nil, err
	}

	edge, err := s.edgeRepo.Upsert(ctx, first.ID, second.ID, score)
	if err != nil {
		return nil, err
	}

	s.logger.Info("relation scored",
		"from", first.ID,
		"to", second.ID,
		"relation", score,
	)
	return &docsysSvc.RelateResponse{Relation: score, Edge: edge}, nil
}

// score asks the model, going through the cache first. The key covers both
// documents' content so an edit invalidates it.
func (s *relationService) score(ctx context.Context, first, second *models.Document) (float64, error) {
	key := relationCacheKey(first, second)

	if cached, err := s.cache.Get(ctx, key).Result(); err == nil && cached != "" {
		if v, err := strconv.ParseFloat(cached, 64); err == nil {
			return clamp(v), nil
		}
	}

	prompt, err := config.Render(s.prompt.User, struct {
		First, Second *models.Document
	}{first, second})
	if err != nil {
		return 0, fmt.Errorf("render relation prompt: %w", err)
	}

	reply, err := complete(ctx, s.client, "relation", openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.prompt.MaxTokens,
		Temperature: s.prompt.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.logger.Error("relation completion failed", "error", err)
		return 0, err
	}

	score := ParseRelation(reply)
	if err := s.cache.Set(ctx, key, strconv.FormatFloat(score, 'f', -1, 64), relationCacheTTL).Err(); err != nil {
		s.logger.Warn("cache relation score", "error", err)
	}
	return score, nil
}

func relationCacheKey(first, second *models.Document) string {
	h := sha256.New()
	for _, part := range []string{first.Title, first.Content, second.Title, second.Content} {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return fmt.Sprintf("relation:%s:%s:%s", first.ID, second.ID, hex.EncodeToString(h.Sum(nil))[:16])
}

func (s *relationService) ListRelations(ctx context.Context, userID string) ([]models.Relation, error) {
	return s.edgeRepo.ListRelations(ctx, userID)
}
