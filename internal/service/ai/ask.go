package ai

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/sashabaranov/go-openai"

	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

type askService struct {
	docRepo docsysRepo.DocumentRepository
	client  ChatCompleter
	prompt  config.PromptTemplate
	model   string
	logger  *slog.Logger
}

// NewAskService creates the question answering service. With a nil client
// every question fails as unavailable.
func NewAskService(
	docRepo docsysRepo.DocumentRepository,
	client ChatCompleter,
	prompts *config.Prompts,
	model string,
	logger *slog.Logger,
) docsysSvc.AskService {
	return &askService{
		docRepo: docRepo,
		client:  client,
		prompt:  prompts.Ask,
		model:   model,
		logger:  logger,
	}
}

func (s *askService) Ask(ctx context.Context, userID string, req *docsysSvc.AskRequest) (*docsysSvc.AskResponse, error) {
	req.Question = strings.TrimSpace(req.Question)
	err := validation.ValidateStruct(req,
		validation.Field(&req.Question,
			validation.Required.Error("question is required"),
			validation.RuneLength(1, config.MaxQuestionLength),
		),
		validation.Field(&req.DocumentIDs, validation.Each(validation.Required, is.UUID)),
	)
	if err != nil {
		return nil, domain.FromValidation(err)
	}

	if s.client == nil {
		return nil, domain.Unavailable("AI service not configured")
	}

	docs, err := s.contextDocuments(ctx, userID, req.DocumentIDs)
	if err != nil {
		return nil, err
	}

	system, err := config.Render(s.prompt.System, struct{ Context string }{BuildContext(docs)})
	if err != nil {
		return nil, fmt.Errorf("render ask prompt: %w", err)
	}

	answer, err := complete(ctx, s.client, "ask", openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   s.prompt.MaxTokens,
		Temperature: s.prompt.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: req.Question},
		},
	})
	if err != nil {
		s.logger.Error("ask completion failed", "error", err)
		return nil, err
	}

	sources := make([]models.DocumentRef, 0, len(docs))
	for _, d := range docs {
		sources = append(sources, models.DocumentRef{ID: d.ID, Title: d.Title})
	}

	return &docsysSvc.AskResponse{Answer: answer, Sources: sources}, nil
}

// contextDocuments returns the requested documents the user owns, or the
// most recently updated ones when none were requested
func (s *askService) contextDocuments(ctx context.Context, userID string, ids []string) ([]models.Document, error) {
	if len(ids) > 0 {
		return s.docRepo.GetByIDs(ctx, userID, distinct(ids))
	}
	return s.docRepo.ListRecent(ctx, userID, config.AskContextDocuments)
}

// BuildContext joins documents as "## title" sections separated by rules
func BuildContext(docs []models.Document) string {
	parts := make([]string, 0, len(docs))
	for _, d := range docs {
		parts = append(parts, "## "+d.Title+"\n"+d.Content)
	}
	return strings.Join(parts, "\n\n---\n\n")
}
