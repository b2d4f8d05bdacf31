package ai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hosi121/Bansho-sub000/internal/cache"
	"github.com/Hosi121/Bansho-sub000/internal/config"
	"github.com/Hosi121/Bansho-sub000/internal/domain"
	models "github.com/Hosi121/Bansho-sub000/internal/domain/models/docsystem"
	docsysRepo "github.com/Hosi121/Bansho-sub000/internal/domain/repositories/docsystem"
	docsysSvc "github.com/Hosi121/Bansho-sub000/internal/domain/services/docsystem"
)

const (
	user  = "11111111-1111-1111-1111-111111111111"
	docA  = "aaaaaaaa-aaaa-aaaa-aaaa-aaaaaaaaaaaa"
	docB  = "bbbbbbbb-bbbb-bbbb-bbbb-bbbbbbbbbbbb"
	other = "cccccccc-cccc-cccc-cccc-cccccccccccc"
)

type fakeDocs struct {
	docsysRepo.DocumentRepository
	docs []models.Document
}

func (f *fakeDocs) GetByIDs(_ context.Context, userID string, ids []string) ([]models.Document, error) {
	var out []models.Document
	for _, d := range f.docs {
		for _, id := range ids {
			if d.ID == id && d.UserID == userID {
				out = append(out, d)
			}
		}
	}
	return out, nil
}

func (f *fakeDocs) ListRecent(_ context.Context, userID string, limit int) ([]models.Document, error) {
	var out []models.Document
	for _, d := range f.docs {
		if d.UserID == userID && len(out) < limit {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeEdges struct {
	docsysRepo.EdgeRepository
	upserts int
	last    models.Edge
}

func (f *fakeEdges) Upsert(_ context.Context, fromID, toID string, weight float64) (*models.Edge, error) {
	f.upserts++
	f.last = models.Edge{ID: "edge", FromDocumentID: fromID, ToDocumentID: toID, Weight: weight}
	return &f.last, nil
}

type fakeChat struct {
	reply string
	err   error
	calls int
	last  openai.ChatCompletionRequest
}

func (f *fakeChat) CreateChatCompletion(_ context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	f.calls++
	f.last = req
	if f.err != nil {
		return openai.ChatCompletionResponse{}, f.err
	}
	return openai.ChatCompletionResponse{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: f.reply}}},
	}, nil
}

type mapResponse struct {
	value string
}

func (r mapResponse) Err() error              { return nil }
func (r mapResponse) Result() (string, error) { return r.value, nil }

type countResponse struct{}

func (countResponse) Err() error             { return nil }
func (countResponse) Result() (int64, error) { return 0, nil }

type mapCache map[string]string

func (m mapCache) Get(_ context.Context, key string) cache.Response[string] {
	return mapResponse{m[key]}
}

func (m mapCache) Set(_ context.Context, key string, value any, _ time.Duration) cache.Response[string] {
	m[key] = value.(string)
	return mapResponse{"OK"}
}

func (m mapCache) Del(_ context.Context, keys ...string) cache.Response[int64] {
	for _, k := range keys {
		delete(m, k)
	}
	return countResponse{}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testPrompts(t *testing.T) *config.Prompts {
	t.Helper()
	p, err := config.LoadPrompts("")
	require.NoError(t, err)
	return p
}

func twoDocs() *fakeDocs {
	return &fakeDocs{docs: []models.Document{
		{ID: docA, UserID: user, Title: "Go", Content: "goroutines"},
		{ID: docB, UserID: user, Title: "Rust", Content: "ownership"},
	}}
}

func TestParseRelation(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  float64
	}{
		{"json", `{"relation": 0.8}`, 0.8},
		{"fenced json", "```json\n{\"relation\": 0.25}\n```", 0.25},
		{"bare number", "I would say 0.7 overall", 0.7},
		{"clamped high", `{"relation": 3}`, 1},
		{"integer fallback", "score: 1", 1},
		{"no number", "unrelated", DefaultRelation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ParseRelation(tt.reply), 1e-9)
		})
	}
}

func TestRelateWithoutClientDoesNotPersist(t *testing.T) {
	edges := &fakeEdges{}
	svc := NewRelationService(twoDocs(), edges, nil, nil, testPrompts(t), "gpt-4o-mini", testLogger())

	resp, err := svc.Relate(context.Background(), user, &docsysSvc.RelateRequest{DocumentIDs: []string{docA, docB}})
	require.NoError(t, err)
	assert.Equal(t, DefaultRelation, resp.Relation)
	assert.Nil(t, resp.Edge)
	assert.Zero(t, edges.upserts)
}

func TestRelateScoresAndCaches(t *testing.T) {
	edges := &fakeEdges{}
	chat := &fakeChat{reply: `{"relation": 0.9}`}
	c := mapCache{}
	svc := NewRelationService(twoDocs(), edges, chat, c, testPrompts(t), "gpt-4o-mini", testLogger())

	req := &docsysSvc.RelateRequest{DocumentIDs: []string{docA, docB}}
	resp, err := svc.Relate(context.Background(), user, req)
	require.NoError(t, err)
	assert.InDelta(t, 0.9, resp.Relation, 1e-9)
	require.NotNil(t, resp.Edge)
	assert.Equal(t, docA, resp.Edge.FromDocumentID)
	assert.Equal(t, docB, resp.Edge.ToDocumentID)
	assert.Contains(t, chat.last.Messages[0].Content, "goroutines")
	assert.Equal(t, 100, chat.last.MaxTokens)

	_, err = svc.Relate(context.Background(), user, req)
	require.NoError(t, err)
	assert.Equal(t, 1, chat.calls, "second call should hit the cache")
	assert.Equal(t, 2, edges.upserts)
	assert.Len(t, c, 1)
}

func TestRelateRejects(t *testing.T) {
	tests := []struct {
		name    string
		ids     []string
		wantErr error
	}{
		{"single document", []string{docA}, domain.ErrValidation},
		{"duplicate ids", []string{docA, docA}, domain.ErrValidation},
		{"bad uuid", []string{docA, "nope"}, domain.ErrValidation},
		{"not owned", []string{docA, other}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewRelationService(twoDocs(), &fakeEdges{}, nil, nil, testPrompts(t), "m", testLogger())
			_, err := svc.Relate(context.Background(), user, &docsysSvc.RelateRequest{DocumentIDs: tt.ids})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAsk(t *testing.T) {
	chat := &fakeChat{reply: "Goroutines are cheap."}
	svc := NewAskService(twoDocs(), chat, testPrompts(t), "m", testLogger())

	resp, err := svc.Ask(context.Background(), user, &docsysSvc.AskRequest{Question: " what is go? ", DocumentIDs: []string{docA}})
	require.NoError(t, err)
	assert.Equal(t, "Goroutines are cheap.", resp.Answer)
	assert.Equal(t, []models.DocumentRef{{ID: docA, Title: "Go"}}, resp.Sources)

	require.Len(t, chat.last.Messages, 2)
	assert.Contains(t, chat.last.Messages[0].Content, "## Go\ngoroutines")
	assert.NotContains(t, chat.last.Messages[0].Content, "Rust")
	assert.Equal(t, "what is go?", chat.last.Messages[1].Content)
}

func TestAskUsesRecentDocuments(t *testing.T) {
	chat := &fakeChat{reply: "ok"}
	svc := NewAskService(twoDocs(), chat, testPrompts(t), "m", testLogger())

	resp, err := svc.Ask(context.Background(), user, &docsysSvc.AskRequest{Question: "anything"})
	require.NoError(t, err)
	assert.Len(t, resp.Sources, 2)
	assert.Contains(t, chat.last.Messages[0].Content, "\n\n---\n\n")
}

func TestAskErrors(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := NewAskService(twoDocs(), nil, testPrompts(t), "m", testLogger())
		_, err := svc.Ask(context.Background(), user, &docsysSvc.AskRequest{Question: "q"})
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("empty question", func(t *testing.T) {
		svc := NewAskService(twoDocs(), &fakeChat{}, testPrompts(t), "m", testLogger())
		_, err := svc.Ask(context.Background(), user, &docsysSvc.AskRequest{Question: "   "})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("empty answer", func(t *testing.T) {
		svc := NewAskService(twoDocs(), &fakeChat{reply: " "}, testPrompts(t), "m", testLogger())
		_, err := svc.Ask(context.Background(), user, &docsysSvc.AskRequest{Question: "q"})
		assert.ErrorIs(t, err, errEmptyCompletion)
	})

	t.Run("upstream failure", func(t *testing.T) {
		svc := NewAskService(twoDocs(), &fakeChat{err: errors.New("boom")}, testPrompts(t), "m", testLogger())
		_, err := svc.Ask(context.Background(), user, &docsysSvc.AskRequest{Question: "q"})
		assert.Error(t, err)
	})
}
