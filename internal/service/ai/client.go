// Package ai implements the OpenAI-backed relation scoring and question
// answering services.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sashabaranov/go-openai"
)

// ChatCompleter is the part of *openai.Client the services call
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// NewClient builds an OpenAI client. A non-empty baseURL points it at any
// OpenAI-compatible endpoint.
func NewClient(apiKey, baseURL string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return openai.NewClientWithConfig(cfg)
}

var aiRequests = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bansho_ai_requests_total",
		Help: "Chat completion calls by kind and result",
	},
	[]string{"kind", "result"},
)

var errEmptyCompletion = errors.New("no response from AI")

// complete runs one chat completion and returns the first choice's text
func complete(ctx context.Context, client ChatCompleter, kind string, req openai.ChatCompletionRequest) (string, error) {
	resp, err := client.CreateChatCompletion(ctx, req)
	if err != nil {
		aiRequests.WithLabelValues(kind, "error").Inc()
		return "", fmt.Errorf("%s completion: %w", kind, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		aiRequests.WithLabelValues(kind, "empty").Inc()
		return "", errEmptyCompletion
	}

	aiRequests.WithLabelValues(kind, "ok").Inc()
	return resp.Choices[0].Message.Content, nil
}
