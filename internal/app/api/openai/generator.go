package openai

import (
	"context"
	"errors"

	"github.com/sashabaranov/go-openai"

	apperrors "video2broll/internal/app/errors"
)

// Config represents configuration for the text generation client.
type Config struct {
	APIKey string `yaml:"api_key"`
	Model  string `yaml:"model"`
}

// Generator wraps the chat completion API behind a single-prompt
// interface. It is constructed and injected explicitly; there is no
// package-level client.
type Generator struct {
	client *openai.Client
	model  string
}

// NewGenerator creates a text generation client.
func NewGenerator(config Config) *Generator {
	model := config.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &Generator{
		client: openai.NewClient(config.APIKey),
		model:  model,
	}
}

// Complete sends prompt as a single user message and returns the raw
// generated text.
func (g *Generator) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: prompt,
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return "", apperrors.UpstreamRejected("text generation service", apiErr.HTTPStatusCode, apiErr.Message)
		}
		return "", apperrors.UpstreamUnavailable("text generation service", err)
	}
	if len(resp.Choices) == 0 {
		return "", apperrors.New(apperrors.KindUpstreamRejected, "text generation service returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
