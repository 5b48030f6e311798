// Package llm implements the text-generation boundary over the OpenAI SDK.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/shared"

	contractx "github.com/helpline-ai/helpline/agent/contract"
	openrouterx "github.com/helpline-ai/helpline/pkg/openrouter"
)

var _ contractx.TextGenerator = (*Generator)(nil)

// Generator issues single, non-retried chat completion requests.
type Generator struct {
	client              *openaisdk.Client
	model               string
	temperature         float64
	maxCompletionTokens int64
}

// NewGenerator wraps an SDK client with the model settings from cfg.
func NewGenerator(client *openaisdk.Client, cfg openrouterx.Config) (*Generator, error) {
	if client == nil {
		return nil, errors.New("sdk client is required")
	}
	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		return nil, fmt.Errorf("%w: model is required", contractx.ErrValidation)
	}

	g := &Generator{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
	}
	if cfg.MaxCompletionToken > 0 {
		g.maxCompletionTokens = int64(cfg.MaxCompletionToken)
	}
	return g, nil
}

// Complete returns the free-text content of one chat completion.
func (g *Generator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return g.invoke(ctx, g.params(systemPrompt, userPrompt))
}

// CompleteJSON returns the raw JSON payload of one schema-constrained chat
// completion. The declared schema asks the provider to self-constrain; the
// caller still validates the payload.
func (g *Generator) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, schema contractx.ResponseSchema) (string, error) {
	params := g.params(systemPrompt, userPrompt)
	params.ResponseFormat = openaisdk.ChatCompletionNewParamsResponseFormatUnion{
		OfJSONSchema: &shared.ResponseFormatJSONSchemaParam{
			JSONSchema: shared.ResponseFormatJSONSchemaJSONSchemaParam{
				Name:   schema.Name,
				Strict: openaisdk.Bool(true),
				Schema: schema.Schema,
			},
		},
	}
	return g.invoke(ctx, params)
}

func (g *Generator) params(systemPrompt, userPrompt string) openaisdk.ChatCompletionNewParams {
	params := openaisdk.ChatCompletionNewParams{
		Model: shared.ChatModel(g.model),
		Messages: []openaisdk.ChatCompletionMessageParamUnion{
			openaisdk.SystemMessage(systemPrompt),
			openaisdk.UserMessage(userPrompt),
		},
		Temperature: openaisdk.Float(g.temperature),
	}
	if g.maxCompletionTokens > 0 {
		params.MaxCompletionTokens = openaisdk.Int(g.maxCompletionTokens)
	}
	return params
}

func (g *Generator) invoke(ctx context.Context, params openaisdk.ChatCompletionNewParams) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", contractx.ErrSchemaViolation)
	}
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if content == "" {
		return "", fmt.Errorf("%w: empty content", contractx.ErrSchemaViolation)
	}
	return content, nil
}
