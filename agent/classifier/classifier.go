// Package classifier turns a user message into a typed intent/urgency pair
// with one schema-constrained generation call.
package classifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	contractx "github.com/helpline-ai/helpline/agent/contract"
	llmx "github.com/helpline-ai/helpline/agent/llm"
	promptx "github.com/helpline-ai/helpline/agent/prompt"
)

var _ contractx.IntentClassifier = (*Classifier)(nil)

// Classifier classifies messages via the text-generation boundary.
type Classifier struct {
	generator    contractx.TextGenerator
	systemPrompt string
	schema       contractx.ResponseSchema
}

// New builds a Classifier over the given generator.
func New(generator contractx.TextGenerator) (*Classifier, error) {
	if generator == nil {
		return nil, errors.New("text generator is required")
	}
	return &Classifier{
		generator:    generator,
		systemPrompt: promptx.LoadPromptSet().Classifier,
		schema:       responseSchema(),
	}, nil
}

// Classify issues exactly one classification request. It is total: transport
// failures, unparseable payloads, and out-of-enum values all degrade to
// FallbackClassification so the coordinator can always proceed.
func (c *Classifier) Classify(ctx context.Context, message string) contractx.Classification {
	result, err := c.classify(ctx, message)
	if err != nil {
		log.Warn().Err(err).Msg("intent classification degraded to fallback")
		return contractx.FallbackClassification
	}
	return result
}

func (c *Classifier) classify(ctx context.Context, message string) (contractx.Classification, error) {
	userPrompt := fmt.Sprintf("Message: %q", message)

	payload, err := c.generator.CompleteJSON(ctx, c.systemPrompt, userPrompt, c.schema)
	if err != nil {
		return contractx.Classification{}, err
	}

	var raw struct {
		Intent  string `json:"intent"`
		Urgency string `json:"urgency"`
	}
	if err := llmx.DecodeModelJSON(payload, &raw); err != nil {
		return contractx.Classification{}, fmt.Errorf("%w: %v", contractx.ErrSchemaViolation, err)
	}

	intent, err := contractx.ParseIntent(raw.Intent)
	if err != nil {
		return contractx.Classification{}, err
	}
	urgency, err := contractx.ParseUrgency(raw.Urgency)
	if err != nil {
		return contractx.Classification{}, err
	}

	return contractx.Classification{Intent: intent, Urgency: urgency}, nil
}

// responseSchema declares the two-field output shape with its enumerations
// so the provider is asked to self-constrain.
func responseSchema() contractx.ResponseSchema {
	intents := make([]string, 0, len(contractx.Intents()))
	for _, v := range contractx.Intents() {
		intents = append(intents, string(v))
	}
	urgencies := make([]string, 0, len(contractx.Urgencies()))
	for _, v := range contractx.Urgencies() {
		urgencies = append(urgencies, string(v))
	}

	return contractx.ResponseSchema{
		Name: "message_classification",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"intent": map[string]any{
					"type": "string",
					"enum": intents,
				},
				"urgency": map[string]any{
					"type": "string",
					"enum": urgencies,
				},
			},
			"required":             []string{"intent", "urgency"},
			"additionalProperties": false,
		},
	}
}
