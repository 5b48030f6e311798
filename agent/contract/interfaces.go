package contract

import "context"

// ResponseSchema declares the output shape a generation call must honor.
// Schema is a JSON Schema object passed through to the provider verbatim.
type ResponseSchema struct {
	Name   string
	Schema map[string]any
}

// TextGenerator is the boundary to the hosted text-generation capability.
// Implementations issue exactly one request per call and never retry.
type TextGenerator interface {
	// Complete returns free text for the given prompts.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// CompleteJSON returns a raw JSON payload constrained by schema.
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, schema ResponseSchema) (string, error)
}

// IntentClassifier turns a user message into a typed classification.
// Implementations are total: any failure maps to FallbackClassification.
type IntentClassifier interface {
	Classify(ctx context.Context, message string) Classification
}

// ReplyGenerator produces the user-facing reply for one turn.
// Implementations are total: any failure maps to a static non-empty fallback.
type ReplyGenerator interface {
	Create(ctx context.Context, req ReplyRequest) string
}
