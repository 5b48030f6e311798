// Package coordinator composes memory, classification, and reply generation
// into the per-turn pipeline.
package coordinator

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/helpline-ai/helpline/agent/contract"
	memoryx "github.com/helpline-ai/helpline/agent/memory"
)

var ErrInvalidMessage = errors.New("message is empty")

// Config tunes the memory bounds. MaxHistory caps overall retention;
// ContextWindow caps how many turns condition the reply prompt. The two are
// deliberately independent.
type Config struct {
	MaxHistory    int
	ContextWindow int
}

// Coordinator owns one conversation. It is stateless across turns except for
// its memory, and must not be shared across logical conversations: Ask
// mutates memory at both ends of the pipeline, so concurrent calls on the
// same instance need external serialization.
type Coordinator struct {
	classifier contractx.IntentClassifier
	replier    contractx.ReplyGenerator
	memory     *memoryx.Memory

	contextWindow int
}

// New builds a Coordinator with a fresh, empty memory.
func New(classifier contractx.IntentClassifier, replier contractx.ReplyGenerator, cfg Config, opts ...memoryx.Option) (*Coordinator, error) {
	if classifier == nil {
		return nil, errors.New("intent classifier is required")
	}
	if replier == nil {
		return nil, errors.New("reply generator is required")
	}

	contextWindow := cfg.ContextWindow
	if contextWindow <= 0 {
		contextWindow = memoryx.DefaultContextWindow
	}

	return &Coordinator{
		classifier:    classifier,
		replier:       replier,
		memory:        memoryx.New(cfg.MaxHistory, opts...),
		contextWindow: contextWindow,
	}, nil
}

// Ask runs one complete turn: record the user message, classify it, render
// recent context, generate a reply, record the reply. The pipeline is
// straight-line with no retries; both generation stages own their fallbacks,
// so given non-blank input Ask always produces a well-formed result.
func (c *Coordinator) Ask(ctx context.Context, message string) (contractx.TurnResult, error) {
	if strings.TrimSpace(message) == "" {
		return contractx.TurnResult{}, ErrInvalidMessage
	}

	c.memory.Append(contractx.RoleUser, message)

	classification := c.classifier.Classify(ctx, message)
	log.Debug().
		Str("intent", string(classification.Intent)).
		Str("urgency", string(classification.Urgency)).
		Msg("message classified")

	reply := c.replier.Create(ctx, contractx.ReplyRequest{
		Message:        message,
		Classification: classification,
		Context:        c.memory.Context(c.contextWindow),
	})

	c.memory.Append(contractx.RoleAssistant, reply)

	return contractx.TurnResult{
		Intent:  classification.Intent,
		Urgency: classification.Urgency,
		Reply:   reply,
	}, nil
}

// History returns a copy of the retained conversation turns.
func (c *Coordinator) History() []contractx.Turn {
	return c.memory.Turns()
}
