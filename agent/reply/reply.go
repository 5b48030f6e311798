// Package reply produces the user-facing answer for one turn with a single
// persona-prompted generation call.
package reply

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	contractx "github.com/helpline-ai/helpline/agent/contract"
	promptx "github.com/helpline-ai/helpline/agent/prompt"
)

// FallbackReply is returned when the generation call fails. User-facing
// output must never be empty.
const FallbackReply = "Sorry, I am having trouble connecting to my services right now. " +
	"If the problem persists, I can connect you with a human agent."

var _ contractx.ReplyGenerator = (*Generator)(nil)

// Generator writes replies via the text-generation boundary.
type Generator struct {
	generator    contractx.TextGenerator
	systemPrompt string
}

// New builds a reply Generator over the given text generator.
func New(generator contractx.TextGenerator) (*Generator, error) {
	if generator == nil {
		return nil, errors.New("text generator is required")
	}
	return &Generator{
		generator:    generator,
		systemPrompt: promptx.LoadPromptSet().Reply,
	}, nil
}

// Create issues exactly one generation request. It is total: any failure
// degrades to FallbackReply.
func (g *Generator) Create(ctx context.Context, req contractx.ReplyRequest) string {
	out, err := g.generator.Complete(ctx, g.systemPrompt, userPrompt(req))
	if err != nil {
		log.Warn().Err(err).Msg("reply generation degraded to fallback")
		return FallbackReply
	}
	if trimmed := strings.TrimSpace(out); trimmed != "" {
		return trimmed
	}
	log.Warn().Msg("reply generation returned blank content, using fallback")
	return FallbackReply
}

func userPrompt(req contractx.ReplyRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "The user's current intent is classified as '%s' with '%s' urgency.\n",
		req.Classification.Intent, req.Classification.Urgency)
	b.WriteString("Here is the recent conversation history:\n---\n")
	b.WriteString(req.Context)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "Most recent user message: %q", req.Message)
	return b.String()
}
