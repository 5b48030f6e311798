package coordinator

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	classifierx "github.com/helpline-ai/helpline/agent/classifier"
	contractx "github.com/helpline-ai/helpline/agent/contract"
	replyx "github.com/helpline-ai/helpline/agent/reply"
)

type fakeClassifier struct {
	result contractx.Classification
	calls  int
}

func (f *fakeClassifier) Classify(ctx context.Context, message string) contractx.Classification {
	f.calls++
	return f.result
}

type fakeReplier struct {
	reply string
	reqs  []contractx.ReplyRequest
}

func (f *fakeReplier) Create(ctx context.Context, req contractx.ReplyRequest) string {
	f.reqs = append(f.reqs, req)
	return f.reply
}

type failingGenerator struct{}

func (failingGenerator) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	return "", errors.New("service unavailable")
}

func (failingGenerator) CompleteJSON(ctx context.Context, systemPrompt, userPrompt string, schema contractx.ResponseSchema) (string, error) {
	return "", errors.New("service unavailable")
}

func TestAskRunsFullPipeline(t *testing.T) {
	t.Parallel()

	classifier := &fakeClassifier{
		result: contractx.Classification{
			Intent:  contractx.IntentCancellation,
			Urgency: contractx.UrgencyHigh,
		},
	}
	replier := &fakeReplier{reply: "I can help you cancel. Could you share your order ID?"}
	c := newTestCoordinator(t, classifier, replier, Config{})

	out, err := c.Ask(context.Background(), "I want to cancel my subscription.")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if out.Intent != contractx.IntentCancellation || out.Urgency != contractx.UrgencyHigh {
		t.Fatalf("unexpected classification in result: %+v", out)
	}
	if out.Reply == "" || out.Reply != replier.reply {
		t.Fatalf("unexpected reply: %q", out.Reply)
	}
	if classifier.calls != 1 {
		t.Fatalf("expected one classification call, got %d", classifier.calls)
	}

	turns := c.History()
	if len(turns) != 2 {
		t.Fatalf("expected two turns in memory, got %d", len(turns))
	}
	if turns[0].Role != contractx.RoleUser || turns[0].Content != "I want to cancel my subscription." {
		t.Fatalf("unexpected first turn: %+v", turns[0])
	}
	if turns[1].Role != contractx.RoleAssistant || turns[1].Content != replier.reply {
		t.Fatalf("unexpected second turn: %+v", turns[1])
	}
}

func TestAskContextIncludesCurrentUserMessage(t *testing.T) {
	t.Parallel()

	replier := &fakeReplier{reply: "noted"}
	c := newTestCoordinator(t, &fakeClassifier{result: contractx.FallbackClassification}, replier, Config{})

	if _, err := c.Ask(context.Background(), "first question"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if _, err := c.Ask(context.Background(), "second question"); err != nil {
		t.Fatalf("Ask() error = %v", err)
	}

	if len(replier.reqs) != 2 {
		t.Fatalf("expected two reply requests, got %d", len(replier.reqs))
	}
	got := replier.reqs[1].Context
	for _, fragment := range []string{
		"user: first question\n",
		"assistant: noted\n",
		"user: second question\n",
	} {
		if !strings.Contains(got, fragment) {
			t.Fatalf("context missing %q:\n%s", fragment, got)
		}
	}
}

func TestAskBoundsMemoryAcrossTurns(t *testing.T) {
	t.Parallel()

	const maxHistory = 6
	c := newTestCoordinator(t,
		&fakeClassifier{result: contractx.Classification{Intent: contractx.IntentGeneral, Urgency: contractx.UrgencyLow}},
		&fakeReplier{reply: "ok"},
		Config{MaxHistory: maxHistory},
	)

	// Each turn appends two entries; run enough turns to overflow retention.
	for i := 0; i < maxHistory+5; i++ {
		if _, err := c.Ask(context.Background(), fmt.Sprintf("question %d", i)); err != nil {
			t.Fatalf("Ask() error = %v", err)
		}
	}

	turns := c.History()
	if len(turns) != maxHistory {
		t.Fatalf("expected len=%d, got %d", maxHistory, len(turns))
	}
	last := turns[len(turns)-1]
	if last.Role != contractx.RoleAssistant || last.Content != "ok" {
		t.Fatalf("unexpected newest turn: %+v", last)
	}
}

func TestAskRejectsBlankMessage(t *testing.T) {
	t.Parallel()

	c := newTestCoordinator(t, &fakeClassifier{}, &fakeReplier{reply: "ok"}, Config{})

	if _, err := c.Ask(context.Background(), "   "); !errors.Is(err, ErrInvalidMessage) {
		t.Fatalf("expected ErrInvalidMessage, got %v", err)
	}
	if len(c.History()) != 0 {
		t.Fatalf("blank message must not be recorded, len=%d", len(c.History()))
	}
}

// The degraded path wires the real classifier and reply generator over a
// generator whose every call fails: the turn must still produce in-enum
// values and a non-empty reply.
func TestAskDegradedPipelineStaysTotal(t *testing.T) {
	t.Parallel()

	classifier, err := classifierx.New(failingGenerator{})
	if err != nil {
		t.Fatalf("classifier.New() error = %v", err)
	}
	replier, err := replyx.New(failingGenerator{})
	if err != nil {
		t.Fatalf("reply.New() error = %v", err)
	}
	c := newTestCoordinator(t, classifier, replier, Config{})

	out, err := c.Ask(context.Background(), "is anyone there?")
	if err != nil {
		t.Fatalf("Ask() error = %v", err)
	}
	if out.Intent != contractx.IntentError {
		t.Fatalf("expected fallback intent, got %q", out.Intent)
	}
	if out.Urgency != contractx.UrgencyLow {
		t.Fatalf("expected fallback urgency, got %q", out.Urgency)
	}
	if out.Reply != replyx.FallbackReply {
		t.Fatalf("expected fallback reply, got %q", out.Reply)
	}

	if len(c.History()) != 2 {
		t.Fatalf("degraded turn must still be recorded, len=%d", len(c.History()))
	}
}

func TestNewRequiresComponents(t *testing.T) {
	t.Parallel()

	if _, err := New(nil, &fakeReplier{}, Config{}); err == nil {
		t.Fatal("expected error for nil classifier")
	}
	if _, err := New(&fakeClassifier{}, nil, Config{}); err == nil {
		t.Fatal("expected error for nil reply generator")
	}
}

func newTestCoordinator(t *testing.T, classifier contractx.IntentClassifier, replier contractx.ReplyGenerator, cfg Config) *Coordinator {
	t.Helper()
	c, err := New(classifier, replier, cfg)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}
