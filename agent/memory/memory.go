// Package memory holds the bounded rolling conversation log for one
// coordinator instance. It is not safe for concurrent use; the owning
// coordinator serializes access by processing one turn at a time.
package memory

import (
	"strings"
	"time"

	"github.com/google/uuid"

	contractx "github.com/helpline-ai/helpline/agent/contract"
)

const (
	// DefaultMaxHistory bounds total retention.
	DefaultMaxHistory = 20
	// DefaultContextWindow bounds how many turns condition the reply stage.
	// Kept separate from DefaultMaxHistory: prompts stay compact even when
	// retention grows.
	DefaultContextWindow = 5
)

// Memory is an ordered, FIFO-bounded sequence of turns.
type Memory struct {
	turns      []contractx.Turn
	maxHistory int

	now func() time.Time
}

// Option customizes a Memory.
type Option func(*Memory)

// WithClock overrides the timestamp source (useful for tests).
func WithClock(now func() time.Time) Option {
	return func(m *Memory) {
		if now != nil {
			m.now = now
		}
	}
}

// New creates an empty memory retaining at most maxHistory turns.
// Non-positive maxHistory falls back to DefaultMaxHistory.
func New(maxHistory int, opts ...Option) *Memory {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	m := &Memory{
		turns:      make([]contractx.Turn, 0, maxHistory),
		maxHistory: maxHistory,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Append records a turn with the current timestamp, evicting the oldest
// turns once the bound is exceeded.
func (m *Memory) Append(role contractx.Role, content string) {
	m.turns = append(m.turns, contractx.Turn{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		CreatedAt: m.now().UTC(),
	})
	if excess := len(m.turns) - m.maxHistory; excess > 0 {
		m.turns = m.turns[excess:]
	}
}

// Context renders the last n turns as a role-labeled text block in
// chronological order. Pure read; n <= 0 falls back to DefaultContextWindow.
func (m *Memory) Context(n int) string {
	if n <= 0 {
		n = DefaultContextWindow
	}
	start := len(m.turns) - n
	if start < 0 {
		start = 0
	}

	var b strings.Builder
	for _, t := range m.turns[start:] {
		b.WriteString(string(t.Role))
		b.WriteString(": ")
		b.WriteString(t.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// Len reports the number of retained turns.
func (m *Memory) Len() int {
	return len(m.turns)
}

// Turns returns a copy of the retained turns in chronological order.
func (m *Memory) Turns() []contractx.Turn {
	out := make([]contractx.Turn, len(m.turns))
	copy(out, m.turns)
	return out
}
