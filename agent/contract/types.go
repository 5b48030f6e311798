package contract

import (
	"fmt"
	"strings"
	"time"
)

// Role tags one side of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Intent is the classified purpose of a user message.
type Intent string

const (
	IntentRefund       Intent = "refund"
	IntentCancellation Intent = "cancellation"
	IntentBilling      Intent = "billing"
	IntentGeneralHelp  Intent = "general_help"
	IntentGeneral      Intent = "general"

	// IntentError is the fallback intent when classification degrades.
	IntentError Intent = "error"
)

// Urgency is the classified priority of a user message.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// Intents lists the classifiable intents, excluding the fallback IntentError.
// The classifier prompt and response schema are built from this set.
func Intents() []Intent {
	return []Intent{
		IntentRefund,
		IntentCancellation,
		IntentBilling,
		IntentGeneralHelp,
		IntentGeneral,
	}
}

// Urgencies lists all urgency levels.
func Urgencies() []Urgency {
	return []Urgency{UrgencyLow, UrgencyMedium, UrgencyHigh}
}

// ParseIntent validates a raw model value against the closed intent set.
// IntentError is deliberately not accepted: the model must never pick the
// fallback for itself.
func ParseIntent(raw string) (Intent, error) {
	v := Intent(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Intents() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: intent=%q", ErrSchemaViolation, raw)
}

// ParseUrgency validates a raw model value against the closed urgency set.
func ParseUrgency(raw string) (Urgency, error) {
	v := Urgency(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Urgencies() {
		if v == known {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: urgency=%q", ErrSchemaViolation, raw)
}

// Turn is one message in a conversation. Immutable once appended to memory.
type Turn struct {
	ID        string    `json:"id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Classification is the structured result of one intent-classification call.
type Classification struct {
	Intent  Intent  `json:"intent"`
	Urgency Urgency `json:"urgency"`
}

// FallbackClassification is returned whenever the classification call fails
// or produces a payload outside the declared enumerations.
var FallbackClassification = Classification{
	Intent:  IntentError,
	Urgency: UrgencyLow,
}

// ReplyRequest carries everything the reply stage needs for one turn.
type ReplyRequest struct {
	Message        string
	Classification Classification
	Context        string
}

// TurnResult is the externally visible output of one coordinator turn.
type TurnResult struct {
	Intent  Intent  `json:"intent"`
	Urgency Urgency `json:"urgency"`
	Reply   string  `json:"reply"`
}
