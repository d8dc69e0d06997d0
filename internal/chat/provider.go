package chat

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
)

// Message roles accepted from clients.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	roleSystem    = "system"
)

// Message is one turn of the conversation.
type Message struct {
	Role    string `json:"role" yaml:"role"`
	Content string `json:"content" yaml:"content"`
}

// Request is a client chat request.
type Request struct {
	Messages        []Message        `json:"messages" yaml:"messages"`
	ScenarioContext *ScenarioContext `json:"scenarioContext,omitempty" yaml:"scenario_context,omitempty"`
}

// Validate requires at least one message and only user or assistant turns.
// The system turn is always supplied by the relay.
func (r Request) Validate() error {
	if len(r.Messages) == 0 {
		return eris.Wrap(ErrInvalidRequest, "messages must not be empty")
	}
	for i, m := range r.Messages {
		if m.Role != RoleUser && m.Role != RoleAssistant {
			return eris.Wrapf(ErrInvalidRequest, "message %d: unsupported role %q", i, m.Role)
		}
		if strings.TrimSpace(m.Content) == "" {
			return eris.Wrapf(ErrInvalidRequest, "message %d: empty content", i)
		}
	}
	return nil
}

// Provider streams a completion for a system prompt and conversation.
// onDelta receives each text fragment in order; an error it returns aborts
// the stream and is returned unchanged.
type Provider interface {
	Name() string
	Stream(ctx context.Context, system string, messages []Message, onDelta func(string) error) error
}
