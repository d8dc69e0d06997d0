package chat

import (
	"context"
	"errors"
	"net/http"

	"github.com/rotisserie/eris"

	"github.com/sells-group/ev-dss/pkg/anthropic"
)

// DefaultAnthropicMaxTokens bounds each reply when no limit is configured.
const DefaultAnthropicMaxTokens = 1024

// AnthropicProvider streams replies from the Anthropic Messages API.
type AnthropicProvider struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// NewAnthropicProvider wraps client.
func NewAnthropicProvider(client anthropic.Client, model string, maxTokens int64) *AnthropicProvider {
	if maxTokens <= 0 {
		maxTokens = DefaultAnthropicMaxTokens
	}
	return &AnthropicProvider{client: client, model: model, maxTokens: maxTokens}
}

// Name implements Provider.
func (p *AnthropicProvider) Name() string { return "anthropic" }

// Stream implements Provider.
func (p *AnthropicProvider) Stream(ctx context.Context, system string, messages []Message, onDelta func(string) error) error {
	msgs := make([]anthropic.Message, len(messages))
	for i, m := range messages {
		msgs[i] = anthropic.Message{Role: m.Role, Content: m.Content}
	}

	var cbErr error
	resp, err := p.client.StreamMessage(ctx, anthropic.MessageRequest{
		Model:     p.model,
		MaxTokens: p.maxTokens,
		System:    system,
		Messages:  msgs,
	}, func(text string) error {
		cbErr = onDelta(text)
		return cbErr
	})
	if err != nil {
		switch {
		case cbErr != nil && errors.Is(err, cbErr):
			return cbErr
		case ctx.Err() != nil:
			return ctx.Err()
		}
		switch code := anthropic.StatusCode(err); code {
		case http.StatusTooManyRequests, http.StatusPaymentRequired:
			return eris.Wrapf(ErrorForStatus(code), "chat: anthropic status %d", code)
		default:
			return upstream(err, "anthropic stream")
		}
	}
	resp.Usage.LogCost(p.model, "chat")
	return nil
}
