package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/ev-dss/pkg/anthropic"
)

const anthropicStream = `event: message_start
data: {"type":"message_start","message":{"id":"msg_1","type":"message","role":"assistant","content":[],"model":"claude-sonnet-4-5-20250929","stop_reason":null,"stop_sequence":null,"usage":{"input_tokens":40,"output_tokens":1}}}

event: content_block_start
data: {"type":"content_block_start","index":0,"content_block":{"type":"text","text":""}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"Break-even "}}

event: content_block_delta
data: {"type":"content_block_delta","index":0,"delta":{"type":"text_delta","text":"is 4.8 years."}}

event: content_block_stop
data: {"type":"content_block_stop","index":0}

event: message_stop
data: {"type":"message_stop"}

`

func anthropicProvider(url string) *AnthropicProvider {
	client := anthropic.NewClient("test-key", option.WithBaseURL(url), option.WithMaxRetries(0))
	return NewAnthropicProvider(client, "claude-sonnet-4-5-20250929", 0)
}

func TestAnthropicProvider_Stream(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(DefaultAnthropicMaxTokens), body["max_tokens"])
		assert.NotEmpty(t, body["system"])

		w.Header().Set("Content-Type", "text/event-stream")
		fmt.Fprint(w, anthropicStream)
	}))
	defer ts.Close()

	got, onDelta := collect()
	p := anthropicProvider(ts.URL)
	err := p.Stream(context.Background(), SystemPrompt(nil), []Message{{Role: RoleUser, Content: "When do I break even?"}}, onDelta)
	require.NoError(t, err)
	assert.Equal(t, []string{"Break-even ", "is 4.8 years."}, *got)
	assert.Equal(t, "anthropic", p.Name())
}

func TestAnthropicProvider_ErrorTaxonomy(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusPaymentRequired, ErrPaymentRequired},
		{http.StatusInternalServerError, ErrUpstream},
	}
	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				fmt.Fprint(w, `{"type":"error","error":{"type":"api_error","message":"nope"}}`)
			}))
			defer ts.Close()

			_, onDelta := collect()
			err := anthropicProvider(ts.URL).Stream(context.Background(), "s", []Message{{Role: RoleUser, Content: "q"}}, onDelta)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
