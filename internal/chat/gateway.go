package chat

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/ev-dss/internal/resilience"
)

// Gateway defaults.
const (
	DefaultGatewayBaseURL = "https://ai.gateway.dss.dev/v1"
	DefaultGatewayModel   = "google/gemini-2.5-flash"
)

// GatewayOptions configure a GatewayProvider.
type GatewayOptions struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
	Retry   resilience.RetryConfig
}

// GatewayProvider talks to an OpenAI-compatible chat completions endpoint.
type GatewayProvider struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
	retry   resilience.RetryConfig
}

// NewGatewayProvider creates a provider. A nil client gets a default one
// with opts.Timeout applied to the whole exchange.
func NewGatewayProvider(opts GatewayOptions, hc *http.Client) *GatewayProvider {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultGatewayBaseURL
	}
	if opts.Model == "" {
		opts.Model = DefaultGatewayModel
	}
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	if opts.Retry.OnRetry == nil {
		opts.Retry.OnRetry = resilience.RetryLogger("gateway", "chat_completions")
	}
	return &GatewayProvider{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		apiKey:  opts.APIKey,
		model:   opts.Model,
		http:    hc,
		retry:   opts.Retry,
	}
}

// Name implements Provider.
func (p *GatewayProvider) Name() string { return "gateway" }

type completionRequest struct {
	Model    string    `json:"model"`
	Messages []Message `json:"messages"`
	Stream   bool      `json:"stream"`
}

// Stream implements Provider. Opening the stream is retried on transient
// failures; once bytes flow nothing is retried.
func (p *GatewayProvider) Stream(ctx context.Context, system string, messages []Message, onDelta func(string) error) error {
	body, err := json.Marshal(completionRequest{
		Model:    p.model,
		Messages: append([]Message{{Role: roleSystem, Content: system}}, messages...),
		Stream:   true,
	})
	if err != nil {
		return eris.Wrap(err, "chat: encode completion request")
	}

	resp, err := resilience.DoVal(ctx, p.retry, func(ctx context.Context) (*http.Response, error) {
		return p.open(ctx, body)
	})
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck

	var cbErr error
	err = forwardDeltas(ctx, resp.Body, func(text string) error {
		cbErr = onDelta(text)
		return cbErr
	})
	switch {
	case err == nil:
		return nil
	case cbErr != nil:
		return cbErr
	case ctx.Err() != nil:
		return ctx.Err()
	default:
		return upstream(err, "read completion stream")
	}
}

func (p *GatewayProvider) open(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, eris.Wrap(err, "chat: build completion request")
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "text/event-stream")

	resp, err := p.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if resilience.IsTransient(err) {
			return nil, resilience.NewTransientError(upstream(err, "post completion"), 0)
		}
		return nil, upstream(err, "post completion")
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	resp.Body.Close() //nolint:errcheck
	zap.L().Error("chat: gateway error",
		zap.Int("status", resp.StatusCode),
		zap.String("body", string(detail)),
	)

	mapped := ErrorForStatus(resp.StatusCode)
	if resilience.IsTransientHTTPStatus(resp.StatusCode) {
		return nil, resilience.NewTransientError(eris.Wrapf(mapped, "chat: gateway status %d", resp.StatusCode), resp.StatusCode)
	}
	return nil, eris.Wrapf(mapped, "chat: gateway status %d", resp.StatusCode)
}
