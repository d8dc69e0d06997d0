package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/ev-dss/internal/chat"
	"github.com/sells-group/ev-dss/internal/config"
	"github.com/sells-group/ev-dss/internal/dataset"
	"github.com/sells-group/ev-dss/internal/fetcher"
	"github.com/sells-group/ev-dss/internal/resilience"
	"github.com/sells-group/ev-dss/pkg/anthropic"
)

// newFetcher routes dataset locations to the HTTP, FTP and file fetchers.
func newFetcher(c *config.Config) *fetcher.Router {
	timeout := time.Duration(c.Data.TimeoutSecs) * time.Second
	return fetcher.NewRouter(
		fetcher.NewHTTPFetcher(fetcher.HTTPOptions{
			UserAgent:  c.Data.UserAgent,
			Timeout:    timeout,
			MaxRetries: c.Data.MaxRetries,
			Rate:       rate.Limit(c.Data.RatePerSec),
		}),
		fetcher.NewFTPFetcher(fetcher.FTPOptions{Timeout: timeout}),
		fetcher.NewFileFetcher(c.Data.BaseDir),
	)
}

func dataSources(c *config.Config) dataset.Sources {
	return dataset.Sources{
		Feature: c.Data.FeatureLocation,
		ML:      c.Data.MLLocation,
		Cluster: c.Data.ClusterLocation,
	}
}

// loadDataset validates the data settings and fetches all three tables.
func loadDataset(ctx context.Context, c *config.Config) (*dataset.Dataset, error) {
	if err := c.Validate("data"); err != nil {
		return nil, err
	}
	return dataset.NewLoader(newFetcher(c)).Load(ctx, dataSources(c))
}

// newProvider builds the configured chat provider.
func newProvider(c *config.Config) (chat.Provider, error) {
	switch c.Chat.Provider {
	case config.ProviderGateway:
		return chat.NewGatewayProvider(chat.GatewayOptions{
			BaseURL: c.Gateway.BaseURL,
			APIKey:  c.Gateway.Key,
			Model:   c.Gateway.Model,
			Timeout: time.Duration(c.Gateway.TimeoutSecs) * time.Second,
			Retry: resilience.FromRetryConfig(
				c.Resilience.Retry.MaxAttempts,
				c.Resilience.Retry.InitialBackoffMs,
				c.Resilience.Retry.MaxBackoffMs,
			),
		}, nil), nil
	case config.ProviderAnthropic:
		client := anthropic.NewClient(c.Anthropic.Key)
		return chat.NewAnthropicProvider(client, c.Anthropic.Model, int64(c.Anthropic.MaxTokens)), nil
	default:
		return nil, eris.Errorf("unknown chat provider %q", c.Chat.Provider)
	}
}

// newRelay wraps the configured provider with the circuit breaker. It
// returns nil when the provider has no credentials.
func newRelay(c *config.Config) (*chat.Relay, error) {
	if !c.ChatConfigured() {
		return nil, nil
	}
	p, err := newProvider(c)
	if err != nil {
		return nil, err
	}
	return chat.NewRelay(p, resilience.FromCircuitConfig(
		c.Resilience.Circuit.FailureThreshold,
		c.Resilience.Circuit.ResetTimeoutSecs,
	)), nil
}
