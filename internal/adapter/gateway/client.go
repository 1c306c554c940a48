// Package gateway is the HTTP client for the payment gateway API. It is
// only used to refresh entities when a webhook delivery carries a bare
// id; the gateway remains the source of truth.
package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/storelink/paygate/internal/module/kernel"
	"github.com/storelink/paygate/internal/module/recurrence"
	"github.com/storelink/paygate/internal/shared/config"
	"github.com/storelink/paygate/internal/utils/metrics"
	"go.uber.org/zap"
)

// Client calls the gateway API behind a circuit breaker. A broken
// gateway keeps webhook intake responsive; callers fall back to the
// payload they already have or surface a retryable error.
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[[]byte]
	logger  *zap.Logger
	metrics *metrics.Metrics
}

// NewClient creates a gateway API client.
func NewClient(cfg config.GatewayConfig, logger *zap.Logger, m *metrics.Metrics) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	settings := gobreaker.Settings{
		Name:        "gateway-api",
		MaxRequests: 1,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		breaker: gobreaker.NewCircuitBreaker[[]byte](settings),
		logger:  logger,
		metrics: m,
	}
}

// GetCharge fetches a charge by gateway id.
func (c *Client) GetCharge(ctx context.Context, id string) (*kernel.ChargeData, error) {
	body, err := c.get(ctx, "get_charge", "/core/v5/charges/"+id)
	if err != nil {
		return nil, err
	}
	var data kernel.ChargeData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode charge %s: %w", id, err)
	}
	return &data, nil
}

// GetSubscription fetches a subscription by gateway id.
func (c *Client) GetSubscription(ctx context.Context, id string) (*recurrence.SubscriptionData, error) {
	body, err := c.get(ctx, "get_subscription", "/core/v5/subscriptions/"+id)
	if err != nil {
		return nil, err
	}
	var data recurrence.SubscriptionData
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("decode subscription %s: %w", id, err)
	}
	return &data, nil
}

func (c *Client) get(ctx context.Context, operation, path string) ([]byte, error) {
	started := time.Now()
	body, err := c.breaker.Execute(func() ([]byte, error) {
		return c.doGet(ctx, path)
	})
	if c.metrics != nil {
		c.metrics.RecordGatewayRequest(operation, err, time.Since(started))
	}
	if err != nil {
		c.logger.Error("gateway request failed",
			zap.String("operation", operation),
			zap.String("path", path),
			zap.Error(err),
		)
		return nil, err
	}
	return body, nil
}

func (c *Client) doGet(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("build gateway request: %w", err)
	}
	req.SetBasicAuth(c.apiKey, "")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("gateway request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read gateway response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway responded %d for %s", resp.StatusCode, path)
	}
	return body, nil
}
