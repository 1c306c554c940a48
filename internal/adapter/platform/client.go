// Package platform adapts the host commerce platform's HTTP API to the
// order and invoice ports. The platform owns its records; this adapter
// pushes state and history, it never caches.
package platform

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	kerneldomain "github.com/storelink/paygate/internal/module/kernel/domain"
	"github.com/storelink/paygate/internal/shared/config"
	"go.uber.org/zap"
)

// Client talks to the host platform API.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient creates a platform API client.
func NewClient(cfg config.PlatformConfig, logger *zap.Logger) *Client {
	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		token:   cfg.APIToken,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

type orderPayload struct {
	Code  string `json:"code"`
	State string `json:"state"`
}

type invoicePayload struct {
	ID    string `json:"id"`
	State string `json:"state"`
}

type eligibilityPayload struct {
	CanCreate bool   `json:"can_create"`
	Reason    string `json:"reason,omitempty"`
}

// OrderByCode implements kerneldomain.PlatformOrderResolver.
func (c *Client) OrderByCode(ctx context.Context, code string) (kerneldomain.PlatformOrder, error) {
	var payload orderPayload
	if err := c.do(ctx, http.MethodGet, "/api/orders/"+code, nil, &payload); err != nil {
		return nil, fmt.Errorf("fetch platform order %s: %w", code, err)
	}
	state, err := kerneldomain.ParseOrderState(payload.State)
	if err != nil {
		return nil, err
	}
	return &Order{client: c, code: payload.Code, state: state}, nil
}

// CantCreateReason implements kerneldomain.InvoiceCreator.
func (c *Client) CantCreateReason(ctx context.Context, order *kerneldomain.Order) (kerneldomain.CantCreateReason, error) {
	var payload eligibilityPayload
	path := "/api/orders/" + order.PlatformCode() + "/invoice-eligibility"
	if err := c.do(ctx, http.MethodGet, path, nil, &payload); err != nil {
		return "", fmt.Errorf("check invoice eligibility for %s: %w", order.PlatformCode(), err)
	}
	if payload.CanCreate {
		return "", nil
	}
	return kerneldomain.CantCreateReason(payload.Reason), nil
}

// CreateInvoiceFor implements kerneldomain.InvoiceCreator. A refusal
// from the platform returns nil without error.
func (c *Client) CreateInvoiceFor(ctx context.Context, order *kerneldomain.Order) (kerneldomain.PlatformInvoice, error) {
	var payload invoicePayload
	path := "/api/orders/" + order.PlatformCode() + "/invoices"
	err := c.do(ctx, http.MethodPost, path, struct{}{}, &payload)
	if err != nil {
		var refusal *refusalError
		if errors.As(err, &refusal) {
			c.logger.Info("platform refused invoice creation",
				zap.String("order_code", order.PlatformCode()),
				zap.Int("status", refusal.status),
			)
			return nil, nil
		}
		return nil, fmt.Errorf("create invoice for %s: %w", order.PlatformCode(), err)
	}
	invoiceID, err := kerneldomain.NewInvoiceID(payload.ID)
	if err != nil {
		return nil, err
	}
	state := kerneldomain.InvoiceStateUnpaid
	if payload.State != "" {
		if state, err = kerneldomain.ParseInvoiceState(payload.State); err != nil {
			return nil, err
		}
	}
	return &Invoice{client: c, gatewayID: invoiceID, state: state}, nil
}

// Order implements kerneldomain.PlatformOrder. Comments queue locally
// and flush on Save.
type Order struct {
	client          *Client
	code            string
	state           kerneldomain.OrderState
	pendingComments []string
}

func (o *Order) Code() string                   { return o.code }
func (o *Order) State() kerneldomain.OrderState { return o.state }

// SetState stages a state change; Save pushes it.
func (o *Order) SetState(state kerneldomain.OrderState) { o.state = state }

// AddHistoryComment queues an audit comment for the next Save.
func (o *Order) AddHistoryComment(comment string) {
	o.pendingComments = append(o.pendingComments, comment)
}

// Save pushes the staged state and comments to the platform.
func (o *Order) Save(ctx context.Context) error {
	body := struct {
		State    string   `json:"state"`
		Comments []string `json:"history_comments,omitempty"`
	}{
		State:    o.state.String(),
		Comments: o.pendingComments,
	}
	if err := o.client.do(ctx, http.MethodPut, "/api/orders/"+o.code, body, nil); err != nil {
		return fmt.Errorf("save platform order %s: %w", o.code, err)
	}
	o.pendingComments = nil
	return nil
}

// Invoice implements kerneldomain.PlatformInvoice.
type Invoice struct {
	client    *Client
	gatewayID kerneldomain.InvoiceID
	state     kerneldomain.InvoiceState
}

func (i *Invoice) GatewayID() kerneldomain.InvoiceID { return i.gatewayID }

// SetState stages a state change; Save pushes it.
func (i *Invoice) SetState(state kerneldomain.InvoiceState) { i.state = state }

// Save pushes the staged state to the platform.
func (i *Invoice) Save(ctx context.Context) error {
	body := struct {
		State string `json:"state"`
	}{State: i.state.String()}
	path := "/api/invoices/" + i.gatewayID.String()
	if err := i.client.do(ctx, http.MethodPut, path, body, nil); err != nil {
		return fmt.Errorf("save platform invoice %s: %w", i.gatewayID, err)
	}
	return nil
}

// refusalError marks a 409/422 business refusal from the platform.
type refusalError struct {
	status int
}

func (e *refusalError) Error() string {
	return fmt.Sprintf("platform refused request (%d)", e.status)
}

func (c *Client) do(ctx context.Context, method, path string, body, target any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode platform request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build platform request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("platform request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return fmt.Errorf("read platform response: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusUnprocessableEntity:
		return &refusalError{status: resp.StatusCode}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("platform responded %d for %s %s", resp.StatusCode, method, path)
	}
	if target != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, target); err != nil {
			return fmt.Errorf("decode platform response: %w", err)
		}
	}
	return nil
}
