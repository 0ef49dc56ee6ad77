package orders

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client looks orders up against the e-commerce backend's REST API.
type Client struct {
	base   string
	client *http.Client
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient overrides the default client (10s timeout).
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// NewClient builds a lookup client for the backend at baseURL.
func NewClient(baseURL string, options ...ClientOption) (*Client, error) {
	trimmed := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if trimmed == "" {
		return nil, errors.New("orders: base url is required")
	}
	c := &Client{
		base:   trimmed,
		client: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c, nil
}

// Order implements Lookup. A 404 maps to ErrNotFound; other non-2xx statuses
// surface as errors.
func (c *Client) Order(ctx context.Context, number string) (Order, error) {
	trimmed := strings.TrimSpace(number)
	if trimmed == "" {
		return Order{}, errors.New("orders: order number is required")
	}

	endpoint := fmt.Sprintf("%s/orders/%s", c.base, url.PathEscape(trimmed))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Order{}, fmt.Errorf("orders: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Order{}, fmt.Errorf("orders: lookup %s: %w", trimmed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return Order{}, ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return Order{}, fmt.Errorf("orders: lookup %s: backend responded %d", trimmed, resp.StatusCode)
	}

	var order Order
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return Order{}, fmt.Errorf("orders: decode order %s: %w", trimmed, err)
	}
	if order.Number == "" {
		order.Number = trimmed
	}
	return order, nil
}
