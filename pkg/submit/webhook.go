package submit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const receiptBodyLimit = 2048

// Sink delivers a payload to the downstream processor. The wizard only ever
// fires once per submission; retry policy, if any, belongs to the caller.
type Sink interface {
	Deliver(ctx context.Context, payload Payload) (Receipt, error)
}

// Receipt reports the outcome of one delivery attempt.
type Receipt struct {
	StatusCode int       `json:"statusCode"`
	Body       string    `json:"body,omitempty"`
	Delivered  time.Time `json:"delivered"`
}

// Webhook posts payloads as JSON to a fixed URL.
type Webhook struct {
	url    string
	client *http.Client
	header http.Header
}

// WebhookOption configures a Webhook before first use.
type WebhookOption func(*Webhook)

// WithHTTPClient overrides the default client (10s timeout).
func WithHTTPClient(client *http.Client) WebhookOption {
	return func(w *Webhook) {
		if client != nil {
			w.client = client
		}
	}
}

// WithHeader adds a header to every delivery, e.g. an auth token.
func WithHeader(key, value string) WebhookOption {
	return func(w *Webhook) {
		w.header.Set(key, value)
	}
}

// NewWebhook builds a webhook sink for the given URL.
func NewWebhook(url string, options ...WebhookOption) (*Webhook, error) {
	trimmed := strings.TrimSpace(url)
	if trimmed == "" {
		return nil, errors.New("submit: webhook url is required")
	}
	w := &Webhook{
		url:    trimmed,
		client: &http.Client{Timeout: 10 * time.Second},
		header: make(http.Header),
	}
	for _, opt := range options {
		if opt != nil {
			opt(w)
		}
	}
	return w, nil
}

// Deliver posts the payload once and reports the result. Non-2xx responses
// are returned as errors alongside the receipt so callers can surface the
// status to the user.
func (w *Webhook) Deliver(ctx context.Context, payload Payload) (Receipt, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return Receipt{}, fmt.Errorf("submit: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return Receipt{}, fmt.Errorf("submit: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	for key, values := range w.header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return Receipt{}, fmt.Errorf("submit: deliver: %w", err)
	}
	defer resp.Body.Close()

	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, receiptBodyLimit))
	receipt := Receipt{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(snippet)),
		Delivered:  time.Now().UTC(),
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return receipt, fmt.Errorf("submit: webhook responded %d", resp.StatusCode)
	}
	return receipt, nil
}
