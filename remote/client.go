// Package remote is the best-effort bridge to a remote spreadsheet endpoint:
// a debounced outbound export and an explicit inbound fetch.
package remote

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

	"github.com/rustyeddy/pnlreport/journal"
)

var (
	ErrNoEndpoint = errors.New("no sync endpoint configured")
	ErrRemote     = errors.New("remote rejected request")
)

// OutboundPayload is the body POSTed on every export.
type OutboundPayload struct {
	Rows      []journal.Entry `json:"rows"`
	Owners    []string        `json:"owners"`
	Types     []string        `json:"types"`
	Timestamp time.Time       `json:"timestamp"`
}

// InboundPayload is what the endpoint returns on a fetch.
type InboundPayload struct {
	Status        string                   `json:"status"`
	Rows          []journal.Entry          `json:"rows"`
	PortfolioRows []journal.PortfolioEntry `json:"portfolioRows"`
	Owners        []string                 `json:"owners"`
	Types         []string                 `json:"types"`
	Message       string                   `json:"message,omitempty"`
}

type Client struct {
	URL  string
	HTTP *http.Client
}

func NewClient(url string, timeout time.Duration) *Client {
	return &Client{
		URL:  strings.TrimSpace(url),
		HTTP: &http.Client{Timeout: timeout},
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP == nil {
		return http.DefaultClient
	}
	return c.HTTP
}

// Push POSTs p as JSON. The response body is ignored; only transport
// failures and non-2xx statuses are errors.
func (c *Client) Push(ctx context.Context, p OutboundPayload) error {
	if c.URL == "" {
		return ErrNoEndpoint
	}
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return fmt.Errorf("push: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("push: http %d", resp.StatusCode)
	}
	return nil
}

// Fetch GETs the remote state. A payload whose status is not "success" is
// returned as ErrRemote carrying the remote message.
func (c *Client) Fetch(ctx context.Context) (InboundPayload, error) {
	var p InboundPayload
	if c.URL == "" {
		return p, ErrNoEndpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return p, err
	}
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return p, fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
		return p, fmt.Errorf("fetch http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
	}
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return p, fmt.Errorf("decode fetch: %w", err)
	}
	if p.Status != "success" {
		msg := p.Message
		if msg == "" {
			msg = "status " + p.Status
		}
		return p, fmt.Errorf("%w: %s", ErrRemote, msg)
	}
	return p, nil
}
