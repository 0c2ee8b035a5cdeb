// Package client talks to the HTTP surface from a storefront client.
//
// Mirror calls (CartChanged, Track) are fire-and-forget: they run in the
// background, are never retried and their failures are only logged.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ka2n/ecdemo/cart"
	"github.com/ka2n/ecdemo/log"
	"github.com/morikuni/failure/v2"
)

// DefaultTimeout bounds each request
const DefaultTimeout = 5 * time.Second

// Status is the reply of the status endpoint
type Status struct {
	Connected        bool   `json:"connected"`
	Version          string `json:"version"`
	MCPVersion       string `json:"mcpVersion"`
	FigmaIntegration string `json:"figmaIntegration"`
	Timestamp        int64  `json:"timestamp"`
}

// Client calls the /api/figma endpoints of a running server
type Client struct {
	baseURL string
	http    *http.Client
	now     func() time.Time

	wg sync.WaitGroup

	// cart snapshots are sent in mutation order; stale ones are dropped
	cartSeq atomic.Int64
	syncMu  sync.Mutex
	sentSeq int64
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// New creates a client for the server at baseURL
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Transport: log.Transport(nil),
			Timeout:   DefaultTimeout,
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Status checks whether the integration endpoints are up
func (c *Client) Status(ctx context.Context) (Status, error) {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/status", nil, &st); err != nil {
		return Status{}, err
	}
	return st, nil
}

// DesignTokens fetches the current design tokens
func (c *Client) DesignTokens(ctx context.Context) (map[string]any, error) {
	var tokens map[string]any
	if err := c.do(ctx, http.MethodGet, "/design-tokens", nil, &tokens); err != nil {
		return nil, err
	}
	return tokens, nil
}

// SyncCart replaces the server's cart snapshot with items
func (c *Client) SyncCart(ctx context.Context, items []cart.Item) error {
	body := map[string]any{
		"cart":      items,
		"timestamp": c.now().UnixMilli(),
	}
	return c.do(ctx, http.MethodPost, "/sync", body, nil)
}

// LogEvent appends an event to the server's event log
func (c *Client) LogEvent(ctx context.Context, event string, data any) error {
	body := map[string]any{
		"event":     event,
		"data":      data,
		"timestamp": c.now().UnixMilli(),
	}
	return c.do(ctx, http.MethodPost, "/log", body, nil)
}

// CartChanged mirrors items in the background. It matches cart.MirrorFunc.
func (c *Client) CartChanged(items []cart.Item) {
	seq := c.cartSeq.Add(1)
	c.background("sync", func(ctx context.Context) error {
		c.syncMu.Lock()
		defer c.syncMu.Unlock()
		if seq < c.sentSeq {
			return nil
		}
		c.sentSeq = seq
		return c.SyncCart(ctx, items)
	})
}

// Track logs an event in the background
func (c *Client) Track(event string, data any) {
	c.background("log", func(ctx context.Context) error {
		return c.LogEvent(ctx, event, data)
	})
}

// Wait blocks until all background calls have finished
func (c *Client) Wait() {
	c.wg.Wait()
}

func (c *Client) background(name string, fn func(ctx context.Context) error) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), DefaultTimeout)
		defer cancel()
		if err := fn(ctx); err != nil {
			log.Debug("mirror call failed", "call", name, "error", err)
		}
	}()
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return failure.Wrap(err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/api/figma"+path, &body)
	if err != nil {
		return failure.Wrap(err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return failure.Wrap(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return failure.New(UnexpectedStatus,
			failure.Message(fmt.Sprintf("%s %s: %s", method, path, resp.Status)),
			failure.Context{"error": e.Error},
		)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return failure.Wrap(err)
	}
	return nil
}
