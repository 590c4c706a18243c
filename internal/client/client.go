package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/debug"
)

const (
	getTimeout  = 10 * time.Second
	chatTimeout = 30 * time.Second
)

const (
	vpnProbeMessage     = "Check my VPN status and provide detailed information"
	networkProbeMessage = "Run network diagnostics and check connectivity issues"
)

// Config for a Client. Immutable after New; BaseURL determines the endpoint
// prefix and APIKey the bearer token for every request.
type Config struct {
	BaseURL string
	APIKey  string
}

// Client is a thin wrapper around the breadcrumbs diagnostic HTTP API. It is
// stateless beyond its Config; the http.Client is shared across calls for
// connection reuse only, never for correctness.
type Client struct {
	cfg    Config
	client *http.Client
	debug  bool
}

func New(cfg Config) *Client {
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg:    cfg,
		client: &http.Client{},
	}
}

// WithDebug enables request/response tracing on the debug slog level.
func (c *Client) WithDebug() *Client {
	c.debug = true
	return c
}

func (c *Client) Config() Config { return c.cfg }

// HealthCheck asks the server whether it is healthy. Failures are downgraded
// into the failure variant with status "unhealthy", so that a scripted
// sequence can inspect the outcome and abort gracefully.
func (c *Client) HealthCheck(ctx context.Context) Result {
	res := c.getJSON(ctx, "/api/v1/health")
	if !res.OK() {
		res.Failure.Status = "unhealthy"
	}
	return res
}

// ListTools fetches the diagnostic tools the server exposes.
func (c *Client) ListTools(ctx context.Context) Result {
	return c.getJSON(ctx, "/api/v1/tools")
}

type chatPayload struct {
	Message        string `json:"message"`
	ToolsEnabled   bool   `json:"tools_enabled"`
	ConversationID string `json:"conversation_id,omitempty"`
}

type MessageOption func(*chatPayload)

// WithConversationID threads a conversation id from a previous response back
// to the server. The id is opaque to the client; the server owns all
// conversation state.
func WithConversationID(id string) MessageOption {
	return func(p *chatPayload) { p.ConversationID = id }
}

func WithTools(enabled bool) MessageOption {
	return func(p *chatPayload) { p.ToolsEnabled = enabled }
}

// SendMessage posts a diagnostic message to the chat endpoint. Tools are
// enabled unless WithTools(false) is given; the conversation_id key is
// omitted entirely when no id has been supplied.
func (c *Client) SendMessage(ctx context.Context, message string, opts ...MessageOption) Result {
	payload := chatPayload{Message: message, ToolsEnabled: true}
	for _, opt := range opts {
		opt(&payload)
	}
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fail(FailDecode, fmt.Sprintf("failed to encode JSON: %v", err))
	}
	url := c.cfg.BaseURL + "/api/v1/chat"
	if c.debug {
		slog.Debug("chat request", "url", url, "payload", debug.IndentedJsonFmt(payload))
	}
	ctx, cancel := context.WithTimeout(ctx, chatTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonData))
	if err != nil {
		return fail(FailTransport, fmt.Sprintf("failed to create request: %v", err))
	}
	return c.do(req)
}

// TestVPNDetection probes VPN detection specifically.
func (c *Client) TestVPNDetection(ctx context.Context) Result {
	return c.SendMessage(ctx, vpnProbeMessage)
}

// TestNetworkDiagnostics probes general network diagnostics.
func (c *Client) TestNetworkDiagnostics(ctx context.Context) Result {
	return c.SendMessage(ctx, networkProbeMessage)
}

func (c *Client) getJSON(ctx context.Context, path string) Result {
	url := c.cfg.BaseURL + path
	if c.debug {
		slog.Debug("sending GET request", "url", url)
	}
	ctx, cancel := context.WithTimeout(ctx, getTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(FailTransport, fmt.Sprintf("failed to create request: %v", err))
	}
	return c.do(req)
}

// do executes the request and converts every network, status and decode
// problem into the failure variant. Operations never return a Go error to
// their caller: one failed probe must not abort a scripted run.
func (c *Client) do(req *http.Request) Result {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.cfg.APIKey))
	res, err := c.client.Do(req)
	if err != nil {
		return fail(FailTransport, fmt.Sprintf("failed to execute request: %v", err))
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return fail(FailTransport, fmt.Sprintf("failed to read response body: %v", err))
	}
	if c.debug {
		slog.Debug("got response", "status", res.Status, "body", string(body))
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return fail(FailStatus, fmt.Sprintf("unexpected status code: %v, body: %v", res.Status, string(body)))
	}
	var decoded map[string]any
	if err := json.Unmarshal(body, &decoded); err != nil {
		return fail(FailDecode, fmt.Sprintf("failed to decode response body: %v", err))
	}
	return Result{Body: decoded}
}
