package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

// ClientOption configures a Client via functional options.
type ClientOption func(*Client)

// Client reads stats and follows the event feed of a monitor
// Server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	dialer     *websocket.Dialer
}

// NewClient creates a client targeting the server's base URL
// (e.g. "http://127.0.0.1:8090").
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		dialer: &websocket.Dialer{
			HandshakeTimeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// WithTimeout overrides the default HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// WithHTTPClient replaces the HTTP client used for /stats and
// /health.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// Health checks the server's /health endpoint.
func (c *Client) Health(ctx context.Context) error {
	status, _, err := c.get(ctx, "/health")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("health check: status %d", status)
	}
	return nil
}

// Stats fetches the server's aggregate statistics.
func (c *Client) Stats(ctx context.Context) (CollectorStats, error) {
	var stats CollectorStats
	status, data, err := c.get(ctx, "/stats")
	if err != nil {
		return stats, err
	}
	if status != http.StatusOK {
		return stats, fmt.Errorf("fetch stats: status %d", status)
	}
	if err := json.Unmarshal(data, &stats); err != nil {
		return stats, fmt.Errorf("parse stats: %w", err)
	}
	return stats, nil
}

// Subscribe follows the /events feed, calling handler for every
// message, until ctx is cancelled or the server closes the feed.
func (c *Client) Subscribe(
	ctx context.Context,
	handler func(Message),
) error {
	conn, resp, err := c.dialer.DialContext(ctx, c.eventsURL(), nil)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return fmt.Errorf("dial events: %w", err)
	}
	defer conn.Close()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err,
				websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return fmt.Errorf("read event: %w", err)
		}
		handler(msg)
	}
}

func (c *Client) eventsURL() string {
	switch {
	case strings.HasPrefix(c.baseURL, "https://"):
		return "wss://" + strings.TrimPrefix(c.baseURL, "https://") + "/events"
	case strings.HasPrefix(c.baseURL, "http://"):
		return "ws://" + strings.TrimPrefix(c.baseURL, "http://") + "/events"
	default:
		return c.baseURL + "/events"
	}
}

func (c *Client) get(ctx context.Context, path string) (int, []byte, error) {
	req, err := http.NewRequestWithContext(
		ctx, http.MethodGet, c.baseURL+path, nil,
	)
	if err != nil {
		return 0, nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

var errUnexpectedKind = errors.New("unexpected message kind")

// EventOf returns the event carried by msg, or an error when msg
// is not an event frame.
func EventOf(msg Message) (OutcomeEvent, error) {
	if msg.Kind != KindEvent || msg.Event == nil {
		return OutcomeEvent{}, fmt.Errorf("%w: %s", errUnexpectedKind, msg.Kind)
	}
	return *msg.Event, nil
}
