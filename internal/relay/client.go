package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// DefaultEndpoint is the hosted form-to-email endpoint both site forms post to.
const DefaultEndpoint = "https://formspree.io/f/xkozobzb"

// ErrRejected is matched by every *StatusError.
var ErrRejected = errors.New("relay rejected submission")

// StatusError reports a settled response whose status was not 2xx.
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("relay returned non-success status: %s", e.Status)
}

func (e *StatusError) Is(target error) bool { return target == ErrRejected }

// Client posts form submissions to the relay endpoint.
type Client struct {
	endpoint   string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a relay client. An empty endpoint falls back to
// DefaultEndpoint. Requests carry no client-side timeout; callers bound them
// through the context.
func NewClient(endpoint string, logger *zap.Logger) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
		logger:     logger.Named("relay"),
	}
}

// WithHTTPClient swaps the underlying transport, mostly for tests.
func (c *Client) WithHTTPClient(hc *http.Client) *Client {
	if hc != nil {
		c.httpClient = hc
	}
	return c
}

func (c *Client) Endpoint() string { return c.endpoint }

// Submit sends payload as JSON. A transport failure is returned wrapped; a
// settled non-2xx response yields a *StatusError.
func (c *Client) Submit(ctx context.Context, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal relay payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("relay request failed", zap.String("endpoint", c.endpoint), zap.Error(err))
		return fmt.Errorf("failed to send request to relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn("relay rejected submission",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", snippet),
		)
		return &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	// Drain so the connection can be reused.
	_, _ = io.Copy(io.Discard, resp.Body)
	c.logger.Info("relay accepted submission", zap.Int("status", resp.StatusCode))
	return nil
}
