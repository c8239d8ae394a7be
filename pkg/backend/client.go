package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/dskvich/chatgpt-backend-probe/pkg/conversation"
	"github.com/dskvich/chatgpt-backend-probe/pkg/domain"
	"github.com/dskvich/chatgpt-backend-probe/pkg/logger"
	"github.com/dskvich/chatgpt-backend-probe/pkg/transport"
)

const DefaultTimeout = 60 * time.Second

type client struct {
	endpoint string
	method   string
	timeout  time.Duration
	hc       transport.Doer
}

type Option func(*client)

// WithMethod overrides the request method. The endpoint has been observed to take
// a GET with a body, so that stays the default.
func WithMethod(method string) Option {
	return func(c *client) {
		if method != "" {
			c.method = method
		}
	}
}

// WithTimeout bounds a single Send. Zero or negative leaves only the caller's context.
func WithTimeout(d time.Duration) Option {
	return func(c *client) { c.timeout = d }
}

func NewClient(endpoint string, hc transport.Doer, opts ...Option) (*client, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("endpoint is empty")
	}
	if hc == nil {
		return nil, fmt.Errorf("http client is nil")
	}

	c := &client{
		endpoint: endpoint,
		method:   http.MethodGet,
		timeout:  DefaultTimeout,
		hc:       hc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Headers returns the header set sent with every request for these credentials.
func (c *client) Headers(creds domain.Credentials) http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "text/event-stream")
	h.Set("Authorization", "Bearer "+creds.AccessToken)
	h.Set("Referer", fallback(creds.Referer, domain.DefaultReferer))
	h.Set("Origin", fallback(creds.Origin, domain.DefaultOrigin))
	h.Set("User-Agent", fallback(creds.UserAgent, domain.DefaultUserAgent))
	// Sent even when empty.
	h.Set("X-OpenAI-Assistant-App-Id", creds.AssistantAppID)
	return h
}

// Send issues one request and returns the status code and body untouched.
// It never retries and never treats a status code as an error.
func (c *client) Send(ctx context.Context, req domain.ConversationRequest, creds domain.Credentials) (*domain.ResponseEnvelope, error) {
	if err := conversation.Validate(req); err != nil {
		return nil, fmt.Errorf("validating request: %w", err)
	}
	if creds.AccessToken == "" {
		return nil, domain.ErrEmptyAccessToken
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, c.method, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header = c.Headers(creds)

	slog.DebugContext(ctx, "Sending conversation request",
		"method", c.method,
		"url", c.endpoint,
		"messages", len(req.Messages),
		"model", req.Model,
	)

	resp, err := c.hc.Do(httpReq)
	if err != nil {
		if errors.Is(err, transport.ErrChallenge) {
			return nil, &domain.ChallengeError{Err: err}
		}
		return nil, &domain.NetworkError{Err: fmt.Errorf("executing HTTP request: %w", err)}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.ErrorContext(ctx, "Reading response body", "status", resp.StatusCode, logger.Err(err))
		return nil, &domain.NetworkError{Err: fmt.Errorf("reading response body: %w", err)}
	}

	slog.DebugContext(ctx, "Received response", "status", resp.StatusCode, "bytes", len(data))

	return &domain.ResponseEnvelope{StatusCode: resp.StatusCode, Body: data}, nil
}

func fallback(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
