// Package api is the typed client for the shop backend's REST API.
package api

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
)

// TokenHeader carries the admin session token on privileged requests.
const TokenHeader = "token"

// RequestIDHeader propagates the dashboard's request id to the backend.
const RequestIDHeader = "X-Request-ID"

// DefaultTimeout bounds a whole request including reading the body.
const DefaultTimeout = 15 * time.Second

// Credential is the backend session token. It is passed explicitly to every
// privileged call.
type Credential struct {
	Token string
}

func (c Credential) Valid() bool {
	return c.Token != ""
}

// Client talks to the backend API.
type Client struct {
	baseURL string
	http    *http.Client
	timeout time.Duration
	log     *slog.Logger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout bounds every request. It applies to a client given with
// WithHTTPClient too, without modifying that client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// New creates a Client for the backend at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 && c.http.Timeout != c.timeout {
		hc := *c.http
		hc.Timeout = c.timeout
		c.http = &hc
	}
	return c
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

type ctxKey struct{}

// WithRequestID attaches a request id that is forwarded on every call made
// with the returned context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// RequestID returns the id attached with WithRequestID.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// envelope is the part of every response shared by all endpoints.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (c *Client) getJSON(ctx context.Context, cred *Credential, path string, out any) error {
	return c.do(ctx, cred, http.MethodGet, path, nil, "", out)
}

func (c *Client) sendJSON(ctx context.Context, cred *Credential, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &Error{Kind: KindTransport, Op: method + " " + path, Message: "encoding request", Err: err}
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, cred, method, path, body, "application/json", out)
}

func (c *Client) postJSON(ctx context.Context, cred *Credential, path string, in, out any) error {
	return c.sendJSON(ctx, cred, http.MethodPost, path, in, out)
}

// do issues one request and decodes the envelope. A false success flag or
// an error status becomes a KindApplication error; anything that prevents
// reading a well-formed envelope becomes a KindTransport error.
func (c *Client) do(ctx context.Context, cred *Credential, method, path string, body io.Reader, contentType string, out any) error {
	op := method + " " + path
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if cred != nil && cred.Valid() {
		req.Header.Set(TokenHeader, cred.Token)
	}
	if id := RequestID(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("Backend request failed", "op", op, "error", err, "request_id", RequestID(ctx))
		return &Error{Kind: KindTransport, Op: op, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Message: err.Error(), Err: err}
	}
	c.log.Debug("Backend request",
		"op", op,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", RequestID(ctx),
	)

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		msg := fmt.Sprintf("unexpected response (status %d)", resp.StatusCode)
		return &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Message: msg, Err: err}
	}
	if !env.Success || resp.StatusCode >= 400 {
		msg := env.Message
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &Error{Kind: KindApplication, Op: op, Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return &Error{Kind: KindTransport, Op: op, Status: resp.StatusCode, Message: "decoding response", Err: err}
	}
	return nil
}
