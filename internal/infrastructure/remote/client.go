// Package remote implements the HTTP boundaries to the external services this
// API composes: the procurement store, the product catalog and the platform
// security service. All repository interfaces of the domain layer are backed
// from here.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"compras/internal/core/apperror"
)

var tracer = otel.Tracer("compras/internal/infrastructure/remote")

// Config holds the connection settings for one remote service.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client is a thin JSON client over one remote service. It owns tracing,
// error extraction and status mapping; the per-entity repositories own the
// wire formats.
type Client struct {
	name    string
	baseURL string
	http    *http.Client
}

// NewClient creates a client for one remote service. The name shows up in
// trace spans and error details.
func NewClient(name string, cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		name:    name,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// do performs one JSON round trip. A nil out discards the response body.
// Non-2xx responses are mapped to apperror values: 404 stays a not-found,
// everything else becomes a storage error carrying the message the remote
// service reported.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	ctx, span := tracer.Start(ctx, fmt.Sprintf("%s %s %s", c.name, method, path),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("peer.service", c.name),
		),
	)
	defer span.End()

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return apperror.NewInternal(fmt.Errorf("marshal request: %w", err))
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return apperror.NewInternal(fmt.Errorf("build request: %w", err))
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return apperror.NewStorage(fmt.Sprintf("%s unreachable", c.name)).
			WithCause(err)
	}
	defer resp.Body.Close()

	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return apperror.NewStorage(fmt.Sprintf("read %s response", c.name)).
			WithCause(err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		appErr := c.extractError(resp.StatusCode, respBody, path)
		span.SetStatus(codes.Error, appErr.Message)
		return appErr
	}

	// Some endpoints reply with an empty body on success.
	if out == nil || len(bytes.TrimSpace(respBody)) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return apperror.NewStorage(fmt.Sprintf("decode %s response", c.name)).
			WithCause(err)
	}

	return nil
}

// Ping checks that the service answers HTTP at all. Any response counts,
// including an error status; only transport failures are reported.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	resp.Body.Close()
	return nil
}

// extractError pulls the most specific message available from an error
// response: a string "error" field, then a "message" field, then the raw
// body, then a generic fallback.
func (c *Client) extractError(status int, body []byte, path string) *apperror.AppError {
	message := fmt.Sprintf("%s request failed", c.name)

	var payload map[string]any
	if err := json.Unmarshal(body, &payload); err == nil {
		if s, ok := payload["error"].(string); ok && s != "" {
			message = s
		} else if s, ok := payload["message"].(string); ok && s != "" {
			message = s
		} else {
			message = string(body)
		}
	} else if len(bytes.TrimSpace(body)) > 0 {
		message = string(body)
	}

	if status == http.StatusNotFound {
		return apperror.NewNotFound(c.name, path)
	}

	return apperror.NewStorage(message).
		WithDetail("service", c.name).
		WithDetail("remote_status", status)
}
