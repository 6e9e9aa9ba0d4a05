package httpx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/aretw0/restorm/pkg/core"
)

// RequestIDHeader carries a unique id per dispatched request.
const RequestIDHeader = "X-Request-Id"

// DefaultMaxBodyBytes bounds how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// BodyTooLargeError is returned when a response body exceeds TransportConfig.MaxBodyBytes.
type BodyTooLargeError struct {
	Limit  int64
	Status int
}

func (e *BodyTooLargeError) Error() string {
	return fmt.Sprintf("response body too large (status %d, limit %d bytes)", e.Status, e.Limit)
}

// TransportConfig configures a Transport.
type TransportConfig struct {
	Client       *http.Client
	Logger       *slog.Logger
	UserAgent    string
	MaxBodyBytes int64
}

// Transport implements core.Transport with net/http.
type Transport struct {
	config TransportConfig
}

// NewTransport creates a Transport. A nil Client means http.DefaultClient.
func NewTransport(config TransportConfig) *Transport {
	if config.Client == nil {
		config.Client = http.DefaultClient
	}
	if config.MaxBodyBytes <= 0 {
		config.MaxBodyBytes = DefaultMaxBodyBytes
	}
	return &Transport{config: config}
}

// NewHTTPRequest converts a core.Request into an *http.Request bound to ctx.
func NewHTTPRequest(ctx context.Context, req core.Request) (*http.Request, error) {
	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, req.URL, body)
	if err != nil {
		return nil, err
	}
	httpReq.Header = req.Header.Clone()
	if httpReq.Header == nil {
		httpReq.Header = make(http.Header)
	}
	return httpReq, nil
}

// Dispatch implements core.Transport. Any status code is returned as a Response;
// only failures to obtain one are errors.
func (t *Transport) Dispatch(ctx context.Context, req core.Request) (core.Response, error) {
	httpReq, err := NewHTTPRequest(ctx, req)
	if err != nil {
		return core.Response{}, fmt.Errorf("failed to build http request: %w", err)
	}
	if httpReq.Header.Get(RequestIDHeader) == "" {
		httpReq.Header.Set(RequestIDHeader, uuid.NewString())
	}
	if t.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", t.config.UserAgent)
	}

	start := time.Now()
	resp, err := t.config.Client.Do(httpReq)
	if err != nil {
		return core.Response{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, t.config.MaxBodyBytes+1))
	if err != nil {
		return core.Response{}, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > t.config.MaxBodyBytes {
		return core.Response{}, &BodyTooLargeError{Limit: t.config.MaxBodyBytes, Status: resp.StatusCode}
	}

	if t.config.Logger != nil {
		t.config.Logger.Debug("request dispatched",
			"method", req.Method,
			"url", req.URL,
			"status", resp.StatusCode,
			"request_id", httpReq.Header.Get(RequestIDHeader),
			"duration", time.Since(start),
		)
	}

	return core.Response{
		Status: resp.StatusCode,
		Header: resp.Header,
		Body:   body,
	}, nil
}

// ComponentType implements introspection.Component.
func (t *Transport) ComponentType() string {
	return "http-transport"
}
