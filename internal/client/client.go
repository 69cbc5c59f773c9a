// Package client holds the outbound HTTP clients for the student and payment
// services. Both forward the caller's Authorization header verbatim.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// maxBodyBytes caps how much of an upstream response is read into memory.
const maxBodyBytes = 1 << 20

// ErrMalformedResponse is returned when an upstream answered 2xx but its
// body could not be decoded.
var ErrMalformedResponse = errors.New("malformed upstream response")

// ResponseError is a non-2xx answer from an upstream service. Body holds the
// raw response so it can be echoed back to our caller.
type ResponseError struct {
	Service    string
	Method     string
	Path       string
	StatusCode int
	Body       []byte
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("%s service: %s %s returned %d", e.Service, e.Method, e.Path, e.StatusCode)
}

// IsTimeout reports whether err came from an upstream call running out of time.
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// envelope is the response wrapper shared by every service in the platform.
type envelope struct {
	Status  string          `json:"status"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type httpClient struct {
	service string
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

func newHTTPClient(service, baseURL string, timeout time.Duration, log zerolog.Logger) httpClient {
	return httpClient{
		service: service,
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		log:     log.With().Str("component", service+"_client").Logger(),
	}
}

// do performs one request. When out is non-nil the envelope's data field is
// decoded into it.
func (c *httpClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", c.service, err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s request: %w", c.service, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("method", method).Str("path", path).Msg("Upstream call failed")
		return fmt.Errorf("%s service: %s %s: %w", c.service, method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("%s service: read response: %w", c.service, err)
	}

	c.log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Upstream call")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &ResponseError{
			Service:    c.service,
			Method:     method,
			Path:       path,
			StatusCode: resp.StatusCode,
			Body:       raw,
		}
	}

	if out == nil {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, c.service, err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return fmt.Errorf("%w: %s: empty data", ErrMalformedResponse, c.service)
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, c.service, err)
	}
	return nil
}
