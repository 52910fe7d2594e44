package api

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

	"github.com/google/uuid"
	"github.com/white3332/ai-planner/internal/session"
)

// Client talks to the study-plan backend over HTTP. It authenticates
// every call with a bearer token from the session store; requests made
// while signed out simply carry no Authorization header and the backend
// answers 401, which surfaces as ErrRemote like any other non-2xx.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	sessions session.Store
	observer Observer
}

// NewClient creates a Client for the given base origin.
func NewClient(baseURL string, timeoutMs int, sessions session.Store, observer Observer) *Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	if timeoutMs <= 0 {
		timeoutMs = 10000
	}
	return &Client{
		baseURL: baseURL,
		timeout: time.Duration(timeoutMs) * time.Millisecond,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		sessions: sessions,
		observer: observer,
	}
}

// errorBody is the shape of backend error payloads (FastAPI-style).
type errorBody struct {
	Detail  string `json:"detail"`
	Message string `json:"message"`
}

// do performs one JSON round-trip. body and out may be nil. The response
// is decoded into out only on 2xx; any other status becomes ErrRemote.
func (c *Client) do(ctx context.Context, op, method, path string, body, out any) error {
	start := time.Now()
	status, err := c.roundTrip(ctx, method, path, body, out)

	event := CallEvent{
		Op:        op,
		Method:    method,
		Status:    status,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	c.observer.OnCallComplete(event)

	return err
}

func (c *Client) roundTrip(ctx context.Context, method, path string, body, out any) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	if c.sessions != nil {
		if s, err := c.sessions.Current(); err == nil && s != nil && s.Token != "" {
			req.Header.Set("Authorization", "Bearer "+s.Token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return 0, ErrTimeout
		}
		return 0, fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(respBody, &eb)
		detail := eb.Detail
		if detail == "" {
			detail = eb.Message
		}
		if detail == "" {
			detail = string(respBody)
		}
		return resp.StatusCode, fmt.Errorf("%w: status %d: %s", ErrRemote, resp.StatusCode, detail)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return resp.StatusCode, fmt.Errorf("decoding response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

func isTimeout(err error) bool     { return errors.Is(err, ErrTimeout) }
func isUnavailable(err error) bool { return errors.Is(err, ErrBackendUnavailable) }
func isRemote(err error) bool      { return errors.Is(err, ErrRemote) }
