package generation

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultTimeout bounds one generation call when Config.Timeout is zero.
	DefaultTimeout = 30 * time.Second

	// maxBodyBytes caps how much of the response body is read.
	maxBodyBytes = 1 << 20
)

// Config names the endpoint and what to ask it.
type Config struct {
	Endpoint string
	Model    string
	Prompt   string
	Timeout  time.Duration
}

// Request is the JSON body sent to the endpoint.
type Request struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

// Client issues one generation request per call. Safe for concurrent use.
type Client struct {
	endpoint string
	model    string
	prompt   string
	timeout  time.Duration
	http     *http.Client
	logger   zerolog.Logger
}

// NewClient validates cfg and builds a client on its own transport.
func NewClient(cfg Config, transport TransportConfig, logger zerolog.Logger) (*Client, error) {
	u, err := url.Parse(cfg.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: endpoint %q must be an absolute http(s) URL", ErrInvalidConfig, cfg.Endpoint)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model cannot be empty", ErrInvalidConfig)
	}
	if cfg.Prompt == "" {
		return nil, fmt.Errorf("%w: prompt cannot be empty", ErrInvalidConfig)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		endpoint: u.String(),
		model:    cfg.Model,
		prompt:   cfg.Prompt,
		timeout:  timeout,
		http:     newHTTPClient(transport),
		logger:   logger.With().Str("component", "generation").Logger(),
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Generate sends the configured prompt and returns the raw body. Every transport
// fault, including timeout and cancellation of ctx, becomes Failure(NetworkError).
func (c *Client) Generate(ctx context.Context) Outcome {
	return c.generate(ctx, Request{Model: c.model, Prompt: c.prompt, Stream: false})
}

func (c *Client) generate(ctx context.Context, req Request) Outcome {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	body, err := json.Marshal(req)
	if err != nil {
		return c.fail(ctx, fmt.Errorf("encode request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return c.fail(ctx, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(httpReq)
	if err != nil {
		return c.fail(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return c.fail(ctx, fmt.Errorf("%w: %d", ErrStatus, resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return c.fail(ctx, fmt.Errorf("read body: %w", err))
	}

	c.logger.Debug().
		Str("model", req.Model).
		Int("bytes", len(raw)).
		Dur("elapsed", time.Since(start)).
		Msg("generation call completed")
	return Success(string(raw))
}

func (c *Client) fail(ctx context.Context, cause error) Outcome {
	err := fmt.Errorf("%w: %w", ErrNetwork, cause)
	ev := c.logger.Warn().Err(err).Str("endpoint", c.endpoint)
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		ev = ev.Dur("timeout", c.timeout)
	}
	ev.Msg("generation call failed")
	return Failure(NetworkError, err)
}
