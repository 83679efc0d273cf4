package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"github.com/airflow-ai/congestion-dashboard/internal/domain"
)

var (
	ErrAnalysisFailed   = errors.New("analysis failed")
	ErrSimulationFailed = errors.New("simulation failed")
	ErrUnhealthy        = errors.New("prediction service unhealthy")
)

type Options struct {
	BaseURL      string
	Timeout      time.Duration
	MaxFailures  uint32
	ResetTimeout time.Duration
	HTTPClient   *http.Client
}

// Client talks to the prediction service. Analyze and Simulate share one
// circuit breaker; the health probe bypasses it.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker
}

func New(opts Options) *Client {
	base := strings.TrimRight(opts.BaseURL, "/")
	if base == "" {
		base = "http://localhost:8000"
	}
	hc := opts.HTTPClient
	if hc == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = 30 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	maxFailures := opts.MaxFailures
	if maxFailures == 0 {
		maxFailures = 3
	}
	return &Client{
		baseURL: base,
		http:    hc,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "prediction-service",
			Timeout: opts.ResetTimeout,
			ReadyToTrip: func(c gobreaker.Counts) bool {
				return c.ConsecutiveFailures >= maxFailures
			},
		}),
	}
}

func (c *Client) Health(ctx context.Context) (*domain.Health, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", ErrUnhealthy, resp.Status)
	}
	var out domain.Health
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode health: %w", err)
	}
	return &out, nil
}

func (c *Client) Analyze(ctx context.Context, in domain.AnalyzeRequest) (*domain.AnalysisResult, error) {
	b, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %v", ErrAnalysisFailed, err)
	}
	return c.call(ctx, http.MethodPost, "/analyze", b, ErrAnalysisFailed)
}

func (c *Client) Simulate(ctx context.Context) (*domain.AnalysisResult, error) {
	return c.call(ctx, http.MethodGet, "/simulate", nil, ErrSimulationFailed)
}

func (c *Client) call(ctx context.Context, method, path string, body []byte, failure error) (*domain.AnalysisResult, error) {
	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.do(ctx, method, path, body)
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", failure, err)
	}
	return out.(*domain.AnalysisResult), nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte) (*domain.AnalysisResult, error) {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("status %s", resp.Status)
	}
	var out domain.AnalysisResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}

// BreakerState reports the circuit breaker state ("closed", "half-open",
// "open").
func (c *Client) BreakerState() string { return c.breaker.State().String() }
