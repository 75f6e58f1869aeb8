// Package qpu provides an HTTP client for a remote quantum sampling
// service. The service accepts a job (register width + shot count),
// samples a uniform superposition on real hardware, and reports the
// measured bitstring counts when the job completes.
package qpu

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/matteo-piccolini/qrand/internal/qrng"
)

// Config holds QPU client configuration
type Config struct {
	BaseURL      string
	Token        string        // bearer token, empty for unauthenticated endpoints
	PollInterval time.Duration // defaults to 500ms
	Timeout      time.Duration // per-request timeout, defaults to 30s
}

// Client submits sampling jobs to a remote QPU service and polls for
// their results. Implements qrng.Executor.
type Client struct {
	baseURL      string
	token        string
	pollInterval time.Duration
	client       *http.Client
	log          zerolog.Logger
}

// NewClient creates a new QPU client
func NewClient(cfg Config, log zerolog.Logger) *Client {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = 500 * time.Millisecond
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &Client{
		baseURL:      cfg.BaseURL,
		token:        cfg.Token,
		pollInterval: cfg.PollInterval,
		client:       &http.Client{Timeout: cfg.Timeout},
		log:          log.With().Str("client", "qpu").Logger(),
	}
}

// Name implements qrng.Executor
func (c *Client) Name() string { return "qpu" }

type jobRequest struct {
	NumQubits int `json:"num_qubits"`
	Shots     int `json:"shots"`
}

type jobResponse struct {
	ID     string         `json:"id"`
	Status string         `json:"status"` // queued, running, done, failed
	Counts map[string]int `json:"counts,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Execute submits a sampling job and polls until it completes or the
// context is cancelled.
func (c *Client) Execute(ctx context.Context, spec qrng.CircuitSpec, shots int) (qrng.Counts, error) {
	job, err := c.submit(ctx, jobRequest{NumQubits: spec.NumQubits, Shots: shots})
	if err != nil {
		return nil, err
	}
	c.log.Debug().
		Str("job_id", job.ID).
		Int("num_qubits", spec.NumQubits).
		Int("shots", shots).
		Msg("Job submitted")

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		switch job.Status {
		case "done":
			if len(job.Counts) == 0 {
				return nil, fmt.Errorf("%w: job %s completed with no counts", qrng.ErrExecutionFailed, job.ID)
			}
			return qrng.Counts(job.Counts), nil
		case "failed":
			return nil, fmt.Errorf("%w: job %s: %s", qrng.ErrExecutionFailed, job.ID, job.Error)
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", qrng.ErrBackendUnavailable, ctx.Err())
		case <-ticker.C:
		}

		job, err = c.poll(ctx, job.ID)
		if err != nil {
			return nil, err
		}
	}
}

func (c *Client) submit(ctx context.Context, reqBody jobRequest) (*jobResponse, error) {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode job request: %v", qrng.ErrExecutionFailed, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/jobs", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", qrng.ErrExecutionFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func (c *Client) poll(ctx context.Context, id string) (*jobResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/jobs/"+id, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", qrng.ErrExecutionFailed, err)
	}
	return c.do(req)
}

func (c *Client) do(req *http.Request) (*jobResponse, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", qrng.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// fall through to decode
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusUnauthorized:
		return nil, fmt.Errorf("%w: service returned status %d", qrng.ErrBackendUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("%w: service rejected job with status %d", qrng.ErrExecutionFailed, resp.StatusCode)
	}

	var job jobResponse
	if err := json.NewDecoder(resp.Body).Decode(&job); err != nil {
		return nil, fmt.Errorf("%w: failed to decode job response: %v", qrng.ErrExecutionFailed, err)
	}
	return &job, nil
}
