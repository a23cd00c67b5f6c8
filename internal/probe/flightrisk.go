package probe

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

	"flightriskradar/internal/models"
)

// ErrUnexpectedStatus is returned when a remote service answers with a non-success status
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Default per-action timeouts; route search fans out server-side and is the slowest
var actionTimeouts = map[string]time.Duration{
	models.ActionAnalyzeFlightRisk:    60 * time.Second,
	models.ActionLookupSpecificFlight: 120 * time.Second,
	models.ActionSearchFlights:        180 * time.Second,
}

const fallbackTimeout = 60 * time.Second

// FlightRiskClient calls the deployed flight risk analysis function
type FlightRiskClient struct {
	url        string
	timeout    time.Duration // 0 uses the per-action default
	httpClient *http.Client
}

// NewFlightRiskClient creates a client for the function at url
func NewFlightRiskClient(url string, timeout time.Duration) *FlightRiskClient {
	return &FlightRiskClient{
		url:        url,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Timeout returns the deadline applied to a call for the given action
func (c *FlightRiskClient) Timeout(action string) time.Duration {
	if c.timeout > 0 {
		return c.timeout
	}
	if d, ok := actionTimeouts[action]; ok {
		return d
	}
	return fallbackTimeout
}

// Call posts the request and decodes the JSON response.
// A non-200 status returns ErrUnexpectedStatus along with the status code.
func (c *FlightRiskClient) Call(ctx context.Context, req models.FlightRiskRequest) (int, map[string]any, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to encode request: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, c.Timeout(req.Action))
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	slog.Debug("Calling flight risk function", "url", c.url, "action", req.Action)

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return 0, nil, fmt.Errorf("error making request to flight risk function: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	slog.Debug("Flight risk function responded",
		"action", req.Action,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	if resp.StatusCode != http.StatusOK {
		return resp.StatusCode, nil, fmt.Errorf("%w: %d: %s", ErrUnexpectedStatus, resp.StatusCode, string(body))
	}

	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return resp.StatusCode, nil, fmt.Errorf("error decoding flight risk response: %w", err)
	}

	return resp.StatusCode, data, nil
}
