package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"flight-tracker/flightboard/internal/models/dtos"
	"flight-tracker/flightboard/internal/models/dtos/responses"
	"flight-tracker/flightboard/internal/models/entities"
)

const DefaultBaseURL = "http://localhost:5000"

// Client talks to the flight board HTTP API. It applies no timeout of its
// own; callers bound each call with their context.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{},
	}
}

func (c *Client) Health(ctx context.Context) (*entities.HealthResponse, error) {
	var out entities.HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ListFlights(ctx context.Context) ([]entities.Flight, error) {
	var out []entities.Flight
	if err := c.do(ctx, http.MethodGet, "/api/flights", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetFlight(ctx context.Context, id int64) (*entities.Flight, error) {
	var out entities.Flight
	if err := c.do(ctx, http.MethodGet, flightPath(id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CreateFlight(ctx context.Context, in *dtos.NewFlightInput) (*entities.Flight, error) {
	var out entities.Flight
	if err := c.do(ctx, http.MethodPost, "/api/flights", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateFlight(ctx context.Context, id int64, in *dtos.FlightUpdateInput) (*entities.Flight, error) {
	var out entities.Flight
	if err := c.do(ctx, http.MethodPut, flightPath(id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteFlight returns the flight as it was before deletion.
func (c *Client) DeleteFlight(ctx context.Context, id int64) (*entities.Flight, error) {
	var out responses.DeleteFlightResponse
	if err := c.do(ctx, http.MethodDelete, flightPath(id), nil, &out); err != nil {
		return nil, err
	}
	return out.Flight, nil
}

func flightPath(id int64) string {
	return "/api/flights/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newAPIError(resp, respBody)
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
