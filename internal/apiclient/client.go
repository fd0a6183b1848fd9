// Package apiclient talks to the studio REST API. It backs composition drafts
// that are edited outside the server process.
package apiclient

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

	"parfumerie/internal/workflow"
)

const (
	defaultBaseURL = "http://localhost:5001/api"
	defaultTimeout = 15 * time.Second
)

// Config describes how the API client should be initialised.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client is a thin wrapper around the JSON endpoints under /api.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// StatusError is returned for every non-2xx answer. Message carries the
// "error" field of the response body when present.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("apiclient: api returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("apiclient: api returned status %d: %s", e.StatusCode, e.Message)
}

// IsNotFound reports whether err is a 404 answer.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

func NewClient(cfg Config) (*Client, error) {
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("apiclient: base url %q must start with http:// or https://", baseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: timeout,
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type customerPayload struct {
	ID        uint   `json:"customer_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	FullName  string `json:"full_name"`
}

type fragrancePayload struct {
	ID   uint   `json:"fragrance_id"`
	Name string `json:"name"`
	Code int    `json:"code"`
}

type detailPayload struct {
	FragranceID uint    `json:"fragrance_id"`
	Amount      float64 `json:"amount"`
}

type compositionPayload struct {
	CustomerID  uint            `json:"customer_id"`
	Name        string          `json:"name,omitempty"`
	TotalAmount float64         `json:"total_amount"`
	Details     []detailPayload `json:"details"`
}

type createdComposition struct {
	ID uint `json:"composition_id"`
}

// Customer loads the customer a draft is built for.
func (c *Client) Customer(ctx context.Context, id uint) (workflow.CustomerSummary, error) {
	var customer customerPayload
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/customers/%d", id), nil, &customer); err != nil {
		return workflow.CustomerSummary{}, err
	}
	name := customer.FullName
	if name == "" {
		name = strings.TrimSpace(customer.FirstName + " " + customer.LastName)
	}
	return workflow.CustomerSummary{ID: customer.ID, FullName: name}, nil
}

// Fragrances lists the options a draft can pick from.
func (c *Client) Fragrances(ctx context.Context) ([]workflow.FragranceOption, error) {
	var fragrances []fragrancePayload
	if err := c.do(ctx, http.MethodGet, "/fragrances", nil, &fragrances); err != nil {
		return nil, err
	}
	options := make([]workflow.FragranceOption, 0, len(fragrances))
	for _, f := range fragrances {
		options = append(options, workflow.FragranceOption{ID: f.ID, Name: f.Name, Code: f.Code})
	}
	return options, nil
}

// SubmitComposition sends the whole submission as one creation request.
func (c *Client) SubmitComposition(ctx context.Context, s workflow.Submission) (uint, error) {
	payload := compositionPayload{
		CustomerID:  s.CustomerID,
		Name:        s.Name,
		TotalAmount: s.TotalAmount,
		Details:     make([]detailPayload, 0, len(s.Lines)),
	}
	for _, line := range s.Lines {
		payload.Details = append(payload.Details, detailPayload{FragranceID: line.FragranceID, Amount: line.Amount})
	}

	var created createdComposition
	if err := c.do(ctx, http.MethodPost, "/compositions", payload, &created); err != nil {
		return 0, err
	}
	if created.ID == 0 {
		return 0, errors.New("apiclient: api returned no composition id")
	}
	return created.ID, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		encoded, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("apiclient: encode request: %w", err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("apiclient: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("apiclient: call api: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := &StatusError{StatusCode: resp.StatusCode}
		var errorBody struct {
			Error string `json:"error"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&errorBody); err == nil {
			statusErr.Message = errorBody.Error
		}
		return statusErr
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("apiclient: decode response: %w", err)
	}
	return nil
}
