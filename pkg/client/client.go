// Package client is a small Go client for the send-worker publish API,
// meant for publishing integrations and internal tooling.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// PublishRequest asks the server to publish one document from a source URL.
type PublishRequest struct {
	FileURL       string `json:"fileUrl"`
	Title         string `json:"title"`
	Slug          string `json:"slug,omitempty"`
	AllowDownload bool   `json:"allowDownload"`
	AllowPrint    bool   `json:"allowPrint"`
}

// PublishResponse carries the links for a freshly published document.
type PublishResponse struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	ViewURL  string `json:"viewUrl"`
	StatsURL string `json:"statsUrl"`
}

type apiError struct {
	RequestID string `json:"request_id"`
	Error     struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Client talks to a send-worker server.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

// New returns a Client for the given server base URL.
func New(baseURL string) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: http.DefaultClient,
	}
}

// Publish sends a publish request and returns the resulting links.
func (c *Client) Publish(ctx context.Context, req PublishRequest) (*PublishResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/api/publish", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("publish request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr apiError
		if decErr := json.NewDecoder(resp.Body).Decode(&apiErr); decErr == nil && apiErr.Error.Code != "" {
			return nil, fmt.Errorf("publish failed: %s: %s", apiErr.Error.Code, apiErr.Error.Message)
		}
		return nil, fmt.Errorf("publish failed: unexpected status %d", resp.StatusCode)
	}

	var out PublishResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &out, nil
}
