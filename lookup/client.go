// Package lookup provides a client for the national-ID person registry.
// Lookups are best-effort enrichment: any failure is reported as
// ErrUnavailable and callers degrade to manual entry, never blocking the
// record they were creating.
package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrUnavailable is returned when the registry cannot be reached or has no
// match for the document number.
var ErrUnavailable = errors.New("person lookup unavailable")

// Person is the registry's view of a document holder.
type Person struct {
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Address     string `json:"address"`
	District    string `json:"district"`
	Province    string `json:"province"`
	Department  string `json:"department"`
	DateOfBirth string `json:"date_of_birth"`
}

// Client queries the person registry.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the registry at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type findRequest struct {
	DocumentNumber string `json:"document_number"`
}

type findResponse struct {
	Success bool    `json:"success"`
	Data    *Person `json:"data,omitempty"`
	Message string  `json:"message,omitempty"`
}

// Find looks up the person registered under the given document number.
func (c *Client) Find(ctx context.Context, documentNumber string) (*Person, error) {
	payload, err := json.Marshal(findRequest{DocumentNumber: documentNumber})
	if err != nil {
		return nil, fmt.Errorf("encoding lookup request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("building lookup request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var body findResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if !body.Success || body.Data == nil {
		if body.Message != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, body.Message)
		}
		return nil, fmt.Errorf("%w: no match for document", ErrUnavailable)
	}
	return body.Data, nil
}
