// Package keypad is the client side of the picking API: the program running
// on a handheld terminal. It lists open pickings, pulls one into a local CSV
// file the operator edits offline, and pushes the edited file back as an
// update request.
package keypad

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const requestTimeout = 10 * time.Second

// PickingSummary is one row of the open-picking listing.
type PickingSummary struct {
	ID     int64  `json:"id"`
	Status string `json:"status"`
}

// PickingItem mirrors the server's order line representation. Quantities are
// decimal strings; PickedAt uses the RFC 1123 layout.
type PickingItem struct {
	ID             string  `json:"id"`
	Location       string  `json:"location"`
	ItemCode       string  `json:"item_code"`
	Description    string  `json:"description"`
	UnitOfMeasure  string  `json:"unit_of_measure"`
	TotalQuantity  string  `json:"total_quantity"`
	TotalNeeded    string  `json:"total_needed"`
	TotalIssued    string  `json:"total_issued"`
	PickedQuantity *string `json:"picked_quantity"`
	PickedAt       *string `json:"picked_at"`
}

// Picking is a full picking order as served by the API.
type Picking struct {
	ID         int64         `json:"id"`
	Status     string        `json:"status"`
	OrderItems []PickingItem `json:"order_items"`
}

// UpdateRecord is one item-update record of a push. A nil PickedQuantity
// marks an item the operator did not touch.
type UpdateRecord struct {
	ID             string  `json:"id"`
	PickedQuantity *string `json:"picked_quantity"`
	PickedAt       *string `json:"picked_at"`
}

// UpdateRequest is the payload of a push. Status is set to "finished" when
// the operator declares the picking done.
type UpdateRequest struct {
	Status     *string        `json:"status,omitempty"`
	OrderItems []UpdateRecord `json:"order_items"`
}

// APIError is returned when the server answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the picking service over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the service at the given base URL,
// e.g. "http://localhost:8080".
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: requestTimeout},
	}
}

// FetchPickings lists every picking still open on the server.
func (c *Client) FetchPickings(ctx context.Context) ([]PickingSummary, error) {
	var pickings []PickingSummary
	if err := c.do(ctx, http.MethodGet, "/api/picking", nil, &pickings); err != nil {
		return nil, err
	}
	return pickings, nil
}

// FetchPicking pulls one picking with its full item list.
func (c *Client) FetchPicking(ctx context.Context, id int64) (Picking, error) {
	var picking Picking
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/picking/%d", id), nil, &picking)
	return picking, err
}

// PushUpdate sends an update batch for one picking and returns the refreshed
// snapshot the server answered with.
func (c *Client) PushUpdate(ctx context.Context, id int64, req UpdateRequest) (Picking, error) {
	var picking Picking
	err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/picking/%d", id), req, &picking)
	return picking, err
}

func (c *Client) do(ctx context.Context, method, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var apiErr struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		return &APIError{StatusCode: resp.StatusCode, Message: apiErr.Message}
	}

	return json.NewDecoder(resp.Body).Decode(result)
}
