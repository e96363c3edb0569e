// File: services/calcom/client.go
package calcom

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"calbot/models"
)

// Client talks to the Cal.com v1 REST API. Every operation is a single
// stateless request; failures surface the provider's response text.
type Client struct {
	BaseURL     string
	APIKey      string
	EventTypeID int
	HTTPClient  *http.Client
}

func NewClient(baseURL, apiKey string, eventTypeID int) *Client {
	return &Client{
		BaseURL:     strings.TrimRight(baseURL, "/"),
		APIKey:      apiKey,
		EventTypeID: eventTypeID,
		HTTPClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

// do performs one provider call. The API key always travels in the query
// string; non-2xx responses become an *APIError carrying the body.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (json.RawMessage, error) {
	if query == nil {
		query = url.Values{}
	}
	query.Set("apiKey", c.APIKey)

	var payload io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("calcom: marshal %s %s body: %w", method, path, err)
		}
		payload = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path+"?"+query.Encode(), payload)
	if err != nil {
		return nil, fmt.Errorf("calcom: build %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calcom: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("calcom: read %s %s response: %w", method, path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(data)}
	}
	return data, nil
}

// ListBookings retrieves all bookings for the given attendee email.
func (c *Client) ListBookings(ctx context.Context, attendeeEmail string) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("attendeeEmail", attendeeEmail)
	return c.do(ctx, http.MethodGet, "/bookings", query, nil)
}

// CreateBooking posts a new booking to the provider.
func (c *Client) CreateBooking(ctx context.Context, req models.CreateBookingRequest) (json.RawMessage, error) {
	return c.do(ctx, http.MethodPost, "/bookings", nil, req)
}

// EditBooking patches an existing booking. Fields absent from the patch are
// omitted from the request body so the provider leaves them untouched; the
// status defaults to CANCELLED unless overridden.
func (c *Client) EditBooking(ctx context.Context, bookingID int64, patch models.BookingPatch) (json.RawMessage, error) {
	if patch.Status == "" {
		patch.Status = models.BookingStatusCancelled
	}
	return c.do(ctx, http.MethodPatch, fmt.Sprintf("/bookings/%d", bookingID), nil, patch)
}

// CancelBooking cancels a booking by ID. The provider may reply with an
// empty body; that is an empty success, not an error.
func (c *Client) CancelBooking(ctx context.Context, bookingID int64) (json.RawMessage, error) {
	data, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/bookings/%d/cancel", bookingID), nil, nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return json.RawMessage(`{}`), nil
	}
	return data, nil
}
