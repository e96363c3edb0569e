package calcom

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"calbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBookingsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/bookings", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apiKey"))
		assert.Equal(t, "jane@example.com", r.URL.Query().Get("attendeeEmail"))
		io.WriteString(w, `{"bookings":[{"id":7}]}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testEventTypeID)
	raw, err := client.ListBookings(context.Background(), "jane@example.com")
	require.NoError(t, err)
	assert.JSONEq(t, `{"bookings":[{"id":7}]}`, string(raw))
}

func TestEditBookingDefaultsStatusAndOmitsAbsentFields(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/bookings/42", r.URL.Path)
		body, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"id":42}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testEventTypeID)
	_, err := client.EditBooking(context.Background(), 42, models.BookingPatch{Title: "Sync"})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "Sync", sent["title"])
	assert.Equal(t, "CANCELLED", sent["status"])
	// Unsupplied fields must not appear in the patch at all.
	assert.NotContains(t, sent, "description")
}

func TestEditBookingStatusOverride(t *testing.T) {
	var body []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ = io.ReadAll(r.Body)
		io.WriteString(w, `{"id":42}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testEventTypeID)
	_, err := client.EditBooking(context.Background(), 42, models.BookingPatch{Status: models.BookingStatusAccepted})
	require.NoError(t, err)

	var sent map[string]any
	require.NoError(t, json.Unmarshal(body, &sent))
	assert.Equal(t, "ACCEPTED", sent["status"])
	assert.NotContains(t, sent, "title")
}

func TestCancelBookingEmptyBodyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/bookings/42/cancel", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key", testEventTypeID)
	raw, err := client.CancelBooking(context.Background(), 42)
	require.NoError(t, err)
	assert.JSONEq(t, `{}`, string(raw))
}

func TestNon2xxCarriesProviderBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, `{"message":"no_event_type_found"}`)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "bad-key", testEventTypeID)
	_, err := client.ListBookings(context.Background(), "jane@example.com")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Contains(t, apiErr.Body, "no_event_type_found")
	assert.Contains(t, apiErr.Error(), "401")
}
