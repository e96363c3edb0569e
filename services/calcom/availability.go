// File: services/calcom/availability.go
package calcom

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"sort"
	"strconv"
	"strings"
	"time"

	"calbot/models"
)

// displayZone is the fixed UTC-5 offset that slot times are presented in.
var displayZone = time.FixedZone("UTC-5", -5*60*60)

// DaySlots queries the provider for every open slot on the given date
// (YYYY-MM-DD, queried over the 00:00-23:45 UTC window), converts each
// returned UTC timestamp to the fixed UTC-5 offset and returns the times as
// HH:MM:SS strings. A transport or parse error propagates; it is never
// collapsed into "no slots available".
func (c *Client) DaySlots(ctx context.Context, date string) ([]string, error) {
	query := url.Values{}
	query.Set("eventTypeId", strconv.Itoa(c.EventTypeID))
	query.Set("startTime", date+"T00:00:00.000Z")
	query.Set("endTime", date+"T23:45:00.000Z")

	data, err := c.do(ctx, http.MethodGet, "/slots", query, nil)
	if err != nil {
		return nil, err
	}

	var parsed models.SlotsResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("calcom: decode slots response: %w", err)
	}

	times := []string{}
	for _, daySlots := range parsed.Slots {
		for _, slot := range daySlots {
			t, err := time.Parse(time.RFC3339, slot.Time)
			if err != nil {
				return nil, fmt.Errorf("calcom: parse slot time %q: %w", slot.Time, err)
			}
			times = append(times, t.In(displayZone).Format("15:04:05"))
		}
	}
	// The provider keys slots by date in a map, so impose a stable order.
	sort.Strings(times)
	return times, nil
}

// ReserveResult is the outcome of a reconciled booking attempt. A refused
// slot is a normal branch, not an error.
type ReserveResult struct {
	Booked         bool
	Refusal        string
	AvailableSlots []string
	Booking        json.RawMessage
}

// ReserveSlot verifies that the requested start time (HH:MM:SS, local to the
// fixed UTC-5 offset) is present in the day's availability before creating
// the booking. The check is best effort: the provider offers no
// compare-and-swap, so a concurrent caller can still take the slot between
// the two requests.
func (c *Client) ReserveSlot(ctx context.Context, date, start, email string) (*ReserveResult, error) {
	available, err := c.DaySlots(ctx, date)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(available, start) {
		listed, err := json.Marshal(available)
		if err != nil {
			return nil, fmt.Errorf("calcom: marshal available slots: %w", err)
		}
		return &ReserveResult{
			Booked:         false,
			AvailableSlots: available,
			Refusal:        fmt.Sprintf("slot time is not available. Available slot times %s", listed),
		}, nil
	}

	req := models.CreateBookingRequest{
		EventTypeID: c.EventTypeID,
		Start:       date + "T" + start + "-05:00",
		Responses: models.BookingResponses{
			Name:   attendeeName(email),
			Email:  email,
			Guests: []string{},
			Location: models.BookingLocation{
				Value:       "integrations:calcom",
				OptionValue: "",
			},
		},
		Metadata:                   map[string]string{},
		TimeZone:                   "America/New_York",
		Language:                   "en",
		Status:                     "confirmed",
		SeatsPerTimeSlot:           10,
		SeatsShowAttendees:         true,
		SeatsShowAvailabilityCount: true,
	}

	booking, err := c.CreateBooking(ctx, req)
	if err != nil {
		return nil, err
	}
	return &ReserveResult{
		Booked:         true,
		AvailableSlots: available,
		Booking:        booking,
	}, nil
}

func attendeeName(email string) string {
	if at := strings.Index(email, "@"); at > 0 {
		return email[:at]
	}
	return email
}
