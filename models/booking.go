package models

// Booking statuses as reported by the scheduling provider.
const (
	BookingStatusCancelled    = "CANCELLED"
	BookingStatusAccepted     = "ACCEPTED"
	BookingStatusRejected     = "REJECTED"
	BookingStatusPending      = "PENDING"
	BookingStatusAwaitingHost = "AWAITING_HOST"
)

// BookingLocation is the location block of a provider booking request.
type BookingLocation struct {
	Value       string `json:"value"`
	OptionValue string `json:"optionValue"`
}

// BookingResponses carries the attendee details of a booking request.
type BookingResponses struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Guests   []string        `json:"guests"`
	Location BookingLocation `json:"location"`
}

// CreateBookingRequest is the body of POST /bookings on the provider API.
type CreateBookingRequest struct {
	EventTypeID                int               `json:"eventTypeId"`
	Start                      string            `json:"start"`
	Responses                  BookingResponses  `json:"responses"`
	Metadata                   map[string]string `json:"metadata"`
	TimeZone                   string            `json:"timeZone"`
	Language                   string            `json:"language"`
	Title                      string            `json:"title"`
	Description                string            `json:"description"`
	Status                     string            `json:"status"`
	SeatsPerTimeSlot           int               `json:"seatsPerTimeSlot"`
	SeatsShowAttendees         bool              `json:"seatsShowAttendees"`
	SeatsShowAvailabilityCount bool              `json:"seatsShowAvailabilityCount"`
}

// BookingPatch is the body of PATCH /bookings/{id}. Absent optional fields
// are omitted so the provider leaves them untouched.
type BookingPatch struct {
	Title       string `json:"title,omitempty"`
	Status      string `json:"status,omitempty"`
	Description string `json:"description,omitempty"`
}

// Slot is a single bookable time returned by the provider's slot query.
type Slot struct {
	Time string `json:"time"`
}

// SlotsResponse is the body of GET /slots, keyed by calendar date.
type SlotsResponse struct {
	Slots map[string][]Slot `json:"slots"`
}
