// File: services/intelligence/tools.go
package intelligence

import (
	genai "github.com/google/generative-ai-go/genai"
)

// Action names exposed to the model as callable functions.
const (
	ActionGetAllBookings = "get_all_bookings"
	ActionCreateBooking  = "create_booking"
	ActionEditBooking    = "edit_booking"
	ActionCancelBooking  = "cancel_booking"
)

// bookingTool declares the four booking operations the model may select.
func bookingTool() *genai.Tool {
	return &genai.Tool{
		FunctionDeclarations: []*genai.FunctionDeclaration{
			{
				Name:        ActionGetAllBookings,
				Description: "Retrieves all bookings for a given attendee email address.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"attendee_email": {Type: genai.TypeString, Description: "email of the attendee"},
					},
					Required: []string{"attendee_email"},
				},
			},
			{
				Name:        ActionCreateBooking,
				Description: "Creates a new booking with specified start time, date, and attendee email.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"start": {Type: genai.TypeString, Description: "start time for the booking (in HH:MM:SS 24hrs format)"},
						"date":  {Type: genai.TypeString, Description: "date in YYYY-MM-DD format, consider year as 2024 if not provided"},
						"email": {Type: genai.TypeString, Description: "Attendee email"},
					},
					Required: []string{"start", "email", "date"},
				},
			},
			{
				Name:        ActionEditBooking,
				Description: "Edits an existing booking with specified ID, title, description, start and end.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"booking_id":  {Type: genai.TypeInteger, Description: "ID of the booking to edit"},
						"title":       {Type: genai.TypeString, Description: "new title of the booking"},
						"description": {Type: genai.TypeString, Description: "new description of the booking"},
						"start":       {Type: genai.TypeString, Description: "new start time for the booking, ISO 8601 format with a -5 timezone offset"},
						"end":         {Type: genai.TypeString, Description: "new end time for the booking, ISO 8601 format with a -5 timezone offset"},
					},
					Required: []string{"booking_id"},
				},
			},
			{
				Name:        ActionCancelBooking,
				Description: "Cancels an existing booking with specified ID.",
				Parameters: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"booking_id": {Type: genai.TypeInteger, Description: "ID of the booking to cancel"},
					},
					Required: []string{"booking_id"},
				},
			},
		},
	}
}
