package assistant

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"calbot/models"
	"calbot/services/calcom"
	"calbot/services/intelligence"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTurn struct {
	outcome   intelligence.Outcome
	reply     string
	finalized any
	called    bool
}

func (t *fakeTurn) Outcome() intelligence.Outcome { return t.outcome }

func (t *fakeTurn) Finalize(_ context.Context, result any) (string, error) {
	t.called = true
	t.finalized = result
	return t.reply, nil
}

type fakeClassifier struct {
	turn    *fakeTurn
	history []models.ChatMessage
}

func (c *fakeClassifier) Classify(_ context.Context, history []models.ChatMessage, _ string) (intelligence.Turn, error) {
	c.history = history
	return c.turn, nil
}

type fakeBookings struct {
	listEmail  string
	reserved   *calcom.ReserveResult
	reserveErr error
	editID     int64
	editPatch  models.BookingPatch
	cancelID   int64
	calls      []string
}

func (b *fakeBookings) ListBookings(_ context.Context, attendeeEmail string) (json.RawMessage, error) {
	b.calls = append(b.calls, "list")
	b.listEmail = attendeeEmail
	return json.RawMessage(`{"bookings":[]}`), nil
}

func (b *fakeBookings) ReserveSlot(_ context.Context, date, start, email string) (*calcom.ReserveResult, error) {
	b.calls = append(b.calls, "reserve")
	if b.reserveErr != nil {
		return nil, b.reserveErr
	}
	return b.reserved, nil
}

func (b *fakeBookings) EditBooking(_ context.Context, bookingID int64, patch models.BookingPatch) (json.RawMessage, error) {
	b.calls = append(b.calls, "edit")
	b.editID = bookingID
	b.editPatch = patch
	return json.RawMessage(`{"id":42}`), nil
}

func (b *fakeBookings) CancelBooking(_ context.Context, bookingID int64) (json.RawMessage, error) {
	b.calls = append(b.calls, "cancel")
	b.cancelID = bookingID
	return json.RawMessage(`{}`), nil
}

func callTurn(t *fakeTurn, bookings *fakeBookings) (*TurnResult, error) {
	svc := NewService(&fakeClassifier{turn: t}, bookings)
	return svc.HandleTurn(context.Background(), nil, "irrelevant")
}

func TestPlainTextPassthrough(t *testing.T) {
	turn := &fakeTurn{outcome: intelligence.Outcome{Text: "Hello! How can I help?"}}
	bookings := &fakeBookings{}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	assert.Equal(t, "Hello! How can I help?", res.Reply)
	assert.Empty(t, res.Action)
	assert.Empty(t, bookings.calls)
	assert.False(t, turn.called)
}

func TestListBookingsDispatch(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{Call: &intelligence.FunctionCall{
			Name: intelligence.ActionGetAllBookings,
			Args: map[string]any{"attendee_email": "jane@example.com"},
		}},
		reply: "You have no bookings.",
	}
	bookings := &fakeBookings{}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", bookings.listEmail)
	assert.Equal(t, "You have no bookings.", res.Reply)
	assert.Equal(t, intelligence.ActionGetAllBookings, res.Action)
	assert.True(t, turn.called)
}

func TestCreateBookingRefusalIsLiteral(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{Call: &intelligence.FunctionCall{
			Name: intelligence.ActionCreateBooking,
			Args: map[string]any{"start": "10:00:00", "date": "2024-06-01", "email": "jane@example.com"},
		}},
		reply: "should not be used",
	}
	bookings := &fakeBookings{reserved: &calcom.ReserveResult{
		Booked:  false,
		Refusal: `slot time is not available. Available slot times ["09:00:00","09:15:00"]`,
	}}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	// The refusal enumerating the available set reaches the user verbatim.
	assert.Equal(t, `slot time is not available. Available slot times ["09:00:00","09:15:00"]`, res.Reply)
	assert.False(t, turn.called)
}

func TestCreateBookingSuccessFedBack(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{Call: &intelligence.FunctionCall{
			Name: intelligence.ActionCreateBooking,
			Args: map[string]any{"start": "09:00:00", "date": "2024-06-01", "email": "jane@example.com"},
		}},
		reply: "Booked you in at 9am.",
	}
	bookings := &fakeBookings{reserved: &calcom.ReserveResult{
		Booked:  true,
		Booking: json.RawMessage(`{"id":42,"status":"ACCEPTED"}`),
	}}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	assert.Equal(t, "Booked you in at 9am.", res.Reply)
	require.True(t, turn.called)
	fed := turn.finalized.(map[string]any)
	assert.Equal(t, float64(42), fed["id"])
}

func TestEditBookingArgs(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{Call: &intelligence.FunctionCall{
			Name: intelligence.ActionEditBooking,
			Args: map[string]any{"booking_id": float64(42), "title": "Standup"},
		}},
		reply: "Updated.",
	}
	bookings := &fakeBookings{}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	assert.Equal(t, int64(42), bookings.editID)
	assert.Equal(t, "Standup", bookings.editPatch.Title)
	assert.Empty(t, bookings.editPatch.Description)
	assert.Equal(t, "Updated.", res.Reply)
}

func TestCancelBookingArgs(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{Call: &intelligence.FunctionCall{
			Name: intelligence.ActionCancelBooking,
			Args: map[string]any{"booking_id": float64(7)},
		}},
		reply: "Cancelled.",
	}
	bookings := &fakeBookings{}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	assert.Equal(t, int64(7), bookings.cancelID)
	assert.Equal(t, "Cancelled.", res.Reply)
}

func TestMalformedArgsFallBackToPlainText(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{
			Call: &intelligence.FunctionCall{
				Name: intelligence.ActionCreateBooking,
				Args: map[string]any{"start": "09:00:00"}, // date and email missing
			},
			Text: "I'd like to book you a slot.",
		},
	}
	bookings := &fakeBookings{}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	assert.Equal(t, "I'd like to book you a slot.", res.Reply)
	assert.Empty(t, bookings.calls)
	assert.False(t, turn.called)
}

func TestUnknownActionFallsBackToPlainText(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{
			Call: &intelligence.FunctionCall{Name: "reschedule_everything"},
			Text: "Sorry, I can't do that.",
		},
	}
	bookings := &fakeBookings{}

	res, err := callTurn(turn, bookings)
	require.NoError(t, err)
	assert.Equal(t, "Sorry, I can't do that.", res.Reply)
	assert.Empty(t, bookings.calls)
}

func TestProviderErrorSurfaces(t *testing.T) {
	turn := &fakeTurn{
		outcome: intelligence.Outcome{Call: &intelligence.FunctionCall{
			Name: intelligence.ActionCreateBooking,
			Args: map[string]any{"start": "09:00:00", "date": "2024-06-01", "email": "jane@example.com"},
		}},
	}
	bookings := &fakeBookings{reserveErr: &calcom.APIError{StatusCode: http.StatusBadGateway, Body: "down"}}

	_, err := callTurn(turn, bookings)
	require.Error(t, err)

	var apiErr *calcom.APIError
	assert.ErrorAs(t, err, &apiErr)
}

func TestHistoryIsThreadedThrough(t *testing.T) {
	classifier := &fakeClassifier{turn: &fakeTurn{outcome: intelligence.Outcome{Text: "hi"}}}
	svc := NewService(classifier, &fakeBookings{})

	history := []models.ChatMessage{
		{Role: models.RoleUser, Content: "hello"},
		{Role: models.RoleModel, Content: "hi there"},
	}
	_, err := svc.HandleTurn(context.Background(), history, "book me in")
	require.NoError(t, err)
	assert.Equal(t, history, classifier.history)
}
