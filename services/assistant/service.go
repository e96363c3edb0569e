// File: services/assistant/service.go
package assistant

import (
	"context"
	"encoding/json"
	"errors"

	"calbot/models"
	"calbot/services/calcom"
	"calbot/services/intelligence"
	"calbot/utils"

	"go.uber.org/zap"
)

// BookingAPI is the slice of the scheduling-provider client the assistant
// dispatches into.
type BookingAPI interface {
	ListBookings(ctx context.Context, attendeeEmail string) (json.RawMessage, error)
	ReserveSlot(ctx context.Context, date, start, email string) (*calcom.ReserveResult, error)
	EditBooking(ctx context.Context, bookingID int64, patch models.BookingPatch) (json.RawMessage, error)
	CancelBooking(ctx context.Context, bookingID int64) (json.RawMessage, error)
}

// TurnResult is the outcome of one conversational turn.
type TurnResult struct {
	Reply  string
	Action string // booking action performed this turn, empty for plain chat
}

// Service turns free text into booking operations: classify, perform the
// matched provider call, then feed its result back for the final reply.
// The service holds no per-session state; history is caller-owned.
type Service struct {
	Classifier intelligence.Classifier
	Bookings   BookingAPI
}

func NewService(classifier intelligence.Classifier, bookings BookingAPI) *Service {
	return &Service{Classifier: classifier, Bookings: bookings}
}

// dispatchResult separates what goes back to the model from what must reach
// the user verbatim (the slot refusal, whose wording enumerates the
// available set exactly).
type dispatchResult struct {
	payload any
	literal string
}

func (s *Service) HandleTurn(ctx context.Context, history []models.ChatMessage, text string) (*TurnResult, error) {
	logger := utils.GetLogger()

	turn, err := s.Classifier.Classify(ctx, history, text)
	if err != nil {
		return nil, err
	}

	outcome := turn.Outcome()
	if outcome.Call == nil {
		return &TurnResult{Reply: outcome.Text}, nil
	}

	res, err := s.dispatch(ctx, *outcome.Call)
	if err != nil {
		var argErr *ArgumentError
		if errors.As(err, &argErr) {
			// Malformed structured output: surface the capability's own text.
			logger.Warn("assistant: falling back to plain text", zap.Error(argErr))
			return &TurnResult{Reply: outcome.Text}, nil
		}
		// Transport/provider failures abort the turn.
		return nil, err
	}

	if res.literal != "" {
		return &TurnResult{Reply: res.literal, Action: outcome.Call.Name}, nil
	}

	reply, err := turn.Finalize(ctx, res.payload)
	if err != nil {
		return nil, err
	}
	return &TurnResult{Reply: reply, Action: outcome.Call.Name}, nil
}

func (s *Service) dispatch(ctx context.Context, call intelligence.FunctionCall) (*dispatchResult, error) {
	switch call.Name {
	case intelligence.ActionGetAllBookings:
		email, err := stringArg(call, "attendee_email")
		if err != nil {
			return nil, err
		}
		raw, err := s.Bookings.ListBookings(ctx, email)
		if err != nil {
			return nil, err
		}
		return &dispatchResult{payload: decodeJSON(raw)}, nil

	case intelligence.ActionCreateBooking:
		start, err := stringArg(call, "start")
		if err != nil {
			return nil, err
		}
		date, err := stringArg(call, "date")
		if err != nil {
			return nil, err
		}
		email, err := stringArg(call, "email")
		if err != nil {
			return nil, err
		}
		res, err := s.Bookings.ReserveSlot(ctx, date, start, email)
		if err != nil {
			return nil, err
		}
		if !res.Booked {
			return &dispatchResult{literal: res.Refusal}, nil
		}
		return &dispatchResult{payload: decodeJSON(res.Booking)}, nil

	case intelligence.ActionEditBooking:
		bookingID, err := intArg(call, "booking_id")
		if err != nil {
			return nil, err
		}
		patch := models.BookingPatch{
			Title:       optionalStringArg(call, "title"),
			Description: optionalStringArg(call, "description"),
		}
		raw, err := s.Bookings.EditBooking(ctx, bookingID, patch)
		if err != nil {
			return nil, err
		}
		return &dispatchResult{payload: decodeJSON(raw)}, nil

	case intelligence.ActionCancelBooking:
		bookingID, err := intArg(call, "booking_id")
		if err != nil {
			return nil, err
		}
		raw, err := s.Bookings.CancelBooking(ctx, bookingID)
		if err != nil {
			return nil, err
		}
		return &dispatchResult{payload: decodeJSON(raw)}, nil

	default:
		return nil, &ArgumentError{Action: call.Name, Reason: "no matching action"}
	}
}

// decodeJSON turns a provider response into plain values the model client
// can serialize; undecodable bodies travel as raw strings.
func decodeJSON(raw json.RawMessage) any {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return v
}
