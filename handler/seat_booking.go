package handler

import (
	"fmt"
	"math/rand"
	"regexp"
	"strings"

	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/oracle"
)

var seatRe = regexp.MustCompile(`(?i)\b([0-9]{1,2})\s*([A-F])\b`)

var seatMapPhrases = []string{
	"seat map",
	"available seats",
	"which seats",
	"show me the seats",
}

const confirmationAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SeatBooking changes seats on a booking. Entering the handler synthesizes
// a confirmation and flight number when the conversation does not have them
// yet, mirroring what a reservation lookup would populate. Seat map
// requests and explicit seat picks are handled deterministically; anything
// else falls back to the oracle.
type SeatBooking struct {
	oracle oracle.Oracle
}

// NewSeatBooking creates the seat booking handler.
func NewSeatBooking(o oracle.Oracle) *SeatBooking {
	return &SeatBooking{oracle: o}
}

// ID implements Handler.
func (*SeatBooking) ID() core.HandlerID { return core.HandlerSeatBooking }

// Handle implements Handler.
func (h *SeatBooking) Handle(tc *core.TurnContext) (core.Signal, error) {
	if err := ensureBooking(tc); err != nil {
		return nil, err
	}

	lowered := strings.ToLower(tc.Message)
	for _, phrase := range seatMapPhrases {
		if strings.Contains(lowered, phrase) {
			result, err := tc.InvokeTool("display_seat_map", map[string]any{})
			if err != nil {
				return nil, err
			}
			return core.Respond{Text: result}, nil
		}
	}

	if m := seatRe.FindStringSubmatch(tc.Message); m != nil {
		seat := m[1] + strings.ToUpper(m[2])
		result, err := tc.InvokeTool("update_seat", map[string]any{
			"confirmation_number": tc.Context().ConfirmationNumber,
			"new_seat":            seat,
		})
		if err != nil {
			return nil, err
		}
		return core.Respond{Text: result}, nil
	}

	decision, err := oracle.Decide(tc.Ctx, h.oracle, oracle.Request{
		Instructions: seatBookingInstructions(tc.Context()),
		History:      tc.History(),
	})
	if err != nil {
		return nil, err
	}
	switch d := decision.(type) {
	case oracle.Route:
		return core.RouteTo{Target: d.Target, Reason: "outside seat booking scope"}, nil
	case oracle.Text:
		return core.Respond{Text: d.Text}, nil
	default:
		return core.Respond{Text: "Which seat would you like to change to?"}, nil
	}
}

// ensureBooking fills in confirmation and flight number the first time the
// handler takes control, standing in for a reservation system lookup.
func ensureBooking(tc *core.TurnContext) error {
	ctx := tc.Context()
	if ctx.ConfirmationNumber == "" {
		confirmation := make([]byte, 6)
		for i := range confirmation {
			confirmation[i] = confirmationAlphabet[rand.Intn(len(confirmationAlphabet))]
		}
		if err := tc.SetContextField(core.FieldConfirmationNumber, string(confirmation)); err != nil {
			return err
		}
	}
	if ctx.FlightNumber == "" {
		flight := fmt.Sprintf("FLT-%d", 100+rand.Intn(900))
		if err := tc.SetContextField(core.FieldFlightNumber, flight); err != nil {
			return err
		}
	}
	return nil
}
