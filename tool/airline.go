package tool

import (
	"fmt"
	"strings"

	"github.com/skydeskhq/skydesk/core"
)

// SeatMapSignal is emitted verbatim by the display_seat_map tool. Frontends
// watch replies for this token and render an interactive seat map in place
// of plain text.
const SeatMapSignal = "DISPLAY_SEAT_MAP"

// NewFAQLookupTool answers frequent questions from a fixed set of
// categories. Answers are canned; the tool never consults the conversation
// context.
func NewFAQLookupTool() *FunctionTool {
	return NewFunctionTool(
		"faq_lookup",
		"Look up the answer to a frequently asked question by category.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"category": map[string]any{
					"type":        "string",
					"description": "Question category: baggage, seating, or wifi.",
				},
			},
			"required": []string{"category"},
		},
		func(_ *core.ToolContext, args map[string]any) (string, error) {
			category, _ := args["category"].(string)
			switch strings.ToLower(strings.TrimSpace(category)) {
			case "baggage":
				return "You are allowed to bring one bag on the plane. " +
					"It must be under 50 pounds and 22 inches x 14 inches x 9 inches.", nil
			case "seating":
				return "There are 120 seats on the plane. " +
					"There are 22 business class seats and 98 economy seats. " +
					"Exit rows are rows 4 and 16. " +
					"Rows 5-8 are Economy Plus, with extra legroom.", nil
			case "wifi":
				return "We have free wifi on the plane, join Airline-Wifi", nil
			default:
				return "I'm sorry, I don't know the answer to that question.", nil
			}
		},
	)
}

// NewBaggagePolicyTool answers fee and allowance questions about baggage.
func NewBaggagePolicyTool() *FunctionTool {
	return NewFunctionTool(
		"baggage_policy",
		"Answer a baggage fee or allowance question.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"query": map[string]any{
					"type":        "string",
					"description": "The customer's baggage question.",
				},
			},
			"required": []string{"query"},
		},
		func(_ *core.ToolContext, args map[string]any) (string, error) {
			query, _ := args["query"].(string)
			lowered := strings.ToLower(query)
			switch {
			case strings.Contains(lowered, "fee"):
				return "Overweight bag fee is $75.", nil
			case strings.Contains(lowered, "allowance"):
				return "One carry-on and one checked bag (up to 50 lbs) are included.", nil
			default:
				return "Please provide details about your baggage inquiry.", nil
			}
		},
	)
}

// NewUpdateSeatTool changes the seat on a booking and records the new seat
// in the shared context.
func NewUpdateSeatTool() *FunctionTool {
	return NewFunctionTool(
		"update_seat",
		"Update the seat for a given confirmation number.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"confirmation_number": map[string]any{
					"type":        "string",
					"description": "The booking confirmation number.",
				},
				"new_seat": map[string]any{
					"type":        "string",
					"description": "The seat to switch to, e.g. 12A.",
				},
			},
			"required": []string{"confirmation_number", "new_seat"},
		},
		func(tc *core.ToolContext, args map[string]any) (string, error) {
			confirmation, _ := args["confirmation_number"].(string)
			newSeat, _ := args["new_seat"].(string)
			if err := tc.SetContextField(core.FieldSeatNumber, newSeat); err != nil {
				return "", err
			}
			return fmt.Sprintf("Updated seat to %s for confirmation number %s", newSeat, confirmation), nil
		},
	)
}

// NewFlightStatusTool reports the status of a flight.
func NewFlightStatusTool() *FunctionTool {
	return NewFunctionTool(
		"flight_status",
		"Look up the current status of a flight by flight number.",
		map[string]any{
			"type": "object",
			"properties": map[string]any{
				"flight_number": map[string]any{
					"type":        "string",
					"description": "The flight number, e.g. FLT-123.",
				},
			},
			"required": []string{"flight_number"},
		},
		func(_ *core.ToolContext, args map[string]any) (string, error) {
			flightNumber, _ := args["flight_number"].(string)
			return fmt.Sprintf("Flight %s is on time and scheduled to depart at gate A10.", flightNumber), nil
		},
	)
}

// NewDisplaySeatMapTool returns the seat map sentinel so the frontend can
// render an interactive seat picker.
func NewDisplaySeatMapTool() *FunctionTool {
	return NewFunctionTool(
		"display_seat_map",
		"Trigger display of an interactive seat map to the customer.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(_ *core.ToolContext, _ map[string]any) (string, error) {
			return SeatMapSignal, nil
		},
	)
}

// NewCancelFlightTool cancels the booking identified by the confirmation
// number already present in the shared context. A missing confirmation
// number is a validation failure, not a crash.
func NewCancelFlightTool() *FunctionTool {
	return NewFunctionTool(
		"cancel_flight",
		"Cancel the flight for the confirmation number on file.",
		map[string]any{
			"type":       "object",
			"properties": map[string]any{},
		},
		func(tc *core.ToolContext, _ map[string]any) (string, error) {
			confirmation := tc.Context().ConfirmationNumber
			if confirmation == "" {
				return "", NewToolError(
					"cancel_flight",
					"no confirmation number on file for this conversation",
					CodeValidation,
				)
			}
			return fmt.Sprintf("Flight with confirmation number %s has been successfully cancelled", confirmation), nil
		},
	)
}

// DefaultTools returns the full airline tool set.
func DefaultTools() []Tool {
	return []Tool{
		NewFAQLookupTool(),
		NewBaggagePolicyTool(),
		NewUpdateSeatTool(),
		NewFlightStatusTool(),
		NewDisplaySeatMapTool(),
		NewCancelFlightTool(),
	}
}
