// Package handler implements the conversation handlers: triage plus the
// four specialists (seat booking, flight status, cancellation, FAQ). Each
// handler owns one area of the customer service surface and either replies
// to the customer or routes the turn to a better suited handler.
package handler

import (
	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/oracle"
)

// Handler processes one turn of a conversation while it holds control.
type Handler interface {
	// ID returns the handler's stable identifier.
	ID() core.HandlerID

	// Handle processes the turn and returns exactly one signal: Respond to
	// end the turn with a reply, or RouteTo to transfer control.
	Handle(tc *core.TurnContext) (core.Signal, error)
}

// Info describes a handler for discovery surfaces (agent listings, demos).
type Info struct {
	ID          core.HandlerID   `json:"id"`
	Description string           `json:"description"`
	Tools       []string         `json:"tools"`
	RoutesTo    []core.HandlerID `json:"routes_to"`
}

// Infos returns the catalog of built-in handlers.
func Infos() []Info {
	return []Info{
		{
			ID:          core.HandlerTriage,
			Description: "A triage agent that can delegate a customer's request to the appropriate agent.",
			RoutesTo:    []core.HandlerID{core.HandlerSeatBooking, core.HandlerFlightStatus, core.HandlerCancellation, core.HandlerFAQ},
		},
		{
			ID:          core.HandlerSeatBooking,
			Description: "A helpful agent that can update a seat on a flight.",
			Tools:       []string{"update_seat", "display_seat_map"},
			RoutesTo:    []core.HandlerID{core.HandlerTriage},
		},
		{
			ID:          core.HandlerFlightStatus,
			Description: "An agent to provide flight status information.",
			Tools:       []string{"flight_status"},
			RoutesTo:    []core.HandlerID{core.HandlerTriage, core.HandlerFAQ},
		},
		{
			ID:          core.HandlerCancellation,
			Description: "An agent to cancel flights.",
			Tools:       []string{"cancel_flight"},
			RoutesTo:    []core.HandlerID{core.HandlerTriage},
		},
		{
			ID:          core.HandlerFAQ,
			Description: "A helpful agent that can answer questions about the airline.",
			Tools:       []string{"faq_lookup", "baggage_policy"},
			RoutesTo:    []core.HandlerID{core.HandlerTriage},
		},
	}
}

// All builds the full handler set backed by the given oracle, keyed by
// handler id.
func All(o oracle.Oracle) map[core.HandlerID]Handler {
	return map[core.HandlerID]Handler{
		core.HandlerTriage:       NewTriage(o),
		core.HandlerSeatBooking:  NewSeatBooking(o),
		core.HandlerFlightStatus: NewFlightStatus(),
		core.HandlerCancellation: NewCancellation(o),
		core.HandlerFAQ:          NewFAQ(o),
	}
}
