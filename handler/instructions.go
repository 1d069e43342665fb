package handler

import (
	"fmt"

	"github.com/skydeskhq/skydesk/core"
)

// Routing codes the oracle answers with when a request belongs elsewhere.
// They must match the codes oracle.ParseDecision recognizes.
const (
	codeSeatBooking  = "ROUTE_TO_SEAT_BOOKING"
	codeFlightStatus = "ROUTE_TO_FLIGHT_STATUS"
	codeCancellation = "ROUTE_TO_CANCELLATION"
	codeFAQ          = "ROUTE_TO_FAQ"
	codeTriage       = "HANDOFF_TO_TRIAGE"
)

func triageInstructions() string {
	return "You are a helpful triaging agent for an airline customer service desk. " +
		"Classify the customer's request and answer with exactly one routing code:\n" +
		codeSeatBooking + " for seat changes or seat map requests\n" +
		codeFlightStatus + " for flight status questions\n" +
		codeCancellation + " for cancellations or refunds\n" +
		codeFAQ + " for general questions about the airline, baggage, seating or wifi\n" +
		"If the request is ambiguous, reply with a short clarifying question in plain language instead of a code. " +
		"Never answer the request yourself."
}

func seatBookingInstructions(ctx *core.Context) string {
	confirmation := ctx.ConfirmationNumber
	if confirmation == "" {
		confirmation = "unknown"
	}
	return fmt.Sprintf(
		"You are a seat booking agent for an airline. "+
			"The customer's confirmation number is %s. "+
			"Help the customer change their seat. "+
			"Ask which seat they would like if they have not said. "+
			"If the request is not about seat booking, answer with exactly %s.",
		confirmation, codeTriage,
	)
}

func cancellationInstructions(ctx *core.Context) string {
	confirmation := ctx.ConfirmationNumber
	if confirmation == "" {
		confirmation = "unknown"
	}
	flight := ctx.FlightNumber
	if flight == "" {
		flight = "unknown"
	}
	return fmt.Sprintf(
		"You are a cancellation agent for an airline. "+
			"The customer's confirmation number is %s and their flight number is %s. "+
			"Confirm the details with the customer before cancelling. "+
			"If the request is not about cancellation, answer with exactly %s.",
		confirmation, flight, codeTriage,
	)
}

func faqInstructions() string {
	return "You are an FAQ agent for an airline. " +
		"Answer general questions about the airline briefly and factually. " +
		"Do not rely on your own knowledge of other airlines. " +
		"If the question is not a general airline question, answer with exactly " + codeTriage + "."
}
