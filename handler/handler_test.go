package handler

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydeskhq/skydesk/core"
	"github.com/skydeskhq/skydesk/internal/testutil"
	"github.com/skydeskhq/skydesk/oracle"
	"github.com/skydeskhq/skydesk/tool"
)

func newTurn(message string) *core.TurnContext {
	conv := testutil.NewConversation()
	conv.AddMessage(core.RoleUser, message, conv.CurrentHandler)
	registry := tool.NewRegistry(tool.DefaultTools()...)
	return core.NewTurnContext(context.Background(), conv, message, registry, nil)
}

// -------------------- Triage --------------------

func TestTriage_RoutesOnCode(t *testing.T) {
	triage := NewTriage(oracle.NewScripted("ROUTE_TO_SEAT_BOOKING"))
	signal, err := triage.Handle(newTurn("I want to change my seat"))
	require.NoError(t, err)

	route, ok := signal.(core.RouteTo)
	require.True(t, ok)
	assert.Equal(t, core.HandlerSeatBooking, route.Target)
	assert.NotEmpty(t, route.Reason)
}

func TestTriage_RespondsWithClarifyingText(t *testing.T) {
	triage := NewTriage(oracle.NewScripted("Could you clarify what you need?"))
	signal, err := triage.Handle(newTurn("help"))
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, "Could you clarify what you need?", respond.Text)
}

func TestTriage_SelfRouteDegradesToClarification(t *testing.T) {
	triage := NewTriage(oracle.NewScripted("HANDOFF_TO_TRIAGE"))
	signal, err := triage.Handle(newTurn("hmm"))
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.NotEmpty(t, respond.Text)
}

func TestTriage_NeverCallsTools(t *testing.T) {
	tc := newTurn("what's the wifi?")
	triage := NewTriage(oracle.NewScripted("ROUTE_TO_FAQ"))
	_, err := triage.Handle(tc)
	require.NoError(t, err)

	assert.Empty(t, testutil.EventsOfType(tc.Conv.Events, core.EventToolCall))
}

func TestTriage_PropagatesOracleFailure(t *testing.T) {
	broken := oracle.NewScripted()
	broken.FailWith(errors.New("timeout"))
	triage := NewTriage(broken)

	_, err := triage.Handle(newTurn("hi"))
	assert.ErrorIs(t, err, core.ErrOracleUnavailable)
}

// -------------------- Seat booking --------------------

func TestSeatBooking_SynthesizesBookingOnEntry(t *testing.T) {
	tc := newTurn("show me the seat map")
	sb := NewSeatBooking(oracle.NewScripted())

	_, err := sb.Handle(tc)
	require.NoError(t, err)

	ctx := tc.Context()
	assert.Len(t, ctx.ConfirmationNumber, 6)
	assert.Regexp(t, `^FLT-[0-9]{3}$`, ctx.FlightNumber)

	delta := tc.DrainDelta()
	assert.Contains(t, delta, core.FieldConfirmationNumber)
	assert.Contains(t, delta, core.FieldFlightNumber)
}

func TestSeatBooking_KeepsExistingBooking(t *testing.T) {
	tc := newTurn("show me the seat map")
	require.NoError(t, tc.Context().Set(core.FieldConfirmationNumber, "AB12CD"))
	require.NoError(t, tc.Context().Set(core.FieldFlightNumber, "FLT-500"))

	sb := NewSeatBooking(oracle.NewScripted())
	_, err := sb.Handle(tc)
	require.NoError(t, err)

	assert.Equal(t, "AB12CD", tc.Context().ConfirmationNumber)
	assert.Equal(t, "FLT-500", tc.Context().FlightNumber)
}

func TestSeatBooking_SeatMapRequest(t *testing.T) {
	tc := newTurn("can you show me the seat map?")
	sb := NewSeatBooking(oracle.NewScripted())

	signal, err := sb.Handle(tc)
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, tool.SeatMapSignal, respond.Text)
}

func TestSeatBooking_ExplicitSeatPick(t *testing.T) {
	tc := newTurn("put me in seat 12a please")
	sb := NewSeatBooking(oracle.NewScripted())

	signal, err := sb.Handle(tc)
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Contains(t, respond.Text, "Updated seat to 12A")
	assert.Equal(t, "12A", tc.Context().SeatNumber)

	events := testutil.ToolEvents(tc.Conv.Events, "update_seat")
	assert.Len(t, events, 2)
}

func TestSeatBooking_OffTopicRoutesViaOracle(t *testing.T) {
	tc := newTurn("actually I want to cancel my flight")
	sb := NewSeatBooking(oracle.NewScripted("HANDOFF_TO_TRIAGE"))

	signal, err := sb.Handle(tc)
	require.NoError(t, err)

	route, ok := signal.(core.RouteTo)
	require.True(t, ok)
	assert.Equal(t, core.HandlerTriage, route.Target)
}

// -------------------- Flight status --------------------

func TestFlightStatus_AnswersWithTool(t *testing.T) {
	tc := newTurn("when does my flight leave?")
	require.NoError(t, tc.Context().Set(core.FieldFlightNumber, "FLT-412"))

	fs := NewFlightStatus()
	signal, err := fs.Handle(tc)
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, "Flight FLT-412 is on time and scheduled to depart at gate A10.", respond.Text)
}

func TestFlightStatus_DefaultsFlightNumber(t *testing.T) {
	fs := NewFlightStatus()
	signal, err := fs.Handle(newTurn("is my flight on time?"))
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Contains(t, respond.Text, "FLT-100")
}

func TestFlightStatus_RoutesPolicyQuestionsToFAQ(t *testing.T) {
	fs := NewFlightStatus()
	signal, err := fs.Handle(newTurn("what's the baggage policy?"))
	require.NoError(t, err)

	route, ok := signal.(core.RouteTo)
	require.True(t, ok)
	assert.Equal(t, core.HandlerFAQ, route.Target)
}

func TestFlightStatus_RoutesOffTopicToTriage(t *testing.T) {
	fs := NewFlightStatus()
	signal, err := fs.Handle(newTurn("I'd like to cancel my trip"))
	require.NoError(t, err)

	route, ok := signal.(core.RouteTo)
	require.True(t, ok)
	assert.Equal(t, core.HandlerTriage, route.Target)
}

// -------------------- Cancellation --------------------

func TestCancellation_AsksForConfirmationNumber(t *testing.T) {
	tc := newTurn("I want to cancel my flight")
	c := NewCancellation(oracle.NewScripted())

	signal, err := c.Handle(tc)
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Contains(t, respond.Text, "confirmation number")

	// Collecting the number must not touch the cancel tool.
	assert.Empty(t, testutil.ToolEvents(tc.Conv.Events, "cancel_flight"))
}

func TestCancellation_CapturesConfirmationFromMessage(t *testing.T) {
	tc := newTurn("it's LL0EZ6")
	c := NewCancellation(oracle.NewScripted())

	signal, err := c.Handle(tc)
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, "Thanks. Just to confirm: you'd like to cancel booking LL0EZ6?", respond.Text)
	assert.Equal(t, "LL0EZ6", tc.Context().ConfirmationNumber)
}

func TestCancellation_IgnoresPlainWords(t *testing.T) {
	tc := newTurn("please cancel my flight for me")
	c := NewCancellation(oracle.NewScripted())

	_, err := c.Handle(tc)
	require.NoError(t, err)
	assert.Empty(t, tc.Context().ConfirmationNumber, "six-letter words must not be mistaken for confirmation numbers")
}

func TestCancellation_CancelsOnceConfirmed(t *testing.T) {
	tc := newTurn("yes, cancel it")
	require.NoError(t, tc.Context().Set(core.FieldConfirmationNumber, "LL0EZ6"))
	// The handler asked its cancellation question last turn.
	tc.Conv.Messages = append([]core.Message{
		{Role: core.RoleUser, Content: "I want to cancel my flight", Handler: core.HandlerCancellation},
		{Role: core.RoleAssistant, Content: "Just to confirm: you'd like to cancel booking LL0EZ6?", Handler: core.HandlerCancellation},
	}, tc.Conv.Messages...)
	c := NewCancellation(oracle.NewScripted())

	signal, err := c.Handle(tc)
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, "Flight with confirmation number LL0EZ6 has been successfully cancelled", respond.Text)
}

func TestCancellation_ConfirmsBeforeCancellingPrefilledBooking(t *testing.T) {
	// A confirmation number placed on file by another handler must not let
	// the initial cancel request reach the tool.
	tc := newTurn("please cancel my flight")
	require.NoError(t, tc.Context().Set(core.FieldConfirmationNumber, "AB12CD"))
	c := NewCancellation(oracle.NewScripted())

	signal, err := c.Handle(tc)
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, "Just to confirm: you'd like to cancel booking AB12CD?", respond.Text)
	assert.Empty(t, testutil.ToolEvents(tc.Conv.Events, "cancel_flight"))
}

func TestCancellation_AffirmationWithoutPendingQuestionDoesNotCancel(t *testing.T) {
	tc := newTurn("yes")
	require.NoError(t, tc.Context().Set(core.FieldConfirmationNumber, "AB12CD"))
	c := NewCancellation(oracle.NewScripted("Is there anything you'd like to cancel?"))

	signal, err := c.Handle(tc)
	require.NoError(t, err)

	_, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Empty(t, testutil.ToolEvents(tc.Conv.Events, "cancel_flight"))
}

// -------------------- FAQ --------------------

func TestFAQ_AnswersKnownCategories(t *testing.T) {
	faq := NewFAQ(oracle.NewScripted())

	tests := []struct {
		message string
		want    string
	}{
		{"is there wifi on the plane?", "We have free wifi on the plane, join Airline-Wifi"},
		{"how many bags can I bring?", "You are allowed to bring one bag on the plane. It must be under 50 pounds and 22 inches x 14 inches x 9 inches."},
		{"how many seats does the plane have?", "There are 120 seats on the plane. There are 22 business class seats and 98 economy seats. Exit rows are rows 4 and 16. Rows 5-8 are Economy Plus, with extra legroom."},
	}
	for _, tt := range tests {
		signal, err := faq.Handle(newTurn(tt.message))
		require.NoError(t, err)
		respond, ok := signal.(core.Respond)
		require.True(t, ok)
		assert.Equal(t, tt.want, respond.Text)
	}
}

func TestFAQ_FeeQuestionsUseBaggagePolicy(t *testing.T) {
	faq := NewFAQ(oracle.NewScripted())
	signal, err := faq.Handle(newTurn("what is the overweight bag fee?"))
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, "Overweight bag fee is $75.", respond.Text)
}

func TestFAQ_NeverMutatesContext(t *testing.T) {
	tc := newTurn("is there wifi?")
	before := *tc.Context()
	faq := NewFAQ(oracle.NewScripted())

	_, err := faq.Handle(tc)
	require.NoError(t, err)
	assert.Equal(t, before, *tc.Context())
	assert.Nil(t, tc.DrainDelta())
}

func TestFAQ_UnknownQuestionFallsBackToOracle(t *testing.T) {
	faq := NewFAQ(oracle.NewScripted("We fly to over 40 destinations."))
	signal, err := faq.Handle(newTurn("where do you fly to?"))
	require.NoError(t, err)

	respond, ok := signal.(core.Respond)
	require.True(t, ok)
	assert.Equal(t, "We fly to over 40 destinations.", respond.Text)
}

// -------------------- Catalog --------------------

func TestAll_ContainsEveryHandler(t *testing.T) {
	handlers := All(oracle.NewScripted())
	for _, id := range []core.HandlerID{
		core.HandlerTriage,
		core.HandlerSeatBooking,
		core.HandlerFlightStatus,
		core.HandlerCancellation,
		core.HandlerFAQ,
	} {
		h, ok := handlers[id]
		require.True(t, ok, "missing handler %s", id)
		assert.Equal(t, id, h.ID())
	}
}

func TestInfos_MatchCatalog(t *testing.T) {
	infos := Infos()
	assert.Len(t, infos, 5)
	assert.Equal(t, core.HandlerTriage, infos[0].ID)
	for _, info := range infos {
		assert.NotEmpty(t, info.Description)
	}
}
