package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent_AssignsIDAndTimestamp(t *testing.T) {
	e := NewEvent(EventMessage, HandlerTriage, "hello")
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.Timestamp.IsZero())
	assert.Equal(t, EventMessage, e.Type)
	assert.Equal(t, HandlerTriage, e.Handler)
	assert.Equal(t, "hello", e.Content)
}

func TestEventIDs_Unique(t *testing.T) {
	a := NewEvent(EventMessage, HandlerTriage, "a")
	b := NewEvent(EventMessage, HandlerTriage, "b")
	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewGuardrailEvent(t *testing.T) {
	e := NewGuardrailEvent(HandlerTriage, "relevance", Verdict{Passed: false, Reasoning: "off topic"})
	assert.Equal(t, EventGuardrailCheck, e.Type)
	assert.Equal(t, "relevance", e.Metadata[MetaCheck])
	assert.Equal(t, false, e.Metadata[MetaPassed])
	assert.Equal(t, "off topic", e.Metadata[MetaReasoning])
}

func TestToolEventPair_ShareCorrelationID(t *testing.T) {
	corrID := NewID()
	call := NewToolCallEvent(HandlerFAQ, corrID, "faq_lookup", `{"category":"wifi"}`)
	result := NewToolResultEvent(HandlerFAQ, corrID, "faq_lookup", "answer", "", nil)

	assert.Equal(t, corrID, call.CorrelationID())
	assert.Equal(t, corrID, result.CorrelationID())
	assert.Equal(t, "faq_lookup", call.ToolName())
	assert.Equal(t, "faq_lookup", result.ToolName())
}

func TestNewToolResultEvent_RecordsErrorAndDelta(t *testing.T) {
	delta := map[string]string{FieldSeatNumber: "12A"}
	e := NewToolResultEvent(HandlerSeatBooking, NewID(), "update_seat", "ok", "", delta)
	assert.Equal(t, delta, e.ContextDelta())
	_, hasErr := e.Metadata[MetaError]
	assert.False(t, hasErr)

	failed := NewToolResultEvent(HandlerCancellation, NewID(), "cancel_flight", "", "no confirmation", nil)
	assert.Equal(t, "no confirmation", failed.Metadata[MetaError])
	assert.Nil(t, failed.ContextDelta())
}

func TestContextDelta_SurvivesJSONRoundTrip(t *testing.T) {
	e := NewRoutingEvent(HandlerSeatBooking, "respond", map[string]string{
		FieldConfirmationNumber: "AB12CD",
		FieldFlightNumber:       "FLT-412",
	})

	raw, err := json.Marshal(e)
	require.NoError(t, err)

	var decoded Event
	require.NoError(t, json.Unmarshal(raw, &decoded))

	delta := decoded.ContextDelta()
	assert.Equal(t, "AB12CD", delta[FieldConfirmationNumber])
	assert.Equal(t, "FLT-412", delta[FieldFlightNumber])
}

func TestNewHandoffEvent(t *testing.T) {
	e := NewHandoffEvent(HandlerTriage, HandlerFAQ, "general question")
	assert.Equal(t, EventHandoff, e.Type)
	assert.Equal(t, HandlerFAQ, e.Handler)
	assert.Equal(t, string(HandlerTriage), e.Metadata[MetaSource])
	assert.Equal(t, string(HandlerFAQ), e.Metadata[MetaTarget])
	assert.Equal(t, "general question", e.Metadata[MetaReason])
}
