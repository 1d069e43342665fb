package tool

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skydeskhq/skydesk/core"
)

func TestFAQLookup_Categories(t *testing.T) {
	faq := NewFAQLookupTool()

	tests := []struct {
		category string
		want     string
	}{
		{"baggage", "You are allowed to bring one bag on the plane. It must be under 50 pounds and 22 inches x 14 inches x 9 inches."},
		{"seating", "There are 120 seats on the plane. There are 22 business class seats and 98 economy seats. Exit rows are rows 4 and 16. Rows 5-8 are Economy Plus, with extra legroom."},
		{"wifi", "We have free wifi on the plane, join Airline-Wifi"},
		{"meals", "I'm sorry, I don't know the answer to that question."},
	}
	for _, tt := range tests {
		result, err := faq.Call(newToolCtx(t), map[string]any{"category": tt.category})
		require.NoError(t, err)
		assert.Equal(t, tt.want, result)
	}
}

func TestBaggagePolicy(t *testing.T) {
	policy := NewBaggagePolicyTool()

	tests := []struct {
		query string
		want  string
	}{
		{"what is the overweight fee?", "Overweight bag fee is $75."},
		{"what's my allowance?", "One carry-on and one checked bag (up to 50 lbs) are included."},
		{"something about bags", "Please provide details about your baggage inquiry."},
	}
	for _, tt := range tests {
		result, err := policy.Call(newToolCtx(t), map[string]any{"query": tt.query})
		require.NoError(t, err)
		assert.Equal(t, tt.want, result)
	}
}

func TestUpdateSeat_WritesContext(t *testing.T) {
	update := NewUpdateSeatTool()
	toolCtx := newToolCtx(t)

	result, err := update.Call(toolCtx, map[string]any{
		"confirmation_number": "AB12CD",
		"new_seat":            "12A",
	})
	require.NoError(t, err)
	assert.Equal(t, "Updated seat to 12A for confirmation number AB12CD", result)
	assert.Equal(t, "12A", toolCtx.Context().SeatNumber)
}

func TestFlightStatus(t *testing.T) {
	status := NewFlightStatusTool()
	result, err := status.Call(newToolCtx(t), map[string]any{"flight_number": "FLT-123"})
	require.NoError(t, err)
	assert.Equal(t, "Flight FLT-123 is on time and scheduled to depart at gate A10.", result)
}

func TestDisplaySeatMap_ReturnsSentinel(t *testing.T) {
	seatMap := NewDisplaySeatMapTool()
	result, err := seatMap.Call(newToolCtx(t), map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, SeatMapSignal, result)
}

func TestCancelFlight_RequiresConfirmationOnFile(t *testing.T) {
	cancel := NewCancelFlightTool()

	_, err := cancel.Call(newToolCtx(t), map[string]any{})
	var toolErr *ToolError
	require.ErrorAs(t, err, &toolErr)
	assert.Equal(t, CodeValidation, toolErr.Code)

	toolCtx := newToolCtx(t)
	require.NoError(t, toolCtx.Context().Set(core.FieldConfirmationNumber, "LL0EZ6"))
	result, err := cancel.Call(toolCtx, map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "Flight with confirmation number LL0EZ6 has been successfully cancelled", result)
}
