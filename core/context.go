package core

import (
	"fmt"
	"math/rand"
)

// Context field names. These double as the keys used in event metadata
// context deltas, so a recorded delta can be replayed with Context.Set.
const (
	FieldPassengerName      = "passenger_name"
	FieldConfirmationNumber = "confirmation_number"
	FieldSeatNumber         = "seat_number"
	FieldFlightNumber       = "flight_number"
	FieldAccountNumber      = "account_number"
)

// Context is the mutable record of known customer facts shared by all
// handlers of a conversation. An empty string means "unset". Fields are never
// cleared automatically; a set field may only be overwritten by an explicit
// handler or tool action.
//
// The Context is owned by the Conversation and passed by reference into every
// handler and tool invocation. A turn is processed single-threaded, so no
// locking is required.
type Context struct {
	PassengerName      string `json:"passenger_name,omitempty"`
	ConfirmationNumber string `json:"confirmation_number,omitempty"`
	SeatNumber         string `json:"seat_number,omitempty"`
	FlightNumber       string `json:"flight_number,omitempty"`
	AccountNumber      string `json:"account_number,omitempty"`
}

// NewContext creates an empty context with a freshly assigned account number,
// modeling the account lookup that would otherwise have happened at sign-in.
func NewContext() *Context {
	return &Context{AccountNumber: fmt.Sprintf("%08d", rand.Intn(100000000))}
}

// Set writes a field by name. Unknown field names are a programming error and
// are rejected so a typo in a delta never silently drops a mutation.
func (c *Context) Set(field, value string) error {
	switch field {
	case FieldPassengerName:
		c.PassengerName = value
	case FieldConfirmationNumber:
		c.ConfirmationNumber = value
	case FieldSeatNumber:
		c.SeatNumber = value
	case FieldFlightNumber:
		c.FlightNumber = value
	case FieldAccountNumber:
		c.AccountNumber = value
	default:
		return fmt.Errorf("unknown context field %q", field)
	}
	return nil
}

// Get returns the value of a field by name and whether the name is known.
func (c *Context) Get(field string) (string, bool) {
	switch field {
	case FieldPassengerName:
		return c.PassengerName, true
	case FieldConfirmationNumber:
		return c.ConfirmationNumber, true
	case FieldSeatNumber:
		return c.SeatNumber, true
	case FieldFlightNumber:
		return c.FlightNumber, true
	case FieldAccountNumber:
		return c.AccountNumber, true
	default:
		return "", false
	}
}

// Snapshot returns the context as a field -> value map, including unset
// fields, in the shape the transport layer serializes to clients.
func (c *Context) Snapshot() map[string]string {
	return map[string]string{
		FieldPassengerName:      c.PassengerName,
		FieldConfirmationNumber: c.ConfirmationNumber,
		FieldSeatNumber:         c.SeatNumber,
		FieldFlightNumber:       c.FlightNumber,
		FieldAccountNumber:      c.AccountNumber,
	}
}

// Clone returns an independent copy safe for divergence.
func (c *Context) Clone() *Context {
	clone := *c
	return &clone
}
