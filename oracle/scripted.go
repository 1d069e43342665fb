package oracle

import (
	"context"
	"sync"
)

// Scripted is a deterministic Oracle for tests and demos. Responses are
// popped in FIFO order; once the queue is exhausted the default reply is
// returned. Every request is recorded for later inspection.
type Scripted struct {
	mu        sync.Mutex
	responses []string
	defaults  string
	err       error
	calls     []Request
}

// NewScripted creates a scripted oracle that replays the given responses in
// order.
func NewScripted(responses ...string) *Scripted {
	return &Scripted{responses: responses}
}

// WithDefault sets the reply returned once the queued responses run out.
func (s *Scripted) WithDefault(reply string) *Scripted {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defaults = reply
	return s
}

// FailWith makes every subsequent completion return err.
func (s *Scripted) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Complete implements Oracle.
func (s *Scripted) Complete(_ context.Context, req Request) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, req)
	if s.err != nil {
		return "", s.err
	}
	if len(s.responses) > 0 {
		resp := s.responses[0]
		s.responses = s.responses[1:]
		return resp, nil
	}
	return s.defaults, nil
}

// Calls returns a copy of every request received so far.
func (s *Scripted) Calls() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Request, len(s.calls))
	copy(out, s.calls)
	return out
}
