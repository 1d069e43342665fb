// Package store persists conversations between turns. The in-memory
// implementation is suitable for demos and tests; production deployments
// can satisfy Store with a database-backed implementation.
package store

import (
	"sort"
	"sync"

	"github.com/skydeskhq/skydesk/core"
)

// Store holds conversations keyed by id.
type Store interface {
	// Get returns the conversation with the given id, if it exists.
	Get(id string) (*core.Conversation, bool)

	// GetOrCreate returns the conversation with the given id, creating a
	// fresh one positioned at triage when none exists.
	GetOrCreate(id string) *core.Conversation

	// List returns all known conversation ids.
	List() []string
}

// InMemory is a thread-safe map-backed Store.
type InMemory struct {
	mu            sync.RWMutex
	conversations map[string]*core.Conversation
}

// NewInMemory creates an empty in-memory store.
func NewInMemory() *InMemory {
	return &InMemory{conversations: make(map[string]*core.Conversation)}
}

// Get implements Store.
func (s *InMemory) Get(id string) (*core.Conversation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	conv, ok := s.conversations[id]
	return conv, ok
}

// GetOrCreate implements Store.
func (s *InMemory) GetOrCreate(id string) *core.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conv, ok := s.conversations[id]; ok {
		return conv
	}
	conv := core.NewConversation(id)
	s.conversations[id] = conv
	return conv
}

// List implements Store.
func (s *InMemory) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.conversations))
	for id := range s.conversations {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
