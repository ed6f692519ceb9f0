// Copyright (c) Nimbus AI. All rights reserved.

package agentkit

import "github.com/google/uuid"

// Session manages conversation state for an agent interaction. Messages are
// persisted through the session's [MessageStore]: history is loaded before
// each run and the request/response messages are appended afterwards.
type Session struct {
	id    string
	store MessageStore
}

// NewSession creates a Session with a generated ID backed by store.
// A nil store falls back to an [InMemoryStore].
func NewSession(store MessageStore) *Session {
	if store == nil {
		store = NewInMemoryStore()
	}
	return &Session{
		id:    uuid.NewString(),
		store: store,
	}
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// Store returns the session's message store.
func (s *Session) Store() MessageStore { return s.store }
