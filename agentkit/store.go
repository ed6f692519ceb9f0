// Copyright (c) Nimbus AI. All rights reserved.

package agentkit

import (
	"context"
	"sync"
)

// MessageStore persists conversation messages for a [Session].
// The memory package provides file- and Postgres-backed implementations;
// [InMemoryStore] is the default.
type MessageStore interface {
	// ListMessages returns all stored messages in order.
	ListMessages(ctx context.Context) ([]Message, error)

	// AddMessages appends messages to the store.
	AddMessages(ctx context.Context, msgs []Message) error
}

// StoreOpener creates a fresh [MessageStore] for a new session.
type StoreOpener func(sessionID string) (MessageStore, error)

// InMemoryStore is a simple in-memory [MessageStore].
type InMemoryStore struct {
	mu       sync.Mutex
	messages []Message
}

// NewInMemoryStore creates an empty [InMemoryStore].
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) ListMessages(_ context.Context) ([]Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]Message, len(s.messages))
	copy(cp, s.messages)
	return cp, nil
}

func (s *InMemoryStore) AddMessages(_ context.Context, msgs []Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msgs...)
	return nil
}
