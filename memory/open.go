// Copyright (c) Nimbus AI. All rights reserved.

// Package memory provides persistent [agentkit.MessageStore] implementations
// selected by a storage DSN:
//
//	:memory:                 in-process store, lost on restart (default)
//	file:<directory>         one JSON file per session under <directory>
//	postgres://...           shared Postgres-backed store
//
// Open returns an [agentkit.StoreOpener] that creates a per-session store on
// demand, so it plugs directly into agentkit.WithStoreOpener.
package memory

import (
	"fmt"
	"strings"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// MemoryDSN selects the in-process store. It is the default when the DSN is
// empty.
const MemoryDSN = ":memory:"

// Open parses a storage DSN and returns a session store opener backed by the
// selected storage. The Postgres variant connects eagerly so configuration
// errors surface at startup rather than on first chat.
func Open(dsn string) (ak.StoreOpener, error) {
	switch {
	case dsn == "" || dsn == MemoryDSN:
		return func(sessionID string) (ak.MessageStore, error) {
			return ak.NewInMemoryStore(), nil
		}, nil

	case strings.HasPrefix(dsn, "file:"):
		dir := strings.TrimPrefix(dsn, "file:")
		if dir == "" {
			return nil, fmt.Errorf("file DSN needs a directory: %q", dsn)
		}
		return func(sessionID string) (ak.MessageStore, error) {
			return NewFileStore(dir, sessionID)
		}, nil

	case strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://"):
		db, err := OpenPostgres(dsn)
		if err != nil {
			return nil, err
		}
		return func(sessionID string) (ak.MessageStore, error) {
			return NewPostgresStore(db, sessionID), nil
		}, nil

	default:
		return nil, fmt.Errorf("unsupported storage DSN: %q", dsn)
	}
}
