// Copyright (c) Nimbus AI. All rights reserved.

package memory

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

// OpenPostgres connects to Postgres, verifies the connection, and ensures
// the message table exists.
func OpenPostgres(connStr string) (*sql.DB, error) {
	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	if err := migrate(db); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func migrate(db *sql.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS agent_messages (
			id UUID PRIMARY KEY,
			session_id TEXT NOT NULL,
			ordinal BIGINT NOT NULL,
			payload JSONB NOT NULL,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_agent_messages_session ON agent_messages(session_id, ordinal)`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// PostgresStore persists one session's messages in the agent_messages table.
// Messages are stored as JSONB payloads using the $type content envelope and
// ordered by an explicit ordinal, so concurrent sessions interleave safely.
type PostgresStore struct {
	db        *sql.DB
	sessionID string
}

// NewPostgresStore creates the store view for a session. The table is shared;
// rows are scoped by session_id.
func NewPostgresStore(db *sql.DB, sessionID string) *PostgresStore {
	return &PostgresStore{db: db, sessionID: sessionID}
}

func (s *PostgresStore) ListMessages(ctx context.Context) ([]ak.Message, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM agent_messages
		 WHERE session_id = $1
		 ORDER BY ordinal ASC`,
		s.sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []ak.Message
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		var msg ak.Message
		if err := json.Unmarshal(payload, &msg); err != nil {
			return nil, fmt.Errorf("parse message payload: %w", err)
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}

func (s *PostgresStore) AddMessages(ctx context.Context, msgs []ak.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var next int64
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(ordinal), 0) + 1 FROM agent_messages WHERE session_id = $1`,
		s.sessionID,
	).Scan(&next)
	if err != nil {
		return fmt.Errorf("next ordinal: %w", err)
	}

	for i, msg := range msgs {
		payload, err := json.Marshal(msg)
		if err != nil {
			return fmt.Errorf("marshal message: %w", err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO agent_messages (id, session_id, ordinal, payload)
			 VALUES ($1, $2, $3, $4)`,
			uuid.New(), s.sessionID, next+int64(i), payload,
		)
		if err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}

	return tx.Commit()
}
