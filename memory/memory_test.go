// Copyright (c) Nimbus AI. All rights reserved.

package memory

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ak "github.com/nimbus-ai/weather-agent/agentkit"
)

func TestOpen_DefaultsToInMemory(t *testing.T) {
	for _, dsn := range []string{"", ":memory:"} {
		opener, err := Open(dsn)
		require.NoError(t, err, "dsn %q", dsn)

		store, err := opener("session-1")
		require.NoError(t, err)
		assert.IsType(t, &ak.InMemoryStore{}, store)
	}
}

func TestOpen_FileDSN(t *testing.T) {
	dir := t.TempDir()

	opener, err := Open("file:" + dir)
	require.NoError(t, err)

	store, err := opener("session-1")
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, store)
}

func TestOpen_Invalid(t *testing.T) {
	_, err := Open("file:")
	assert.Error(t, err)

	_, err = Open("redis://localhost")
	assert.Error(t, err)
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir, "session-abc")
	require.NoError(t, err)

	// Empty store lists nothing.
	msgs, err := store.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	err = store.AddMessages(ctx, []ak.Message{
		ak.NewUserMessage("weather in Lisbon?"),
		{
			Role: ak.RoleAssistant,
			Contents: ak.Contents{
				&ak.FunctionCallContent{CallID: "call-1", Name: "weatherTool", Arguments: `{"location":"Lisbon"}`},
			},
		},
		ak.NewToolMessage("call-1", "22C and clear"),
	})
	require.NoError(t, err)

	// Appending preserves earlier messages.
	err = store.AddMessages(ctx, []ak.Message{ak.NewAssistantMessage("It's 22C and clear.")})
	require.NoError(t, err)

	msgs, err = store.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 4)

	assert.Equal(t, ak.RoleUser, msgs[0].Role)
	assert.Equal(t, "weather in Lisbon?", msgs[0].Text())

	fc, ok := msgs[1].Contents[0].(*ak.FunctionCallContent)
	require.True(t, ok, "tool call should survive the round trip")
	assert.Equal(t, "weatherTool", fc.Name)

	assert.Equal(t, "It's 22C and clear.", msgs[3].Text())
}

func TestFileStore_ReopenedSessionSeesHistory(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir, "session-abc")
	require.NoError(t, err)
	require.NoError(t, store.AddMessages(ctx, []ak.Message{ak.NewUserMessage("hi")}))

	reopened, err := NewFileStore(dir, "session-abc")
	require.NoError(t, err)

	msgs, err := reopened.ListMessages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "hi", msgs[0].Text())
}

func TestFileStore_SessionsAreIsolated(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	a, err := NewFileStore(dir, "session-a")
	require.NoError(t, err)
	b, err := NewFileStore(dir, "session-b")
	require.NoError(t, err)

	require.NoError(t, a.AddMessages(ctx, []ak.Message{ak.NewUserMessage("for a")}))

	msgs, err := b.ListMessages(ctx)
	require.NoError(t, err)
	assert.Empty(t, msgs)

	// One file per session.
	_, err = os.Stat(filepath.Join(dir, "session-a.json"))
	assert.NoError(t, err)
}

func TestFileStore_CorruptFile(t *testing.T) {
	dir := t.TempDir()

	store, err := NewFileStore(dir, "session-x")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "session-x.json"), []byte("{not json"), 0o644))

	_, err = store.ListMessages(context.Background())
	assert.Error(t, err)
}
