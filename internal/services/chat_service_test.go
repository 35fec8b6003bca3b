package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/triagedesk/backend/internal/storage"
)

func TestChatValidation(t *testing.T) {
	svc := NewChatService(storage.NewMemoryStore(), generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		t.Fatal("model must not be called on validation failure")
		return "", nil
	}))

	tests := []struct {
		name      string
		sessionID string
		message   string
	}{
		{"empty message", "s1", ""},
		{"empty session", "", "hello"},
		{"both empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Chat(context.Background(), tt.sessionID, tt.message)
			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "Message and session ID are required", validationErr.Message)
		})
	}
}

func TestChatFirstExchange(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewChatService(store, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "Check the connection pool settings first.", nil
	}))

	reply, err := svc.Chat(context.Background(), "s1", "hello")
	require.NoError(t, err)
	assert.False(t, reply.IsUser)
	assert.Equal(t, "s1", reply.SessionID)
	assert.Equal(t, "Check the connection pool settings first.", reply.Message)

	history, err := svc.History("s1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].IsUser)
	assert.Equal(t, "hello", history[0].Message)
	assert.False(t, history[1].IsUser)
	assert.Equal(t, reply.ID, history[1].ID)
}

func TestChatPromptShape(t *testing.T) {
	store := storage.NewMemoryStore()
	var capturedPrompt string
	svc := NewChatService(store, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		capturedPrompt = prompt
		return "ok", nil
	}))

	_, err := svc.Chat(context.Background(), "s1", "my database is timing out")
	require.NoError(t, err)

	assert.Contains(t, capturedPrompt, "You are an AI support assistant")
	assert.Contains(t, capturedPrompt, "Conversation:\n")
	assert.True(t, strings.HasSuffix(capturedPrompt, "Assistant:"))
	// The just-persisted user turn appears in the history window and is then
	// appended again as the trailing turn.
	assert.Equal(t, 2, strings.Count(capturedPrompt, "Human: my database is timing out\n"))
	// The placeholder system turn contributes nothing to the rendering.
	assert.NotContains(t, capturedPrompt, "system")
}

func TestChatHistoryWindow(t *testing.T) {
	store := storage.NewMemoryStore()
	for i := 0; i < 12; i++ {
		_, err := store.CreateChatMessage(storage.CreateChatMessageParams{
			SessionID: "s1",
			Message:   fmt.Sprintf("old message %d", i),
			IsUser:    i%2 == 0,
		})
		require.NoError(t, err)
	}

	var capturedPrompt string
	svc := NewChatService(store, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		capturedPrompt = prompt
		return "ok", nil
	}))

	_, err := svc.Chat(context.Background(), "s1", "latest question")
	require.NoError(t, err)

	// 13 persisted user-side messages exist but only the last 10 feed the
	// prompt; the oldest ones fall outside the window.
	assert.NotContains(t, capturedPrompt, "old message 0")
	assert.NotContains(t, capturedPrompt, "old message 2")
	assert.Contains(t, capturedPrompt, "old message 11")
	assert.Contains(t, capturedPrompt, "latest question")
}

func TestChatEmptyReplyFallback(t *testing.T) {
	svc := NewChatService(storage.NewMemoryStore(), generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", nil
	}))

	reply, err := svc.Chat(context.Background(), "s1", "anyone there?")
	require.NoError(t, err)
	assert.Equal(t, "I'm having trouble responding right now.", reply.Message)
}

func TestChatCapabilityFailure(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewChatService(store, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "", errors.New("upstream unavailable")
	}))

	_, err := svc.Chat(context.Background(), "s1", "hello")

	var capErr *CapabilityError
	require.ErrorAs(t, err, &capErr)

	// The user turn stays persisted; no assistant turn was written.
	history, histErr := svc.History("s1")
	require.NoError(t, histErr)
	require.Len(t, history, 1)
	assert.True(t, history[0].IsUser)
}

func TestHistoryIsolatedPerSession(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewChatService(store, generatorFunc(func(ctx context.Context, prompt string) (string, error) {
		return "ok", nil
	}))

	_, err := svc.Chat(context.Background(), "alpha", "first")
	require.NoError(t, err)
	_, err = svc.Chat(context.Background(), "beta", "second")
	require.NoError(t, err)

	alpha, err := svc.History("alpha")
	require.NoError(t, err)
	for _, msg := range alpha {
		assert.Equal(t, "alpha", msg.SessionID)
	}
	assert.Len(t, alpha, 2)
}
