package services

import (
	"context"

	"github.com/triagedesk/backend/internal/models"
	"github.com/triagedesk/backend/internal/storage"
)

// chatHistoryWindow bounds how many persisted messages feed the prompt.
const chatHistoryWindow = 10

// chatFallbackReply replaces an empty model completion.
const chatFallbackReply = "I'm having trouble responding right now."

// ChatService maintains a session-scoped conversation with the model.
type ChatService struct {
	store storage.Store
	llm   Generator
}

func NewChatService(store storage.Store, llm Generator) *ChatService {
	return &ChatService{store: store, llm: llm}
}

// Chat persists the user turn, builds conversation context from the session's
// recent history and persists the model's reply. If the model call fails the
// user turn stays persisted and no assistant turn is written.
//
// The context always starts with a placeholder system turn whose content is
// the literal word "system", and the incoming message is appended once more
// after the history window even though the window already contains it.
func (s *ChatService) Chat(ctx context.Context, sessionID, message string) (*models.ChatMessage, error) {
	if message == "" || sessionID == "" {
		return nil, &ValidationError{Message: "Message and session ID are required"}
	}

	if _, err := s.store.CreateChatMessage(storage.CreateChatMessageParams{
		SessionID: sessionID,
		Message:   message,
		IsUser:    true,
	}); err != nil {
		return nil, err
	}

	history, err := s.store.ListChatMessages(sessionID)
	if err != nil {
		return nil, err
	}
	if len(history) > chatHistoryWindow {
		history = history[len(history)-chatHistoryWindow:]
	}

	turns := make([]ChatTurn, 0, len(history)+2)
	turns = append(turns, ChatTurn{Role: RoleSystem, Content: "system"})
	for _, msg := range history {
		role := RoleAssistant
		if msg.IsUser {
			role = RoleUser
		}
		turns = append(turns, ChatTurn{Role: role, Content: msg.Message})
	}
	turns = append(turns, ChatTurn{Role: RoleUser, Content: message})

	reply, err := s.llm.Generate(ctx, BuildChatPrompt(turns))
	if err != nil {
		return nil, &CapabilityError{Op: "chat", Err: err}
	}
	if reply == "" {
		reply = chatFallbackReply
	}

	return s.store.CreateChatMessage(storage.CreateChatMessageParams{
		SessionID: sessionID,
		Message:   reply,
		IsUser:    false,
	})
}

// History returns the session's messages, oldest first.
func (s *ChatService) History(sessionID string) ([]models.ChatMessage, error) {
	return s.store.ListChatMessages(sessionID)
}
