package models

import "time"

// ChatMessage is one turn of a session-scoped conversation. IsUser is true for
// human turns and false for assistant turns. Ordering within a session is by
// Timestamp ascending.
type ChatMessage struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	SessionID string    `json:"sessionId" gorm:"not null;index"`
	Message   string    `json:"message" gorm:"type:text;not null"`
	IsUser    bool      `json:"isUser" gorm:"not null;default:false"`
	Timestamp time.Time `json:"timestamp"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}
