package models

import "time"

// ChatMessage is one side of one conversation turn. Rows are append-only.
type ChatMessage struct {
	ID        string    `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	SessionID string    `gorm:"column:session_id;type:uuid;index" json:"session_id"`
	Role      string    `gorm:"column:role;type:text" json:"role"` // "user" | "assistant"
	Message   string    `gorm:"column:message;type:text" json:"message"`
	Timestamp time.Time `gorm:"column:timestamp;type:timestamptz;index" json:"timestamp"`
}

func (ChatMessage) TableName() string { return "chat_history" }
