package model

import (
	"time"

	"github.com/google/uuid"
)

type ChatMessage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey"`
	ChatSessionId uuid.UUID `gorm:"type:uuid;not null;index:idx_chat_messages_order,priority:1"`
	Content       string    `gorm:"type:text;not null"`
	IsUser        bool      `gorm:"not null;default:false"`
	Timestamp     time.Time `gorm:"not null;index:idx_chat_messages_order,priority:2"`
	Sequence      int64     `gorm:"not null;index:idx_chat_messages_order,priority:3"`
	ImageUrl      *string   `gorm:"type:text"`
}

func (ChatMessage) TableName() string {
	return "chat_messages"
}

// All returns every model managed by AutoMigrate, parents first.
func All() []interface{} {
	return []interface{}{
		&ChatSession{},
		&ChatMessage{},
	}
}
