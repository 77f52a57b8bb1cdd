package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

// UserAuthored keeps only messages written by the user.
type UserAuthored struct{}

func (s UserAuthored) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_user = ?", true)
}

// MostRecentlyUpdated orders sessions newest activity first.
// created_at breaks ties between sessions touched in the same instant.
type MostRecentlyUpdated struct{}

func (s MostRecentlyUpdated) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("updated_at DESC").Order("created_at DESC")
}

// ConversationOrder orders messages by timestamp, then by append order.
type ConversationOrder struct{}

func (s ConversationOrder) Apply(db *gorm.DB) *gorm.DB {
	return db.Order("timestamp ASC").Order("sequence ASC")
}
