package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is one turn in a session. Messages are append-only.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Content       string
	IsUser        bool
	Timestamp     time.Time
	Sequence      int64
	ImageUrl      *string
}
