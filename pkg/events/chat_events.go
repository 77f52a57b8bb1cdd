package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChatSessionCreated = "CHAT_SESSION_CREATED"
	ChatSessionUpdated = "CHAT_SESSION_UPDATED"
	ChatSessionDeleted = "CHAT_SESSION_DELETED"
	ChatHistoryCleared = "CHAT_HISTORY_CLEARED"
)

// NewChatSessionEvent describes a change to a single session. Title and
// updatedAt are omitted from the payload for deletions.
func NewChatSessionEvent(eventType string, sessionId uuid.UUID, title string, updatedAt time.Time) BaseEvent {
	data := map[string]interface{}{
		"chat_session_id": sessionId.String(),
	}
	if eventType != ChatSessionDeleted {
		data["title"] = title
		data["updated_at"] = updatedAt.UTC().Format(time.RFC3339Nano)
	}

	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func NewChatHistoryClearedEvent() BaseEvent {
	return BaseEvent{
		Type:       ChatHistoryCleared,
		Data:       map[string]interface{}{},
		OccurredAt: time.Now().UTC(),
	}
}
