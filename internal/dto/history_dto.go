package dto

import "time"

// HistoryEventMessage is pushed to websocket clients whenever the session
// list changes.
type HistoryEventMessage struct {
	Type       string                 `json:"type"`
	Data       map[string]interface{} `json:"data"`
	OccurredAt time.Time              `json:"occurred_at"`
}
