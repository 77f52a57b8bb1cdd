package dto

import (
	"time"

	"github.com/google/uuid"
)

type ChatSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ChatMessageResponse struct {
	Id            uuid.UUID `json:"id"`
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Content       string    `json:"content"`
	IsUser        bool      `json:"is_user"`
	Timestamp     time.Time `json:"timestamp"`
	ImageUrl      *string   `json:"image_url,omitempty"`
}

type AppendMessageRequest struct {
	Content  string  `json:"content" validate:"required"`
	IsUser   bool    `json:"is_user"`
	ImageUrl *string `json:"image_url,omitempty"`
}

type DeleteSessionResponse struct {
	Deleted bool `json:"deleted"`
}

// WelcomeResponse is the placeholder greeting of a fresh conversation.
// It is never persisted.
type WelcomeResponse struct {
	Greeting  string    `json:"greeting"`
	Timestamp time.Time `json:"timestamp"`
}

type ConversationResponse struct {
	Session  *ChatSessionResponse   `json:"session"`
	Messages []*ChatMessageResponse `json:"messages"`
}

type SendChatRequest struct {
	ChatSessionId *uuid.UUID              `json:"chat_session_id,omitempty"`
	Chat          string                  `json:"chat" validate:"required,max=500"`
	WhatsApp      *WhatsAppSettingsRequest `json:"whatsapp,omitempty" validate:"-"`
}

type SendImageRequest struct {
	ChatSessionId *uuid.UUID              `json:"chat_session_id,omitempty"`
	Image         string                  `json:"image" validate:"required"` // data URL or raw base64
	WhatsApp      *WhatsAppSettingsRequest `json:"whatsapp,omitempty" validate:"-"`
}

type SendChatResponse struct {
	ChatSessionId    uuid.UUID            `json:"chat_session_id"`
	ChatSessionTitle string               `json:"title"`
	Sent             *ChatMessageResponse `json:"sent"`
	Reply            *ChatMessageResponse `json:"reply"`
	Forwarded        bool                 `json:"forwarded"`
}

// PublishForwardReplyMessage is the payload queued for the WhatsApp forwarder.
type PublishForwardReplyMessage struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Question      string    `json:"question"`
	Answer        string    `json:"answer"`
	PhoneNumber   string    `json:"phone_number"`
	ApiKey        string    `json:"api_key"`
	DeviceToken   string    `json:"device_token"`
}
