package contract

import (
	"context"

	"nutrilokal-be/internal/entity"
	"nutrilokal-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ChatMessageRepository is append-only: there is no update path for message content.
type ChatMessageRepository interface {
	Create(ctx context.Context, message *entity.ChatMessage) error
	DeleteByChatSessionId(ctx context.Context, sessionId uuid.UUID) error
	DeleteAll(ctx context.Context) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ChatMessage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ChatMessage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
